// Package audit appends domain events (step saves, submissions, role
// changes) to an append-only log table for committee review.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

const (
	EventStepSaved   = "StepSaved"
	EventSubmitted   = "AppraisalSubmitted"
	EventRoleChanged = "RoleChanged"
)

type Event struct {
	Offset    int64
	Type      string
	Key       string // natural key: email/year
	DataJSON  string
	CreatedAt int64
}

type EventRepo struct{ db *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

func (r *EventRepo) Append(ctx context.Context, typ, email string, year int, data interface{}) error {
	buf, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO event_log (typ, key, data, created_at) VALUES ($1,$2,$3,$4)`,
		typ, fmt.Sprintf("%s/%d", email, year), string(buf), time.Now().Unix())
	return err
}
