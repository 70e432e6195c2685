package appraisal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

func (s *SQLStore) Get(ctx context.Context, email string, year int) (Submission, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, faculty_email, academic_year, steps_json, completed_steps_json,
		        status, scorecard_json, last_updated, COALESCE(submitted_at, 0)
		 FROM submissions WHERE faculty_email=$1 AND academic_year=$2`,
		email, year)
	return scanSubmission(row)
}

func (s *SQLStore) SaveStep(ctx context.Context, email string, year, step int, payload, scorecard json.RawMessage) (Submission, error) {
	sub, err := s.Get(ctx, email, year)
	if errors.Is(err, ErrNotFound) {
		sub = Submission{
			ID:           uuid.NewString(),
			FacultyEmail: email,
			AcademicYear: year,
			Steps:        map[int]json.RawMessage{},
			Status:       StatusInProgress,
		}
	} else if err != nil {
		return Submission{}, err
	}
	if sub.Steps == nil {
		sub.Steps = map[int]json.RawMessage{}
	}
	sub.Steps[step] = payload
	sub.CompletedSteps = AddStep(sub.CompletedSteps, step)
	if sub.Status != StatusSubmitted {
		sub.Status = StatusInProgress
		if AllStepsComplete(sub.CompletedSteps) {
			sub.Status = StatusComplete
		}
	}
	sub.ScorecardJSON = scorecard
	sub.LastUpdated = s.now().Unix()

	stepsJSON, err := json.Marshal(stepsToWire(sub.Steps))
	if err != nil {
		return Submission{}, err
	}
	completedJSON, _ := json.Marshal(sub.CompletedSteps)

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO submissions
		   (id, faculty_email, academic_year, steps_json, completed_steps_json, status, scorecard_json, last_updated)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 ON CONFLICT (faculty_email, academic_year) DO UPDATE SET
		   steps_json=EXCLUDED.steps_json,
		   completed_steps_json=EXCLUDED.completed_steps_json,
		   status=EXCLUDED.status,
		   scorecard_json=EXCLUDED.scorecard_json,
		   last_updated=EXCLUDED.last_updated`,
		sub.ID, sub.FacultyEmail, sub.AcademicYear, string(stepsJSON), string(completedJSON),
		sub.Status, string(sub.ScorecardJSON), sub.LastUpdated)
	if err != nil {
		return Submission{}, err
	}
	return s.Get(ctx, email, year)
}

func (s *SQLStore) Submit(ctx context.Context, email string, year int) (Submission, error) {
	sub, err := s.Get(ctx, email, year)
	if err != nil {
		return Submission{}, err
	}
	if sub.Status == StatusSubmitted {
		return Submission{}, ErrAlreadySubmitted
	}
	if !AllStepsComplete(sub.CompletedSteps) {
		return Submission{}, ErrStepsIncomplete
	}
	now := s.now().Unix()
	_, err = s.db.ExecContext(ctx,
		`UPDATE submissions SET status=$1, submitted_at=$2, last_updated=$2
		 WHERE faculty_email=$3 AND academic_year=$4`,
		StatusSubmitted, now, email, year)
	if err != nil {
		return Submission{}, err
	}
	return s.Get(ctx, email, year)
}

func (s *SQLStore) List(ctx context.Context, opts ListOpts) ([]Summary, error) {
	if opts.Limit <= 0 || opts.Limit > 200 {
		opts.Limit = 50
	}
	q := `SELECT id, faculty_email, academic_year, completed_steps_json, status,
	             scorecard_json, last_updated, COALESCE(submitted_at, 0)
	      FROM submissions WHERE 1=1`
	args := []interface{}{}
	if opts.Year != 0 {
		args = append(args, opts.Year)
		q += ` AND academic_year=` + placeholder(len(args))
	}
	if opts.Status != "" {
		args = append(args, opts.Status)
		q += ` AND status=` + placeholder(len(args))
	}
	args = append(args, opts.Limit, opts.Offset)
	q += ` ORDER BY last_updated DESC LIMIT ` + placeholder(len(args)-1) + ` OFFSET ` + placeholder(len(args))

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sm Summary
		var completedJSON, scorecardJSON string
		if err := rows.Scan(&sm.ID, &sm.FacultyEmail, &sm.AcademicYear, &completedJSON,
			&sm.Status, &scorecardJSON, &sm.LastUpdated, &sm.SubmittedAt); err != nil {
			return nil, err
		}
		sm.CompletedSteps = decodeCompleted(completedJSON)
		sm.TotalMarks = totalFromScorecard(scorecardJSON)
		out = append(out, sm)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubmission(row rowScanner) (Submission, error) {
	var sub Submission
	var stepsJSON, completedJSON, scorecardJSON string
	err := row.Scan(&sub.ID, &sub.FacultyEmail, &sub.AcademicYear, &stepsJSON,
		&completedJSON, &sub.Status, &scorecardJSON, &sub.LastUpdated, &sub.SubmittedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Submission{}, ErrNotFound
	}
	if err != nil {
		return Submission{}, err
	}
	sub.Steps = stepsFromWire(stepsJSON)
	sub.CompletedSteps = decodeCompleted(completedJSON)
	if scorecardJSON != "" {
		sub.ScorecardJSON = json.RawMessage(scorecardJSON)
	}
	return sub, nil
}

// Steps are stored keyed by the step number's decimal string so the column
// stays an ordinary JSON object.
func stepsToWire(steps map[int]json.RawMessage) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(steps))
	for k, v := range steps {
		out[itoa(k)] = v
	}
	return out
}

func stepsFromWire(raw string) map[int]json.RawMessage {
	var wire map[string]json.RawMessage
	steps := map[int]json.RawMessage{}
	if json.Unmarshal([]byte(raw), &wire) != nil {
		return steps
	}
	for k, v := range wire {
		if n := atoiStep(k); n != 0 {
			steps[n] = v
		}
	}
	return steps
}

// decodeCompleted accepts both the canonical array form and the legacy
// map-of-step-number form, normalizing either to a sorted int set.
func decodeCompleted(raw string) []int {
	var arr []int
	if json.Unmarshal([]byte(raw), &arr) == nil {
		return NormalizeSteps(arr)
	}
	var legacy map[string]interface{}
	if json.Unmarshal([]byte(raw), &legacy) == nil {
		for k := range legacy {
			if n := atoiStep(k); n != 0 {
				arr = append(arr, n)
			}
		}
	}
	return NormalizeSteps(arr)
}

func totalFromScorecard(raw string) float64 {
	var card struct {
		Total float64 `json:"total"`
	}
	if json.Unmarshal([]byte(raw), &card) != nil {
		return 0
	}
	return card.Total
}

func itoa(n int) string { return strconv.Itoa(n) }

func atoiStep(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > StepCount {
		return 0
	}
	return n
}

func placeholder(n int) string { return "$" + strconv.Itoa(n) }
