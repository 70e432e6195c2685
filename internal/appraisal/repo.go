package appraisal

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	ErrNotFound         = errors.New("submission not found")
	ErrInvalidPayload   = errors.New("invalid step payload")
	ErrStepsIncomplete  = errors.New("all seven steps must be saved before submitting")
	ErrAlreadySubmitted = errors.New("appraisal already submitted")
)

type ListOpts struct {
	Year   int    // filter by academic year, 0 = all
	Status string // optional: in_progress|complete|submitted
	Limit  int
	Offset int
}

// Store persists one logical document per (facultyEmail, academicYear).
// Writes are single-document and last-write-wins; the low-contention
// one-user-per-form workload needs nothing stronger.
type Store interface {
	Get(ctx context.Context, email string, year int) (Submission, error)

	// SaveStep upserts the document, stores payload under the step's key,
	// adds the step to the completed set and refreshes the scorecard.
	// Idempotent per step: a re-save overwrites the payload without
	// duplicating the step marker.
	SaveStep(ctx context.Context, email string, year, step int, payload, scorecard json.RawMessage) (Submission, error)

	// Submit stamps SubmittedAt once all seven steps are complete.
	Submit(ctx context.Context, email string, year int) (Submission, error)

	// List returns summaries for the admin dashboard, newest first.
	List(ctx context.Context, opts ListOpts) ([]Summary, error)
}
