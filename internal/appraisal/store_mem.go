package appraisal

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memKey struct {
	email string
	year  int
}

// memoryStore backs tests and single-process dev runs.
type memoryStore struct {
	mu   sync.RWMutex
	subs map[memKey]Submission
	now  func() time.Time
}

func NewInMemoryStore() Store {
	return &memoryStore{subs: map[memKey]Submission{}, now: time.Now}
}

func (m *memoryStore) Get(_ context.Context, email string, year int) (Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sub, ok := m.subs[memKey{email, year}]
	if !ok {
		return Submission{}, ErrNotFound
	}
	return cloneSubmission(sub), nil
}

func (m *memoryStore) SaveStep(_ context.Context, email string, year, step int, payload, scorecard json.RawMessage) (Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := memKey{email, year}
	sub, ok := m.subs[key]
	if !ok {
		sub = Submission{
			ID:           uuid.NewString(),
			FacultyEmail: email,
			AcademicYear: year,
			Steps:        map[int]json.RawMessage{},
			Status:       StatusInProgress,
		}
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
	sub.LastUpdated = m.now().Unix()
	m.subs[key] = sub
	return cloneSubmission(sub), nil
}

func (m *memoryStore) Submit(_ context.Context, email string, year int) (Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := memKey{email, year}
	sub, ok := m.subs[key]
	if !ok {
		return Submission{}, ErrNotFound
	}
	if sub.Status == StatusSubmitted {
		return Submission{}, ErrAlreadySubmitted
	}
	if !AllStepsComplete(sub.CompletedSteps) {
		return Submission{}, ErrStepsIncomplete
	}
	sub.Status = StatusSubmitted
	sub.SubmittedAt = m.now().Unix()
	sub.LastUpdated = sub.SubmittedAt
	m.subs[key] = sub
	return cloneSubmission(sub), nil
}

func (m *memoryStore) List(_ context.Context, opts ListOpts) ([]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Summary
	for _, sub := range m.subs {
		if opts.Year != 0 && sub.AcademicYear != opts.Year {
			continue
		}
		if opts.Status != "" && sub.Status != opts.Status {
			continue
		}
		out = append(out, Summary{
			ID:             sub.ID,
			FacultyEmail:   sub.FacultyEmail,
			AcademicYear:   sub.AcademicYear,
			Status:         sub.Status,
			CompletedSteps: NormalizeSteps(sub.CompletedSteps),
			TotalMarks:     totalFromScorecard(string(sub.ScorecardJSON)),
			LastUpdated:    sub.LastUpdated,
			SubmittedAt:    sub.SubmittedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastUpdated > out[j].LastUpdated })
	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return nil, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func cloneSubmission(sub Submission) Submission {
	steps := make(map[int]json.RawMessage, len(sub.Steps))
	for k, v := range sub.Steps {
		steps[k] = append(json.RawMessage(nil), v...)
	}
	sub.Steps = steps
	sub.CompletedSteps = append([]int(nil), sub.CompletedSteps...)
	sub.ScorecardJSON = append(json.RawMessage(nil), sub.ScorecardJSON...)
	return sub
}
