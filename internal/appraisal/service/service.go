// Package service orchestrates step saves: payload validation, scorecard
// recomputation and persistence. Scoring itself stays pure in
// internal/scoring; this package is the only writer of scorecards.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/campusforge/appraisal/internal/appraisal"
	"github.com/campusforge/appraisal/internal/scoring"
)

type Service struct {
	store    appraisal.Store
	validate *validator.Validate
	engine   func(year int) *scoring.Engine
}

type Option func(*Service)

// WithEngineFactory overrides how scoring engines are built, letting tests
// pin the current year.
func WithEngineFactory(f func(year int) *scoring.Engine) Option {
	return func(s *Service) { s.engine = f }
}

func New(store appraisal.Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		validate: validator.New(),
		engine:   func(year int) *scoring.Engine { return scoring.NewEngine(year) },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SaveStep validates the payload for the given step, stores it and
// recomputes the whole scorecard from every step saved so far. The totals
// are computed from the full record set in one pass, never incrementally.
func (s *Service) SaveStep(ctx context.Context, email string, year, step int, raw json.RawMessage) (appraisal.Submission, error) {
	if step < 1 || step > appraisal.StepCount {
		return appraisal.Submission{}, fmt.Errorf("%w: step must be 1..%d", appraisal.ErrInvalidPayload, appraisal.StepCount)
	}
	if err := s.checkPayload(step, raw); err != nil {
		return appraisal.Submission{}, fmt.Errorf("%w: %v", appraisal.ErrInvalidPayload, err)
	}

	sub, err := s.store.Get(ctx, email, year)
	if err != nil && !errors.Is(err, appraisal.ErrNotFound) {
		return appraisal.Submission{}, err
	}
	steps := map[int]json.RawMessage{}
	for k, v := range sub.Steps {
		steps[k] = v
	}
	steps[step] = raw

	card := s.engine(year).Compute(buildInput(steps))
	cardJSON, err := json.Marshal(card)
	if err != nil {
		return appraisal.Submission{}, err
	}
	return s.store.SaveStep(ctx, email, year, step, raw, cardJSON)
}

func (s *Service) Get(ctx context.Context, email string, year int) (appraisal.Submission, error) {
	return s.store.Get(ctx, email, year)
}

// Scorecard recomputes from the stored steps rather than trusting the
// persisted copy, so a rubric change takes effect on read.
func (s *Service) Scorecard(ctx context.Context, email string, year int) (scoring.Scorecard, error) {
	sub, err := s.store.Get(ctx, email, year)
	if err != nil {
		return scoring.Scorecard{}, err
	}
	return s.engine(year).Compute(buildInput(sub.Steps)), nil
}

func (s *Service) Submit(ctx context.Context, email string, year int) (appraisal.Submission, error) {
	return s.store.Submit(ctx, email, year)
}

func (s *Service) List(ctx context.Context, opts appraisal.ListOpts) ([]appraisal.Summary, error) {
	return s.store.List(ctx, opts)
}

func (s *Service) checkPayload(step int, raw json.RawMessage) error {
	var target interface{}
	switch step {
	case appraisal.StepPersonal:
		target = &appraisal.PersonalStep{}
	case appraisal.StepInstructional:
		target = &appraisal.InstructionalStep{}
	case appraisal.StepResearch:
		target = &appraisal.ResearchStep{}
	case appraisal.StepSponsored:
		target = &appraisal.SponsoredStep{}
	case appraisal.StepOrganization:
		target = &appraisal.OrganizationStep{}
	case appraisal.StepManagement:
		target = &appraisal.ManagementStep{}
	case appraisal.StepDeclaration:
		target = &appraisal.DeclarationStep{}
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("bad step %d payload: %w", step, err)
	}
	return s.validate.Struct(target)
}

// buildInput decodes the scoreable steps. A stored payload that no longer
// unmarshals contributes nothing rather than failing the request.
func buildInput(steps map[int]json.RawMessage) scoring.Input {
	var in scoring.Input
	decode := func(step int, v interface{}) {
		if raw, ok := steps[step]; ok {
			_ = json.Unmarshal(raw, v)
		}
	}
	decode(appraisal.StepInstructional, &in.Instructional)
	decode(appraisal.StepResearch, &in.Research)
	decode(appraisal.StepSponsored, &in.Sponsored)
	decode(appraisal.StepOrganization, &in.Organization)
	decode(appraisal.StepManagement, &in.Management)
	return in
}
