// Package http holds the chi handlers for the appraisal API. Handlers are
// closures over their collaborators; routing and middleware live in
// cmd/gateway.
package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/campusforge/appraisal/internal/appraisal"
	"github.com/campusforge/appraisal/internal/appraisal/service"
	"github.com/campusforge/appraisal/internal/audit"
	authmw "github.com/campusforge/appraisal/internal/auth/middleware"
	"github.com/campusforge/appraisal/internal/metrics"
	"github.com/campusforge/appraisal/internal/notify"
)

func yearParam(r *http.Request) (int, bool) {
	y, err := strconv.Atoi(chi.URLParam(r, "year"))
	return y, err == nil && y >= 2000 && y <= 2100
}

func stepParam(r *http.Request) (int, bool) {
	s, err := strconv.Atoi(chi.URLParam(r, "step"))
	return s, err == nil && s >= 1 && s <= appraisal.StepCount
}

// PUT /appraisals/{year}/steps/{step}
func SaveStepHandler(svc *service.Service, events *audit.EventRepo, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := authmw.SubjectFromContext(r.Context())
		year, ok := yearParam(r)
		if !ok {
			http.Error(w, "bad year", http.StatusBadRequest)
			return
		}
		step, ok := stepParam(r)
		if !ok {
			http.Error(w, "step must be 1..7", http.StatusBadRequest)
			return
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, 2<<20))
		if err != nil {
			http.Error(w, "read body", http.StatusBadRequest)
			return
		}

		start := time.Now()
		sub, err := svc.SaveStep(r.Context(), email, year, step, body)
		if errors.Is(err, appraisal.ErrInvalidPayload) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, "save step: "+err.Error(), http.StatusInternalServerError)
			return
		}
		m.ScoringDuration.Observe(time.Since(start).Seconds())
		m.StepSaves.WithLabelValues(strconv.Itoa(step)).Inc()
		_ = events.Append(r.Context(), audit.EventStepSaved, email, year, map[string]int{"step": step})

		_ = json.NewEncoder(w).Encode(sub)
	}
}

// GET /appraisals/{year}/steps/{step}
func GetStepHandler(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := authmw.SubjectFromContext(r.Context())
		year, ok := yearParam(r)
		if !ok {
			http.Error(w, "bad year", http.StatusBadRequest)
			return
		}
		step, ok := stepParam(r)
		if !ok {
			http.Error(w, "step must be 1..7", http.StatusBadRequest)
			return
		}
		sub, err := svc.Get(r.Context(), email, year)
		if errors.Is(err, appraisal.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		raw, ok := sub.Steps[step]
		if !ok {
			http.Error(w, "step not saved", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(raw)
	}
}

// GET /appraisals/{year}
func GetSubmissionHandler(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := authmw.SubjectFromContext(r.Context())
		year, ok := yearParam(r)
		if !ok {
			http.Error(w, "bad year", http.StatusBadRequest)
			return
		}
		sub, err := svc.Get(r.Context(), email, year)
		if errors.Is(err, appraisal.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(sub)
	}
}

// GET /appraisals/{year}/scorecard
func GetScorecardHandler(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := authmw.SubjectFromContext(r.Context())
		year, ok := yearParam(r)
		if !ok {
			http.Error(w, "bad year", http.StatusBadRequest)
			return
		}
		card, err := svc.Scorecard(r.Context(), email, year)
		if errors.Is(err, appraisal.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(card)
	}
}

// POST /appraisals/{year}/submit
func SubmitHandler(svc *service.Service, events *audit.EventRepo, mailer notify.Service, m *metrics.Metrics, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := authmw.SubjectFromContext(r.Context())
		year, ok := yearParam(r)
		if !ok {
			http.Error(w, "bad year", http.StatusBadRequest)
			return
		}
		sub, err := svc.Submit(r.Context(), email, year)
		switch {
		case errors.Is(err, appraisal.ErrNotFound):
			http.Error(w, "not found", http.StatusNotFound)
			return
		case errors.Is(err, appraisal.ErrStepsIncomplete):
			http.Error(w, err.Error(), http.StatusConflict)
			return
		case errors.Is(err, appraisal.ErrAlreadySubmitted):
			http.Error(w, err.Error(), http.StatusConflict)
			return
		case err != nil:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		m.Submissions.Inc()
		_ = events.Append(r.Context(), audit.EventSubmitted, email, year, map[string]int64{"submitted_at": sub.SubmittedAt})

		var personal appraisal.PersonalStep
		if raw, ok := sub.Steps[appraisal.StepPersonal]; ok {
			_ = json.Unmarshal(raw, &personal)
		}
		card, err := svc.Scorecard(r.Context(), email, year)
		if err == nil {
			msg := notify.SubmissionReceived(personal.Name, email, year, card.Total)
			if err := mailer.Send(r.Context(), msg); err != nil {
				// submission already durable, mail failure is not the caller's problem
				log.Warn("submission mail failed", zap.String("email", email), zap.Error(err))
			}
		}
		_ = json.NewEncoder(w).Encode(sub)
	}
}
