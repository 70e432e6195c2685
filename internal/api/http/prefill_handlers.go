package http

import (
	"encoding/json"
	"errors"
	"net/http"

	authmw "github.com/campusforge/appraisal/internal/auth/middleware"
	"github.com/campusforge/appraisal/internal/facultyrecords"
	"github.com/campusforge/appraisal/internal/metrics"
)

// GET /appraisals/prefill
//
// Fetches the caller's record bundle from the faculty records provider,
// shaped as step payload drafts. Nothing is persisted; the client saves the
// (possibly edited) drafts through the normal step endpoints.
func PrefillHandler(client *facultyrecords.Client, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			http.Error(w, "faculty records provider not configured", http.StatusNotImplemented)
			return
		}
		email := authmw.SubjectFromContext(r.Context())
		bundle, err := client.Fetch(r.Context(), email)
		switch {
		case errors.Is(err, facultyrecords.ErrUnauthorized):
			m.PrefillFailures.Inc()
			http.Error(w, "records provider rejected the request", http.StatusBadGateway)
			return
		case errors.Is(err, facultyrecords.ErrProfileNotFound):
			m.PrefillFailures.Inc()
			http.Error(w, "no faculty profile for "+email, http.StatusNotFound)
			return
		case err != nil:
			m.PrefillFailures.Inc()
			http.Error(w, "records provider: "+err.Error(), http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(bundle)
	}
}
