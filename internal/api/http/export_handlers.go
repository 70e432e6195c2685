package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/campusforge/appraisal/internal/appraisal"
	"github.com/campusforge/appraisal/internal/appraisal/service"
	authmw "github.com/campusforge/appraisal/internal/auth/middleware"
	"github.com/campusforge/appraisal/internal/export"
	"github.com/campusforge/appraisal/internal/metrics"
)

// GET /appraisals/{year}/export?format=html|csv (own form)
// GET /admin/appraisals/{email}/{year}/export?format=... (committee)
//
// Renders the fully aggregated submission, caches the artifact in the blob
// store and streams it back. The totals always come from a fresh compute
// over the full record set.
func ExportHandler(svc *service.Service, blobs export.BlobStore, m *metrics.Metrics, adminRoute bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := authmw.SubjectFromContext(r.Context())
		if adminRoute {
			email = strings.ToLower(chi.URLParam(r, "email"))
		}
		year, ok := yearParam(r)
		if !ok {
			http.Error(w, "bad year", http.StatusBadRequest)
			return
		}
		format := r.URL.Query().Get("format")
		renderer := export.ForFormat(format)
		if renderer == nil {
			http.Error(w, "format must be html or csv", http.StatusBadRequest)
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
		card, err := svc.Scorecard(r.Context(), email, year)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		if err := renderer.Render(&buf, sub, card); err != nil {
			http.Error(w, "render: "+err.Error(), http.StatusInternalServerError)
			return
		}
		m.ExportRenders.WithLabelValues(renderer.Ext()).Inc()

		// artifact cache only; a failed write must not fail the download
		key := fmt.Sprintf("%s/%d/appraisal-%d.%s", email, year, sub.LastUpdated, renderer.Ext())
		_, _ = blobs.Put(key, bytes.NewReader(buf.Bytes()))

		w.Header().Set("Content-Type", renderer.ContentType())
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("appraisal-%d.%s", year, renderer.Ext())))
		_, _ = io.Copy(w, &buf)
	}
}
