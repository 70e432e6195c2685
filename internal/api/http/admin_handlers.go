package http

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/campusforge/appraisal/internal/appraisal"
	"github.com/campusforge/appraisal/internal/appraisal/service"
	"github.com/campusforge/appraisal/internal/audit"
)

// GET /admin/appraisals?year=&status=&limit=&offset=
func ListSubmissionsHandler(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		opts := appraisal.ListOpts{Status: q.Get("status")}
		opts.Year, _ = strconv.Atoi(q.Get("year"))
		opts.Limit, _ = strconv.Atoi(q.Get("limit"))
		opts.Offset, _ = strconv.Atoi(q.Get("offset"))
		rows, err := svc.List(r.Context(), opts)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if rows == nil {
			rows = []appraisal.Summary{}
		}
		_ = json.NewEncoder(w).Encode(rows)
	}
}

// GET /admin/appraisals/export?year=&status=
//
// Roster CSV of submission summaries for the review committee. Unlike the
// per-faculty export this carries totals only, not per-record marks.
func RosterCSVHandler(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		opts := appraisal.ListOpts{Status: q.Get("status"), Limit: 200}
		opts.Year, _ = strconv.Atoi(q.Get("year"))

		// collect every page before the first write; a late page failure
		// must not land inside an already-committed 200 CSV body
		var all []appraisal.Summary
		for offset := 0; ; offset += opts.Limit {
			opts.Offset = offset
			rows, err := svc.List(r.Context(), opts)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			all = append(all, rows...)
			if len(rows) < opts.Limit {
				break
			}
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="appraisal-roster.csv"`)
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"faculty_email", "year", "status", "steps_done", "total_marks", "submitted_at"})
		for _, sm := range all {
			submitted := ""
			if sm.SubmittedAt != 0 {
				submitted = time.Unix(sm.SubmittedAt, 0).UTC().Format(time.RFC3339)
			}
			_ = cw.Write([]string{
				sm.FacultyEmail,
				strconv.Itoa(sm.AcademicYear),
				sm.Status,
				strconv.Itoa(len(sm.CompletedSteps)),
				strconv.FormatFloat(sm.TotalMarks, 'f', -1, 64),
				submitted,
			})
		}
		cw.Flush()
	}
}

// GET /admin/appraisals/{email}/{year}
func AdminGetSubmissionHandler(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := strings.ToLower(chi.URLParam(r, "email"))
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

// PUT /admin/users/{username}/role {"role": "faculty|reviewer|admin"}
//
// The one admin write surface: role assignment. Score data is never
// admin-writable.
func SetUserRoleHandler(db *sql.DB, events *audit.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := strings.ToLower(chi.URLParam(r, "username"))
		var req struct {
			Role string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		switch req.Role {
		case "faculty", "reviewer", "admin":
		default:
			http.Error(w, "role must be faculty, reviewer or admin", http.StatusBadRequest)
			return
		}
		res, err := db.ExecContext(r.Context(),
			`UPDATE users SET role=$1 WHERE username=$2`, req.Role, username)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		_ = events.Append(r.Context(), audit.EventRoleChanged, username, 0, map[string]string{"role": req.Role})
		_ = json.NewEncoder(w).Encode(map[string]string{"username": username, "role": req.Role})
	}
}
