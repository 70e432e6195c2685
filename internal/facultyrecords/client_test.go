package facultyrecords

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const providerBody = `{
  "profile": {"name": "Dr. A", "department": "CSE", "designation": "Associate Professor", "employee_id": "F123"},
  "courses": [{"code": "CS101", "title": "Intro", "lecture_hours": 3, "tutorial_hours": 1}],
  "phd_candidates": [
    {"name": "S1", "registration_date": "2021-07-15", "status": "ongoing"},
    {"name": "S2", "registration_year": 2019, "status": "awarded"}
  ],
  "journal_papers": [
    {"title": "P1", "quartile": "Q1", "authors": 2, "publication_date": "2024-03-01"},
    {"title": "P2", "scopus_indexed": true, "authors": 1, "publication_date": "not-a-date"}
  ],
  "sponsored_projects": [{"title": "G1", "agency": "DST", "outlay": 700000, "status": "ongoing", "start_year": 2023}],
  "events": [{"title": "FDP on ML", "type": "fdp", "role": "coordinator"}],
  "institute_roles": [{"role": "Warden", "start_year": 2022}]
}`

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/faculty/a@inst.edu":
			_, _ = w.Write([]byte(providerBody))
		case "/api/faculty/ghost@inst.edu":
			http.Error(w, "no such faculty", http.StatusNotFound)
		case "/api/faculty/locked@inst.edu":
			http.Error(w, "denied", http.StatusForbidden)
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	ctx := context.Background()

	b, err := c.Fetch(ctx, "a@inst.edu")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if b.Profile.Name != "Dr. A" || b.Profile.EmployeeID != "F123" {
		t.Errorf("profile = %+v", b.Profile)
	}
	if len(b.Instructional.Courses) != 1 || b.Instructional.Courses[0].LectureHours != 3 {
		t.Errorf("courses = %+v", b.Instructional.Courses)
	}
	if len(b.Research.PhDCandidates) != 2 {
		t.Fatalf("phd candidates = %+v", b.Research.PhDCandidates)
	}
	if b.Research.PhDCandidates[0].RegistrationYear != 2021 {
		t.Errorf("year from date = %d, want 2021", b.Research.PhDCandidates[0].RegistrationYear)
	}
	if b.Research.PhDCandidates[1].RegistrationYear != 2019 {
		t.Errorf("year from numeric field = %d, want 2019", b.Research.PhDCandidates[1].RegistrationYear)
	}
	if b.Research.JournalPapers[0].Year != 2024 {
		t.Errorf("paper year = %d, want 2024", b.Research.JournalPapers[0].Year)
	}
	// malformed dates degrade to 0 and fall out downstream
	if b.Research.JournalPapers[1].Year != 0 {
		t.Errorf("malformed date year = %d, want 0", b.Research.JournalPapers[1].Year)
	}
	if len(b.Sponsored.SponsoredProjects) != 1 || b.Sponsored.SponsoredProjects[0].Outlay != 700000 {
		t.Errorf("sponsored = %+v", b.Sponsored.SponsoredProjects)
	}
	if len(b.Organization.Events) != 1 || len(b.Management.InstituteRoles) != 1 {
		t.Errorf("events/roles = %+v / %+v", b.Organization.Events, b.Management.InstituteRoles)
	}

	if _, err := c.Fetch(ctx, "ghost@inst.edu"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("404: err = %v, want ErrProfileNotFound", err)
	}
	if _, err := c.Fetch(ctx, "locked@inst.edu"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("403: err = %v, want ErrUnauthorized", err)
	}
}

func TestParseBundleRejectsProfilelessBody(t *testing.T) {
	for _, body := range []string{`{}`, `{"profile":{}}`, `not json`} {
		if _, err := parseBundle([]byte(body)); !errors.Is(err, ErrProfileNotFound) {
			t.Errorf("parseBundle(%q): err = %v, want ErrProfileNotFound", body, err)
		}
	}
}
