// Package facultyrecords fetches a faculty member's profile and record
// arrays from the institute's records API. Field extraction is tolerant:
// records with malformed or missing date fields come back with zero years
// and fall out at the eligibility filter instead of failing the request.
package facultyrecords

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/campusforge/appraisal/internal/appraisal"
)

var (
	ErrUnauthorized    = errors.New("faculty records: unauthorized")
	ErrProfileNotFound = errors.New("faculty records: profile not found")
)

type Profile struct {
	Name        string `json:"name"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
	EmployeeID  string `json:"employee_id"`
}

// Bundle is everything the provider knows about one faculty member, shaped
// as step payload drafts for form prefill.
type Bundle struct {
	Profile       Profile                     `json:"profile"`
	Instructional appraisal.InstructionalStep `json:"instructional"`
	Research      appraisal.ResearchStep      `json:"research"`
	Sponsored     appraisal.SponsoredStep     `json:"sponsored"`
	Organization  appraisal.OrganizationStep  `json:"organization"`
	Management    appraisal.ManagementStep    `json:"management"`
}

type Client struct {
	base string
	http *retryablehttp.Client
}

// New builds a client. Failures surface immediately to the caller; scoring
// runs synchronously inside a request, so RetryMax stays at one transport
// retry rather than a backoff loop.
func New(base string, timeout time.Duration) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 1
	rc.Logger = nil
	rc.HTTPClient.Timeout = timeout
	return &Client{base: base, http: rc}
}

// Fetch returns the full record bundle for one faculty email.
func (c *Client) Fetch(ctx context.Context, email string) (Bundle, error) {
	u := fmt.Sprintf("%s/api/faculty/%s", c.base, url.PathEscape(email))
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Bundle{}, err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return Bundle{}, fmt.Errorf("faculty records: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return Bundle{}, ErrUnauthorized
	case http.StatusNotFound:
		return Bundle{}, ErrProfileNotFound
	default:
		return Bundle{}, fmt.Errorf("faculty records: unexpected status %d", res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, 8<<20))
	if err != nil {
		return Bundle{}, err
	}
	return parseBundle(body)
}

func parseBundle(body []byte) (Bundle, error) {
	root := gjson.ParseBytes(body)
	profile := root.Get("profile")
	if !profile.Exists() || profile.Get("name").String() == "" {
		return Bundle{}, ErrProfileNotFound
	}

	var b Bundle
	b.Profile = Profile{
		Name:        profile.Get("name").String(),
		Department:  profile.Get("department").String(),
		Designation: profile.Get("designation").String(),
		EmployeeID:  profile.Get("employee_id").String(),
	}

	for _, r := range root.Get("courses").Array() {
		b.Instructional.Courses = append(b.Instructional.Courses, appraisal.TeachingCourse{
			Code:           r.Get("code").String(),
			Title:          r.Get("title").String(),
			Semester:       r.Get("semester").String(),
			LectureHours:   r.Get("lecture_hours").Float(),
			TutorialHours:  r.Get("tutorial_hours").Float(),
			PracticalHours: r.Get("practical_hours").Float(),
		})
	}
	for _, r := range root.Get("phd_candidates").Array() {
		b.Research.PhDCandidates = append(b.Research.PhDCandidates, appraisal.PhDCandidate{
			Name:             r.Get("name").String(),
			RegistrationYear: yearOf(r.Get("registration_date"), r.Get("registration_year")),
			Status:           r.Get("status").String(),
		})
	}
	for _, r := range root.Get("journal_papers").Array() {
		b.Research.JournalPapers = append(b.Research.JournalPapers, appraisal.JournalPaper{
			Title:         r.Get("title").String(),
			Journal:       r.Get("journal").String(),
			Quartile:      r.Get("quartile").String(),
			ScopusIndexed: r.Get("scopus_indexed").Bool(),
			Authors:       int(r.Get("authors").Int()),
			Year:          yearOf(r.Get("publication_date"), r.Get("year")),
		})
	}
	for _, r := range root.Get("conference_papers").Array() {
		b.Research.ConferencePapers = append(b.Research.ConferencePapers, appraisal.ConferencePaper{
			Title:      r.Get("title").String(),
			Conference: r.Get("conference").String(),
			Indexed:    r.Get("indexed").Bool(),
			Year:       yearOf(r.Get("date"), r.Get("year")),
		})
	}
	for _, r := range root.Get("books").Array() {
		b.Research.Books = append(b.Research.Books, appraisal.Book{
			Kind:      appraisal.BookKind(r.Get("kind").String()),
			Title:     r.Get("title").String(),
			Publisher: r.Get("publisher").String(),
			Year:      yearOf(r.Get("publication_date"), r.Get("year")),
		})
	}
	for _, r := range root.Get("sponsored_projects").Array() {
		b.Sponsored.SponsoredProjects = append(b.Sponsored.SponsoredProjects, appraisal.SponsoredProject{
			Title:     r.Get("title").String(),
			Agency:    r.Get("agency").String(),
			Outlay:    r.Get("outlay").Float(),
			Status:    r.Get("status").String(),
			StartYear: int(r.Get("start_year").Int()),
			EndYear:   int(r.Get("end_year").Int()),
		})
	}
	for _, r := range root.Get("consultancy_projects").Array() {
		b.Sponsored.ConsultancyProjects = append(b.Sponsored.ConsultancyProjects, appraisal.ConsultancyProject{
			Title:     r.Get("title").String(),
			Client:    r.Get("client").String(),
			Amount:    r.Get("amount").Float(),
			StartYear: int(r.Get("start_year").Int()),
			EndYear:   int(r.Get("end_year").Int()),
		})
	}
	for _, r := range root.Get("ipr").Array() {
		b.Sponsored.IPR = append(b.Sponsored.IPR, appraisal.IPRItem{
			Kind:            appraisal.IPRKind(r.Get("kind").String()),
			Title:           r.Get("title").String(),
			FiledYear:       int(r.Get("filed_year").Int()),
			GrantedYear:     int(r.Get("granted_year").Int()),
			PublicationDate: r.Get("publication_date").String(),
		})
	}
	for _, r := range root.Get("startups").Array() {
		b.Sponsored.Startups = append(b.Sponsored.Startups, appraisal.Startup{
			Name:           r.Get("name").String(),
			Revenue:        r.Get("revenue").Float(),
			Registered:     r.Get("registered").Bool(),
			RegisteredYear: int(r.Get("registered_year").Int()),
			CeasedYear:     int(r.Get("ceased_year").Int()),
		})
	}
	for _, r := range root.Get("internships").Array() {
		b.Sponsored.Internships = append(b.Sponsored.Internships, appraisal.Internship{
			Student: r.Get("student").String(),
			Kind:    r.Get("kind").String(),
		})
	}
	for _, r := range root.Get("events").Array() {
		b.Organization.Events = append(b.Organization.Events, appraisal.Event{
			Title:         r.Get("title").String(),
			Type:          r.Get("type").String(),
			Role:          r.Get("role").String(),
			DurationWeeks: int(r.Get("duration_weeks").Int()),
		})
	}
	for _, r := range root.Get("outreach").Array() {
		b.Organization.Outreach = append(b.Organization.Outreach, appraisal.OutreachActivity{
			Description: r.Get("description").String(),
		})
	}
	for _, r := range root.Get("institute_roles").Array() {
		b.Management.InstituteRoles = append(b.Management.InstituteRoles, appraisal.InstituteRole{
			Role:      r.Get("role").String(),
			StartYear: int(r.Get("start_year").Int()),
			EndYear:   int(r.Get("end_year").Int()),
		})
	}
	for _, r := range root.Get("department_roles").Array() {
		b.Management.DepartmentRoles = append(b.Management.DepartmentRoles, appraisal.DepartmentRole{
			Role:      r.Get("role").String(),
			StartYear: int(r.Get("start_year").Int()),
			EndYear:   int(r.Get("end_year").Int()),
		})
	}
	return b, nil
}

// yearOf reads a year from a date string ("2006-01-02" prefix) or a plain
// numeric year field, whichever the provider sent. Malformed values come
// back as 0, which the eligibility filter treats as missing.
func yearOf(date, year gjson.Result) int {
	if y := int(year.Int()); y != 0 {
		return y
	}
	if s := date.String(); len(s) >= 4 {
		if t, err := time.Parse("2006-01-02", s[:min(len(s), 10)]); err == nil {
			return t.Year()
		}
	}
	return 0
}
