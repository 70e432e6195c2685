package appraisal

import (
	"encoding/json"
	"sort"
)

const (
	StepPersonal      = 1
	StepInstructional = 2
	StepResearch      = 3
	StepSponsored     = 4
	StepOrganization  = 5
	StepManagement    = 6
	StepDeclaration   = 7

	StepCount = 7
)

// Submission lifecycle. A submission is never deleted by this service;
// review and export only read it.
const (
	StatusInProgress = "in_progress"
	StatusComplete   = "complete" // all seven steps saved, not yet submitted
	StatusSubmitted  = "submitted"
)

type PersonalStep struct {
	Name        string `json:"name" validate:"required"`
	Department  string `json:"department" validate:"required"`
	Designation string `json:"designation"`
	EmployeeID  string `json:"employee_id"`
}

type InstructionalStep struct {
	Courses       []TeachingCourse `json:"courses"`
	Innovations   []Innovation     `json:"innovations"`
	NewLabs       []NewLab         `json:"new_labs"`
	OtherTasks    []OtherTask      `json:"other_tasks"`
	ProjectGroups []ProjectGroup   `json:"project_groups" validate:"dive"`
}

type ResearchStep struct {
	PhDCandidates    []PhDCandidate    `json:"phd_candidates" validate:"dive"`
	JournalPapers    []JournalPaper    `json:"journal_papers" validate:"dive"`
	ConferencePapers []ConferencePaper `json:"conference_papers"`
	Books            []Book            `json:"books" validate:"dive"`
}

type SponsoredStep struct {
	SponsoredProjects   []SponsoredProject   `json:"sponsored_projects" validate:"dive"`
	ConsultancyProjects []ConsultancyProject `json:"consultancy_projects"`
	IPR                 []IPRItem            `json:"ipr" validate:"dive"`
	Startups            []Startup            `json:"startups"`
	Internships         []Internship         `json:"internships" validate:"dive"`
}

type OrganizationStep struct {
	Events   []Event            `json:"events"`
	Outreach []OutreachActivity `json:"outreach"`
}

type ManagementStep struct {
	InstituteRoles  []InstituteRole  `json:"institute_roles"`
	DepartmentRoles []DepartmentRole `json:"department_roles"`
}

type DeclarationStep struct {
	Remarks string `json:"remarks,omitempty"`
	Agreed  bool   `json:"agreed" validate:"required"`
}

// Submission is the full aggregate for one (facultyEmail, academicYear).
// Step payloads are stored raw; typed views are decoded on demand.
type Submission struct {
	ID             string                  `json:"id"`
	FacultyEmail   string                  `json:"faculty_email"`
	AcademicYear   int                     `json:"academic_year"`
	Steps          map[int]json.RawMessage `json:"steps"`
	CompletedSteps []int                   `json:"completed_steps"`
	Status         string                  `json:"status"`
	ScorecardJSON  json.RawMessage         `json:"scorecard,omitempty"`
	LastUpdated    int64                   `json:"last_updated"`
	SubmittedAt    int64                   `json:"submitted_at,omitempty"`
}

// NormalizeSteps coerces completed-step markers into a sorted, deduplicated
// set of step numbers in 1..7. Legacy documents stored this as a map keyed by
// step number; AddStep plus this normalization keeps that shape from ever
// being persisted again.
func NormalizeSteps(steps []int) []int {
	seen := map[int]bool{}
	out := make([]int, 0, len(steps))
	for _, s := range steps {
		if s < 1 || s > StepCount || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

// AddStep returns the normalized set with step included.
func AddStep(steps []int, step int) []int {
	return NormalizeSteps(append(append([]int{}, steps...), step))
}

// AllStepsComplete reports whether every step 1..7 has been saved.
func AllStepsComplete(steps []int) bool {
	return len(NormalizeSteps(steps)) == StepCount
}

// Summary is the admin dashboard row for one submission.
type Summary struct {
	ID             string  `json:"id"`
	FacultyEmail   string  `json:"faculty_email"`
	AcademicYear   int     `json:"academic_year"`
	Status         string  `json:"status"`
	CompletedSteps []int   `json:"completed_steps"`
	TotalMarks     float64 `json:"total_marks"`
	LastUpdated    int64   `json:"last_updated"`
	SubmittedAt    int64   `json:"submitted_at,omitempty"`
}
