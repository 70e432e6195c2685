// Package scoring computes appraisal marks from raw records. Every function
// here is pure: records in, annotated records and clamped totals out. I/O,
// sessions and persistence live with the callers.
package scoring

// Category names. These double as stable JSON identifiers, so renaming one
// is a wire-format change.
const (
	CatTeachingLoad       = "teaching_load"
	CatInnovations        = "innovations"
	CatNewLabs            = "new_labs"
	CatOtherTasks         = "other_tasks"
	CatProjectSupervision = "project_supervision"
	CatPhDSupervision     = "phd_supervision"
	CatJournalPapers      = "journal_papers"
	CatConferencePapers   = "conference_papers"
	CatBooks              = "books"
	CatSponsoredProjects  = "sponsored_projects"
	CatConsultancy        = "consultancy_projects"
	CatIPR                = "ipr"
	CatStartups           = "startups"
	CatInternships        = "internships"
	CatEvents             = "events"
	CatOutreach           = "outreach"
	CatInstituteRoles     = "institute_roles"
	CatDepartmentRoles    = "department_roles"
)

// Per-category caps from the rubric. Cap 0 means the category has no cap of
// its own and is bounded only by its section ceiling.
const (
	capTeachingLoad       = 14
	capInnovations        = 2
	capNewLabs            = 5
	capOtherTasks         = 2
	capProjectSupervision = 10
	capPhDSupervision     = 10
	capJournalPapers      = 10
	capConferencePapers   = 5
	capBooks              = 6
	capConsultancy        = 8
	capStartups           = 6
	capInternships        = 4
	capEvents             = 6
	capOutreach           = 7
	capInstituteRoles     = 10
	capDepartmentRoles    = 5
)

// ScoredRecord annotates one eligible input record with its nominal marks.
// Index points back into the scorer's input slice. Zero-mark and ineligible
// records are dropped, not kept at zero.
type ScoredRecord struct {
	Index int     `json:"index"`
	Label string  `json:"label"`
	Marks float64 `json:"marks"`
}

// Category is one scored rubric category. Capped is clamped against Cap as
// the running sum grows; RawSum keeps the unclamped value. Excess records
// still appear in Records with their nominal marks.
type Category struct {
	Name    string         `json:"name"`
	Records []ScoredRecord `json:"records,omitempty"`
	RawSum  float64        `json:"raw_sum"`
	Capped  float64        `json:"capped"`
	Cap     float64        `json:"cap,omitempty"`
}

// add appends a record if it earns marks and re-clamps the running total.
func (c *Category) add(idx int, label string, marks float64) {
	if marks <= 0 {
		return
	}
	c.Records = append(c.Records, ScoredRecord{Index: idx, Label: label, Marks: marks})
	c.RawSum += marks
	c.Capped = clamp(c.RawSum, c.Cap)
}

func newCategory(name string, cap float64) Category {
	return Category{Name: name, Cap: cap}
}

func clamp(sum, cap float64) float64 {
	if cap > 0 && sum > cap {
		return cap
	}
	return sum
}
