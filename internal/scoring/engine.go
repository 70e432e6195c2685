package scoring

import (
	"time"

	"github.com/campusforge/appraisal/internal/appraisal"
)

// Input carries the typed step payloads the engine scores. Absent steps
// contribute empty record lists, never errors.
type Input struct {
	Instructional appraisal.InstructionalStep
	Research      appraisal.ResearchStep
	Sponsored     appraisal.SponsoredStep
	Organization  appraisal.OrganizationStep
	Management    appraisal.ManagementStep
}

// Engine computes scorecards for a fixed appraisal year. CurrentYear closes
// the ranges of ongoing duration-dated records; it is injected so scoring
// stays deterministic under test.
type Engine struct {
	year        int
	currentYear int
}

// Option configures an Engine.
type Option func(*Engine)

// WithCurrentYear overrides the real-world year used to close ongoing
// record ranges.
func WithCurrentYear(y int) Option {
	return func(e *Engine) { e.currentYear = y }
}

// NewEngine builds an engine for one appraisal year. The period nominally
// spans two academic years; all eligibility rules compare against the start
// year only.
func NewEngine(appraisalYear int, opts ...Option) *Engine {
	e := &Engine{year: appraisalYear, currentYear: time.Now().Year()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Compute runs every category scorer, aggregates the five sections and
// returns the headline total. Pure given the engine's years.
func (e *Engine) Compute(in Input) Scorecard {
	instructional := Aggregate(SectionInstructional, capSectionInstructional,
		ScoreTeachingLoad(in.Instructional.Courses),
		ScoreInnovations(in.Instructional.Innovations),
		ScoreNewLabs(in.Instructional.NewLabs),
		ScoreOtherTasks(in.Instructional.OtherTasks),
		ScoreProjectSupervision(in.Instructional.ProjectGroups),
	)
	research := Aggregate(SectionResearch, capSectionResearch,
		ScorePhDSupervision(in.Research.PhDCandidates, e.year),
		ScoreJournalPapers(in.Research.JournalPapers, e.year),
		ScoreConferencePapers(in.Research.ConferencePapers, e.year),
		ScoreBooks(in.Research.Books, e.year),
		ScoreIPR(in.Sponsored.IPR, e.year, e.currentYear),
		ScoreStartups(in.Sponsored.Startups, e.year, e.currentYear),
		ScoreInternships(in.Sponsored.Internships),
		ScoreOutreach(in.Organization.Outreach),
	)
	sponsored := Aggregate(SectionSponsoredRD, capSectionSponsoredRD,
		ScoreSponsoredProjects(in.Sponsored.SponsoredProjects, e.year, e.currentYear),
		ScoreConsultancyProjects(in.Sponsored.ConsultancyProjects, e.year, e.currentYear),
	)
	organization := Aggregate(SectionOrganization, capSectionOrganization,
		ScoreEvents(in.Organization.Events),
	)
	management := Aggregate(SectionManagement, capSectionManagement,
		ScoreInstituteRoles(in.Management.InstituteRoles, e.year, e.currentYear),
		ScoreDepartmentRoles(in.Management.DepartmentRoles, e.year, e.currentYear),
	)

	sections := []Section{instructional, research, sponsored, organization, management}
	return Scorecard{
		AppraisalYear: e.year,
		Sections:      sections,
		Total:         Total(sections),
	}
}
