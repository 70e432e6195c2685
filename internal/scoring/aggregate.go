package scoring

// Section ceilings. The five sum to the rubric's declared 100.
const (
	SectionInstructional = "instructional"
	SectionResearch      = "research"
	SectionSponsoredRD   = "sponsored_rd"
	SectionOrganization  = "organization"
	SectionManagement    = "management"

	capSectionInstructional = 25
	capSectionResearch      = 40
	capSectionSponsoredRD   = 14
	capSectionOrganization  = 6
	capSectionManagement    = 15
)

// Section is one of the five top-level rubric sections. Capped is the value
// that feeds the headline total.
type Section struct {
	Name       string     `json:"name"`
	Categories []Category `json:"categories"`
	RawSum     float64    `json:"raw_sum"`
	Capped     float64    `json:"capped"`
	Cap        float64    `json:"cap"`
}

// Scorecard is the fully aggregated result for one appraisal year.
type Scorecard struct {
	AppraisalYear int       `json:"appraisal_year"`
	Sections      []Section `json:"sections"`
	Total         float64   `json:"total"`
}

// Aggregate sums the capped category totals of a section and clamps the sum
// to the section ceiling.
func Aggregate(name string, cap float64, categories ...Category) Section {
	s := Section{Name: name, Categories: categories, Cap: cap}
	for _, c := range categories {
		s.RawSum += c.Capped
	}
	s.Capped = clamp(s.RawSum, cap)
	return s
}

// Total sums section totals into the headline mark out of 100.
func Total(sections []Section) float64 {
	var sum float64
	for _, s := range sections {
		sum += s.Capped
	}
	return sum
}

// Section returns the named section, or a zero Section if absent.
func (sc Scorecard) Section(name string) Section {
	for _, s := range sc.Sections {
		if s.Name == name {
			return s
		}
	}
	return Section{Name: name}
}
