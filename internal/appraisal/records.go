package appraisal

// Record shapes collected by the seven form steps. Date-bearing fields use
// plain calendar years; 0 means the field was never filled in.

type BookKind string

const (
	BookTextbook BookKind = "textbook"
	BookEdited   BookKind = "edited"
	BookChapter  BookKind = "chapter"
)

type IPRKind string

const (
	IPRPatent    IPRKind = "patent"
	IPRDesign    IPRKind = "design"
	IPRCopyright IPRKind = "copyright"
)

type TeachingCourse struct {
	Code           string  `json:"code"`
	Title          string  `json:"title"`
	Semester       string  `json:"semester,omitempty"`
	LectureHours   float64 `json:"lecture_hours"`
	TutorialHours  float64 `json:"tutorial_hours"`
	PracticalHours float64 `json:"practical_hours"`
}

type Innovation struct {
	Description string `json:"description"`
}

type NewLab struct {
	Name string `json:"name"`
}

type OtherTask struct {
	Description string `json:"description"`
}

// ProjectGroup is one supervised student project group (B.Tech or M.Tech).
type ProjectGroup struct {
	Level    string `json:"level"` // btech|mtech
	Title    string `json:"title"`
	Students int    `json:"students,omitempty"`
}

type PhDCandidate struct {
	Name             string `json:"name"`
	RegistrationYear int    `json:"registration_year"`
	Status           string `json:"status"` // ongoing|awarded
}

type JournalPaper struct {
	Title         string `json:"title"`
	Journal       string `json:"journal,omitempty"`
	Quartile      string `json:"quartile,omitempty"` // Q1..Q4, empty if unranked
	ScopusIndexed bool   `json:"scopus_indexed,omitempty"`
	Authors       int    `json:"authors"`
	Year          int    `json:"year"`
}

type ConferencePaper struct {
	Title      string `json:"title"`
	Conference string `json:"conference,omitempty"`
	Indexed    bool   `json:"indexed,omitempty"` // Scopus or Web of Science
	Year       int    `json:"year"`
}

// Book is a single tagged variant for textbooks, edited volumes and chapters.
// The three were kept as separate near-identical shapes in an earlier system
// and drifted; the Kind discriminant replaces that.
type Book struct {
	Kind      BookKind `json:"kind"`
	Title     string   `json:"title"`
	Publisher string   `json:"publisher,omitempty"`
	Year      int      `json:"year"`
}

type SponsoredProject struct {
	Title     string  `json:"title"`
	Agency    string  `json:"agency"`
	Outlay    float64 `json:"outlay"`
	Status    string  `json:"status"` // completed|ongoing|submitted
	StartYear int     `json:"start_year"`
	EndYear   int     `json:"end_year,omitempty"` // 0 = still running
}

type ConsultancyProject struct {
	Title     string  `json:"title"`
	Client    string  `json:"client,omitempty"`
	Amount    float64 `json:"amount"`
	StartYear int     `json:"start_year"`
	EndYear   int     `json:"end_year,omitempty"`
}

type IPRItem struct {
	Kind            IPRKind `json:"kind"`
	Title           string  `json:"title"`
	FiledYear       int     `json:"filed_year"`
	GrantedYear     int     `json:"granted_year,omitempty"` // 0 = pending
	PublicationDate string  `json:"publication_date,omitempty"`
}

type Startup struct {
	Name           string  `json:"name"`
	Revenue        float64 `json:"revenue"`
	Registered     bool    `json:"registered"`
	RegisteredYear int     `json:"registered_year,omitempty"`
	CeasedYear     int     `json:"ceased_year,omitempty"` // 0 = active
}

type Internship struct {
	Student string `json:"student"`
	Kind    string `json:"kind"` // external|internal
}

type Event struct {
	Title         string `json:"title"`
	Type          string `json:"type"` // workshop|fdp|short-course|gian|conference|webinar|expert-lecture|...
	Role          string `json:"role"` // coordinator|convener|chairman|secretary|...
	DurationWeeks int    `json:"duration_weeks,omitempty"`
}

type OutreachActivity struct {
	Description string `json:"description"`
}

type InstituteRole struct {
	Role      string `json:"role"`
	StartYear int    `json:"start_year"`
	EndYear   int    `json:"end_year,omitempty"` // 0 = current
}

type DepartmentRole struct {
	Role      string `json:"role"`
	StartYear int    `json:"start_year"`
	EndYear   int    `json:"end_year,omitempty"`
}
