package scoring_test

import (
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/campusforge/appraisal/internal/appraisal"
	"github.com/campusforge/appraisal/internal/scoring"
)

const (
	year    = 2024
	nowYear = 2025
)

func TestTeachingLoad(t *testing.T) {
	Convey("Given a set of taught courses", t, func() {
		courses := []appraisal.TeachingCourse{
			{Code: "CS101", Title: "Programming", LectureHours: 3, TutorialHours: 1, PracticalHours: 2},
			{Code: "CS340", Title: "Networks", LectureHours: 4},
		}

		Convey("Lecture and tutorial hours earn 1 mark, practicals 0.5", func() {
			c := scoring.ScoreTeachingLoad(courses)
			So(c.Records, ShouldHaveLength, 2)
			So(c.Records[0].Marks, ShouldEqual, 5) // 3 + 1 + 0.5*2
			So(c.Records[1].Marks, ShouldEqual, 4)
			So(c.Capped, ShouldEqual, 9)
		})

		Convey("The category total clamps at 14", func() {
			heavy := []appraisal.TeachingCourse{
				{Code: "A", LectureHours: 10},
				{Code: "B", LectureHours: 10},
			}
			c := scoring.ScoreTeachingLoad(heavy)
			So(c.RawSum, ShouldEqual, 20)
			So(c.Capped, ShouldEqual, 14)
			// excess records keep their nominal marks
			So(c.Records[1].Marks, ShouldEqual, 10)
		})
	})
}

func TestProjectSupervision(t *testing.T) {
	Convey("B.Tech groups earn 2 marks and M.Tech groups 3, cap 10", t, func() {
		groups := []appraisal.ProjectGroup{
			{Level: "btech", Title: "IoT dashboard"},
			{Level: "mtech", Title: "Compiler backend"},
			{Level: "M.Tech", Title: "Video codec"},
			{Level: "btech", Title: "Drone swarm"},
			{Level: "btech", Title: "Chess engine"},
		}
		c := scoring.ScoreProjectSupervision(groups)
		So(c.RawSum, ShouldEqual, 12)
		So(c.Capped, ShouldEqual, 10)
	})
}

func TestPhDSupervision(t *testing.T) {
	Convey("Given PhD candidates", t, func() {
		Convey("An awarded candidate earns a flat 4, never the year tier too", func() {
			c := scoring.ScorePhDSupervision([]appraisal.PhDCandidate{
				{Name: "A", RegistrationYear: year - 1, Status: "awarded"},
			}, year)
			So(c.Records, ShouldHaveLength, 1)
			So(c.Records[0].Marks, ShouldEqual, 4)
		})

		Convey("Ongoing candidates tier by years since registration", func() {
			c := scoring.ScorePhDSupervision([]appraisal.PhDCandidate{
				{Name: "fresh", RegistrationYear: year - 2, Status: "ongoing"},
				{Name: "mid", RegistrationYear: year - 4, Status: "ongoing"},
				{Name: "late", RegistrationYear: year - 6, Status: "ongoing"},
			}, year)
			// the 6-year candidate earns 0 and is dropped
			So(c.Records, ShouldHaveLength, 2)
			So(c.Records[0].Marks, ShouldEqual, 2)
			So(c.Records[1].Marks, ShouldEqual, 1)
		})

		Convey("Every awarded mark is one of 0, 1, 2 or 4", func() {
			cands := []appraisal.PhDCandidate{}
			for y := year - 10; y <= year; y++ {
				cands = append(cands,
					appraisal.PhDCandidate{Name: "o", RegistrationYear: y, Status: "ongoing"},
					appraisal.PhDCandidate{Name: "a", RegistrationYear: y, Status: "awarded"},
				)
			}
			c := scoring.ScorePhDSupervision(cands, year)
			for _, r := range c.Records {
				So(r.Marks, ShouldBeIn, []float64{1, 2, 4})
			}
		})
	})
}

func TestJournalPapers(t *testing.T) {
	Convey("Given journal papers", t, func() {
		Convey("A single-author paper earns its quartile base marks", func() {
			c := scoring.ScoreJournalPapers([]appraisal.JournalPaper{
				{Title: "q1", Quartile: "Q1", Authors: 1, Year: year},
				{Title: "q2", Quartile: "Q2", Authors: 1, Year: year},
				{Title: "q3", Quartile: "Q3", Authors: 1, Year: year},
				{Title: "q4", Quartile: "Q4", Authors: 1, Year: year},
			}, year)
			So(c.Records[0].Marks, ShouldEqual, 4)
			So(c.Records[1].Marks, ShouldEqual, 3)
			So(c.Records[2].Marks, ShouldEqual, 2)
			So(c.Records[3].Marks, ShouldEqual, 1)
		})

		Convey("Co-authored papers divide with integer floor", func() {
			c := scoring.ScoreJournalPapers([]appraisal.JournalPaper{
				{Title: "pair", Quartile: "Q1", Authors: 2, Year: year},
				{Title: "trio", Quartile: "Q2", Authors: 3, Year: year},
			}, year)
			So(c.Records[0].Marks, ShouldEqual, 2) // floor(4/2)
			So(c.Records[1].Marks, ShouldEqual, 1) // floor(3/3)
		})

		Convey("Unranked Scopus papers earn 1, unindexed earn nothing", func() {
			c := scoring.ScoreJournalPapers([]appraisal.JournalPaper{
				{Title: "scopus", ScopusIndexed: true, Authors: 1, Year: year},
				{Title: "none", Authors: 1, Year: year},
			}, year)
			So(c.Records, ShouldHaveLength, 1)
			So(c.Records[0].Marks, ShouldEqual, 1)
		})

		Convey("Only papers published in the appraisal year count", func() {
			c := scoring.ScoreJournalPapers([]appraisal.JournalPaper{
				{Title: "old", Quartile: "Q1", Authors: 1, Year: year - 1},
				{Title: "future", Quartile: "Q1", Authors: 1, Year: year + 1},
				{Title: "undated", Quartile: "Q1", Authors: 1},
			}, year)
			So(c.Records, ShouldBeEmpty)
			So(c.Capped, ShouldEqual, 0)
		})
	})
}

func TestBooksAndConferences(t *testing.T) {
	Convey("Books earn 6/4/2 by kind with combined cap 6", t, func() {
		c := scoring.ScoreBooks([]appraisal.Book{
			{Kind: appraisal.BookTextbook, Title: "t", Year: year},
			{Kind: appraisal.BookEdited, Title: "e", Year: year},
			{Kind: appraisal.BookChapter, Title: "c", Year: year},
		}, year)
		So(c.RawSum, ShouldEqual, 12)
		So(c.Capped, ShouldEqual, 6)
	})

	Convey("Conference papers earn 0.5 indexed, 0.25 otherwise, cap 5", t, func() {
		c := scoring.ScoreConferencePapers([]appraisal.ConferencePaper{
			{Title: "a", Indexed: true, Year: year},
			{Title: "b", Year: year},
		}, year)
		So(c.Records[0].Marks, ShouldEqual, 0.5)
		So(c.Records[1].Marks, ShouldEqual, 0.25)
	})
}

func TestSponsoredProjects(t *testing.T) {
	Convey("Given sponsored projects", t, func() {
		Convey("An ongoing DST project of 7 lakh earns 1 + 4", func() {
			c := scoring.ScoreSponsoredProjects([]appraisal.SponsoredProject{
				{Title: "p", Agency: "DST", Outlay: 700_000, Status: "Ongoing", StartYear: year - 1},
			}, year, nowYear)
			So(c.Records, ShouldHaveLength, 1)
			So(c.Records[0].Marks, ShouldEqual, 5)
		})

		Convey("TEQIP and institute-grant projects lose the agency bonus", func() {
			c := scoring.ScoreSponsoredProjects([]appraisal.SponsoredProject{
				{Title: "t", Agency: "TEQIP-III", Outlay: 400_000, Status: "completed", StartYear: year},
				{Title: "i", Agency: "Institute Grant", Outlay: 1_200_000, Status: "ongoing", StartYear: year},
			}, year, nowYear)
			So(c.Records[0].Marks, ShouldEqual, 3)
			So(c.Records[1].Marks, ShouldEqual, 5)
		})

		Convey("A submitted proposal earns only the agency bonus", func() {
			c := scoring.ScoreSponsoredProjects([]appraisal.SponsoredProject{
				{Title: "s", Agency: "SERB", Outlay: 2_000_000, Status: "submitted", StartYear: year},
			}, year, nowYear)
			So(c.Records[0].Marks, ShouldEqual, 1)
		})

		Convey("Projects outside the appraisal window are excluded", func() {
			c := scoring.ScoreSponsoredProjects([]appraisal.SponsoredProject{
				{Title: "past", Agency: "DST", Outlay: 700_000, Status: "completed", StartYear: year - 5, EndYear: year - 2},
				{Title: "undated", Agency: "DST", Outlay: 700_000, Status: "ongoing"},
			}, year, nowYear)
			So(c.Records, ShouldBeEmpty)
		})

		Convey("An open-ended project spanning the year counts", func() {
			c := scoring.ScoreSponsoredProjects([]appraisal.SponsoredProject{
				{Title: "open", Agency: "DST", Outlay: 300_000, Status: "ongoing", StartYear: year - 2},
			}, year, nowYear)
			So(c.Records, ShouldHaveLength, 1)
		})
	})
}

func TestConsultancyAndIPR(t *testing.T) {
	Convey("Consultancy earns floor(amount/50000), minimum 1, cap 8", t, func() {
		c := scoring.ScoreConsultancyProjects([]appraisal.ConsultancyProject{
			{Title: "small", Amount: 30_000, StartYear: year},
			{Title: "mid", Amount: 260_000, StartYear: year},
			{Title: "big", Amount: 900_000, StartYear: year},
		}, year, nowYear)
		So(c.Records[0].Marks, ShouldEqual, 1)
		So(c.Records[1].Marks, ShouldEqual, 5)
		So(c.Records[2].Marks, ShouldEqual, 18) // nominal; the cap applies to the total
		So(c.Capped, ShouldEqual, 8)
	})

	Convey("IPR earns 3 per patent, 1 per design/copyright, +2 with a publication date", t, func() {
		c := scoring.ScoreIPR([]appraisal.IPRItem{
			{Kind: appraisal.IPRPatent, Title: "p", FiledYear: year, PublicationDate: "2024-06-01"},
			{Kind: appraisal.IPRCopyright, Title: "c", FiledYear: year},
		}, year, nowYear)
		So(c.Records[0].Marks, ShouldEqual, 5)
		So(c.Records[1].Marks, ShouldEqual, 1)
	})
}

func TestStartupsAndInternships(t *testing.T) {
	Convey("Startups tier by revenue plus 2 for registration, cap 6", t, func() {
		c := scoring.ScoreStartups([]appraisal.Startup{
			{Name: "big", Revenue: 1_500_000, Registered: true, RegisteredYear: year - 1},
			{Name: "seed", Revenue: 60_000},
		}, year, nowYear)
		So(c.Records[0].Marks, ShouldEqual, 8) // nominal 6+2, category clamps
		So(c.Records[1].Marks, ShouldEqual, 3)
		So(c.Capped, ShouldEqual, 6)
	})

	Convey("Only registered startups are window-filtered", t, func() {
		// an unregistered venture has no registration dates to filter on;
		// its revenue counts every cycle by decision
		c := scoring.ScoreStartups([]appraisal.Startup{
			{Name: "paper-co", Revenue: 200_000},
			{Name: "wound-down", Revenue: 2_000_000, Registered: true, RegisteredYear: year - 6, CeasedYear: year - 2},
		}, year, nowYear)
		So(c.Records, ShouldHaveLength, 1)
		So(c.Records[0].Label, ShouldEqual, "paper-co")
		So(c.Records[0].Marks, ShouldEqual, 4)
	})

	Convey("Internships earn 2 external, 1 internal, cap 4", t, func() {
		c := scoring.ScoreInternships([]appraisal.Internship{
			{Student: "a", Kind: "external"},
			{Student: "b", Kind: "internal"},
			{Student: "c", Kind: "external"},
		})
		So(c.RawSum, ShouldEqual, 5)
		So(c.Capped, ShouldEqual, 4)
	})
}

func TestEvents(t *testing.T) {
	Convey("Given organized events", t, func() {
		Convey("Rules match by type and role", func() {
			c := scoring.ScoreEvents([]appraisal.Event{
				{Title: "fdp", Type: "FDP", Role: "Coordinator"},
				{Title: "gian2", Type: "GIAN", DurationWeeks: 2},
				{Title: "gian1", Type: "GIAN", DurationWeeks: 1},
				{Title: "conf", Type: "International Conference", Role: "Secretary"},
				{Title: "talk", Type: "Expert Lecture"},
			})
			So(c.Records[0].Marks, ShouldEqual, 2)
			So(c.Records[1].Marks, ShouldEqual, 2)
			So(c.Records[2].Marks, ShouldEqual, 1)
			So(c.Records[3].Marks, ShouldEqual, 3)
			So(c.Records[4].Marks, ShouldEqual, 1)
		})

		Convey("The running total stops at 6", func() {
			events := make([]appraisal.Event, 10)
			for i := range events {
				events[i] = appraisal.Event{Title: "w", Type: "Workshop", Role: "Convener"}
			}
			c := scoring.ScoreEvents(events)
			So(c.RawSum, ShouldEqual, 20)
			So(c.Capped, ShouldEqual, 6)
		})
	})
}

func TestRoles(t *testing.T) {
	Convey("Institute roles tier by role name", t, func() {
		c := scoring.ScoreInstituteRoles([]appraisal.InstituteRole{
			{Role: "Dean (Academics)", StartYear: year},
			{Role: "Chief Warden", StartYear: year},
			{Role: "Associate Dean (R&D)", StartYear: year},
			{Role: "Warden, Hostel 4", StartYear: year},
			{Role: "Chairman, Library Committee", StartYear: year},
			{Role: "Member, Sports Committee", StartYear: year},
		}, year, nowYear)
		So(c.Records, ShouldHaveLength, 5) // the plain member earns 0 and is dropped
		So(c.Records[0].Marks, ShouldEqual, 2)
		So(c.Records[1].Marks, ShouldEqual, 2)
		So(c.Records[2].Marks, ShouldEqual, 1)
		So(c.Records[3].Marks, ShouldEqual, 1)
		So(c.Records[4].Marks, ShouldEqual, 0.5)
	})

	Convey("Five two-mark roles land exactly on the cap of 10, not below", t, func() {
		roles := make([]appraisal.InstituteRole, 5)
		for i := range roles {
			roles[i] = appraisal.InstituteRole{Role: "Dean", StartYear: year - 1}
		}
		c := scoring.ScoreInstituteRoles(roles, year, nowYear)
		So(c.RawSum, ShouldEqual, 10)
		So(c.Capped, ShouldEqual, 10)
	})

	Convey("Department roles earn 0.5 each, cap 5, tenure-filtered", t, func() {
		c := scoring.ScoreDepartmentRoles([]appraisal.DepartmentRole{
			{Role: "Timetable in-charge", StartYear: year - 1},
			{Role: "Lab in-charge", StartYear: year - 3, EndYear: year},
			{Role: "DUGC member", StartYear: year - 5, EndYear: year - 2},
		}, year, nowYear)
		So(c.Records, ShouldHaveLength, 2)
		So(c.Capped, ShouldEqual, 1)
	})
}

func TestScorerProperties(t *testing.T) {
	papers := []appraisal.JournalPaper{
		{Title: "a", Quartile: "Q1", Authors: 1, Year: year},
		{Title: "b", Quartile: "Q2", Authors: 2, Year: year},
		{Title: "c", Quartile: "Q1", Authors: 1, Year: year},
		{Title: "d", Quartile: "Q3", Authors: 1, Year: year},
		{Title: "e", Quartile: "Q1", Authors: 1, Year: year},
		{Title: "f", ScopusIndexed: true, Authors: 1, Year: year},
	}

	Convey("Scorers are pure: the same input twice gives identical output", t, func() {
		first := scoring.ScoreJournalPapers(papers, year)
		second := scoring.ScoreJournalPapers(papers, year)
		So(second, ShouldResemble, first)
	})

	Convey("The clamped total is order-independent even though clamping is incremental", t, func() {
		base := scoring.ScoreJournalPapers(papers, year)
		rng := rand.New(rand.NewSource(7))
		for i := 0; i < 20; i++ {
			shuffled := append([]appraisal.JournalPaper(nil), papers...)
			rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
			got := scoring.ScoreJournalPapers(shuffled, year)
			So(got.Capped, ShouldEqual, base.Capped)
			So(got.RawSum, ShouldEqual, base.RawSum)
		}
	})

	Convey("Capped never exceeds the cap regardless of input size", t, func() {
		many := make([]appraisal.JournalPaper, 100)
		for i := range many {
			many[i] = appraisal.JournalPaper{Title: "x", Quartile: "Q1", Authors: 1, Year: year}
		}
		c := scoring.ScoreJournalPapers(many, year)
		So(c.Capped, ShouldEqual, 10)
		So(c.RawSum, ShouldEqual, 400)
	})
}
