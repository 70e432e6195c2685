package scoring

import (
	"math"
	"strings"

	"github.com/campusforge/appraisal/internal/appraisal"
)

// ScoreSponsoredProjects awards +1 when the funding agency is external
// (neither TEQIP nor an institute grant), plus an outlay tier of 3/4/5
// (≤5L / 5–10L / ≥10L) for projects that are completed or ongoing. The two
// bonuses are cumulative; the tiers are mutually exclusive. No category cap;
// the 14-mark section ceiling bounds it.
func ScoreSponsoredProjects(projects []appraisal.SponsoredProject, year, currentYear int) Category {
	c := newCategory(CatSponsoredProjects, 0)
	for i, p := range projects {
		if !InYearRange(p.StartYear, p.EndYear, year, currentYear) {
			continue
		}
		var marks float64
		if !isInternalAgency(p.Agency) {
			marks++
		}
		switch status := strings.ToLower(p.Status); status {
		case "completed", "ongoing":
			switch {
			case p.Outlay <= 500_000:
				marks += 3
			case p.Outlay < 1_000_000:
				marks += 4
			default:
				marks += 5
			}
		}
		c.add(i, p.Title, marks)
	}
	return c
}

func isInternalAgency(agency string) bool {
	a := strings.ToLower(agency)
	return strings.Contains(a, "teqip") || strings.Contains(a, "institute grant")
}

// ScoreConsultancyProjects awards floor(amount/50000), with a minimum of 1
// for any paying engagement at or under 50000. Cap 8.
func ScoreConsultancyProjects(projects []appraisal.ConsultancyProject, year, currentYear int) Category {
	c := newCategory(CatConsultancy, capConsultancy)
	for i, p := range projects {
		if !InYearRange(p.StartYear, p.EndYear, year, currentYear) {
			continue
		}
		var marks float64
		if p.Amount > 0 && p.Amount <= 50_000 {
			marks = 1
		} else {
			marks = math.Floor(p.Amount / 50_000)
		}
		c.add(i, p.Title, marks)
	}
	return c
}

// ScoreIPR awards 3 marks per patent and 1 per design or copyright, plus 2
// when the item has a publication date. No category cap of its own.
func ScoreIPR(items []appraisal.IPRItem, year, currentYear int) Category {
	c := newCategory(CatIPR, 0)
	for i, it := range items {
		if !InYearRange(it.FiledYear, it.GrantedYear, year, currentYear) {
			continue
		}
		var marks float64
		switch it.Kind {
		case appraisal.IPRPatent:
			marks = 3
		case appraisal.IPRDesign, appraisal.IPRCopyright:
			marks = 1
		}
		if marks > 0 && it.PublicationDate != "" {
			marks += 2
		}
		c.add(i, it.Title, marks)
	}
	return c
}

// ScoreStartups awards a revenue tier (≥10L=6, ≥5L=5, ≥1L=4, ≥50K=3) plus 2
// for a registered company. Cap 6.
func ScoreStartups(items []appraisal.Startup, year, currentYear int) Category {
	c := newCategory(CatStartups, capStartups)
	for i, s := range items {
		if s.Registered && !InYearRange(s.RegisteredYear, s.CeasedYear, year, currentYear) {
			continue
		}
		var marks float64
		switch {
		case s.Revenue >= 1_000_000:
			marks = 6
		case s.Revenue >= 500_000:
			marks = 5
		case s.Revenue >= 100_000:
			marks = 4
		case s.Revenue >= 50_000:
			marks = 3
		}
		if s.Registered {
			marks += 2
		}
		c.add(i, s.Name, marks)
	}
	return c
}

// ScoreInternships awards 2 marks per externally placed intern and 1 per
// internal placement. Cap 4.
func ScoreInternships(items []appraisal.Internship) Category {
	c := newCategory(CatInternships, capInternships)
	for i, it := range items {
		var marks float64
		switch strings.ToLower(it.Kind) {
		case "external":
			marks = 2
		case "internal":
			marks = 1
		}
		c.add(i, it.Student, marks)
	}
	return c
}
