package scoring

import (
	"math"
	"strings"

	"github.com/campusforge/appraisal/internal/appraisal"
)

var quartileMarks = map[string]float64{
	"Q1": 4,
	"Q2": 3,
	"Q3": 2,
	"Q4": 1,
}

// ScorePhDSupervision awards a flat 4 marks for an awarded candidate, else a
// tier by years since registration: 2 within three years, 1 in years four
// and five, nothing after. The two paths are mutually exclusive. Cap 10.
func ScorePhDSupervision(cands []appraisal.PhDCandidate, year int) Category {
	c := newCategory(CatPhDSupervision, capPhDSupervision)
	for i, cand := range cands {
		var marks float64
		if strings.EqualFold(cand.Status, "awarded") {
			marks = 4
		} else if cand.RegistrationYear > 0 {
			switch yrs := year - cand.RegistrationYear; {
			case yrs <= 3:
				marks = 2
			case yrs <= 5:
				marks = 1
			}
		}
		c.add(i, cand.Name, marks)
	}
	return c
}

// ScoreJournalPapers maps quartile to base marks (Q1=4 .. Q4=1), falls back
// to 1 for Scopus-indexed unranked journals, and divides by the author count
// with an integer floor for co-authored papers. Only papers published in the
// appraisal year count. Cap 10.
func ScoreJournalPapers(papers []appraisal.JournalPaper, year int) Category {
	c := newCategory(CatJournalPapers, capJournalPapers)
	for i, p := range papers {
		if !PublishedIn(p.Year, year) {
			continue
		}
		base, ok := quartileMarks[strings.ToUpper(p.Quartile)]
		if !ok {
			if !p.ScopusIndexed {
				continue
			}
			base = 1
		}
		marks := base
		if p.Authors > 1 {
			marks = math.Floor(base / float64(p.Authors))
		}
		c.add(i, p.Title, marks)
	}
	return c
}

// ScoreConferencePapers awards 0.5 for Scopus/WOS-indexed papers and 0.25
// otherwise, for papers presented in the appraisal year. Cap 5.
func ScoreConferencePapers(papers []appraisal.ConferencePaper, year int) Category {
	c := newCategory(CatConferencePapers, capConferencePapers)
	for i, p := range papers {
		if !PublishedIn(p.Year, year) {
			continue
		}
		marks := 0.25
		if p.Indexed {
			marks = 0.5
		}
		c.add(i, p.Title, marks)
	}
	return c
}

// ScoreBooks awards 6 for a textbook, 4 for an edited volume and 2 for a
// chapter, published in the appraisal year. Combined cap 6.
func ScoreBooks(books []appraisal.Book, year int) Category {
	c := newCategory(CatBooks, capBooks)
	for i, b := range books {
		if !PublishedIn(b.Year, year) {
			continue
		}
		var marks float64
		switch b.Kind {
		case appraisal.BookTextbook:
			marks = 6
		case appraisal.BookEdited:
			marks = 4
		case appraisal.BookChapter:
			marks = 2
		}
		c.add(i, b.Title, marks)
	}
	return c
}
