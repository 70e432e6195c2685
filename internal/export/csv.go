package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/campusforge/appraisal/internal/appraisal"
	"github.com/campusforge/appraisal/internal/scoring"
)

// CSVRenderer emits one row per scored record plus per-category and
// per-section totals, for the review committee's spreadsheets.
type CSVRenderer struct{}

func (CSVRenderer) ContentType() string { return "text/csv" }
func (CSVRenderer) Ext() string         { return "csv" }

func (CSVRenderer) Render(w io.Writer, sub appraisal.Submission, card scoring.Scorecard) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"faculty_email", "year", "section", "category", "record", "marks"}); err != nil {
		return err
	}
	email := sub.FacultyEmail
	year := strconv.Itoa(card.AppraisalYear)
	for _, sec := range card.Sections {
		for _, cat := range sec.Categories {
			for _, rec := range cat.Records {
				if err := cw.Write([]string{email, year, sec.Name, cat.Name, rec.Label, ftoa(rec.Marks)}); err != nil {
					return err
				}
			}
			if err := cw.Write([]string{email, year, sec.Name, cat.Name, "(category total)", ftoa(cat.Capped)}); err != nil {
				return err
			}
		}
		if err := cw.Write([]string{email, year, sec.Name, "", "(section total)", ftoa(sec.Capped)}); err != nil {
			return err
		}
	}
	if err := cw.Write([]string{email, year, "", "", "(grand total)", ftoa(card.Total)}); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
