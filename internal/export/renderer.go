// Package export renders completed submissions into downloadable
// artifacts. The institute's PDF/DOCX pipeline consumes the same data shape
// through the Renderer interface; this package ships printable HTML and a
// committee CSV.
package export

import (
	"io"

	"github.com/campusforge/appraisal/internal/appraisal"
	"github.com/campusforge/appraisal/internal/scoring"
)

// Renderer turns a fully aggregated submission into a document. Implementors
// must treat the inputs as read-only.
type Renderer interface {
	Render(w io.Writer, sub appraisal.Submission, card scoring.Scorecard) error
	ContentType() string
	Ext() string
}

// ForFormat returns the renderer for a format query value, or nil.
func ForFormat(format string) Renderer {
	switch format {
	case "", "html":
		return NewHTMLRenderer()
	case "csv":
		return CSVRenderer{}
	}
	return nil
}
