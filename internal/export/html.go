package export

import (
	"encoding/json"
	"html/template"
	"io"
	"time"

	"github.com/campusforge/appraisal/internal/appraisal"
	"github.com/campusforge/appraisal/internal/scoring"
)

type HTMLRenderer struct {
	tpl *template.Template
}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{tpl: template.Must(template.New("appraisal").Funcs(template.FuncMap{
		"fmtTime": func(unix int64) string {
			if unix == 0 {
				return "—"
			}
			return time.Unix(unix, 0).UTC().Format("02 Jan 2006 15:04 UTC")
		},
	}).Parse(htmlTemplate))}
}

func (r *HTMLRenderer) ContentType() string { return "text/html; charset=utf-8" }
func (r *HTMLRenderer) Ext() string         { return "html" }

type htmlData struct {
	Sub      appraisal.Submission
	Card     scoring.Scorecard
	Personal appraisal.PersonalStep
}

func (r *HTMLRenderer) Render(w io.Writer, sub appraisal.Submission, card scoring.Scorecard) error {
	data := htmlData{Sub: sub, Card: card}
	if raw, ok := sub.Steps[appraisal.StepPersonal]; ok {
		_ = json.Unmarshal(raw, &data.Personal)
	}
	return r.tpl.Execute(w, data)
}

const htmlTemplate = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Faculty Appraisal {{.Card.AppraisalYear}} — {{.Sub.FacultyEmail}}</title>
<style>
body { font-family: Georgia, serif; margin: 2em auto; max-width: 52em; }
h1 { font-size: 1.4em; } h2 { font-size: 1.1em; margin-top: 1.5em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #999; padding: 4px 8px; text-align: left; }
td.num { text-align: right; }
.total { font-weight: bold; }
</style>
</head>
<body>
<h1>Annual Faculty Performance Appraisal — AY {{.Card.AppraisalYear}}</h1>
<p>
  {{with .Personal.Name}}<strong>{{.}}</strong>{{end}}
  {{with .Personal.Designation}}, {{.}}{{end}}
  {{with .Personal.Department}}, Department of {{.}}{{end}}<br>
  Email: {{.Sub.FacultyEmail}}<br>
  Status: {{.Sub.Status}} · Last updated: {{fmtTime .Sub.LastUpdated}} · Submitted: {{fmtTime .Sub.SubmittedAt}}
</p>

{{range .Card.Sections}}
<h2>{{.Name}} (max {{.Cap}})</h2>
<table>
  <tr><th>Category</th><th>Record</th><th>Marks</th></tr>
  {{range $cat := .Categories}}
    {{range $cat.Records}}
    <tr><td>{{$cat.Name}}</td><td>{{.Label}}</td><td class="num">{{.Marks}}</td></tr>
    {{end}}
    <tr><td colspan="2">{{$cat.Name}} total{{if $cat.Cap}} (cap {{$cat.Cap}}){{end}}</td><td class="num">{{$cat.Capped}}</td></tr>
  {{end}}
  <tr class="total"><td colspan="2">Section total</td><td class="num">{{.Capped}}</td></tr>
</table>
{{end}}

<h2>Overall</h2>
<p class="total">Total marks: {{.Card.Total}} / 100</p>
</body>
</html>
`
