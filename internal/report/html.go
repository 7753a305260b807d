package report

import (
	"html/template"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/morroware/DupeFInder/internal/model"
)

// HTMLReporter buffers outcomes like JSONReporter and renders a single
// static HTML page on Summary, for operators who want a reviewable report
// without opening a spreadsheet.
type HTMLReporter struct {
	path     string
	outcomes []model.ActionOutcome
}

func NewHTMLReporter(path string) *HTMLReporter {
	return &HTMLReporter{path: path}
}

func (r *HTMLReporter) Outcome(o model.ActionOutcome) {
	r.outcomes = append(r.outcomes, o)
}

type htmlRow struct {
	GroupID       int
	Path          string
	SizeHuman     string
	Intended      string
	Effected      string
	Succeeded     bool
	DryRun        bool
	FailureReason string
}

type htmlDocument struct {
	Summary model.RunSummary
	Wasted  string
	Reclaimed string
	Rows    []htmlRow
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>duplicate resolve report</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: left; }
tr.failed { background: #fdd; }
tr.dryrun { background: #ffd; }
</style>
</head>
<body>
<h1>duplicate resolve report</h1>
<p>
{{.Summary.FilesDiscovered}} files discovered, {{.Summary.FilesFingerprinted}} fingerprinted
({{.Summary.HashErrors}} errors), {{.Summary.GroupsFound}} duplicate groups ({{.Wasted}} wasted),
{{.Summary.ActionsSucceeded}}/{{.Summary.ActionsAttempted}} actions succeeded ({{.Reclaimed}} reclaimed).
{{if .Summary.Cancelled}}<strong>run was cancelled before completion.</strong>{{end}}
</p>
<table>
<tr><th>group</th><th>path</th><th>size</th><th>intended</th><th>effected</th><th>dry run</th><th>failure</th></tr>
{{range .Rows}}<tr class="{{if not .Succeeded}}failed{{else if .DryRun}}dryrun{{end}}">
<td>{{.GroupID}}</td><td>{{.Path}}</td><td>{{.SizeHuman}}</td><td>{{.Intended}}</td><td>{{.Effected}}</td><td>{{.DryRun}}</td><td>{{.FailureReason}}</td>
</tr>{{end}}
</table>
</body>
</html>
`))

func (r *HTMLReporter) Summary(s model.RunSummary) {
	doc := htmlDocument{
		Summary:   s,
		Wasted:    humanize.Bytes(s.BytesWasted),
		Reclaimed: humanize.Bytes(s.BytesReclaimed),
		Rows:      make([]htmlRow, 0, len(r.outcomes)),
	}
	for _, o := range r.outcomes {
		doc.Rows = append(doc.Rows, htmlRow{
			GroupID:       o.GroupID,
			Path:          o.TargetPath,
			SizeHuman:     humanize.Bytes(o.BytesReclaimed),
			Intended:      string(o.Intended),
			Effected:      string(o.Effected),
			Succeeded:     o.Succeeded(),
			DryRun:        o.DryRun,
			FailureReason: o.FailureReason,
		})
	}

	f, err := os.Create(r.path)
	if err != nil {
		return
	}
	defer f.Close()
	_ = htmlTemplate.Execute(f, doc)
}
