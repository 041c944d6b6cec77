// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"io"

	"github.com/google/safehtml/template"
	"github.com/j0nem/multicast-performance/runstat"
)

var htmlTemplate = template.Must(template.New("comparison").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Comparison</title>
<style>
table.comparison { border-collapse: collapse; }
table.comparison td, table.comparison th { padding: 2px 8px; text-align: right; }
table.comparison td.metric { text-align: left; }
tr.better td.delta { color: #080; }
tr.worse td.delta { color: #800; }
</style>
</head>
<body>
<h1>{{.Treatment}} vs {{.Baseline}}</h1>
<p>{{.Treatment}} runs: {{.TreatmentRuns}}, {{.Baseline}} runs: {{.BaselineRuns}}</p>
<table class='comparison'>
{{- range .Groups}}
<tbody>
<tr><th colspan='4'>{{.Name}}
<tr><th>metric<th>{{$.Treatment}}<th>{{$.Baseline}}<th>improvement
{{range .Rows -}}
<tr class='{{if not .Comparable}}unchanged{{else if .Better}}better{{else}}worse{{end}}'><td class='metric'>{{.Label}}<td>{{.Treatment}}<td>{{.Baseline}}<td class='delta'>{{.Improvement}}
{{end -}}
</tbody>
{{- end}}
</table>
<h2>Summary</h2>
<ul>
{{range .Summary}}<li>{{.Name}}: {{.Verdict}}
{{end -}}
</ul>
</body>
</html>
`))

type htmlRow struct {
	Label       string
	Treatment   string
	Baseline    string
	Improvement string
	Comparable  bool
	Better      bool
}

type htmlGroup struct {
	Name string
	Rows []htmlRow
}

type htmlVerdict struct {
	Name    string
	Verdict string
}

// FormatHTML writes an HTML page comparing p's two groups.
func FormatHTML(w io.Writer, p *Pair) error {
	data := struct {
		Treatment, Baseline         string
		TreatmentRuns, BaselineRuns int
		Groups                      []htmlGroup
		Summary                     []htmlVerdict
	}{
		Treatment:     p.TreatmentName,
		Baseline:      p.BaselineName,
		TreatmentRuns: p.TreatmentRuns,
		BaselineRuns:  p.BaselineRuns,
	}
	for _, g := range runstat.Groups {
		rows := p.Rows(g)
		if len(rows) > 0 {
			hg := htmlGroup{Name: string(g)}
			for _, c := range rows {
				m, _ := runstat.LookupMetric(c.Metric)
				hg.Rows = append(hg.Rows, htmlRow{
					Label:       m.Label,
					Treatment:   FormatStats(m.Unit, c.Treatment),
					Baseline:    FormatStats(m.Unit, c.Baseline),
					Improvement: c.FormatImprovement(),
					Comparable:  c.Comparable,
					Better:      c.Better(),
				})
			}
			data.Groups = append(data.Groups, hg)
		}
		data.Summary = append(data.Summary, htmlVerdict{string(g), verdict(p.Headline(g))})
	}
	return htmlTemplate.Execute(w, data)
}
