package render

import (
	"fmt"
	"html/template"
	"io"
)

var pageTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Header.Title}} {{.Header.Number}}</title>
<style>
@page { size: A4; margin: 20px; }
body { font-family: Arial, Helvetica, sans-serif; font-size: 12px; margin: 0; padding: 24px; color: #222; }
.header { display: flex; justify-content: space-between; border-bottom: 2px solid #333; padding-bottom: 12px; }
.logo { font-size: 28px; font-weight: bold; }
.parties { display: flex; justify-content: space-between; margin: 16px 0; }
table { width: 100%; border-collapse: collapse; }
th, td { border-bottom: 1px solid #ddd; padding: 6px; text-align: left; }
td.num, th.num { text-align: right; }
.totals { width: 45%; margin-left: auto; margin-top: 12px; }
.emphasis td { font-weight: bold; font-size: 14px; border-top: 2px solid #333; }
.words { margin-top: 8px; font-style: italic; }
</style>
</head>
<body>
<div class="header">
  <div>
    <div class="logo">{{.Header.Company.Logo}}</div>
    <div>{{.Header.Company.Name}}</div>
    <div>{{.Header.Company.Tagline}}</div>
  </div>
  <div>
    <h1>{{.Header.Title}}</h1>
    <div>No: {{.Header.Number}}</div>
    <div>Date: {{.Header.Date}}</div>
    {{if .Header.Deadline}}<div>{{.Header.DeadlineLabel}}: {{.Header.Deadline}}</div>{{end}}
    <div>Status: {{.Header.Status}}</div>
  </div>
</div>
<div class="parties">
{{range .Parties}}  <div><strong>{{.Label}}</strong>{{range .Lines}}<div>{{.}}</div>{{end}}</div>
{{end}}</div>
{{with .Project}}<div class="project">
  <strong>{{.Name}}</strong>
  {{if .Summary}}<p>{{.Summary}}</p>{{end}}
  {{if .Timeline}}<div>Timeline: {{.Timeline}}</div>{{end}}
  {{if .Maintenance}}<div>Maintenance: {{.Maintenance}}</div>{{end}}
</div>{{end}}
<table>
  <thead><tr><th>#</th><th>Description</th><th class="num">Qty</th><th class="num">Rate</th><th class="num">Amount</th></tr></thead>
  <tbody>
{{range .Rows}}    <tr class="{{.Kind}}"><td>{{.Index}}</td><td>{{.Description}}</td><td class="num">{{.Quantity}}</td><td class="num">{{.Rate}}</td><td class="num">{{.Amount}}</td></tr>
{{end}}  </tbody>
</table>
<table class="totals">
{{range .Totals}}  <tr{{if .Emphasis}} class="emphasis"{{end}}><td>{{.Label}}</td><td class="num">{{.Amount}}</td></tr>
{{end}}</table>
<div class="words">{{.AmountInWords}}</div>
{{if .PaymentTerms}}<div>Payment Terms: {{.PaymentTerms}}</div>{{end}}
{{if .Terms}}<h3>Terms &amp; Conditions</h3><ul>{{range .Terms}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{if .Notes}}<p>{{.Notes}}</p>{{end}}
</body>
</html>
`))

// WriteHTML writes a standalone HTML page for rd.
func WriteHTML(w io.Writer, rd RenderedDocument) error {
	if err := pageTemplate.Execute(w, rd); err != nil {
		return fmt.Errorf("failed to render document html: %w", err)
	}
	return nil
}
