package html

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"github.com/kubev2v/fracture-planner/internal/service/report/types"
)

type Renderer struct {
	tmpl *template.Template
}

type templateData struct {
	*types.ReportData
	CSS template.CSS
}

func NewRenderer() *Renderer {
	funcs := template.FuncMap{
		"num": func(v float64) string { return strconv.FormatFloat(v, 'g', 6, 64) },
		"pct": func(v float64) string { return fmt.Sprintf("%+.2f%%", v) },
	}
	return &Renderer{
		tmpl: template.Must(template.New("report").Funcs(funcs).Parse(reportTemplate)),
	}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatHTML
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, templateData{ReportData: data, CSS: template.CSS(reportCSS)}); err != nil {
		return nil, fmt.Errorf("failed to execute HTML template: %w", err)
	}
	return buf.Bytes(), nil
}

const reportCSS = `
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2rem; color: #1f2933; }
h1 { font-size: 1.6rem; margin-bottom: 0.2rem; }
h2 { font-size: 1.2rem; margin-top: 2rem; border-bottom: 1px solid #d2d6dc; padding-bottom: 0.3rem; }
.meta { color: #616e7c; font-size: 0.9rem; }
table { border-collapse: collapse; margin-top: 0.8rem; min-width: 28rem; }
th, td { border: 1px solid #d2d6dc; padding: 0.35rem 0.7rem; text-align: left; }
th { background: #f5f7fa; }
td.num { text-align: right; font-variant-numeric: tabular-nums; }
.warning { color: #b44d12; }
.regime { font-weight: 600; }
`

const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Fracture geometry report {{.Run.ID}}</title>
<style>{{.CSS}}</style>
</head>
<body>
<h1>Hydraulic fracture geometry: {{.Result.Model}}</h1>
<p class="meta">Generated {{.Timestamps.Generated}} at {{.Timestamps.GeneratedTime}}. Run {{.Run.ID}}{{if .Run.Name}} ({{.Run.Name}}){{end}} created {{.Timestamps.RunCreated}}, unit system {{.UnitSystem}}.</p>
<p>Propagation regime: <span class="regime">{{.Result.Regime}}</span></p>

<h2>Input parameters</h2>
<table>
<tr><th>Quantity</th><th>Value</th><th>Unit</th></tr>
{{range .Inputs}}<tr><td>{{.Name}}</td><td class="num">{{num .Value}}</td><td>{{.Unit}}</td></tr>
{{end}}</table>

<h2>Results</h2>
<table>
<tr><th>Quantity</th><th>Value</th><th>Unit</th></tr>
{{range .Outputs}}<tr><td>{{.Name}}</td><td class="num">{{num .Value}}</td><td>{{.Unit}}</td></tr>
{{end}}</table>

<h2>Warnings</h2>
{{if .Result.Warnings}}<ul>
{{range .Result.Warnings}}<li class="warning">{{.}}</li>
{{end}}</ul>{{else}}<p>None</p>{{end}}

<h2>Sensitivity</h2>
<table>
<tr><th>Parameter</th><th>Factor</th><th>Length</th><th>Width</th><th>Pressure</th></tr>
{{range .Sensitivity}}<tr><td>{{.Parameter}}</td><td class="num">{{num .Factor}}</td><td class="num">{{pct .LengthChange}}</td><td class="num">{{pct .WidthChange}}</td><td class="num">{{pct .PressureChange}}</td></tr>
{{end}}</table>
{{if .Options.IncludeHistory}}
<h2>Time history</h2>
<table>
<tr><th>Time ({{.Labels.Time}})</th><th>Length ({{.Labels.Length}})</th><th>Width ({{.Labels.Width}})</th><th>Net pressure ({{.Labels.Pressure}})</th></tr>
{{range .Result.History}}<tr><td class="num">{{num .Time}}</td><td class="num">{{num .Length}}</td><td class="num">{{num .Width}}</td><td class="num">{{num .NetPressure}}</td></tr>
{{end}}</table>
{{end}}{{if .Options.IncludeProfile}}
<h2>Width profile</h2>
<table>
<tr><th>Position ({{.Labels.Length}})</th><th>Width ({{.Labels.Width}})</th></tr>
{{range .Result.Profile}}<tr><td class="num">{{num .Position}}</td><td class="num">{{num .Width}}</td></tr>
{{end}}</table>
{{end}}
</body>
</html>
`
