package html

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/kubev2v/training-planner/internal/estimation"
	"github.com/kubev2v/training-planner/internal/service/report/types"
)

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{
		tmpl: template.Must(template.New("report").Funcs(template.FuncMap{
			"severityClass": severityClass,
		}).Parse(htmlReportTemplate)),
	}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatHTML
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

type templateData struct {
	Title      string
	Timestamps types.ReportTimestamps
	Inputs     []types.Row
	Parameters []types.Row
	Trace      []estimation.TraceStep
	Hints      []estimation.Hint
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	if data.Result == nil {
		return nil, fmt.Errorf("no estimation result to render")
	}

	var buf bytes.Buffer
	err := r.tmpl.Execute(&buf, templateData{
		Title:      "Training Plan Report",
		Timestamps: data.Timestamps,
		Inputs:     data.InputRows(),
		Parameters: data.ParameterRows(),
		Trace:      data.Result.Trace,
		Hints:      data.Result.Hints,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute HTML template: %w", err)
	}
	return buf.Bytes(), nil
}

// severityClass maps a severity to the colors used across the planner: green, orange, red.
func severityClass(s estimation.Severity) string {
	switch s {
	case estimation.SeverityError:
		return "red"
	case estimation.SeverityWarning:
		return "orange"
	default:
		return "green"
	}
}

const htmlReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/katex@0.16.11/dist/katex.min.css">
    <script defer src="https://cdn.jsdelivr.net/npm/katex@0.16.11/dist/katex.min.js"></script>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; margin: 40px; color: #222; }
        table { border-collapse: collapse; margin: 20px 0; min-width: 480px; }
        th, td { border: 1px solid #ddd; padding: 6px 12px; text-align: left; }
        th { background: #f4f4f4; }
        .hint { padding: 8px 12px; margin: 6px 0; border-left: 4px solid; }
        .green { border-color: #2e7d32; background: #e8f5e9; }
        .orange { border-color: #ef6c00; background: #fff3e0; }
        .red { border-color: #c62828; background: #ffebee; }
        .tex { display: block; margin: 6px 0; }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
    <p>Generated: {{.Timestamps.Generated}} at {{.Timestamps.GeneratedTime}}</p>

    <h2>Inputs</h2>
    <table>
        <tr><th>Name</th><th>Value</th></tr>
        {{- range .Inputs}}
        <tr><td>{{.Name}}</td><td>{{.Value}}</td></tr>
        {{- end}}
    </table>

    <h2>Recommended Parameters</h2>
    <table>
        <tr><th>Name</th><th>Value</th></tr>
        {{- range .Parameters}}
        <tr><td>{{.Name}}</td><td>{{.Value}}</td></tr>
        {{- end}}
    </table>

    <h2>Hints</h2>
    {{- range .Hints}}
    <div class="hint {{severityClass .Severity}}">{{.Message}}</div>
    {{- else}}
    <p>No hints.</p>
    {{- end}}

    <h2>Calculation Steps</h2>
    {{- range .Trace}}
    <span class="tex" data-tex="{{.TeX}}">{{.String}}</span>
    {{- end}}

    <script>
        document.addEventListener("DOMContentLoaded", function () {
            document.querySelectorAll(".tex").forEach(function (el) {
                katex.render(el.dataset.tex, el, { throwOnError: false, displayMode: true });
            });
        });
    </script>
</body>
</html>
`
