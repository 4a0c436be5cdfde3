package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/kubev2v/training-planner/internal/service/report/types"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatCSV
}

func (r *Renderer) ContentType() string {
	return "text/csv"
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	if data.Result == nil {
		return nil, fmt.Errorf("no estimation result to render")
	}

	var csvRows [][]string

	csvRows = append(csvRows, []string{"TRAINING PLAN REPORT"})
	csvRows = append(csvRows, []string{fmt.Sprintf("Generated: %s at %s",
		data.Timestamps.Generated, data.Timestamps.GeneratedTime)})
	csvRows = append(csvRows, []string{""})

	csvRows = r.addRows(csvRows, "INPUTS", data.InputRows())
	csvRows = r.addRows(csvRows, "RECOMMENDED PARAMETERS", data.ParameterRows())
	csvRows = r.addDerivation(csvRows, data)
	csvRows = r.addHints(csvRows, data)

	return r.convertRowsToCSV(csvRows)
}

func (r *Renderer) addRows(csvRows [][]string, title string, rows []types.Row) [][]string {
	csvRows = append(csvRows, []string{title})
	csvRows = append(csvRows, []string{"Name", "Value"})
	for _, row := range rows {
		csvRows = append(csvRows, []string{row.Name, row.Value})
	}
	return append(csvRows, []string{""})
}

func (r *Renderer) addDerivation(csvRows [][]string, data *types.ReportData) [][]string {
	csvRows = append(csvRows, []string{"DERIVATION"})
	csvRows = append(csvRows, []string{"Step", "Expression", "Value", "Unit"})
	for _, s := range data.Result.Trace {
		csvRows = append(csvRows, []string{s.Label, s.Expression, s.Value, s.Unit})
	}
	return append(csvRows, []string{""})
}

func (r *Renderer) addHints(csvRows [][]string, data *types.ReportData) [][]string {
	csvRows = append(csvRows, []string{"HINTS"})
	csvRows = append(csvRows, []string{"Severity", "Message"})
	if len(data.Result.Hints) == 0 {
		return append(csvRows, []string{"", "No hints"})
	}
	for _, h := range data.Result.Hints {
		csvRows = append(csvRows, []string{string(h.Severity), h.Message})
	}
	return csvRows
}

func (r *Renderer) convertRowsToCSV(csvRows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	for _, row := range csvRows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return buf.Bytes(), nil
}
