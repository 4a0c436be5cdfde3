package xlsx

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/kubev2v/training-planner/internal/service/report/types"
)

const (
	SummarySheet = "Summary"
	TraceSheet   = "Derivation"
	HintsSheet   = "Hints"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatXLSX
}

func (r *Renderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	if data.Result == nil {
		return nil, fmt.Errorf("no estimation result to render")
	}

	f := excelize.NewFile()
	defer f.Close()

	// excelize starts with a default "Sheet1"
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	summary := [][]any{
		{"Training Plan Report"},
		{fmt.Sprintf("Generated: %s at %s", data.Timestamps.Generated, data.Timestamps.GeneratedTime)},
		{},
		{"Inputs", "Value"},
	}
	for _, row := range data.InputRows() {
		summary = append(summary, []any{row.Name, row.Value})
	}
	summary = append(summary, []any{}, []any{"Recommended Parameters", "Value"})
	for _, row := range data.ParameterRows() {
		summary = append(summary, []any{row.Name, row.Value})
	}
	if err := r.writeSheet(f, SummarySheet, summary, headerStyle); err != nil {
		return nil, err
	}

	trace := [][]any{{"Step", "Expression", "Value", "Unit", "LaTeX"}}
	for _, s := range data.Result.Trace {
		trace = append(trace, []any{s.Label, s.Expression, s.Value, s.Unit, s.TeX})
	}
	if err := r.newSheet(f, TraceSheet, trace, headerStyle); err != nil {
		return nil, err
	}

	hints := [][]any{{"Severity", "Message"}}
	for _, h := range data.Result.Hints {
		hints = append(hints, []any{string(h.Severity), h.Message})
	}
	if err := r.newSheet(f, HintsSheet, hints, headerStyle); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) newSheet(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	return r.writeSheet(f, sheet, rows, headerStyle)
}

func (r *Renderer) writeSheet(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+1, sheet, err)
		}
		if len(row) > 1 && (i == 0 || isHeader(row)) {
			end, _ := excelize.CoordinatesToCellName(len(row), i+1)
			if err := f.SetCellStyle(sheet, cell, end, headerStyle); err != nil {
				return err
			}
		}
	}
	return f.SetColWidth(sheet, "A", "B", 32)
}

func isHeader(row []any) bool {
	s, ok := row[len(row)-1].(string)
	return ok && (s == "Value" || s == "Message" || s == "LaTeX")
}
