package types

import (
	"fmt"
	"strconv"
	"time"

	"github.com/kubev2v/training-planner/internal/estimation"
	"github.com/kubev2v/training-planner/internal/hardware"
)

type ReportRenderer interface {
	Render(data *ReportData) ([]byte, error)
	SupportedFormat() ReportFormat
	ContentType() string
}

type ReportFormat string

const (
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatHTML ReportFormat = "html"
	ReportFormatXLSX ReportFormat = "xlsx"
)

// ReportData is everything a renderer needs to describe one estimation.
type ReportData struct {
	Request    estimation.TrainingRequest
	Result     *estimation.Result
	Tier       *hardware.Tier
	Timestamps ReportTimestamps
}

type ReportTimestamps struct {
	Generated     string
	GeneratedTime string
}

// Row is a name/value line of a report section.
type Row struct {
	Name  string
	Value string
}

func NewReportData(req estimation.TrainingRequest, res *estimation.Result, tier *hardware.Tier, now time.Time) *ReportData {
	return &ReportData{
		Request: req,
		Result:  res,
		Tier:    tier,
		Timestamps: ReportTimestamps{
			Generated:     now.Format("January 2, 2006"),
			GeneratedTime: now.Format("15:04:05 MST"),
		},
	}
}

// InputRows lists the request as submitted. Unset overrides are shown as "auto".
func (d *ReportData) InputRows() []Row {
	req := d.Request
	rows := []Row{
		{"Asset Count", strconv.Itoa(req.AssetCount)},
		{"Model Type", orAuto(string(req.ModelType))},
		{"LoRA", yesNo(req.LoRA)},
		{"Fine-tuning", yesNo(req.Finetune)},
		{"Advanced Mode", yesNo(req.Advanced)},
		{"Hardware", string(req.Hardware)},
	}
	if d.Tier != nil && d.Tier.Description != "" {
		rows = append(rows, Row{"Hardware Description", d.Tier.Description})
	}
	if req.Advanced && req.Image != nil {
		rows = append(rows,
			Row{"Image Size", fmt.Sprintf("%dx%d", req.Image.Width, req.Image.Height)},
			Row{"Image Channels", strconv.Itoa(req.Image.Channels)},
			Row{"Precision", fmt.Sprintf("%d-bit", req.Image.PrecisionBits)},
		)
	}
	rows = append(rows,
		Row{"GPU Memory (GB)", autoFloat(req.GPUMemoryGB)},
		Row{"Batch Size", autoInt(req.BatchSize)},
		Row{"Learning Rate", autoFloat(req.LearningRate)},
		Row{"Optimizer", orAuto(string(req.Optimizer))},
		Row{"Steps per Epoch", autoInt(req.StepsPerEpoch)},
		Row{"Total Steps", autoInt(req.TotalSteps)},
		Row{"Epochs", autoInt(req.Epochs)},
	)
	if req.LoRA {
		rows = append(rows, Row{"LoRA Rank", autoInt(req.LoRARank)})
	}
	return rows
}

// ParameterRows lists the resolved parameters and projections.
func (d *ReportData) ParameterRows() []Row {
	p := d.Result.Parameters
	rows := []Row{
		{"Batch Size", strconv.Itoa(p.BatchSize)},
		{"Learning Rate", strconv.FormatFloat(p.LearningRate, 'g', -1, 64)},
		{"Optimizer", string(p.Optimizer)},
	}
	if p.LoRARank > 0 {
		rows = append(rows, Row{"LoRA Rank", strconv.Itoa(p.LoRARank)})
	}
	rows = append(rows,
		Row{"Steps per Epoch", strconv.Itoa(p.StepsPerEpoch)},
		Row{"Total Steps", strconv.Itoa(p.TotalSteps)},
		Row{"Epochs", strconv.Itoa(p.Epochs)},
		Row{"Estimated Time (minutes)", strconv.FormatFloat(p.EstimatedMinutes, 'f', 2, 64)},
		Row{"Estimated Cost (USD)", FormatCost(p.EstimatedCostUSD)},
	)
	return rows
}

// FormatCost renders a cost, or "N/A" when none applies.
func FormatCost(cost *float64) string {
	if cost == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*cost, 'f', 2, 64)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func orAuto(s string) string {
	if s == "" {
		return "auto"
	}
	return s
}

func autoInt(i int) string {
	if i <= 0 {
		return "auto"
	}
	return strconv.Itoa(i)
}

func autoFloat(f float64) string {
	if f <= 0 {
		return "auto"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
