package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kubev2v/training-planner/internal/estimation"
	"github.com/kubev2v/training-planner/internal/estimation/calculators"
	"github.com/kubev2v/training-planner/internal/events"
	"github.com/kubev2v/training-planner/internal/hardware"
	"github.com/kubev2v/training-planner/internal/service/report"
	"github.com/kubev2v/training-planner/internal/service/report/types"
	"github.com/kubev2v/training-planner/pkg/log"
	"github.com/kubev2v/training-planner/pkg/metrics"
	"github.com/kubev2v/training-planner/pkg/requestid"
)

// EstimationService runs training requests through the estimation Engine
// and renders the results as reports.
type EstimationService struct {
	catalog *hardware.Catalog
	engine  *estimation.Engine
	reports *report.Registry
	logger  *log.StructuredLogger
	events  *events.EventProducer
	now     func() time.Time
}

// RenderedReport is a report ready to be written to a file or an HTTP response.
type RenderedReport struct {
	Format      types.ReportFormat
	ContentType string
	Filename    string
	Content     []byte
}

// NewEstimationService creates an EstimationService with the full calculator pipeline registered.
func NewEstimationService(catalog *hardware.Catalog, opts ...calculators.Option) *EstimationService {
	if catalog == nil {
		catalog = hardware.Default()
	}
	return &EstimationService{
		catalog: catalog,
		engine:  calculators.NewEngine(catalog, opts...),
		reports: report.NewDefaultRegistry(),
		logger:  log.NewDebugLogger("estimation_service"),
		now:     time.Now,
	}
}

// WithEventProducer publishes an event for every estimation and rendered report.
func (es *EstimationService) WithEventProducer(producer *events.EventProducer) *EstimationService {
	es.events = producer
	return es
}

func (es *EstimationService) Catalog() *hardware.Catalog {
	return es.catalog
}

func (es *EstimationService) ReportFormats() []string {
	return es.reports.FormatNames()
}

// Estimate resolves the training parameters of req.
// Requests rejected by the estimator are reported as ErrInvalidEstimation.
func (es *EstimationService) Estimate(ctx context.Context, req estimation.TrainingRequest) (*estimation.Result, error) {
	tracer := es.logger.WithContext(ctx).
		Operation("estimate").
		WithInt("asset_count", req.AssetCount).
		WithString("model_type", string(req.ModelType)).
		WithBool("lora", req.LoRA).
		WithString("hardware", string(req.Hardware)).
		Build()

	hardwareLabel := es.hardwareLabel(req.Hardware)

	result, err := es.engine.Run(req)
	if err != nil {
		var missingCount *estimation.ErrMissingAssetCount
		var unknownHardware *estimation.ErrUnknownHardwareKey
		var overflow *estimation.ErrScheduleOverflow
		if errors.As(err, &missingCount) || errors.As(err, &unknownHardware) || errors.As(err, &overflow) {
			tracer.Error(err).WithString("step", "admission").Log()
			metrics.IncreaseEstimationsTotalMetric(metrics.ResultRejected, hardwareLabel)
			return nil, NewErrInvalidEstimation(err)
		}
		tracer.Error(err).Log()
		metrics.IncreaseEstimationsTotalMetric(metrics.ResultFailed, hardwareLabel)
		return nil, fmt.Errorf("failed to estimate training parameters: %w", err)
	}

	metrics.IncreaseEstimationsTotalMetric(metrics.ResultSuccess, hardwareLabel)
	metrics.ObserveEstimatedMinutes(hardwareLabel, result.Parameters.EstimatedMinutes)
	hints := make(map[string]int)
	for severity, count := range result.CountBySeverity() {
		metrics.IncreaseHintsTotalMetric(string(severity), count)
		hints[string(severity)] = count
	}

	es.publish(ctx, tracer, events.EstimationMessageKind, events.EstimationEvent{
		RequestID:        requestid.FromContext(ctx),
		ModelType:        string(req.ModelType),
		Hardware:         hardwareLabel,
		AssetCount:       req.AssetCount,
		LoRA:             req.LoRA,
		TotalSteps:       result.Parameters.TotalSteps,
		EstimatedMinutes: result.Parameters.EstimatedMinutes,
		EstimatedCostUSD: result.Parameters.EstimatedCostUSD,
		Hints:            hints,
	})

	tracer.Success().
		WithInt("batch_size", result.Parameters.BatchSize).
		WithInt("total_steps", result.Parameters.TotalSteps).
		WithFloat("estimated_minutes", result.Parameters.EstimatedMinutes).
		WithInt("hint_count", len(result.Hints)).
		Log()

	return result, nil
}

// Report estimates req and renders the result in the given format.
func (es *EstimationService) Report(ctx context.Context, req estimation.TrainingRequest, format types.ReportFormat) (*RenderedReport, error) {
	if _, err := es.reports.Renderer(format); err != nil {
		return nil, NewErrUnsupportedReportFormat(string(format), es.reports.FormatNames())
	}

	result, err := es.Estimate(ctx, req)
	if err != nil {
		return nil, err
	}
	return es.RenderReport(ctx, req, result, format)
}

// RenderReport renders a result previously returned by Estimate for req.
func (es *EstimationService) RenderReport(ctx context.Context, req estimation.TrainingRequest, result *estimation.Result, format types.ReportFormat) (*RenderedReport, error) {
	tracer := es.logger.WithContext(ctx).
		Operation("render_report").
		WithString("format", string(format)).
		Build()

	renderer, err := es.reports.Renderer(format)
	if err != nil {
		tracer.Error(err).Log()
		return nil, NewErrUnsupportedReportFormat(string(format), es.reports.FormatNames())
	}

	var tier *hardware.Tier
	key := req.Hardware
	if key == "" {
		key = hardware.LocalKey
	}
	if t, found := es.catalog.Lookup(key); found {
		tier = &t
	}

	now := es.now()
	content, err := renderer.Render(types.NewReportData(req, result, tier, now))
	if err != nil {
		tracer.Error(err).WithString("step", "render").Log()
		return nil, fmt.Errorf("failed to render %s report: %w", format, err)
	}

	metrics.IncreaseReportsRenderedMetric(string(format))
	es.publish(ctx, tracer, events.ReportMessageKind, events.ReportEvent{
		RequestID: requestid.FromContext(ctx),
		Format:    string(format),
		SizeBytes: len(content),
	})
	tracer.Success().WithInt("size_bytes", len(content)).Log()

	return &RenderedReport{
		Format:      format,
		ContentType: renderer.ContentType(),
		Filename:    fmt.Sprintf("training-plan-%s.%s", now.Format("20060102-150405"), format),
		Content:     content,
	}, nil
}

func (es *EstimationService) publish(ctx context.Context, tracer *log.OperationTracer, kind string, event any) {
	if es.events == nil {
		return
	}
	if err := es.events.WriteEvent(ctx, kind, event); err != nil {
		tracer.Step("publish_event").WithString("kind", kind).WithString("error", err.Error()).Log()
	}
}

// hardwareLabel keeps metric label cardinality bounded by the catalog.
func (es *EstimationService) hardwareLabel(key hardware.Key) string {
	if key == "" {
		return hardware.LocalKey.String()
	}
	if !es.catalog.Has(key) {
		return "unknown"
	}
	return key.String()
}
