package v1alpha1

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/kubev2v/training-planner/api/v1alpha1"
	"github.com/kubev2v/training-planner/internal/api/server"
	"github.com/kubev2v/training-planner/internal/estimation"
	"github.com/kubev2v/training-planner/internal/handlers/v1alpha1/mappers"
	"github.com/kubev2v/training-planner/internal/service"
	"github.com/kubev2v/training-planner/internal/service/report/types"
	"github.com/kubev2v/training-planner/pkg/log"
	"github.com/kubev2v/training-planner/pkg/requestid"
)

// (POST /api/v1/estimations)
func (h *ServiceHandler) CreateEstimation(ctx context.Context, request server.CreateEstimationRequestObject) (server.CreateEstimationResponseObject, error) {
	logger := log.NewDebugLogger("estimation_handler").
		WithContext(ctx).
		Operation("create_estimation").
		WithParam("request_body", request.Body).
		Build()

	if request.Body == nil {
		logger.Error(fmt.Errorf("empty request body")).Log()
		return server.CreateEstimation400JSONResponse{Message: "empty body", RequestId: requestid.FromContextPtr(ctx)}, nil
	}

	form, err := h.toTrainingRequest(*request.Body)
	if err != nil {
		logger.Error(err).WithString("step", "validation").Log()
		return server.CreateEstimation400JSONResponse{Message: err.Error(), RequestId: requestid.FromContextPtr(ctx)}, nil
	}

	result, err := h.estimationSrv.Estimate(ctx, form)
	if err != nil {
		var invalid *service.ErrInvalidEstimation
		if errors.As(err, &invalid) {
			logger.Error(err).Log()
			return server.CreateEstimation400JSONResponse{Message: err.Error(), RequestId: requestid.FromContextPtr(ctx)}, nil
		}
		logger.Error(err).Log()
		return server.CreateEstimation500JSONResponse{Message: "failed to estimate training parameters", RequestId: requestid.FromContextPtr(ctx)}, nil
	}

	logger.Success().
		WithInt("total_steps", result.Parameters.TotalSteps).
		WithInt("hint_count", len(result.Hints)).
		Log()

	return server.CreateEstimation200JSONResponse(mappers.EstimationResultToApi(result)), nil
}

// (POST /api/v1/estimations/report)
func (h *ServiceHandler) CreateEstimationReport(ctx context.Context, request server.CreateEstimationReportRequestObject) (server.CreateEstimationReportResponseObject, error) {
	format := v1alpha1.ReportFormatHTML
	if request.Params.Format != nil {
		format = *request.Params.Format
	}

	logger := log.NewDebugLogger("estimation_handler").
		WithContext(ctx).
		Operation("create_estimation_report").
		WithString("format", string(format)).
		Build()

	if request.Body == nil {
		logger.Error(fmt.Errorf("empty request body")).Log()
		return server.CreateEstimationReport400JSONResponse{Message: "empty body", RequestId: requestid.FromContextPtr(ctx)}, nil
	}

	form, err := h.toTrainingRequest(*request.Body)
	if err != nil {
		logger.Error(err).WithString("step", "validation").Log()
		return server.CreateEstimationReport400JSONResponse{Message: err.Error(), RequestId: requestid.FromContextPtr(ctx)}, nil
	}

	rendered, err := h.estimationSrv.Report(ctx, form, types.ReportFormat(format))
	if err != nil {
		switch err.(type) {
		case *service.ErrInvalidEstimation, *service.ErrUnsupportedReportFormat:
			logger.Error(err).Log()
			return server.CreateEstimationReport400JSONResponse{Message: err.Error(), RequestId: requestid.FromContextPtr(ctx)}, nil
		default:
			logger.Error(err).Log()
			return server.CreateEstimationReport500JSONResponse{Message: "failed to render report", RequestId: requestid.FromContextPtr(ctx)}, nil
		}
	}

	logger.Success().WithString("filename", rendered.Filename).WithInt("size_bytes", len(rendered.Content)).Log()

	return server.CreateEstimationReport200Response{
		Body:          bytes.NewReader(rendered.Content),
		ContentType:   rendered.ContentType,
		Filename:      rendered.Filename,
		ContentLength: int64(len(rendered.Content)),
	}, nil
}

func (h *ServiceHandler) toTrainingRequest(body v1alpha1.EstimationRequest) (estimation.TrainingRequest, error) {
	if err := h.validator.Struct(body); err != nil {
		return estimation.TrainingRequest{}, err
	}
	return mappers.EstimationRequestToDomain(body)
}
