package v1alpha1

import (
	"context"

	"github.com/kubev2v/training-planner/internal/api/server"
	"github.com/kubev2v/training-planner/internal/handlers/v1alpha1/mappers"
	"github.com/kubev2v/training-planner/internal/hardware"
	"github.com/kubev2v/training-planner/internal/service"
	"github.com/kubev2v/training-planner/pkg/requestid"
)

// (GET /api/v1/hardware)
func (h *ServiceHandler) ListHardware(ctx context.Context, request server.ListHardwareRequestObject) (server.ListHardwareResponseObject, error) {
	tiers := h.hardwareSrv.List(ctx)
	return server.ListHardware200JSONResponse(mappers.HardwareTierListToApi(tiers)), nil
}

// (GET /api/v1/hardware/{key})
func (h *ServiceHandler) GetHardware(ctx context.Context, request server.GetHardwareRequestObject) (server.GetHardwareResponseObject, error) {
	tier, err := h.hardwareSrv.Get(ctx, hardware.Key(request.Key))
	if err != nil {
		switch err.(type) {
		case *service.ErrResourceNotFound:
			return server.GetHardware404JSONResponse{Message: err.Error(), RequestId: requestid.FromContextPtr(ctx)}, nil
		default:
			return server.GetHardware500JSONResponse{Message: "failed to get hardware tier", RequestId: requestid.FromContextPtr(ctx)}, nil
		}
	}
	return server.GetHardware200JSONResponse(mappers.HardwareTierToApi(tier)), nil
}
