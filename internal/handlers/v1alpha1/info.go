package v1alpha1

import (
	"context"

	"github.com/kubev2v/training-planner/api/v1alpha1"
	"github.com/kubev2v/training-planner/internal/api/server"
	"github.com/kubev2v/training-planner/internal/util"
	"github.com/kubev2v/training-planner/pkg/version"
)

// (GET /api/v1/info)
func (h *ServiceHandler) GetInfo(ctx context.Context, request server.GetInfoRequestObject) (server.GetInfoResponseObject, error) {
	versionInfo := version.Get()

	response := v1alpha1.Info{
		GitCommit:   versionInfo.GitCommit,
		VersionName: versionInfo.GitVersion,
		BuildDate:   util.PtrIfSet(versionInfo.BuildDate),
	}

	return server.GetInfo200JSONResponse(response), nil
}

// (GET /health)
func (h *ServiceHandler) Health(ctx context.Context, request server.HealthRequestObject) (server.HealthResponseObject, error) {
	return server.Health200Response{}, nil
}
