package v1alpha1

import (
	"github.com/kubev2v/training-planner/internal/api/server"
	"github.com/kubev2v/training-planner/internal/handlers/validator"
	"github.com/kubev2v/training-planner/internal/service"
)

type ServiceHandler struct {
	estimationSrv *service.EstimationService
	hardwareSrv   *service.HardwareService
	validator     *validator.Validator
}

// Make sure we conform to servers Service interface
var _ server.StrictServerInterface = (*ServiceHandler)(nil)

func NewServiceHandler(estimationService *service.EstimationService, hardwareService *service.HardwareService) *ServiceHandler {
	v := validator.NewValidator()
	v.Register(validator.NewEstimationValidationRules(estimationService.Catalog())...)

	return &ServiceHandler{
		estimationSrv: estimationService,
		hardwareSrv:   hardwareService,
		validator:     v,
	}
}
