package mappers

import (
	"github.com/kubev2v/training-planner/api/v1alpha1"
	"github.com/kubev2v/training-planner/internal/estimation"
	"github.com/kubev2v/training-planner/internal/hardware"
	"github.com/kubev2v/training-planner/internal/util"
)

// EstimationRequestToDomain converts a validated API request. Unset overrides stay zero
// and the image geometry is dropped outside advanced mode.
func EstimationRequestToDomain(req v1alpha1.EstimationRequest) (estimation.TrainingRequest, error) {
	modelType, err := estimation.ParseModelType(req.ModelType)
	if err != nil {
		return estimation.TrainingRequest{}, err
	}

	form := estimation.TrainingRequest{
		AssetCount:    req.AssetCount,
		ModelType:     modelType,
		LoRA:          req.Lora,
		LoRARank:      util.Deref(req.LoraRank),
		Finetune:      req.Finetune,
		Advanced:      req.Advanced,
		GPUMemoryGB:   util.Deref(req.GpuMemoryGb),
		Hardware:      hardware.Key(util.Deref(req.Hardware)),
		BatchSize:     util.Deref(req.BatchSize),
		LearningRate:  util.Deref(req.LearningRate),
		TotalSteps:    util.Deref(req.TotalSteps),
		Epochs:        util.Deref(req.Epochs),
		StepsPerEpoch: util.Deref(req.StepsPerEpoch),
	}

	if req.Optimizer != nil && *req.Optimizer != "" {
		optimizer, err := estimation.ParseOptimizer(*req.Optimizer)
		if err != nil {
			return estimation.TrainingRequest{}, err
		}
		form.Optimizer = optimizer
	}

	if req.Advanced && req.Image != nil {
		form.Image = &estimation.ImageGeometry{
			Width:         req.Image.Width,
			Height:        req.Image.Height,
			Channels:      req.Image.Channels,
			PrecisionBits: req.Image.PrecisionBits,
		}
	}

	return form, nil
}
