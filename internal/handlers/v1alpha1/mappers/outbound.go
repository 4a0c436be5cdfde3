package mappers

import (
	"github.com/kubev2v/training-planner/api/v1alpha1"
	"github.com/kubev2v/training-planner/internal/estimation"
	"github.com/kubev2v/training-planner/internal/hardware"
	"github.com/kubev2v/training-planner/internal/util"
)

func EstimationResultToApi(result *estimation.Result) v1alpha1.EstimationResult {
	p := result.Parameters
	apiResult := v1alpha1.EstimationResult{
		Parameters: v1alpha1.ResolvedParameters{
			BatchSize:        p.BatchSize,
			LearningRate:     p.LearningRate,
			Optimizer:        string(p.Optimizer),
			LoraRank:         util.PtrIfSet(p.LoRARank),
			StepsPerEpoch:    p.StepsPerEpoch,
			TotalSteps:       p.TotalSteps,
			Epochs:           p.Epochs,
			GpuMemoryGb:      util.PtrIfSet(p.GPUMemoryGB),
			EstimatedMinutes: p.EstimatedMinutes,
			EstimatedCostUsd: p.EstimatedCostUSD,
		},
		Trace: make([]v1alpha1.TraceStep, 0, len(result.Trace)),
		Hints: make([]v1alpha1.Hint, 0, len(result.Hints)),
	}

	for _, step := range result.Trace {
		apiResult.Trace = append(apiResult.Trace, v1alpha1.TraceStep{
			Label:      step.Label,
			Expression: util.PtrIfSet(step.Expression),
			Value:      step.Value,
			Unit:       util.PtrIfSet(step.Unit),
			Tex:        step.TeX,
		})
	}

	for _, hint := range result.Hints {
		apiResult.Hints = append(apiResult.Hints, v1alpha1.Hint{
			Message:  hint.Message,
			Severity: v1alpha1.Severity(hint.Severity),
		})
	}

	return apiResult
}

func HardwareTierToApi(tier hardware.Tier) v1alpha1.HardwareTier {
	return v1alpha1.HardwareTier{
		Key:                tier.Key.String(),
		Description:        util.PtrIfSet(tier.Description),
		TimePerStepMinutes: tier.TimePerStepMinutes,
		CostPerHourUsd:     tier.CostPerHourUSD,
		GpuMemoryGb:        tier.GPUMemoryGB,
	}
}

func HardwareTierListToApi(tiers []hardware.Tier) v1alpha1.HardwareTierList {
	list := make(v1alpha1.HardwareTierList, 0, len(tiers))
	for _, t := range tiers {
		list = append(list, HardwareTierToApi(t))
	}
	return list
}
