package estimation

import (
	"fmt"
	"strings"

	"github.com/kubev2v/training-planner/internal/hardware"
)

// Calculator encapsulates one decision of the estimation (e.g. "batch size", "time projection").
type Calculator interface {
	// Name returns the human-readable name of this calculator. Names are unique within an Engine.
	Name() string
	// Resolve reads the request and the parameters resolved so far from the plan, and records its own decision.
	// A returned error aborts the estimation.
	Resolve(plan *Plan) error
}

// ModelType is the architecture family of the model being trained.
type ModelType string

const (
	ModelTypeVAE         ModelType = "VAE"
	ModelTypeCNN         ModelType = "CNN"
	ModelTypeResNet      ModelType = "ResNet"
	ModelTypeTransformer ModelType = "Transformer"
	ModelTypeMMDiT       ModelType = "Multimodal Diffusion Transformer Architecture"
	ModelTypeDNN         ModelType = "DNN"
)

var modelTypes = []ModelType{
	ModelTypeVAE,
	ModelTypeCNN,
	ModelTypeResNet,
	ModelTypeTransformer,
	ModelTypeMMDiT,
	ModelTypeDNN,
}

// ModelTypes returns every known model type.
func ModelTypes() []ModelType {
	return append([]ModelType(nil), modelTypes...)
}

// ParseModelType matches s against the known model types, ignoring case.
func ParseModelType(s string) (ModelType, error) {
	for _, m := range modelTypes {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown model type %q", s)
}

// IsImage reports whether the model type consumes images. Image models train with a batch size of 1.
func (m ModelType) IsImage() bool {
	switch m {
	case ModelTypeVAE, ModelTypeCNN, ModelTypeResNet, ModelTypeTransformer, ModelTypeMMDiT:
		return true
	default:
		return false
	}
}

// Optimizer identifies one of the supported optimizers.
type Optimizer string

const (
	OptimizerProdigy   Optimizer = "prodigy"
	OptimizerAdam8bit  Optimizer = "adam8bit"
	OptimizerAdamW8bit Optimizer = "adamw8bit"
	OptimizerLion8bit  Optimizer = "lion8bit"
	OptimizerAdam      Optimizer = "adam"
	OptimizerAdamW     Optimizer = "adamw"
	OptimizerLion      Optimizer = "lion"
	OptimizerAdagrad   Optimizer = "adagrad"
	OptimizerAdafactor Optimizer = "adafactor"
)

var optimizers = []Optimizer{
	OptimizerProdigy,
	OptimizerAdam8bit,
	OptimizerAdamW8bit,
	OptimizerLion8bit,
	OptimizerAdam,
	OptimizerAdamW,
	OptimizerLion,
	OptimizerAdagrad,
	OptimizerAdafactor,
}

// Optimizers returns every supported optimizer.
func Optimizers() []Optimizer {
	return append([]Optimizer(nil), optimizers...)
}

// ParseOptimizer matches s against the supported optimizers, ignoring case.
func ParseOptimizer(s string) (Optimizer, error) {
	for _, o := range optimizers {
		if strings.EqualFold(string(o), strings.TrimSpace(s)) {
			return o, nil
		}
	}
	return "", fmt.Errorf("unknown optimizer %q", s)
}

// Severity of a Hint.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Hint is an advisory attached to a successful estimation. Hints never abort a run.
type Hint struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// ImageGeometry describes the training images. Only meaningful in advanced mode.
type ImageGeometry struct {
	Width         int `json:"width"`
	Height        int `json:"height"`
	Channels      int `json:"channels"`
	PrecisionBits int `json:"precisionBits"`
}

// DefaultImageGeometry is 1024x1024 RGB at 16-bit precision.
func DefaultImageGeometry() ImageGeometry {
	return ImageGeometry{Width: 1024, Height: 1024, Channels: 3, PrecisionBits: 16}
}

// TrainingRequest holds the caller's inputs. Zero or negative numeric overrides mean "unset".
type TrainingRequest struct {
	AssetCount  int            `json:"assetCount"`
	ModelType   ModelType      `json:"modelType"`
	LoRA        bool           `json:"lora"`
	LoRARank    int            `json:"loraRank,omitempty"`
	Finetune    bool           `json:"finetune,omitempty"`
	Advanced    bool           `json:"advanced,omitempty"`
	Image       *ImageGeometry `json:"image,omitempty"`
	GPUMemoryGB float64        `json:"gpuMemoryGb,omitempty"`
	Hardware    hardware.Key   `json:"hardware"`

	BatchSize     int       `json:"batchSize,omitempty"`
	LearningRate  float64   `json:"learningRate,omitempty"`
	TotalSteps    int       `json:"totalSteps,omitempty"`
	Epochs        int       `json:"epochs,omitempty"`
	StepsPerEpoch int       `json:"stepsPerEpoch,omitempty"`
	Optimizer     Optimizer `json:"optimizer,omitempty"`
}

// ResolvedParameters is the consistent parameter set produced by a run.
type ResolvedParameters struct {
	BatchSize     int       `json:"batchSize"`
	LearningRate  float64   `json:"learningRate"`
	Optimizer     Optimizer `json:"optimizer"`
	LoRARank      int       `json:"loraRank,omitempty"`
	StepsPerEpoch int       `json:"stepsPerEpoch"`
	TotalSteps    int       `json:"totalSteps"`
	Epochs        int       `json:"epochs"`
	GPUMemoryGB   float64   `json:"gpuMemoryGb,omitempty"`

	EstimatedMinutes float64 `json:"estimatedMinutes"`
	// EstimatedCostUSD is nil when no cost applies (local hardware), which is distinct from $0.
	EstimatedCostUSD *float64 `json:"estimatedCostUsd"`
}

// AsOverrides returns req with every resolved parameter set as an explicit override.
// Running the result again yields the same parameters.
func (p ResolvedParameters) AsOverrides(req TrainingRequest) TrainingRequest {
	req.BatchSize = p.BatchSize
	req.LearningRate = p.LearningRate
	req.Optimizer = p.Optimizer
	req.StepsPerEpoch = p.StepsPerEpoch
	req.TotalSteps = p.TotalSteps
	req.Epochs = p.Epochs
	if p.LoRARank > 0 {
		req.LoRARank = p.LoRARank
	}
	if p.GPUMemoryGB > 0 {
		req.GPUMemoryGB = p.GPUMemoryGB
	}
	return req
}

// Result of a successful run.
type Result struct {
	Parameters ResolvedParameters `json:"parameters"`
	Trace      []TraceStep        `json:"trace"`
	Hints      []Hint             `json:"hints"`
}

// CountBySeverity returns the number of hints per severity.
func (r *Result) CountBySeverity() map[Severity]int {
	counts := make(map[Severity]int)
	for _, h := range r.Hints {
		counts[h.Severity]++
	}
	return counts
}
