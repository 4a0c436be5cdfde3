package calculators

import (
	"github.com/kubev2v/training-planner/internal/estimation"
)

const (
	DefaultLoRALearningRate = 0.0004
	// DefaultLearningRate applies to model types without a table entry.
	DefaultLearningRate = 0.0001
)

// defaultLearningRates per model type for full training.
var defaultLearningRates = map[estimation.ModelType]float64{
	estimation.ModelTypeVAE:         0.0001,
	estimation.ModelTypeTransformer: 0.0001,
	estimation.ModelTypeResNet:      0.0001,
	estimation.ModelTypeCNN:         0.0001,
	estimation.ModelTypeMMDiT:       0.0001,
	estimation.ModelTypeDNN:         0.001,
}

var _ estimation.Calculator = (*LearningRate)(nil)

type LearningRate struct {
	loraRate float64
	fallback float64
	table    map[estimation.ModelType]float64
}

type LearningRateOption func(*LearningRate)

// WithModelLearningRate overrides the default rate of one model type.
func WithModelLearningRate(m estimation.ModelType, lr float64) LearningRateOption {
	return func(c *LearningRate) {
		c.table[m] = lr
	}
}

func NewLearningRate(opts ...LearningRateOption) *LearningRate {
	res := LearningRate{
		loraRate: DefaultLoRALearningRate,
		fallback: DefaultLearningRate,
		table:    make(map[estimation.ModelType]float64, len(defaultLearningRates)),
	}
	for m, lr := range defaultLearningRates {
		res.table[m] = lr
	}
	for _, opt := range opts {
		opt(&res)
	}
	return &res
}

func (c *LearningRate) Name() string { return "Learning Rate" }

func (c *LearningRate) Resolve(p *estimation.Plan) error {
	req := p.Request

	lr := req.LearningRate
	if lr <= 0 {
		lr = c.defaultFor(req)
	}

	p.Params.LearningRate = lr
	p.Record(estimation.NewTraceStep("Learning Rate", formatFloat(lr)))
	return nil
}

func (c *LearningRate) defaultFor(req estimation.TrainingRequest) float64 {
	if req.LoRA {
		return c.loraRate
	}
	if lr, found := c.table[req.ModelType]; found {
		return lr
	}
	return c.fallback
}
