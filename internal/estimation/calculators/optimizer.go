package calculators

import (
	"github.com/kubev2v/training-planner/internal/estimation"
)

const (
	DefaultOptimizer = estimation.OptimizerAdamW
	// DefaultLoRAImageOptimizer is forced for LoRA training of image models.
	DefaultLoRAImageOptimizer = estimation.OptimizerAdamW8bit
)

var _ estimation.Calculator = (*OptimizerSelection)(nil)

type OptimizerSelection struct {
	fallback  estimation.Optimizer
	loraImage estimation.Optimizer
}

type OptimizerSelectionOption func(*OptimizerSelection)

// WithDefaultOptimizer sets the optimizer used when the caller does not choose one.
func WithDefaultOptimizer(o estimation.Optimizer) OptimizerSelectionOption {
	return func(c *OptimizerSelection) {
		c.fallback = o
	}
}

func NewOptimizerSelection(opts ...OptimizerSelectionOption) *OptimizerSelection {
	res := OptimizerSelection{
		fallback:  DefaultOptimizer,
		loraImage: DefaultLoRAImageOptimizer,
	}
	for _, opt := range opts {
		opt(&res)
	}
	return &res
}

func (c *OptimizerSelection) Name() string { return "Optimizer" }

func (c *OptimizerSelection) Resolve(p *estimation.Plan) error {
	req := p.Request

	label := "Optimizer"
	opt := c.fallback
	switch {
	case req.LoRA && req.ModelType.IsImage():
		label = "Optimizer (LoRA with Images)"
		opt = c.loraImage
	case req.Optimizer != "":
		opt = req.Optimizer
	}

	p.Params.Optimizer = opt
	p.Record(estimation.NewTraceStep(label, string(opt)))
	return nil
}
