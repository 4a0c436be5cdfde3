package calculators

import (
	"github.com/kubev2v/training-planner/internal/estimation"
)

const DefaultBatchSize = 1

var _ estimation.Calculator = (*BatchSize)(nil)

// BatchSize pins memory-bound regimes (LoRA, image models) to one sample per step and
// otherwise honors a positive override.
type BatchSize struct{}

func NewBatchSize() *BatchSize { return &BatchSize{} }

func (c *BatchSize) Name() string { return "Batch Size" }

func (c *BatchSize) Resolve(p *estimation.Plan) error {
	req := p.Request

	var label string
	bs := DefaultBatchSize
	switch {
	case req.LoRA:
		label = "Batch Size (LoRA Applied)"
	case req.ModelType.IsImage():
		label = "Batch Size (Image Model)"
	case req.BatchSize > 0:
		label = "Batch Size"
		bs = req.BatchSize
	default:
		label = "Batch Size (Default)"
	}

	p.Params.BatchSize = bs
	p.Record(estimation.NewTraceStep(label, itoa(bs)))
	return nil
}
