package calculators

import (
	"github.com/kubev2v/training-planner/internal/estimation"
)

const DefaultLoRARank = 32

var _ estimation.Calculator = (*LoRARank)(nil)

// LoRARank resolves the adapter rank. It is a no-op unless LoRA is requested.
type LoRARank struct {
	rank int
}

type LoRARankOption func(*LoRARank)

func WithDefaultLoRARank(rank int) LoRARankOption {
	return func(c *LoRARank) {
		c.rank = rank
	}
}

func NewLoRARank(opts ...LoRARankOption) *LoRARank {
	res := LoRARank{rank: DefaultLoRARank}
	for _, opt := range opts {
		opt(&res)
	}
	return &res
}

func (c *LoRARank) Name() string { return "LoRA Rank" }

func (c *LoRARank) Resolve(p *estimation.Plan) error {
	if !p.Request.LoRA {
		return nil
	}
	rank := c.rank
	if p.Request.LoRARank > 0 {
		rank = p.Request.LoRARank
	}
	p.Params.LoRARank = rank
	p.Record(estimation.NewTraceStep("LoRA Rank", itoa(rank)))
	return nil
}
