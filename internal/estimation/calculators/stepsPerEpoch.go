package calculators

import (
	"fmt"

	"github.com/kubev2v/training-planner/internal/estimation"
)

var _ estimation.Calculator = (*StepsPerEpoch)(nil)

// StepsPerEpoch derives the number of batches per pass over the assets unless the caller fixed it.
// An explicit value is trusted as-is.
type StepsPerEpoch struct{}

func NewStepsPerEpoch() *StepsPerEpoch { return &StepsPerEpoch{} }

func (c *StepsPerEpoch) Name() string { return "Steps per Epoch" }

func (c *StepsPerEpoch) Resolve(p *estimation.Plan) error {
	if spe := p.Request.StepsPerEpoch; spe > 0 {
		p.Params.StepsPerEpoch = spe
		p.Record(estimation.NewTraceStep("Steps per Epoch", itoa(spe)))
		return nil
	}

	assets, bs := p.Request.AssetCount, p.Params.BatchSize
	if bs <= 0 {
		return fmt.Errorf("batch size must be resolved before steps per epoch")
	}
	spe := ceilDiv(assets, bs)

	p.Params.StepsPerEpoch = spe
	p.Record(estimation.NewTraceStep("Steps per Epoch", itoa(spe),
		estimation.WithExpression(
			fmt.Sprintf("ceil(%d / %d)", assets, bs),
			fmt.Sprintf(`\left\lceil \frac{%d}{%d} \right\rceil`, assets, bs),
		),
	))
	return nil
}
