package calculators

import (
	"fmt"

	"github.com/kubev2v/training-planner/internal/estimation"
	"github.com/kubev2v/training-planner/internal/hardware"
)

// DefaultLocalTimePerStepMinutes is the assumed step time when training locally.
const DefaultLocalTimePerStepMinutes = 0.1

var (
	_ estimation.Calculator = (*TimeProjection)(nil)
	_ estimation.Calculator = (*CostProjection)(nil)
)

// TimeProjection projects wall-clock minutes from the step budget and the hardware's step time.
type TimeProjection struct {
	catalog      *hardware.Catalog
	localMinutes float64
}

type TimeProjectionOption func(*TimeProjection)

func WithLocalTimePerStep(minutes float64) TimeProjectionOption {
	return func(c *TimeProjection) {
		c.localMinutes = minutes
	}
}

func NewTimeProjection(catalog *hardware.Catalog, opts ...TimeProjectionOption) *TimeProjection {
	res := TimeProjection{catalog: catalog, localMinutes: DefaultLocalTimePerStepMinutes}
	for _, opt := range opts {
		opt(&res)
	}
	return &res
}

func (c *TimeProjection) Name() string { return "Time Projection" }

func (c *TimeProjection) Resolve(p *estimation.Plan) error {
	key := p.Request.Hardware

	label := fmt.Sprintf("Estimated Time per Step (%s)", key)
	perStep := c.localMinutes
	if key.IsLocal() {
		label = "Estimated Time per Step (Local)"
	} else {
		tier, found := c.catalog.Lookup(key)
		if !found {
			return estimation.NewErrUnknownHardwareKey(key)
		}
		perStep = tier.TimePerStepMinutes
	}

	steps := p.Params.TotalSteps
	minutes := round2(float64(steps) * perStep)

	p.Params.EstimatedMinutes = minutes
	p.Record(
		estimation.NewTraceStep(label, formatFloat(perStep), estimation.WithUnit("minutes")),
		estimation.NewTraceStep("Estimated Total Time", formatFixed2(minutes),
			estimation.WithExpression(
				fmt.Sprintf("%d * %s", steps, formatFloat(perStep)),
				fmt.Sprintf(`%d \times %s`, steps, formatFloat(perStep)),
			),
			estimation.WithUnit("minutes"),
		),
	)
	return nil
}

// CostProjection prices the projected minutes at the tier's hourly rate. Local training has no cost.
type CostProjection struct {
	catalog *hardware.Catalog
}

func NewCostProjection(catalog *hardware.Catalog) *CostProjection {
	return &CostProjection{catalog: catalog}
}

func (c *CostProjection) Name() string { return "Cost Projection" }

func (c *CostProjection) Resolve(p *estimation.Plan) error {
	key := p.Request.Hardware
	if key.IsLocal() {
		p.Params.EstimatedCostUSD = nil
		return nil
	}
	tier, found := c.catalog.Lookup(key)
	if !found {
		return estimation.NewErrUnknownHardwareKey(key)
	}

	hours := p.Params.EstimatedMinutes / 60
	cost := round2(hours * tier.CostPerHourUSD)

	p.Params.EstimatedCostUSD = &cost
	p.Record(estimation.NewTraceStep("Estimated Cost", formatFixed2(cost),
		estimation.WithExpression(
			fmt.Sprintf("%s * %s", formatFixed2(hours), formatFloat(tier.CostPerHourUSD)),
			fmt.Sprintf(`%s \times %s`, formatFixed2(hours), formatFloat(tier.CostPerHourUSD)),
		),
		estimation.WithUnit("USD"),
	))
	return nil
}
