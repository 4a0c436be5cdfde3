package calculators

import (
	"fmt"

	"github.com/kubev2v/training-planner/internal/estimation"
)

const (
	DefaultLoRATotalSteps = 1000
	DefaultTotalSteps     = 3000

	MsgInconsistentSchedule = "Total Steps and Epochs are inconsistent; adjusting Total Steps."
)

var _ estimation.Calculator = (*Schedule)(nil)

// Schedule reconciles total steps and epochs. When both are given and disagree, epochs win
// and total steps are recomputed.
type Schedule struct {
	loraSteps int
	steps     int
}

type ScheduleOption func(*Schedule)

// WithDefaultTotalSteps sets the step budget used when neither total steps nor epochs are given.
func WithDefaultTotalSteps(lora, full int) ScheduleOption {
	return func(c *Schedule) {
		c.loraSteps = lora
		c.steps = full
	}
}

func NewSchedule(opts ...ScheduleOption) *Schedule {
	res := Schedule{
		loraSteps: DefaultLoRATotalSteps,
		steps:     DefaultTotalSteps,
	}
	for _, opt := range opts {
		opt(&res)
	}
	return &res
}

func (c *Schedule) Name() string { return "Schedule" }

func (c *Schedule) Resolve(p *estimation.Plan) error {
	req := p.Request
	spe := p.Params.StepsPerEpoch
	if spe <= 0 {
		return fmt.Errorf("steps per epoch must be resolved before the schedule")
	}

	var totalSteps, epochs int
	switch {
	case req.TotalSteps > 0 && req.Epochs > 0:
		totalSteps, epochs = req.TotalSteps, req.Epochs
		expected, ok := mulInt(epochs, spe)
		if !ok {
			return estimation.NewErrScheduleOverflow(epochs, spe)
		}
		if expected != totalSteps {
			p.Advise(estimation.SeverityWarning, MsgInconsistentSchedule)
			totalSteps = expected
			p.Record(estimation.NewTraceStep("Adjusted Total Steps", itoa(totalSteps), multiply(epochs, spe)))
		}
		p.Record(
			estimation.NewTraceStep("Total Steps", itoa(totalSteps)),
			estimation.NewTraceStep("Epochs", itoa(epochs)),
		)
	case req.TotalSteps > 0:
		totalSteps = req.TotalSteps
		epochs = ceilDiv(totalSteps, spe)
		p.Record(
			estimation.NewTraceStep("Total Steps", itoa(totalSteps)),
			estimation.NewTraceStep("Epochs", itoa(epochs), ceiling(totalSteps, spe)),
		)
	case req.Epochs > 0:
		epochs = req.Epochs
		var ok bool
		if totalSteps, ok = mulInt(epochs, spe); !ok {
			return estimation.NewErrScheduleOverflow(epochs, spe)
		}
		p.Record(
			estimation.NewTraceStep("Epochs", itoa(epochs)),
			estimation.NewTraceStep("Total Steps", itoa(totalSteps), multiply(epochs, spe)),
		)
	default:
		label := "Total Steps (Default)"
		totalSteps = c.steps
		if req.LoRA {
			label = "Total Steps (LoRA Default)"
			totalSteps = c.loraSteps
		}
		epochs = ceilDiv(totalSteps, spe)
		p.Record(
			estimation.NewTraceStep(label, itoa(totalSteps)),
			estimation.NewTraceStep("Epochs", itoa(epochs), ceiling(totalSteps, spe)),
		)
	}

	p.Params.TotalSteps = totalSteps
	p.Params.Epochs = epochs
	return nil
}

func multiply(a, b int) estimation.TraceOption {
	return estimation.WithExpression(
		fmt.Sprintf("%d * %d", a, b),
		fmt.Sprintf(`%d \times %d`, a, b),
	)
}

func ceiling(a, b int) estimation.TraceOption {
	return estimation.WithExpression(
		fmt.Sprintf("ceil(%d / %d)", a, b),
		fmt.Sprintf(`\left\lceil \frac{%d}{%d} \right\rceil`, a, b),
	)
}
