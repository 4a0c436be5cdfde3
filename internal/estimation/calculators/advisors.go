package calculators

import (
	"github.com/kubev2v/training-planner/internal/estimation"
)

const (
	LowLearningRate  = 1e-5
	HighLearningRate = 1e-2
	LowTotalSteps    = 1000
	HighTotalSteps   = 100000

	MsgLearningRateLow     = "Learning rate is very low, training may be slow."
	MsgLearningRateHigh    = "Learning rate is high, may cause training instability."
	MsgLearningRateTypical = "Learning rate is within a typical range."
	MsgTotalStepsLow       = "Total steps are low, model may underfit."
	MsgTotalStepsHigh      = "Total steps are high, may cause overfitting or long training time."
	MsgTotalStepsTypical   = "Total steps are within a typical range."
)

var (
	_ estimation.Calculator = (*LearningRateAdvisor)(nil)
	_ estimation.Calculator = (*TotalStepsAdvisor)(nil)
)

// LearningRateAdvisor emits exactly one hint about the resolved learning rate.
type LearningRateAdvisor struct{}

func NewLearningRateAdvisor() *LearningRateAdvisor { return &LearningRateAdvisor{} }

func (c *LearningRateAdvisor) Name() string { return "Learning Rate Advisor" }

func (c *LearningRateAdvisor) Resolve(p *estimation.Plan) error {
	switch lr := p.Params.LearningRate; {
	case lr < LowLearningRate:
		p.Advise(estimation.SeverityWarning, MsgLearningRateLow)
	case lr > HighLearningRate:
		p.Advise(estimation.SeverityError, MsgLearningRateHigh)
	default:
		p.Advise(estimation.SeverityInfo, MsgLearningRateTypical)
	}
	return nil
}

// TotalStepsAdvisor emits exactly one hint about the resolved step budget.
type TotalStepsAdvisor struct{}

func NewTotalStepsAdvisor() *TotalStepsAdvisor { return &TotalStepsAdvisor{} }

func (c *TotalStepsAdvisor) Name() string { return "Total Steps Advisor" }

func (c *TotalStepsAdvisor) Resolve(p *estimation.Plan) error {
	switch steps := p.Params.TotalSteps; {
	case steps < LowTotalSteps:
		p.Advise(estimation.SeverityWarning, MsgTotalStepsLow)
	case steps > HighTotalSteps:
		p.Advise(estimation.SeverityWarning, MsgTotalStepsHigh)
	default:
		p.Advise(estimation.SeverityInfo, MsgTotalStepsTypical)
	}
	return nil
}
