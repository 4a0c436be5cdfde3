package estimation

// Plan is the working state shared by the calculators of a single run.
type Plan struct {
	// Request is the caller's input. Calculators must treat it as read-only.
	Request TrainingRequest
	// Params accumulates the decisions made so far.
	Params ResolvedParameters

	trace []TraceStep
	hints []Hint
}

// NewPlan starts a plan for req.
func NewPlan(req TrainingRequest) *Plan {
	return &Plan{
		Request: req,
		trace:   make([]TraceStep, 0, 12),
		hints:   make([]Hint, 0, 4),
	}
}

// Record appends steps to the derivation trace.
func (p *Plan) Record(steps ...TraceStep) {
	p.trace = append(p.trace, steps...)
}

// Advise attaches a hint.
func (p *Plan) Advise(severity Severity, message string) {
	p.hints = append(p.hints, Hint{Message: message, Severity: severity})
}

func (p *Plan) Trace() []TraceStep {
	return append([]TraceStep(nil), p.trace...)
}

func (p *Plan) Hints() []Hint {
	return append([]Hint(nil), p.hints...)
}

// Result snapshots the plan.
func (p *Plan) Result() *Result {
	return &Result{
		Parameters: p.Params,
		Trace:      p.Trace(),
		Hints:      p.Hints(),
	}
}
