package estimation

import (
	"fmt"

	"github.com/kubev2v/training-planner/internal/hardware"
)

// Engine orchestrates Calculator objects over a shared Plan.
// An Engine must not be modified once Run is in use; Run itself is safe for concurrent use.
type Engine struct {
	calculators []Calculator
}

// NewEngine creates a new Engine with no calculators registered.
func NewEngine() *Engine {
	return &Engine{
		calculators: make([]Calculator, 0),
	}
}

// Register adds a Calculator to participate in the estimation.
// Calculators are executed in the order they are registered.
// Register panics if a calculator with the same Name() is already registered.
func (e *Engine) Register(c Calculator) {
	for _, existing := range e.calculators {
		if existing.Name() == c.Name() {
			panic(fmt.Sprintf("estimation: calculator %q already registered", c.Name()))
		}
	}
	e.calculators = append(e.calculators, c)
}

// Names returns the registered calculator names in execution order.
func (e *Engine) Names() []string {
	names := make([]string, 0, len(e.calculators))
	for _, c := range e.calculators {
		names = append(names, c.Name())
	}
	return names
}

// Run admits the request and executes all registered calculators against it.
// No partial result is returned when the request is rejected or a calculator fails.
func (e *Engine) Run(req TrainingRequest) (*Result, error) {
	if req.AssetCount <= 0 {
		return nil, NewErrMissingAssetCount(req.AssetCount)
	}
	if req.Hardware == "" {
		req.Hardware = hardware.LocalKey
	}

	plan := NewPlan(req)
	for _, calc := range e.calculators {
		if err := calc.Resolve(plan); err != nil {
			return nil, fmt.Errorf("%s: %w", calc.Name(), err)
		}
	}
	return plan.Result(), nil
}
