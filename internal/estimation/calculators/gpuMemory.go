package calculators

import (
	"github.com/kubev2v/training-planner/internal/estimation"
	"github.com/kubev2v/training-planner/internal/hardware"
)

const MsgInvalidGPUMemory = "Please enter a valid GPU memory size."

// Compile-time assertion that GPUMemoryCheck implements the Calculator interface.
var _ estimation.Calculator = (*GPUMemoryCheck)(nil)

// GPUMemoryCheck resolves the GPU memory available for training and warns when it is missing
// where it matters: local training or advanced mode.
type GPUMemoryCheck struct {
	catalog *hardware.Catalog
	enabled bool
}

// GPUMemoryCheckOption configuration option for the calculator
type GPUMemoryCheckOption func(*GPUMemoryCheck)

// WithGPUMemoryValidation toggles the missing-memory advisory. The memory is resolved either way.
func WithGPUMemoryValidation(enabled bool) GPUMemoryCheckOption {
	return func(c *GPUMemoryCheck) {
		c.enabled = enabled
	}
}

func NewGPUMemoryCheck(catalog *hardware.Catalog, opts ...GPUMemoryCheckOption) *GPUMemoryCheck {
	res := GPUMemoryCheck{catalog: catalog, enabled: true}
	for _, opt := range opts {
		opt(&res)
	}
	return &res
}

func (c *GPUMemoryCheck) Name() string { return "GPU Memory" }

// Resolve falls back to the tier's GPU memory when the caller did not provide one.
func (c *GPUMemoryCheck) Resolve(p *estimation.Plan) error {
	req := p.Request

	mem := req.GPUMemoryGB
	if mem <= 0 {
		if tier, found := c.catalog.Lookup(req.Hardware); found {
			mem = tier.GPUMemoryGB
		}
	}
	if mem > 0 {
		p.Params.GPUMemoryGB = mem
	}

	if c.enabled && (req.Advanced || req.Hardware.IsLocal()) && mem <= 0 {
		p.Advise(estimation.SeverityError, MsgInvalidGPUMemory)
	}
	return nil
}
