package hardware

import (
	"fmt"
	"sort"
)

// Key identifies a hardware tier in a Catalog.
type Key string

// LocalKey is the sentinel for training on the caller's own machine. It is never cost-estimated.
const LocalKey Key = "local"

func (k Key) String() string { return string(k) }

// IsLocal reports whether k is the local sentinel.
func (k Key) IsLocal() bool { return k == LocalKey }

// Tier is a named compute configuration with a fixed per-step time and hourly cost.
type Tier struct {
	Key                Key     `json:"key"`
	Description        string  `json:"description,omitempty"`
	TimePerStepMinutes float64 `json:"timePerStepMinutes"`
	CostPerHourUSD     float64 `json:"costPerHourUsd"`
	GPUMemoryGB        float64 `json:"gpuMemoryGb"`
}

func (t Tier) validate() error {
	if t.Key == "" {
		return fmt.Errorf("tier key must not be empty")
	}
	if t.TimePerStepMinutes <= 0 {
		return fmt.Errorf("tier %q: timePerStepMinutes must be > 0", t.Key)
	}
	if t.CostPerHourUSD < 0 {
		return fmt.Errorf("tier %q: costPerHourUsd must be >= 0", t.Key)
	}
	if t.GPUMemoryGB < 0 {
		return fmt.Errorf("tier %q: gpuMemoryGb must be >= 0", t.Key)
	}
	return nil
}

// Catalog is an immutable set of hardware tiers.
type Catalog struct {
	tiers map[Key]Tier
}

// builtinTiers are the tiers shipped with the planner. Values are deployment configuration
// and can be overridden with a catalog file.
var builtinTiers = []Tier{
	{Key: LocalKey, Description: "Local Training", TimePerStepMinutes: 0.1, CostPerHourUSD: 0, GPUMemoryGB: 0},
	{Key: "p3.2xlarge", Description: "AWS p3.2xlarge (1 x V100 GPU, 16 GB)", TimePerStepMinutes: 0.02, CostPerHourUSD: 3.06, GPUMemoryGB: 16},
	{Key: "p3.8xlarge", Description: "AWS p3.8xlarge (4 x V100 GPUs, 64 GB)", TimePerStepMinutes: 0.015, CostPerHourUSD: 12.24, GPUMemoryGB: 64},
	{Key: "p3.16xlarge", Description: "AWS p3.16xlarge (8 x V100 GPUs, 128 GB)", TimePerStepMinutes: 0.01, CostPerHourUSD: 24.48, GPUMemoryGB: 128},
	{Key: "p4d.24xlarge", Description: "AWS p4d.24xlarge (8 x A100 GPUs, 320 GB)", TimePerStepMinutes: 0.005, CostPerHourUSD: 32.77, GPUMemoryGB: 320},
	{Key: "g5.12xlarge", Description: "AWS g5.12xlarge (1 x A10G GPU, 24 GB)", TimePerStepMinutes: 0.008, CostPerHourUSD: 4.10, GPUMemoryGB: 24},
	{Key: "g5.48xlarge", Description: "AWS g5.48xlarge (4 x A10G GPUs, 96 GB)", TimePerStepMinutes: 0.006, CostPerHourUSD: 14.77, GPUMemoryGB: 96},
	{Key: "p5.48xlarge", Description: "AWS p5.48xlarge (8 x H100 GPUs, 640 GB)", TimePerStepMinutes: 0.003, CostPerHourUSD: 37.20, GPUMemoryGB: 640},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(builtinTiers...)
	if err != nil {
		panic(fmt.Sprintf("hardware: invalid builtin catalog: %v", err))
	}
	return c
}

// New builds a Catalog from the given tiers. Duplicate keys are rejected.
func New(tiers ...Tier) (*Catalog, error) {
	c := &Catalog{tiers: make(map[Key]Tier, len(tiers))}
	for _, t := range tiers {
		if err := t.validate(); err != nil {
			return nil, err
		}
		if _, found := c.tiers[t.Key]; found {
			return nil, fmt.Errorf("duplicate tier %q", t.Key)
		}
		c.tiers[t.Key] = t
	}
	return c, nil
}

// Merge returns a new Catalog holding c's tiers with the given tiers added or replacing existing ones.
func (c *Catalog) Merge(tiers ...Tier) (*Catalog, error) {
	merged := &Catalog{tiers: make(map[Key]Tier, len(c.tiers)+len(tiers))}
	for k, t := range c.tiers {
		merged.tiers[k] = t
	}
	for _, t := range tiers {
		if err := t.validate(); err != nil {
			return nil, err
		}
		merged.tiers[t.Key] = t
	}
	return merged, nil
}

// Lookup returns the tier registered under key.
func (c *Catalog) Lookup(key Key) (Tier, bool) {
	t, found := c.tiers[key]
	return t, found
}

// Has reports whether key is registered.
func (c *Catalog) Has(key Key) bool {
	_, found := c.tiers[key]
	return found
}

// Keys returns the registered keys, local first and the rest sorted.
func (c *Catalog) Keys() []Key {
	keys := make([]Key, 0, len(c.tiers))
	for k := range c.tiers {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].IsLocal() != keys[j].IsLocal() {
			return keys[i].IsLocal()
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Tiers returns the registered tiers in Keys order.
func (c *Catalog) Tiers() []Tier {
	tiers := make([]Tier, 0, len(c.tiers))
	for _, k := range c.Keys() {
		tiers = append(tiers, c.tiers[k])
	}
	return tiers
}

func (c *Catalog) Len() int { return len(c.tiers) }
