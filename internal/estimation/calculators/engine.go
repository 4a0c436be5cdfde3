package calculators

import (
	"github.com/kubev2v/training-planner/internal/estimation"
	"github.com/kubev2v/training-planner/internal/hardware"
)

type engineConfig struct {
	gpuMemoryCheck []GPUMemoryCheckOption
	optimizer      []OptimizerSelectionOption
	loraRank       []LoRARankOption
	schedule       []ScheduleOption
	learningRate   []LearningRateOption
	time           []TimeProjectionOption
}

// Option tunes the calculators registered by NewEngine.
type Option func(*engineConfig)

// WithGPUMemoryCheck toggles the advisory raised when GPU memory is missing.
func WithGPUMemoryCheck(enabled bool) Option {
	return func(c *engineConfig) {
		c.gpuMemoryCheck = append(c.gpuMemoryCheck, WithGPUMemoryValidation(enabled))
	}
}

func WithOptimizerOptions(opts ...OptimizerSelectionOption) Option {
	return func(c *engineConfig) { c.optimizer = append(c.optimizer, opts...) }
}

func WithLoRARankOptions(opts ...LoRARankOption) Option {
	return func(c *engineConfig) { c.loraRank = append(c.loraRank, opts...) }
}

func WithScheduleOptions(opts ...ScheduleOption) Option {
	return func(c *engineConfig) { c.schedule = append(c.schedule, opts...) }
}

func WithLearningRateOptions(opts ...LearningRateOption) Option {
	return func(c *engineConfig) { c.learningRate = append(c.learningRate, opts...) }
}

func WithTimeProjectionOptions(opts ...TimeProjectionOption) Option {
	return func(c *engineConfig) { c.time = append(c.time, opts...) }
}

// NewEngine returns an Engine with every calculator registered in dependency order.
func NewEngine(catalog *hardware.Catalog, opts ...Option) *estimation.Engine {
	cfg := engineConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	engine := estimation.NewEngine()
	engine.Register(NewGPUMemoryCheck(catalog, cfg.gpuMemoryCheck...))
	engine.Register(NewBatchSize())
	engine.Register(NewOptimizerSelection(cfg.optimizer...))
	engine.Register(NewLoRARank(cfg.loraRank...))
	engine.Register(NewStepsPerEpoch())
	engine.Register(NewSchedule(cfg.schedule...))
	engine.Register(NewLearningRate(cfg.learningRate...))
	engine.Register(NewLearningRateAdvisor())
	engine.Register(NewTotalStepsAdvisor())
	engine.Register(NewTimeProjection(catalog, cfg.time...))
	engine.Register(NewCostProjection(catalog))
	return engine
}

// Estimate runs req through a default engine built over catalog.
func Estimate(req estimation.TrainingRequest, catalog *hardware.Catalog, opts ...Option) (*estimation.Result, error) {
	return NewEngine(catalog, opts...).Run(req)
}
