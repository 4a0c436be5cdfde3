package calculators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubev2v/training-planner/internal/estimation"
	"github.com/kubev2v/training-planner/internal/hardware"
)

func resolve(t *testing.T, c estimation.Calculator, p *estimation.Plan) *estimation.Plan {
	t.Helper()
	require.NoError(t, c.Resolve(p))
	return p
}

func TestBatchSize(t *testing.T) {
	tests := []struct {
		name      string
		req       estimation.TrainingRequest
		wantBS    int
		wantLabel string
	}{
		{"lora ignores override", estimation.TrainingRequest{LoRA: true, ModelType: estimation.ModelTypeDNN, BatchSize: 32}, 1, "Batch Size (LoRA Applied)"},
		{"image model ignores override", estimation.TrainingRequest{ModelType: estimation.ModelTypeResNet, BatchSize: 32}, 1, "Batch Size (Image Model)"},
		{"dnn honors override", estimation.TrainingRequest{ModelType: estimation.ModelTypeDNN, BatchSize: 32}, 32, "Batch Size"},
		{"dnn without override", estimation.TrainingRequest{ModelType: estimation.ModelTypeDNN}, 1, "Batch Size (Default)"},
		{"negative override is unset", estimation.TrainingRequest{ModelType: estimation.ModelTypeDNN, BatchSize: -4}, 1, "Batch Size (Default)"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			p := resolve(t, NewBatchSize(), estimation.NewPlan(tc.req))
			assert.Equal(t, tc.wantBS, p.Params.BatchSize)
			assert.Equal(t, tc.wantLabel, p.Trace()[0].Label)
		})
	}
}

func TestOptimizerSelection(t *testing.T) {
	tests := []struct {
		name string
		req  estimation.TrainingRequest
		want estimation.Optimizer
	}{
		{"lora image forces 8bit", estimation.TrainingRequest{LoRA: true, ModelType: estimation.ModelTypeCNN, Optimizer: estimation.OptimizerLion}, estimation.OptimizerAdamW8bit},
		{"lora non-image keeps choice", estimation.TrainingRequest{LoRA: true, ModelType: estimation.ModelTypeDNN, Optimizer: estimation.OptimizerLion}, estimation.OptimizerLion},
		{"caller choice", estimation.TrainingRequest{ModelType: estimation.ModelTypeVAE, Optimizer: estimation.OptimizerProdigy}, estimation.OptimizerProdigy},
		{"default", estimation.TrainingRequest{ModelType: estimation.ModelTypeVAE}, estimation.OptimizerAdamW},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			p := resolve(t, NewOptimizerSelection(), estimation.NewPlan(tc.req))
			assert.Equal(t, tc.want, p.Params.Optimizer)
		})
	}

	p := resolve(t, NewOptimizerSelection(WithDefaultOptimizer(estimation.OptimizerAdafactor)), estimation.NewPlan(estimation.TrainingRequest{}))
	assert.Equal(t, estimation.OptimizerAdafactor, p.Params.Optimizer)
}

func TestLoRARank(t *testing.T) {
	p := resolve(t, NewLoRARank(), estimation.NewPlan(estimation.TrainingRequest{}))
	assert.Zero(t, p.Params.LoRARank)
	assert.Empty(t, p.Trace())

	p = resolve(t, NewLoRARank(), estimation.NewPlan(estimation.TrainingRequest{LoRA: true}))
	assert.Equal(t, 32, p.Params.LoRARank)

	p = resolve(t, NewLoRARank(), estimation.NewPlan(estimation.TrainingRequest{LoRA: true, LoRARank: 128}))
	assert.Equal(t, 128, p.Params.LoRARank)
}

func TestStepsPerEpoch(t *testing.T) {
	p := estimation.NewPlan(estimation.TrainingRequest{AssetCount: 101})
	p.Params.BatchSize = 10
	resolve(t, NewStepsPerEpoch(), p)
	assert.Equal(t, 11, p.Params.StepsPerEpoch)
	assert.Equal(t, `\text{Steps per Epoch} = \left\lceil \frac{101}{10} \right\rceil = 11`, p.Trace()[0].TeX)

	p = estimation.NewPlan(estimation.TrainingRequest{AssetCount: 101, StepsPerEpoch: 3})
	p.Params.BatchSize = 10
	resolve(t, NewStepsPerEpoch(), p)
	assert.Equal(t, 3, p.Params.StepsPerEpoch, "explicit value is not cross-checked")

	p = estimation.NewPlan(estimation.TrainingRequest{AssetCount: 101})
	assert.Error(t, NewStepsPerEpoch().Resolve(p))
}

func TestLearningRate(t *testing.T) {
	tests := []struct {
		name string
		req  estimation.TrainingRequest
		want float64
	}{
		{"lora", estimation.TrainingRequest{LoRA: true, ModelType: estimation.ModelTypeDNN}, 0.0004},
		{"vae", estimation.TrainingRequest{ModelType: estimation.ModelTypeVAE}, 0.0001},
		{"mmdit", estimation.TrainingRequest{ModelType: estimation.ModelTypeMMDiT}, 0.0001},
		{"dnn", estimation.TrainingRequest{ModelType: estimation.ModelTypeDNN}, 0.001},
		{"unknown model", estimation.TrainingRequest{ModelType: "GAN"}, 0.0001},
		{"override wins over lora", estimation.TrainingRequest{LoRA: true, LearningRate: 0.02}, 0.02},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			p := resolve(t, NewLearningRate(), estimation.NewPlan(tc.req))
			assert.Equal(t, tc.want, p.Params.LearningRate)
		})
	}

	p := resolve(t, NewLearningRate(WithModelLearningRate(estimation.ModelTypeDNN, 0.005)),
		estimation.NewPlan(estimation.TrainingRequest{ModelType: estimation.ModelTypeDNN}))
	assert.Equal(t, 0.005, p.Params.LearningRate)
	assert.Equal(t, 0.001, defaultLearningRates[estimation.ModelTypeDNN], "options must not leak into the shared table")
}

func TestAdvisors(t *testing.T) {
	lrCases := []struct {
		lr   float64
		want estimation.Hint
	}{
		{0.000001, estimation.Hint{Message: MsgLearningRateLow, Severity: estimation.SeverityWarning}},
		{0.00001, estimation.Hint{Message: MsgLearningRateTypical, Severity: estimation.SeverityInfo}},
		{0.01, estimation.Hint{Message: MsgLearningRateTypical, Severity: estimation.SeverityInfo}},
		{0.011, estimation.Hint{Message: MsgLearningRateHigh, Severity: estimation.SeverityError}},
	}
	for _, tc := range lrCases {
		p := estimation.NewPlan(estimation.TrainingRequest{})
		p.Params.LearningRate = tc.lr
		resolve(t, NewLearningRateAdvisor(), p)
		assert.Equal(t, []estimation.Hint{tc.want}, p.Hints(), "lr %v", tc.lr)
	}

	stepCases := []struct {
		steps int
		want  estimation.Hint
	}{
		{999, estimation.Hint{Message: MsgTotalStepsLow, Severity: estimation.SeverityWarning}},
		{1000, estimation.Hint{Message: MsgTotalStepsTypical, Severity: estimation.SeverityInfo}},
		{100000, estimation.Hint{Message: MsgTotalStepsTypical, Severity: estimation.SeverityInfo}},
		{100001, estimation.Hint{Message: MsgTotalStepsHigh, Severity: estimation.SeverityWarning}},
	}
	for _, tc := range stepCases {
		p := estimation.NewPlan(estimation.TrainingRequest{})
		p.Params.TotalSteps = tc.steps
		resolve(t, NewTotalStepsAdvisor(), p)
		assert.Equal(t, []estimation.Hint{tc.want}, p.Hints(), "steps %d", tc.steps)
	}
}

func TestGPUMemoryCheck(t *testing.T) {
	catalog := hardware.Default()
	missing := estimation.Hint{Message: MsgInvalidGPUMemory, Severity: estimation.SeverityError}

	tests := []struct {
		name      string
		req       estimation.TrainingRequest
		opts      []GPUMemoryCheckOption
		wantMem   float64
		wantHints []estimation.Hint
	}{
		{"local without memory", estimation.TrainingRequest{Hardware: hardware.LocalKey}, nil, 0, []estimation.Hint{missing}},
		{"local with memory", estimation.TrainingRequest{Hardware: hardware.LocalKey, GPUMemoryGB: 24}, nil, 24, nil},
		{"cloud fills from tier", estimation.TrainingRequest{Hardware: "p3.2xlarge", Advanced: true}, nil, 16, nil},
		{"cloud keeps caller memory", estimation.TrainingRequest{Hardware: "p3.2xlarge", GPUMemoryGB: 8}, nil, 8, nil},
		{"advanced on unknown tier", estimation.TrainingRequest{Hardware: "nope", Advanced: true}, nil, 0, []estimation.Hint{missing}},
		{"unknown tier in basic mode", estimation.TrainingRequest{Hardware: "nope"}, nil, 0, nil},
		{"check disabled", estimation.TrainingRequest{Hardware: hardware.LocalKey}, []GPUMemoryCheckOption{WithGPUMemoryValidation(false)}, 0, nil},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			p := resolve(t, NewGPUMemoryCheck(catalog, tc.opts...), estimation.NewPlan(tc.req))
			assert.Equal(t, tc.wantMem, p.Params.GPUMemoryGB)
			if len(tc.wantHints) == 0 {
				assert.Empty(t, p.Hints())
			} else {
				assert.Equal(t, tc.wantHints, p.Hints())
			}
		})
	}
}

func TestProjections(t *testing.T) {
	catalog := hardware.Default()

	p := estimation.NewPlan(estimation.TrainingRequest{Hardware: "p5.48xlarge"})
	p.Params.TotalSteps = 10000
	resolve(t, NewTimeProjection(catalog), p)
	resolve(t, NewCostProjection(catalog), p)
	assert.Equal(t, 30.0, p.Params.EstimatedMinutes)
	require.NotNil(t, p.Params.EstimatedCostUSD)
	assert.Equal(t, 18.6, *p.Params.EstimatedCostUSD)

	p = estimation.NewPlan(estimation.TrainingRequest{Hardware: hardware.LocalKey})
	p.Params.TotalSteps = 10
	resolve(t, NewTimeProjection(catalog), p)
	resolve(t, NewCostProjection(catalog), p)
	assert.Equal(t, 1.0, p.Params.EstimatedMinutes)
	assert.Nil(t, p.Params.EstimatedCostUSD)
	assert.Len(t, p.Trace(), 2, "no cost step for local training")

	p = estimation.NewPlan(estimation.TrainingRequest{Hardware: "nope"})
	assert.Error(t, NewCostProjection(catalog).Resolve(p))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 300.0, round2(3000*0.1))
	assert.Equal(t, 0.55, round2(8.0/60*4.10))
	assert.Equal(t, 3, ceilDiv(7, 3))
	assert.Equal(t, 1, ceilDiv(1, 1))
	assert.Equal(t, math.MaxInt/2+1, ceilDiv(math.MaxInt, 2))

	product, ok := mulInt(4, 5)
	assert.True(t, ok)
	assert.Equal(t, 20, product)
	_, ok = mulInt(math.MaxInt/2, 4)
	assert.False(t, ok)
	assert.Equal(t, "0.0004", formatFloat(0.0004))
}
