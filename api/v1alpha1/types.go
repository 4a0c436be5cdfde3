package v1alpha1

// Severity of a Hint: info, warning or error.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

type ReportFormat string

const (
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatHTML ReportFormat = "html"
	ReportFormatXLSX ReportFormat = "xlsx"
)

// ImageGeometry is only consulted, and only validated, in advanced mode.
type ImageGeometry struct {
	Width         int `json:"width"`
	Height        int `json:"height"`
	Channels      int `json:"channels"`
	PrecisionBits int `json:"precisionBits"`
}

// EstimationRequest is the body of POST /api/v1/estimations. Optional numeric overrides
// are left unset (or set to 0) to let the planner choose.
type EstimationRequest struct {
	AssetCount    int            `json:"assetCount" validate:"lte=1000000000"`
	ModelType     string         `json:"modelType" validate:"model_type"`
	Lora          bool           `json:"lora,omitempty"`
	LoraRank      *int           `json:"loraRank,omitempty" validate:"omitempty,gte=0,lte=1000000000"`
	Finetune      bool           `json:"finetune,omitempty"`
	Advanced      bool           `json:"advanced,omitempty"`
	Image         *ImageGeometry `json:"image,omitempty" validate:"-"`
	GpuMemoryGb   *float64       `json:"gpuMemoryGb,omitempty" validate:"omitempty,gte=0"`
	Hardware      *string        `json:"hardware,omitempty" validate:"omitempty,hardware"`
	BatchSize     *int           `json:"batchSize,omitempty" validate:"omitempty,gte=0,lte=1000000000"`
	LearningRate  *float64       `json:"learningRate,omitempty" validate:"omitempty,gte=0"`
	TotalSteps    *int           `json:"totalSteps,omitempty" validate:"omitempty,gte=0,lte=1000000000"`
	Epochs        *int           `json:"epochs,omitempty" validate:"omitempty,gte=0,lte=1000000000"`
	StepsPerEpoch *int           `json:"stepsPerEpoch,omitempty" validate:"omitempty,gte=0,lte=1000000000"`
	Optimizer     *string        `json:"optimizer,omitempty" validate:"omitempty,optimizer"`
}

type ResolvedParameters struct {
	BatchSize        int      `json:"batchSize"`
	LearningRate     float64  `json:"learningRate"`
	Optimizer        string   `json:"optimizer"`
	LoraRank         *int     `json:"loraRank,omitempty"`
	StepsPerEpoch    int      `json:"stepsPerEpoch"`
	TotalSteps       int      `json:"totalSteps"`
	Epochs           int      `json:"epochs"`
	GpuMemoryGb      *float64 `json:"gpuMemoryGb,omitempty"`
	EstimatedMinutes float64  `json:"estimatedMinutes"`
	EstimatedCostUsd *float64 `json:"estimatedCostUsd"`
}

type TraceStep struct {
	Label      string  `json:"label"`
	Expression *string `json:"expression,omitempty"`
	Value      string  `json:"value"`
	Unit       *string `json:"unit,omitempty"`
	Tex        string  `json:"tex"`
}

type Hint struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

type EstimationResult struct {
	Parameters ResolvedParameters `json:"parameters"`
	Trace      []TraceStep        `json:"trace"`
	Hints      []Hint             `json:"hints"`
}

type HardwareTier struct {
	Key                string  `json:"key"`
	Description        *string `json:"description,omitempty"`
	TimePerStepMinutes float64 `json:"timePerStepMinutes"`
	CostPerHourUsd     float64 `json:"costPerHourUsd"`
	GpuMemoryGb        float64 `json:"gpuMemoryGb"`
}

type HardwareTierList = []HardwareTier

type Info struct {
	VersionName string  `json:"versionName"`
	GitCommit   string  `json:"gitCommit"`
	BuildDate   *string `json:"buildDate,omitempty"`
}

type Error struct {
	Message   string  `json:"message"`
	RequestId *string `json:"requestId,omitempty"`
}
