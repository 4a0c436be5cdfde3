package events

type EstimationEvent struct {
	RequestID        string         `json:"request_id,omitempty"`
	ModelType        string         `json:"model_type"`
	Hardware         string         `json:"hardware"`
	AssetCount       int            `json:"asset_count"`
	LoRA             bool           `json:"lora"`
	TotalSteps       int            `json:"total_steps"`
	EstimatedMinutes float64        `json:"estimated_minutes"`
	EstimatedCostUSD *float64       `json:"estimated_cost_usd"`
	Hints            map[string]int `json:"hints,omitempty"`
}

type ReportEvent struct {
	RequestID string `json:"request_id,omitempty"`
	Format    string `json:"format"`
	SizeBytes int    `json:"size_bytes"`
}
