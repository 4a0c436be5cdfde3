// Package calculators provides the Calculator implementations of the training-parameter estimation.
//
// Each calculator resolves one decision of the pipeline (batch size, optimizer, LoRA rank, steps per
// epoch, schedule, learning rate, advisories, time and cost). NewEngine registers them in the order
// the decisions depend on each other.
package calculators
