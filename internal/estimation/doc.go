// Package estimation resolves a consistent set of training hyperparameters for a TrainingRequest.
//
// Each decision (batch size, optimizer, schedule, learning rate, projections) is encapsulated in one
// Calculator. The Engine runs the calculators in registration order against a shared Plan, which
// collects the resolved parameters, the derivation trace and the advisory hints.
package estimation
