package main

import (
	"github.com/pthm-cable/critters/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // CSV column and report name
	Path    string  // config path
	Min     float64 // lower bound
	Max     float64 // upper bound
	Default float64
}

// ParamVector holds the set of tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard parameter set, with defaults taken from base.
func NewParamVector(base *config.Config) *ParamVector {
	pv := &ParamVector{
		Specs: []ParamSpec{
			// Mutation
			{Name: "mutation_chance", Path: "mutation.chance", Min: 0.001, Max: 0.25},
			{Name: "nn_amount", Path: "mutation.nn_amount", Min: 0.01, Max: 0.5},
			{Name: "turn_rate_amount", Path: "mutation.turn_rate_amount", Min: 0.1, Max: 4.0},
			// Selection
			{Name: "selection_percentage", Path: "generation.selection_percentage", Min: 0.05, Max: 0.8},
			// Behaviour
			{Name: "burst_threshold", Path: "burst.threshold", Min: -0.5, Max: 0.95},
		},
	}
	defaults := pv.Clamp(pv.ExtractFromConfig(base))
	for i := range pv.Specs {
		pv.Specs[i].Default = defaults[i]
	}
	return pv
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to the [0,1] search space.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts search-space values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg.
// Order must match Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	i := 0
	cfg.Mutation.Chance = clamped[i]
	i++
	cfg.Mutation.NNAmount = clamped[i]
	i++
	cfg.Mutation.TurnRateAmount = clamped[i]
	i++
	cfg.Generation.SelectionPercentage = clamped[i]
	i++
	cfg.Burst.Threshold = clamped[i]
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Mutation.Chance,
		cfg.Mutation.NNAmount,
		cfg.Mutation.TurnRateAmount,
		cfg.Generation.SelectionPercentage,
		cfg.Burst.Threshold,
	}
}
