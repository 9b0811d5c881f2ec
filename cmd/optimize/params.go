// Package main provides CMA-ES optimization for aged rule parameters.
package main

import (
	"math"

	"github.com/pthm-cable/agelife/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "min_lifespan", Path: "rule.min_lifespan", Min: 4, Max: 100, Default: 40},
			{Name: "max_lifespan", Path: "rule.max_lifespan", Min: 20, Max: 400, Default: 120},
			{Name: "max_spread", Path: "rule.max_spread", Min: 0, Max: 1.5, Default: 0.9},
			{Name: "min_spread", Path: "rule.min_spread", Min: 0, Max: 1.5, Default: 0.3},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
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
		if math.IsNaN(val) {
			val = spec.Default
		}
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

// ApplyToConfig applies parameter values to the rule section and forces the
// aged variant. Lifespans are rounded and max is kept above min.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) error {
	clamped := pv.Clamp(values)

	minLife := uint32(math.Round(clamped[0]))
	maxLife := uint32(math.Round(clamped[1]))
	if maxLife <= minLife {
		maxLife = minLife + 1
	}

	cfg.Rule.Variant = "aged"
	cfg.Rule.MinLifespan = minLife
	cfg.Rule.MaxLifespan = maxLife
	cfg.Rule.MaxSpread = clamped[2]
	cfg.Rule.MinSpread = clamped[3]
	return cfg.Recompute()
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		float64(cfg.Rule.MinLifespan),
		float64(cfg.Rule.MaxLifespan),
		cfg.Rule.MaxSpread,
		cfg.Rule.MinSpread,
	}
}
