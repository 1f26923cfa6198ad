package main

import (
	"math"
	"slices"

	"github.com/pthm-cable/swamp/config"
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

// Trial is one decoded parameter vector: the per-run probabilities plus a
// config carrying the snail parameters.
type Trial struct {
	ReproProb int
	PredProb  int
	Config    *config.Config
}

// NewParamVector creates the optimizable parameters. The probability bounds
// follow the configured sweep ranges.
func NewParamVector(base *config.Config) *ParamVector {
	s := base.Sweep
	mid := func(lo, hi int) float64 { return float64(lo+hi-1) / 2 }
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "repro_prob", Path: "sweep.repro", Min: float64(s.ReproStart), Max: float64(s.ReproEnd - 1), Default: mid(s.ReproStart, s.ReproEnd)},
			{Name: "pred_prob", Path: "sweep.pred", Min: float64(s.PredStart), Max: float64(s.PredEnd - 1), Default: mid(s.PredStart, s.PredEnd)},
			{Name: "maturity_age", Path: "maturityAge", Min: 1, Max: float64(max(base.MaxAge-1, 1)), Default: float64(base.MaturityAge)},
			{Name: "max_offspring", Path: "maxOffspring", Min: float64(base.MinOffspring), Max: float64(base.MinOffspring + 8), Default: float64(base.MaxOffspring)},
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
		if spec.Max == spec.Min {
			continue
		}
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

// Clamp ensures all values are within bounds and rounds them to the integers
// the simulation uses.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = math.Round(min(max(v[i], spec.Min), spec.Max))
	}
	return clamped
}

// Decode turns raw values into a trial on a copy of base.
// Order must match Specs order.
func (pv *ParamVector) Decode(base *config.Config, values []float64) Trial {
	clamped := pv.Clamp(values)

	cfg := *base
	cfg.Regions = slices.Clone(base.Regions)
	cfg.MaturityAge = int(clamped[2])
	cfg.MaxOffspring = int(clamped[3])

	return Trial{
		ReproProb: int(clamped[0]),
		PredProb:  int(clamped[1]),
		Config:    &cfg,
	}
}

// Apply writes a trial back into a config so it can be saved. The sweep
// ranges collapse to the trial's probabilities.
func (t Trial) Apply() *config.Config {
	cfg := *t.Config
	cfg.Sweep.ReproStart, cfg.Sweep.ReproEnd = t.ReproProb, t.ReproProb+1
	cfg.Sweep.PredStart, cfg.Sweep.PredEnd = t.PredProb, t.PredProb+1
	return &cfg
}
