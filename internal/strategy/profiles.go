// Package strategy defines the named investment strategy profiles: fixed
// metric weight tables used by the recommendation engine. Weights are
// configuration, not computed values.
package strategy

import (
	"errors"
	"fmt"
)

// Metric keys weighted by the profiles.
const (
	MetricLocationScore  = "location_score"
	MetricRentalYield    = "rental_yield"
	MetricAffordability  = "affordability"
	MetricGrowth         = "growth_potential"
	MetricImprovement    = "improvement_potential"
	MetricSFHSuitability = "sfh_suitability"
)

// Canonical profile names.
const (
	YieldMaximizer = "yield_maximizer"
	CapitalGrowth  = "capital_growth"
	Balanced       = "balanced"
	ValueAdd       = "value_add"
	SFHFocused     = "sfh_focused"
)

// ErrUnknownStrategy is the one data-independent failure the engine
// surfaces to callers.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Profile is a named weighting scheme over the sub-metrics. Weights sum to
// 1.0 across each profile.
type Profile struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Weights     map[string]float64 `json:"weights"`
}

var profiles = map[string]Profile{
	YieldMaximizer: {
		Name:        YieldMaximizer,
		Description: "Maximize rental yield",
		Weights: map[string]float64{
			MetricLocationScore: 0.3,
			MetricRentalYield:   0.4,
			MetricAffordability: 0.2,
			MetricGrowth:        0.1,
		},
	},
	CapitalGrowth: {
		Name:        CapitalGrowth,
		Description: "Focus on capital appreciation",
		Weights: map[string]float64{
			MetricLocationScore: 0.3,
			MetricRentalYield:   0.1,
			MetricAffordability: 0.2,
			MetricGrowth:        0.4,
		},
	},
	Balanced: {
		Name:        Balanced,
		Description: "Balanced approach (yield and growth)",
		Weights: map[string]float64{
			MetricLocationScore: 0.3,
			MetricRentalYield:   0.25,
			MetricAffordability: 0.2,
			MetricGrowth:        0.25,
		},
	},
	ValueAdd: {
		Name:        ValueAdd,
		Description: "Properties with renovation/conversion potential",
		Weights: map[string]float64{
			MetricLocationScore: 0.3,
			MetricRentalYield:   0.15,
			MetricAffordability: 0.2,
			MetricGrowth:        0.15,
			MetricImprovement:   0.2,
		},
	},
	SFHFocused: {
		Name:        SFHFocused,
		Description: "Focus on Single Family Housing opportunities",
		Weights: map[string]float64{
			MetricLocationScore:  0.3,
			MetricRentalYield:    0.25,
			MetricAffordability:  0.2,
			MetricGrowth:         0.15,
			MetricSFHSuitability: 0.1,
		},
	},
}

// Get returns the profile for a name, or ErrUnknownStrategy.
func Get(name string) (Profile, error) {
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return p, nil
}

// All returns every profile in a fixed display order.
func All() []Profile {
	names := []string{YieldMaximizer, CapitalGrowth, Balanced, ValueAdd, SFHFocused}
	out := make([]Profile, 0, len(names))
	for _, n := range names {
		out = append(out, profiles[n])
	}
	return out
}
