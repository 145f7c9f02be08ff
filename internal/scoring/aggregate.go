package scoring

import (
	"fmt"

	"github.com/launchpick/launchpick/internal/config"
	"github.com/launchpick/launchpick/internal/model"
)

// Aggregator combines six dimension scores into one weighted total and a
// priority bucket. It is a pure function of its inputs: no I/O, no mutable
// state, safe for concurrent use.
type Aggregator struct {
	weights config.Weights
	bands   config.PriorityBands
}

// NewAggregator validates the tuning and returns an aggregator bound to it.
func NewAggregator(weights config.Weights, bands config.PriorityBands) (*Aggregator, error) {
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weights: %w", err)
	}
	if err := bands.Validate(); err != nil {
		return nil, fmt.Errorf("invalid priority bands: %w", err)
	}
	return &Aggregator{weights: weights, bands: bands}, nil
}

// Total computes the weighted sum of the six dimensions. With weights
// summing to 1.0 and every dimension in [0,100], the result is itself
// always in [0,100].
func (a *Aggregator) Total(s model.DimensionScores) float64 {
	return a.weights.MarketDemand*s.MarketDemand +
		a.weights.PainIntensity*s.PainIntensity +
		a.weights.MonetizationPotential*s.MonetizationPotential +
		a.weights.MarketGap*s.MarketGap +
		a.weights.TechnicalFeasibility*s.TechnicalFeasibility +
		a.weights.Simplicity*s.SimplicityScore
}

// Priority buckets a total score into its configured band.
func (a *Aggregator) Priority(total float64) model.Priority {
	switch {
	case total >= a.bands.Exceptional:
		return model.PriorityExceptional
	case total >= a.bands.Strong:
		return model.PriorityStrong
	case total >= a.bands.Viable:
		return model.PriorityViable
	case total >= a.bands.Monitor:
		return model.PriorityMonitor
	default:
		return model.PriorityReject
	}
}
