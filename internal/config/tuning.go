package config

import (
	"fmt"
	"math"

	"github.com/spf13/viper"
)

// weightTolerance is the allowed floating-point slack when checking that
// dimension weights sum to 1.0.
const weightTolerance = 1e-9

// Weights is the immutable weight table for the dimension aggregator.
// Each run constructs its own copy so concurrent batches can score with
// different tunings without interference.
type Weights struct {
	MarketDemand          float64
	PainIntensity         float64
	MonetizationPotential float64
	MarketGap             float64
	TechnicalFeasibility  float64
	Simplicity            float64
}

// DefaultWeights returns the production weight table.
func DefaultWeights() Weights {
	return Weights{
		MarketDemand:          0.20,
		PainIntensity:         0.25,
		MonetizationPotential: 0.20,
		MarketGap:             0.10,
		TechnicalFeasibility:  0.05,
		Simplicity:            0.20,
	}
}

// Validate checks that the weights form a proper convex combination.
func (w Weights) Validate() error {
	values := []float64{
		w.MarketDemand, w.PainIntensity, w.MonetizationPotential,
		w.MarketGap, w.TechnicalFeasibility, w.Simplicity,
	}
	sum := 0.0
	for _, v := range values {
		if v < 0 {
			return fmt.Errorf("dimension weights must be non-negative, got %v", v)
		}
		sum += v
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("dimension weights must sum to 1.0, got %v", sum)
	}
	return nil
}

// PriorityBands holds the lower boundaries of each priority bucket.
// Scores below Monitor fall into the reject band. The observed score
// distribution is heavily right-skewed, so these are tunable rather than
// constants: the 40-49 band is where most high-quality candidates land.
type PriorityBands struct {
	Exceptional float64
	Strong      float64
	Viable      float64
	Monitor     float64
}

// DefaultPriorityBands returns the default band boundaries.
func DefaultPriorityBands() PriorityBands {
	return PriorityBands{
		Exceptional: 70,
		Strong:      40,
		Viable:      25,
		Monitor:     10,
	}
}

// Validate checks that the bands strictly descend and stay within [0,100].
func (b PriorityBands) Validate() error {
	if !(b.Exceptional > b.Strong && b.Strong > b.Viable && b.Viable > b.Monitor) {
		return fmt.Errorf("priority bands must strictly descend: %+v", b)
	}
	if b.Exceptional > 100 || b.Monitor < 0 {
		return fmt.Errorf("priority bands must lie within [0,100]: %+v", b)
	}
	return nil
}

// TrustBoundaries holds the lower boundaries of the trust level buckets
// plus the activity threshold above which a community is considered
// highly active (used for badge derivation).
type TrustBoundaries struct {
	VeryHigh     float64
	High         float64
	Medium       float64
	HighlyActive float64
}

// DefaultTrustBoundaries returns the default trust bucket boundaries.
func DefaultTrustBoundaries() TrustBoundaries {
	return TrustBoundaries{
		VeryHigh:     80,
		High:         60,
		Medium:       40,
		HighlyActive: 70,
	}
}

// Validate checks that the boundaries form a total, non-overlapping
// partition of [0,100].
func (t TrustBoundaries) Validate() error {
	if !(t.VeryHigh > t.High && t.High > t.Medium) {
		return fmt.Errorf("trust boundaries must strictly descend: %+v", t)
	}
	if t.VeryHigh > 100 || t.Medium < 0 {
		return fmt.Errorf("trust boundaries must lie within [0,100]: %+v", t)
	}
	if t.HighlyActive < 0 || t.HighlyActive > 100 {
		return fmt.Errorf("highly-active threshold must lie within [0,100]: %v", t.HighlyActive)
	}
	return nil
}

// Admission configures the cost-control gate in front of enrichment.
// When RequireTrust is set, a candidate must clear both thresholds.
type Admission struct {
	ScoreThreshold float64
	TrustThreshold float64
	RequireTrust   bool
}

// DefaultAdmission returns the default admission configuration.
func DefaultAdmission() Admission {
	return Admission{
		ScoreThreshold: 50.0,
		TrustThreshold: 40.0,
		RequireTrust:   false,
	}
}

// Validate checks threshold ranges.
func (a Admission) Validate() error {
	if a.ScoreThreshold < 0 || a.ScoreThreshold > 100 {
		return fmt.Errorf("admission score threshold must lie within [0,100]: %v", a.ScoreThreshold)
	}
	if a.TrustThreshold < 0 || a.TrustThreshold > 100 {
		return fmt.Errorf("admission trust threshold must lie within [0,100]: %v", a.TrustThreshold)
	}
	return nil
}

// Pipeline bundles every tunable the scoring pipeline consumes. It is
// constructed once per run and passed to each stage at construction time.
type Pipeline struct {
	Weights    Weights
	Bands      PriorityBands
	Trust      TrustBoundaries
	Admission  Admission
	Workers    int
	MaxEnrich  int // Bounded concurrency for enrichment fan-out
	MaxRetries int // Per-record persistence retry attempts
}

// DefaultPipeline returns the default pipeline tuning.
func DefaultPipeline() Pipeline {
	return Pipeline{
		Weights:    DefaultWeights(),
		Bands:      DefaultPriorityBands(),
		Trust:      DefaultTrustBoundaries(),
		Admission:  DefaultAdmission(),
		Workers:    8,
		MaxEnrich:  4,
		MaxRetries: 3,
	}
}

// Validate checks every tunable section.
func (p Pipeline) Validate() error {
	if err := p.Weights.Validate(); err != nil {
		return err
	}
	if err := p.Bands.Validate(); err != nil {
		return err
	}
	if err := p.Trust.Validate(); err != nil {
		return err
	}
	if err := p.Admission.Validate(); err != nil {
		return err
	}
	if p.Workers <= 0 {
		return fmt.Errorf("workers must be positive: %d", p.Workers)
	}
	if p.MaxEnrich <= 0 {
		return fmt.Errorf("max enrichment concurrency must be positive: %d", p.MaxEnrich)
	}
	return nil
}

// PipelineFromViper loads the pipeline tuning from the active viper
// configuration, falling back to defaults for unset keys.
func PipelineFromViper() (Pipeline, error) {
	p := DefaultPipeline()

	setFloat := func(key string, dst *float64) {
		if viper.IsSet(key) {
			*dst = viper.GetFloat64(key)
		}
	}
	setInt := func(key string, dst *int) {
		if viper.IsSet(key) {
			*dst = viper.GetInt(key)
		}
	}

	setFloat("scoring.weights.market_demand", &p.Weights.MarketDemand)
	setFloat("scoring.weights.pain_intensity", &p.Weights.PainIntensity)
	setFloat("scoring.weights.monetization_potential", &p.Weights.MonetizationPotential)
	setFloat("scoring.weights.market_gap", &p.Weights.MarketGap)
	setFloat("scoring.weights.technical_feasibility", &p.Weights.TechnicalFeasibility)
	setFloat("scoring.weights.simplicity", &p.Weights.Simplicity)

	setFloat("scoring.bands.exceptional", &p.Bands.Exceptional)
	setFloat("scoring.bands.strong", &p.Bands.Strong)
	setFloat("scoring.bands.viable", &p.Bands.Viable)
	setFloat("scoring.bands.monitor", &p.Bands.Monitor)

	setFloat("trust.boundaries.very_high", &p.Trust.VeryHigh)
	setFloat("trust.boundaries.high", &p.Trust.High)
	setFloat("trust.boundaries.medium", &p.Trust.Medium)
	setFloat("trust.boundaries.highly_active", &p.Trust.HighlyActive)

	setFloat("admission.score_threshold", &p.Admission.ScoreThreshold)
	setFloat("admission.trust_threshold", &p.Admission.TrustThreshold)
	if viper.IsSet("admission.require_trust") {
		p.Admission.RequireTrust = viper.GetBool("admission.require_trust")
	}

	setInt("pipeline.workers", &p.Workers)
	setInt("pipeline.max_enrich", &p.MaxEnrich)
	setInt("pipeline.max_retries", &p.MaxRetries)

	if err := p.Validate(); err != nil {
		return Pipeline{}, err
	}
	return p, nil
}
