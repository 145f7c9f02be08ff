package signal

import (
	"math"

	"github.com/launchpick/launchpick/internal/model"
)

// Extraction is the extractor's output: five dimension scores (simplicity
// is left zero for the gate to fill) plus the heuristic confidence in the
// extraction itself.
type Extraction struct {
	Scores     model.DimensionScores
	Confidence float64 // 0-100
}

// Extractor runs every registered source against a submission. It carries
// no mutable state, so a single instance is safe for concurrent use across
// batch workers.
type Extractor struct {
	demand       Source
	pain         Source
	monetization Source
	gap          Source
	feasibility  Source
}

// NewExtractor creates an extractor with the default heuristic sources.
func NewExtractor() *Extractor {
	return &Extractor{
		demand:       DemandSource{},
		pain:         PainSource{},
		monetization: MonetizationSource{},
		gap:          GapSource{},
		feasibility:  FeasibilitySource{},
	}
}

// NewExtractorWithSources creates an extractor with explicit source
// implementations, in dimension order: demand, pain, monetization, gap,
// feasibility.
func NewExtractorWithSources(demand, pain, monetization, gap, feasibility Source) *Extractor {
	return &Extractor{
		demand:       demand,
		pain:         pain,
		monetization: monetization,
		gap:          gap,
		feasibility:  feasibility,
	}
}

// Extract computes the five extracted dimension scores. It is total over
// its inputs: malformed or empty text produces low but valid scores.
func (e *Extractor) Extract(sub *model.Submission, cand *model.Candidate) Extraction {
	scores := model.DimensionScores{
		MarketDemand:          e.demand.Score(sub, cand),
		PainIntensity:         e.pain.Score(sub, cand),
		MonetizationPotential: e.monetization.Score(sub, cand),
		MarketGap:             e.gap.Score(sub, cand),
		TechnicalFeasibility:  e.feasibility.Score(sub, cand),
	}

	return Extraction{
		Scores:     scores,
		Confidence: e.confidence(sub, scores),
	}
}

// confidence estimates how much the heuristics had to work with: coverage
// of non-silent signals plus a length factor. Short posts score low
// confidence even when individual signals fire.
func (e *Extractor) confidence(sub *model.Submission, scores model.DimensionScores) float64 {
	fired := 0
	for _, v := range []float64{
		scores.MarketDemand, scores.PainIntensity, scores.MonetizationPotential,
		scores.MarketGap, scores.TechnicalFeasibility,
	} {
		if v > 0 {
			fired++
		}
	}
	coverage := float64(fired) / 5 * 70

	lengthFactor := math.Min(float64(wordCount(sub.Text()))/120, 1.0) * 30

	return clamp(coverage + lengthFactor)
}
