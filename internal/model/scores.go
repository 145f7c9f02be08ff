package model

// DimensionScores holds the six independent 0-100 quality axes scored per
// candidate. All but SimplicityScore come from the signal extractor;
// SimplicityScore is set by the simplicity gate.
type DimensionScores struct {
	MarketDemand          float64
	PainIntensity         float64
	MonetizationPotential float64
	MarketGap             float64
	TechnicalFeasibility  float64
	SimplicityScore       float64
}

// Priority buckets a total score into a ranking band.
type Priority string

// Priority band constants, highest first.
const (
	PriorityExceptional Priority = "EXCEPTIONAL"
	PriorityStrong      Priority = "STRONG"
	PriorityViable      Priority = "VIABLE"
	PriorityMonitor     Priority = "MONITOR"
	PriorityReject      Priority = "REJECT"
)
