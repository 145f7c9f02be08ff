package model

import "time"

// OpportunityRecord is the unit of persistence: one scored candidate with
// its dimension scores and trust assessment, uniquely keyed by CandidateID.
// Records are created on the first scoring pass and updated in place on
// every subsequent pass over the same submission.
type OpportunityRecord struct {
	ProcessedAt time.Time
	Candidate   Candidate
	Scores      DimensionScores
	Trust       TrustAssessment
	Profile     *Profile // Set once enrichment succeeds
	TotalScore  float64  // Always derived by the aggregator, never set directly
	Priority    Priority
	Status      Status
}
