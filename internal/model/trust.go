package model

// TrustLevel buckets a trust score for display and filtering.
type TrustLevel string

// Trust level constants.
const (
	TrustVeryHigh TrustLevel = "VERY_HIGH"
	TrustHigh     TrustLevel = "HIGH"
	TrustMedium   TrustLevel = "MEDIUM"
	TrustLow      TrustLevel = "LOW"
)

// EngagementLevel categorizes how actively a submission was discussed.
type EngagementLevel string

// Engagement level constants.
const (
	EngagementHigh     EngagementLevel = "HIGH"
	EngagementModerate EngagementLevel = "MODERATE"
	EngagementLow      EngagementLevel = "LOW"
)

// QualityRating is a coarse categorical grade used for discussion quality
// and extracted-problem validity.
type QualityRating string

// Quality rating constants.
const (
	QualityStrong QualityRating = "STRONG"
	QualityFair   QualityRating = "FAIR"
	QualityWeak   QualityRating = "WEAK"
)

// ConfidenceLevel categorizes the heuristic extractor's confidence.
type ConfidenceLevel string

// Confidence level constants.
const (
	ConfidenceHigh   ConfidenceLevel = "HIGH"
	ConfidenceMedium ConfidenceLevel = "MEDIUM"
	ConfidenceLow    ConfidenceLevel = "LOW"
)

// TrustAssessment is the independent credibility evaluation of a submission,
// consumed as an admission filter before expensive enrichment. It is scored
// separately from the dimension scores.
type TrustAssessment struct {
	ActivityScore     float64 // 0-100
	EngagementLevel   EngagementLevel
	TrendVelocity     float64 // Upvotes/hour relative to baseline; may be negative
	ProblemValidity   QualityRating
	DiscussionQuality QualityRating
	ConfidenceLevel   ConfidenceLevel
	ConfidenceScore   float64 // 0-100, machine-readable companion to ConfidenceLevel
	TrustScore        float64 // 0-100, derived
	TrustLevel        TrustLevel
	TrustBadge        string // Display label, derived from level + activity
}
