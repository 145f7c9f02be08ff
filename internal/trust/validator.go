// Package trust independently scores submission credibility. The resulting
// assessment is consumed as an admission filter in front of expensive
// enrichment; it never blocks on external I/O because every input is
// already materialized on the submission.
package trust

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/launchpick/launchpick/internal/config"
	"github.com/launchpick/launchpick/internal/model"
)

// Component weights for the combined trust score. Six independent
// evaluations, weights summing to 1.0.
const (
	weightActivity   = 0.25
	weightEngagement = 0.15
	weightVelocity   = 0.15
	weightDiscussion = 0.15
	weightValidity   = 0.15
	weightConfidence = 0.15
)

// velocityBaseline is the upvotes-per-hour rate considered neutral.
// Velocity below it contributes negatively.
const velocityBaseline = 1.0

// Validator assesses submission credibility against configured boundaries.
type Validator struct {
	boundaries config.TrustBoundaries
	now        func() time.Time
}

// NewValidator validates the boundary configuration and returns a
// validator bound to it.
func NewValidator(boundaries config.TrustBoundaries) (*Validator, error) {
	if err := boundaries.Validate(); err != nil {
		return nil, fmt.Errorf("invalid trust boundaries: %w", err)
	}
	return &Validator{boundaries: boundaries, now: time.Now}, nil
}

// Assess evaluates the six trust components and combines them into a
// single score, level, and badge. Missing engagement metrics degrade the
// score toward the low end rather than raising an error.
func (v *Validator) Assess(sub *model.Submission, cand *model.Candidate, confidenceScore float64) model.TrustAssessment {
	activity := v.activityScore(sub)
	engagement := v.engagementLevel(sub)
	velocity := v.trendVelocity(sub)
	discussion := v.discussionQuality(sub)
	validity := v.problemValidity(cand)
	confidence := clampScore(confidenceScore)

	trustScore := clampScore(
		weightActivity*activity +
			weightEngagement*ratingValue(engagementValue(engagement)) +
			weightVelocity*velocityValue(velocity) +
			weightDiscussion*ratingValue(discussion) +
			weightValidity*ratingValue(validity) +
			weightConfidence*confidence)

	level := v.Level(trustScore)

	return model.TrustAssessment{
		ActivityScore:     activity,
		EngagementLevel:   engagement,
		TrendVelocity:     velocity,
		ProblemValidity:   validity,
		DiscussionQuality: discussion,
		ConfidenceLevel:   confidenceLevel(confidence),
		ConfidenceScore:   confidence,
		TrustScore:        trustScore,
		TrustLevel:        level,
		TrustBadge:        Badge(level, activity, v.boundaries.HighlyActive),
	}
}

// Level buckets a trust score. The boundaries totally partition [0,100]:
// every score maps to exactly one level.
func (v *Validator) Level(trustScore float64) model.TrustLevel {
	switch {
	case trustScore >= v.boundaries.VeryHigh:
		return model.TrustVeryHigh
	case trustScore >= v.boundaries.High:
		return model.TrustHigh
	case trustScore >= v.boundaries.Medium:
		return model.TrustMedium
	default:
		return model.TrustLow
	}
}

// activityScore log-scales raw engagement volume into 0-100. Zero
// engagement yields zero, not an error.
func (v *Validator) activityScore(sub *model.Submission) float64 {
	volume := float64(sub.Upvotes + sub.Comments)
	if volume <= 0 {
		return 0
	}
	return clampScore(33 * math.Log10(1+volume))
}

// engagementLevel categorizes discussion depth from the comment/upvote
// ratio and absolute comment volume.
func (v *Validator) engagementLevel(sub *model.Submission) model.EngagementLevel {
	switch {
	case sub.Comments >= 25 || (sub.Upvotes > 0 && float64(sub.Comments)/float64(sub.Upvotes) >= 0.5 && sub.Comments >= 10):
		return model.EngagementHigh
	case sub.Comments >= 5:
		return model.EngagementModerate
	default:
		return model.EngagementLow
	}
}

// trendVelocity measures upvotes per hour since posting relative to the
// baseline. Submissions aging slower than the baseline come out negative.
func (v *Validator) trendVelocity(sub *model.Submission) float64 {
	if sub.CreatedAt.IsZero() {
		return 0
	}
	hours := v.now().Sub(sub.CreatedAt).Hours()
	if hours < 1 {
		hours = 1
	}
	return float64(sub.Upvotes)/hours - velocityBaseline
}

// discussionQuality grades the conversation around the submission.
func (v *Validator) discussionQuality(sub *model.Submission) model.QualityRating {
	bodyWords := len(strings.Fields(sub.BodyText))
	switch {
	case sub.Comments >= 15 && bodyWords >= 80:
		return model.QualityStrong
	case sub.Comments >= 5 || bodyWords >= 40:
		return model.QualityFair
	default:
		return model.QualityWeak
	}
}

// problemValidity grades the extracted problem statement. A missing or
// trivially short statement is weak, never an error.
func (v *Validator) problemValidity(cand *model.Candidate) model.QualityRating {
	if cand == nil || strings.TrimSpace(cand.ProblemStatement) == "" {
		return model.QualityWeak
	}
	words := len(strings.Fields(cand.ProblemStatement))
	switch {
	case words >= 10 && len(cand.CoreFunctions) > 0:
		return model.QualityStrong
	case words >= 5:
		return model.QualityFair
	default:
		return model.QualityWeak
	}
}

// ratingValue maps a categorical grade onto the 0-100 scale for weighting.
func ratingValue(r model.QualityRating) float64 {
	switch r {
	case model.QualityStrong:
		return 100
	case model.QualityFair:
		return 60
	default:
		return 20
	}
}

// engagementValue converts an engagement level to a quality rating so both
// share the numeric mapping.
func engagementValue(e model.EngagementLevel) model.QualityRating {
	switch e {
	case model.EngagementHigh:
		return model.QualityStrong
	case model.EngagementModerate:
		return model.QualityFair
	default:
		return model.QualityWeak
	}
}

// velocityValue maps trend velocity onto 0-100, centered at 50 for a
// submission tracking the baseline exactly.
func velocityValue(velocity float64) float64 {
	return clampScore(50 + velocity*10)
}

// confidenceLevel buckets the numeric extractor confidence.
func confidenceLevel(score float64) model.ConfidenceLevel {
	switch {
	case score >= 70:
		return model.ConfidenceHigh
	case score >= 40:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
