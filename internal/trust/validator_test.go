package trust

import (
	"testing"
	"time"

	"github.com/launchpick/launchpick/internal/config"
	"github.com/launchpick/launchpick/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator(config.DefaultTrustBoundaries())
	require.NoError(t, err)
	// Pin the clock so velocity is deterministic.
	v.now = func() time.Time {
		return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	}
	return v
}

func TestLevelPartitionsRange(t *testing.T) {
	v := newTestValidator(t)

	// Every possible trust score maps to exactly one level, with bucket
	// changes exactly at the configured boundaries.
	tests := []struct {
		want  model.TrustLevel
		score float64
	}{
		{model.TrustVeryHigh, 100},
		{model.TrustVeryHigh, 80},
		{model.TrustHigh, 79.999},
		{model.TrustHigh, 60},
		{model.TrustMedium, 59.999},
		{model.TrustMedium, 40},
		{model.TrustLow, 39.999},
		{model.TrustLow, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, v.Level(tt.score), "score %v", tt.score)
	}

	for score := 0.0; score <= 100.0; score += 0.5 {
		switch v.Level(score) {
		case model.TrustVeryHigh, model.TrustHigh, model.TrustMedium, model.TrustLow:
		default:
			t.Fatalf("Level(%v) returned unknown bucket", score)
		}
	}
}

func TestAssessHighSignalSubmission(t *testing.T) {
	v := newTestValidator(t)

	sub := &model.Submission{
		ID:        "post1",
		Title:     "Desperately need a tool to reconcile invoices",
		BodyText:  makeWords(120),
		Community: "r/smallbusiness",
		Upvotes:   400,
		Comments:  80,
		CreatedAt: time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC),
	}
	cand := &model.Candidate{
		ProblemStatement: "Reconciling supplier invoices by hand takes hours every single week",
		CoreFunctions:    []string{"match invoices to payments"},
	}

	got := v.Assess(sub, cand, 85)

	assert.Equal(t, model.EngagementHigh, got.EngagementLevel)
	assert.Equal(t, model.QualityStrong, got.DiscussionQuality)
	assert.Equal(t, model.QualityStrong, got.ProblemValidity)
	assert.Equal(t, model.ConfidenceHigh, got.ConfidenceLevel)
	assert.InDelta(t, 85, got.ConfidenceScore, 1e-9)
	assert.Greater(t, got.ActivityScore, 70.0)
	assert.GreaterOrEqual(t, got.TrustScore, 0.0)
	assert.LessOrEqual(t, got.TrustScore, 100.0)
	assert.Equal(t, v.Level(got.TrustScore), got.TrustLevel)
	assert.NotEmpty(t, got.TrustBadge)
}

func TestAssessDegradesOnMissingMetrics(t *testing.T) {
	v := newTestValidator(t)

	// Zero engagement and no body: everything grades low, nothing errors.
	sub := &model.Submission{
		ID:        "post2",
		Title:     "idea",
		Community: "r/ideas",
	}

	got := v.Assess(sub, &model.Candidate{}, 0)

	assert.Equal(t, 0.0, got.ActivityScore)
	assert.Equal(t, model.EngagementLow, got.EngagementLevel)
	assert.Equal(t, model.QualityWeak, got.DiscussionQuality)
	assert.Equal(t, model.QualityWeak, got.ProblemValidity)
	assert.Equal(t, model.ConfidenceLow, got.ConfidenceLevel)
	assert.Equal(t, model.TrustLow, got.TrustLevel)
	assert.GreaterOrEqual(t, got.TrustScore, 0.0)
}

func TestAssessHandlesNilCandidate(t *testing.T) {
	v := newTestValidator(t)

	sub := &model.Submission{ID: "post3", Title: "x", Community: "r/x"}
	got := v.Assess(sub, nil, 50)

	assert.Equal(t, model.QualityWeak, got.ProblemValidity)
}

func TestTrendVelocityRelativeToBaseline(t *testing.T) {
	v := newTestValidator(t)

	// 48 upvotes over 24 hours = 2/hour, 1 over the baseline.
	sub := &model.Submission{
		Upvotes:   48,
		CreatedAt: time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC),
	}
	assert.InDelta(t, 1.0, v.trendVelocity(sub), 1e-9)

	// Slower than baseline comes out negative.
	slow := &model.Submission{
		Upvotes:   2,
		CreatedAt: time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC),
	}
	assert.Less(t, v.trendVelocity(slow), 0.0)

	// Missing timestamp degrades to zero rather than erroring.
	assert.Equal(t, 0.0, v.trendVelocity(&model.Submission{Upvotes: 10}))
}

func TestBadge(t *testing.T) {
	tests := []struct {
		name     string
		want     string
		level    model.TrustLevel
		activity float64
	}{
		{"very high and active", "Verified Signal", model.TrustVeryHigh, 90},
		{"very high, quiet", "Strong Signal", model.TrustVeryHigh, 30},
		{"high and active", "Active Community", model.TrustHigh, 75},
		{"high, quiet", "Credible", model.TrustHigh, 10},
		{"medium", "Unproven", model.TrustMedium, 95},
		{"low", "Noisy", model.TrustLow, 95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Badge(tt.level, tt.activity, 70))
		})
	}
}

func TestNewValidatorRejectsBadBoundaries(t *testing.T) {
	bad := config.DefaultTrustBoundaries()
	bad.High = bad.VeryHigh

	_, err := NewValidator(bad)
	require.Error(t, err)
}

func makeWords(n int) string {
	out := make([]byte, 0, n*6)
	for i := 0; i < n; i++ {
		out = append(out, []byte("words ")...)
	}
	return string(out)
}
