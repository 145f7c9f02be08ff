package signal

import (
	"math"

	"github.com/launchpick/launchpick/internal/model"
)

// DemandSource scores market demand from discussion-volume and
// engagement-rate proxies.
type DemandSource struct{}

// Name identifies the dimension this source feeds.
func (DemandSource) Name() string { return "market_demand" }

// Score combines log-scaled vote/comment volume with explicit me-too
// markers in the text. Comments weigh double because a reply is a stronger
// signal of shared need than a drive-by upvote.
func (DemandSource) Score(sub *model.Submission, _ *model.Candidate) float64 {
	volume := float64(sub.Upvotes) + 2*float64(sub.Comments)
	engagement := 30 * math.Log10(1+volume)

	markers := countPhrases(sub.Text(), demandMarkers)
	echo := float64(markers) * 8

	// Engagement rate: comments per upvote indicates discussion depth.
	rate := 0.0
	if sub.Upvotes > 0 {
		rate = math.Min(float64(sub.Comments)/float64(sub.Upvotes), 2.0) * 10
	}

	return clamp(engagement + echo + rate)
}
