package trust

import "github.com/launchpick/launchpick/internal/model"

// Badge derives the display label from the trust level and whether the
// submission's activity crosses the highly-active threshold. Pure function;
// the badge carries no information not already in its inputs.
func Badge(level model.TrustLevel, activityScore, highlyActiveThreshold float64) string {
	active := activityScore >= highlyActiveThreshold

	switch level {
	case model.TrustVeryHigh:
		if active {
			return "Verified Signal"
		}
		return "Strong Signal"
	case model.TrustHigh:
		if active {
			return "Active Community"
		}
		return "Credible"
	case model.TrustMedium:
		return "Unproven"
	default:
		return "Noisy"
	}
}
