package signal

import "github.com/launchpick/launchpick/internal/model"

// FeasibilitySource scores technical feasibility from inverse complexity
// proxies such as required external integrations.
type FeasibilitySource struct{}

// Name identifies the dimension this source feeds.
func (FeasibilitySource) Name() string { return "technical_feasibility" }

// Score starts from a high baseline and subtracts for each complexity
// proxy: heavy domain markers cost more than individual integrations.
// Simplicity vocabulary earns a small amount back.
func (FeasibilitySource) Score(sub *model.Submission, cand *model.Candidate) float64 {
	text := sub.Text()

	heavy := countPhrases(text, complexityMarkers)
	integrations := countPhrases(text, integrationMarkers)
	simple := countPhrases(text, simplicityMarkers)

	score := 85.0
	score -= float64(heavy) * 18
	score -= float64(integrations) * 10
	score += float64(simple) * 4

	// Each proposed core function beyond the first adds build surface.
	if cand != nil && len(cand.CoreFunctions) > 1 {
		score -= float64(len(cand.CoreFunctions)-1) * 5
	}

	return clamp(score)
}
