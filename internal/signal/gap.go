package signal

import "github.com/launchpick/launchpick/internal/model"

// GapSource scores the market gap from competitor and
// solution-inadequacy phrase density.
type GapSource struct{}

// Name identifies the dimension this source feeds.
func (GapSource) Name() string { return "market_gap" }

// Score counts complaints about existing solutions. A post that names what
// it tried and why it failed signals an underserved niche more strongly
// than one that never mentions alternatives.
func (GapSource) Score(sub *model.Submission, _ *model.Candidate) float64 {
	text := sub.Text()
	hits := countPhrases(text, gapPhrases)
	words := wordCount(text)

	// Absolute hits matter more than density here: one concrete "I tried X
	// and it sucks" is a real signal even in a long post.
	return clamp(float64(hits)*14 + density(hits, words)*4)
}
