package signal

import (
	"strings"

	"github.com/launchpick/launchpick/internal/model"
)

// PainSource scores pain intensity from negative-sentiment density,
// emotional-language markers, and repetition of the same complaint.
type PainSource struct{}

// Name identifies the dimension this source feeds.
func (PainSource) Name() string { return "pain_intensity" }

// Score weighs pain vocabulary density heaviest, then emotional markers,
// then a repetition bonus when the author circles back to the same
// complaint word more than once.
func (PainSource) Score(sub *model.Submission, _ *model.Candidate) float64 {
	text := sub.Text()
	words := wordCount(text)

	painHits := countPhrases(text, painWords)
	emotionHits := countPhrases(text, emotionMarkers)

	painDensity := density(painHits, words)
	emotionDensity := density(emotionHits, words)

	return clamp(painDensity*10 + emotionDensity*6 + repetitionBonus(text))
}

// repetitionBonus rewards the same pain word appearing repeatedly: a
// complaint restated across a post signals sustained rather than passing
// frustration.
func repetitionBonus(text string) float64 {
	lower := strings.ToLower(text)
	maxRepeats := 0
	for _, w := range painWords {
		if n := strings.Count(lower, w); n > maxRepeats {
			maxRepeats = n
		}
	}
	if maxRepeats <= 1 {
		return 0
	}
	return float64(maxRepeats-1) * 7
}
