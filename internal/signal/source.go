// Package signal turns raw submission text and engagement counters into
// the five extracted dimension signals. Each dimension is produced by its
// own Source implementation so the extraction strategy can be swapped
// without touching the aggregator or the simplicity gate.
package signal

import (
	"strings"

	"github.com/launchpick/launchpick/internal/model"
)

// Source scores one dimension from a submission and its derived candidate.
// Implementations must be deterministic and must return a value already
// clamped to [0,100]. Empty or low-signal input yields a low but valid
// score, never an error.
type Source interface {
	Name() string
	Score(sub *model.Submission, cand *model.Candidate) float64
}

// clamp constrains a raw sub-signal to the [0,100] score range.
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// wordCount counts whitespace-separated tokens in text.
func wordCount(text string) int {
	return len(strings.Fields(text))
}

// countPhrases counts total occurrences of the given phrases in text.
// Matching is case-insensitive; callers pass lowercase phrases.
func countPhrases(text string, phrases []string) int {
	lower := strings.ToLower(text)
	total := 0
	for _, p := range phrases {
		total += strings.Count(lower, p)
	}
	return total
}

// density converts a raw hit count into hits per 100 words. Empty text
// yields zero rather than dividing by zero.
func density(hits, words int) float64 {
	if words == 0 {
		return 0
	}
	return float64(hits) / float64(words) * 100
}
