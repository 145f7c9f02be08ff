package signal

import (
	"strings"

	"github.com/launchpick/launchpick/internal/model"
)

// maxCoreFunctions caps how many proposed functions derivation keeps.
// Anything past this is noise; the simplicity gate disqualifies at four.
const maxCoreFunctions = 6

var titleStopwords = map[string]bool{
	"a": true, "an": true, "the": true, "i": true, "my": true, "for": true,
	"to": true, "of": true, "is": true, "it": true, "and": true, "or": true,
	"in": true, "on": true, "with": true, "that": true, "this": true,
	"need": true, "want": true, "looking": true, "wish": true, "there": true,
	"was": true, "any": true, "anyone": true, "how": true, "do": true,
	"does": true, "why": true, "some": true, "something": true,
}

// DeriveCandidate extracts a product proposal from a submission. The
// derivation is deterministic: re-running it over the same submission
// always yields the same candidate, which keeps re-scoring idempotent.
func DeriveCandidate(sub *model.Submission) model.Candidate {
	return model.Candidate{
		CandidateID:      sub.CandidateID(),
		SubmissionID:     sub.ID,
		AppName:          deriveAppName(sub.Title),
		ProblemStatement: deriveProblemStatement(sub),
		CoreFunctions:    deriveCoreFunctions(sub.Text()),
		TargetSegment:    deriveTargetSegment(sub.Text()),
	}
}

// deriveAppName builds a working name from the title's significant words.
func deriveAppName(title string) string {
	words := strings.Fields(strings.ToLower(title))
	picked := make([]string, 0, 3)
	for _, w := range words {
		w = strings.Trim(w, `.,!?;:"'()[]`)
		if w == "" || titleStopwords[w] {
			continue
		}
		picked = append(picked, capitalize(w))
		if len(picked) == 3 {
			break
		}
	}
	if len(picked) == 0 {
		return "Untitled"
	}
	return strings.Join(picked, "")
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}

// deriveProblemStatement picks the first sentence carrying a pain marker,
// falling back to the title.
func deriveProblemStatement(sub *model.Submission) string {
	for _, sentence := range sentenceRe.Split(sub.BodyText, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if countPhrases(sentence, painWords) > 0 || countPhrases(sentence, gapPhrases) > 0 {
			return sentence
		}
	}
	return strings.TrimSpace(sub.Title)
}

// deriveCoreFunctions collects proposed capabilities: explicit list items
// first, then "I need to ..." style verb phrases. Order is preserved and
// duplicates dropped.
func deriveCoreFunctions(text string) []string {
	var functions []string
	seen := make(map[string]bool)

	add := func(fn string) {
		fn = strings.TrimSpace(fn)
		if fn == "" || len(functions) >= maxCoreFunctions {
			return
		}
		key := strings.ToLower(fn)
		if seen[key] {
			return
		}
		seen[key] = true
		functions = append(functions, fn)
	}

	for _, m := range bulletRe.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	for _, m := range needRe.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}

	return functions
}

// deriveTargetSegment looks for an explicit audience ("for freelancers"),
// then falls back to B2B/B2C marker counts.
func deriveTargetSegment(text string) string {
	if m := forSegmentRe.FindStringSubmatch(text); m != nil {
		segment := strings.TrimSpace(m[1])
		if segment != "" && !titleStopwords[segment] {
			return segment
		}
	}

	if countPhrases(text, b2bMarkers) > countPhrases(text, b2cMarkers) {
		return "small businesses"
	}
	return "consumers"
}
