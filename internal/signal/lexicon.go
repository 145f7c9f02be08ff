package signal

import "regexp"

// Keyword tables for the heuristic sources. These are the v1 extraction
// strategy; a model-backed Source can replace any of them behind the same
// interface.

var painWords = []string{
	"frustrat", "annoying", "hate", "painful", "tedious", "nightmare",
	"waste of time", "wasting", "struggle", "struggling", "impossible",
	"driving me crazy", "fed up", "sick of", "tired of", "can't stand",
	"manually", "every single time", "broken",
}

var emotionMarkers = []string{
	"!!", "??", "ugh", "argh", "seriously", "honestly", "literally",
	"so bad", "the worst", "desperate", "please help",
}

var payPhrases = []string{
	"would pay", "willing to pay", "take my money", "shut up and take",
	"happily pay", "pay for", "paying for", "worth paying",
	"subscription", "subscribe", "per month", "per year", "pricing",
}

var b2bMarkers = []string{
	"business", "enterprise", "team", "client", "agency", "invoice",
	"b2b", "saas", "freelanc", "workflow", "company", "startup",
}

var b2cMarkers = []string{
	"personal", "hobby", "family", "my kids", "everyday", "consumer",
	"b2c", "myself",
}

var gapPhrases = []string{
	"no good tool", "nothing exists", "nothing out there", "couldn't find",
	"can't find", "tried everything", "alternative to", "wish there was",
	"wish there were", "why is there no", "why isn't there", "doesn't exist",
	"sucks", "terrible", "clunky", "bloated", "overpriced", "overkill",
	"too complicated", "too expensive", "abandoned", "missing feature",
	"half-baked",
}

var demandMarkers = []string{
	"anyone else", "same here", "same problem", "me too", "+1",
	"i have this too", "this too", "upvote", "following", "need this",
	"would use this", "i'd use",
}

var complexityMarkers = []string{
	"machine learning", "real-time", "realtime", "blockchain", "crypto",
	"marketplace", "two-sided", "social network", "mobile app and",
	"video processing", "hardware", "compliance", "hipaa", "regulated",
}

var integrationMarkers = []string{
	"api", "oauth", "webhook", "integration", "integrate with", "sync with",
	"plugin", "import from", "export to", "connect to",
}

var simplicityMarkers = []string{
	"simple", "just", "basic", "single", "only needs", "one thing",
	"lightweight", "minimal",
}

var (
	// priceRe matches explicit price mentions like "$5", "$29/mo", "$199".
	priceRe = regexp.MustCompile(`\$\d+(?:\.\d{2})?(?:\s*/\s*(?:mo|month|yr|year|user|seat))?`)

	// bulletRe matches list items the candidate derivation treats as
	// proposed core functions.
	bulletRe = regexp.MustCompile(`(?m)^\s*(?:[-*•]|\d+[.)])\s+(.+)$`)

	// needRe captures verb phrases describing a wanted capability.
	needRe = regexp.MustCompile(`(?i)(?:i (?:just )?(?:need|want) (?:it |something |a tool |an app )?(?:to|that can)|should be able to|lets? me|that can)\s+([^,.;!?\n]{4,80})`)

	// forSegmentRe captures an explicit audience ("... for freelancers").
	forSegmentRe = regexp.MustCompile(`(?i)\bfor ([a-z][a-z -]{2,40}?)(?:[,.;!?]|$)`)

	sentenceRe = regexp.MustCompile(`[.!?\n]+`)
)
