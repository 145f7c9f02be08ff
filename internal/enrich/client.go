// Package enrich talks to the external LLM enrichment collaborator that
// turns an admitted candidate into a prose product profile. It wraps the
// provider clients with rate limiting, retries, and caching so the
// pipeline pays for each candidate at most once.
package enrich

import (
	"context"

	"github.com/launchpick/launchpick/internal/model"
)

// Client defines the interface for enrichment providers.
type Client interface {
	GenerateProfile(ctx context.Context, prompt string) (ProfileResponse, error)
}

// Request carries everything the enrichment collaborator needs about one
// admitted candidate.
type Request struct {
	CandidateID      string
	ProblemStatement string
	CandidateText    string
	CommunityContext string
}

// ProfileResponse is the provider's structured answer.
type ProfileResponse struct {
	ValueProposition  string
	TargetUser        string
	MonetizationModel string
	CoreFunctions     []string
}

// Profile converts the response into the domain model.
func (r ProfileResponse) Profile() *model.Profile {
	return &model.Profile{
		ValueProposition:  r.ValueProposition,
		TargetUser:        r.TargetUser,
		MonetizationModel: r.MonetizationModel,
		CoreFunctions:     r.CoreFunctions,
	}
}

// Config holds configuration for the enrichment client.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	MaxRetries  int
	RateLimit   int // Requests per minute
	Temperature float64
	MaxTokens   int
}
