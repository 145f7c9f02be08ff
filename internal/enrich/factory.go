package enrich

import (
	"fmt"
	"strings"
)

// NewClient creates a raw enrichment client based on the provided
// configuration.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return newOpenAIClient(cfg)
	case "anthropic":
		return newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported enrichment provider: %s", cfg.Provider)
	}
}
