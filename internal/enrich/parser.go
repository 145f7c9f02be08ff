package enrich

import (
	"encoding/json"
	"fmt"
	"strings"
)

// cleanMarkdownWrapper strips ```json fences that models wrap around JSON
// responses despite instructions not to.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		if idx := strings.Index(content, "\n"); idx >= 0 {
			content = content[idx+1:]
		}
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}
	return strings.TrimSpace(content)
}

// parseProfile extracts the structured profile from an LLM text response.
func parseProfile(content string) (ProfileResponse, error) {
	var jsonResp struct {
		ValueProposition  string   `json:"value_proposition"`
		TargetUser        string   `json:"target_user"`
		MonetizationModel string   `json:"monetization_model"`
		CoreFunctions     []string `json:"core_functions"`
	}

	content = cleanMarkdownWrapper(content)

	if err := json.Unmarshal([]byte(content), &jsonResp); err != nil {
		return ProfileResponse{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if jsonResp.ValueProposition == "" {
		return ProfileResponse{}, fmt.Errorf("no value proposition found in response")
	}

	return ProfileResponse{
		ValueProposition:  jsonResp.ValueProposition,
		TargetUser:        jsonResp.TargetUser,
		MonetizationModel: jsonResp.MonetizationModel,
		CoreFunctions:     jsonResp.CoreFunctions,
	}, nil
}
