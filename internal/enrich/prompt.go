package enrich

import "fmt"

const systemPrompt = "You are a product strategist. Given a validated user problem, respond only with a JSON object containing value_proposition, target_user, monetization_model, and core_functions (an array of short strings). No additional text or formatting."

// buildPrompt renders the enrichment request into the provider prompt.
func buildPrompt(req Request) string {
	return fmt.Sprintf(`A user in the %q community described this problem:

Problem: %s

Full post:
%s

Produce a product profile for a simple, monetizable tool that solves this problem. Respond with JSON only:
{"value_proposition": "...", "target_user": "...", "monetization_model": "...", "core_functions": ["..."]}`,
		req.CommunityContext, req.ProblemStatement, req.CandidateText)
}
