package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/launchpick/launchpick/internal/enrich"
	"github.com/launchpick/launchpick/internal/model"
)

// MockEnricher is a deterministic Enricher for tests and dry runs. It
// records every request it receives and can be configured to fail.
type MockEnricher struct {
	mu       sync.Mutex
	requests []enrich.Request
	profiles map[string]*model.Profile
	err      error
}

// NewMockEnricher creates a mock that returns a synthetic profile for any
// candidate.
func NewMockEnricher() *MockEnricher {
	return &MockEnricher{
		profiles: make(map[string]*model.Profile),
	}
}

// SetProfile fixes the profile returned for a specific candidate.
func (m *MockEnricher) SetProfile(candidateID string, profile *model.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[candidateID] = profile
}

// SetError makes every subsequent call fail with err.
func (m *MockEnricher) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Enrich implements the Enricher interface.
func (m *MockEnricher) Enrich(ctx context.Context, req enrich.Request) (*model.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	if m.err != nil {
		return nil, m.err
	}
	if profile, ok := m.profiles[req.CandidateID]; ok {
		return profile, nil
	}

	return &model.Profile{
		ValueProposition:  fmt.Sprintf("Solves: %s", req.ProblemStatement),
		TargetUser:        "early adopters in " + req.CommunityContext,
		MonetizationModel: "subscription",
		CoreFunctions:     []string{"core workflow"},
	}, nil
}

// Requests returns a copy of every request received so far.
func (m *MockEnricher) Requests() []enrich.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]enrich.Request, len(m.requests))
	copy(out, m.requests)
	return out
}
