package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/launchpick/launchpick/internal/common"
	"github.com/launchpick/launchpick/internal/model"
	"github.com/launchpick/launchpick/internal/service"
)

// Enricher implements the engine.Enricher interface using LLM APIs,
// layering rate limiting, retries, and caching over the raw provider
// client.
type Enricher struct {
	client      Client
	cache       *profileCache
	logger      *slog.Logger
	rateLimiter *rateLimiter
	retryOpts   service.RetryOptions
	callTimeout time.Duration
}

// NewEnricher creates an LLM-backed enricher from the provider config.
func NewEnricher(cfg Config, logger *slog.Logger) (*Enricher, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create enrichment client: %w", err)
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}

	return &Enricher{
		client:      client,
		cache:       newProfileCache(0),
		logger:      logger,
		rateLimiter: newRateLimiter(cfg.RateLimit),
		retryOpts:   retryOpts,
		callTimeout: 60 * time.Second,
	}, nil
}

// Enrich generates a product profile for one admitted candidate. Failures
// are returned to the caller, which leaves the record in its identified
// state so a later run retries it; already-computed scores are never
// touched here.
func (e *Enricher) Enrich(ctx context.Context, req Request) (*model.Profile, error) {
	if cached, found := e.cache.get(req.CandidateID); found {
		e.logger.Debug("cache hit for candidate", "candidate_id", req.CandidateID)
		return cached.Profile(), nil
	}

	if err := e.rateLimiter.wait(ctx); err != nil {
		return nil, err
	}

	prompt := buildPrompt(req)

	var response ProfileResponse
	err := common.WithRetry(ctx, func() error {
		callCtx, cancel := context.WithTimeout(ctx, e.callTimeout)
		defer cancel()

		var callErr error
		response, callErr = e.client.GenerateProfile(callCtx, prompt)
		return callErr
	}, e.retryOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrEnrichmentFailed, err)
	}

	e.cache.set(req.CandidateID, response)

	e.logger.Info("candidate enriched",
		"candidate_id", req.CandidateID,
		"target_user", response.TargetUser)

	return response.Profile(), nil
}

// Close releases the enricher's background resources.
func (e *Enricher) Close() {
	e.rateLimiter.Close()
	e.cache.Close()
}
