// Package engine orchestrates the opportunity pipeline: candidate
// derivation, signal extraction, the simplicity gate, aggregation, trust
// validation, admission, and persistence.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/launchpick/launchpick/internal/common"
	"github.com/launchpick/launchpick/internal/config"
	"github.com/launchpick/launchpick/internal/enrich"
	"github.com/launchpick/launchpick/internal/model"
	"github.com/launchpick/launchpick/internal/scoring"
	"github.com/launchpick/launchpick/internal/service"
	"github.com/launchpick/launchpick/internal/signal"
	"github.com/launchpick/launchpick/internal/trust"
	"golang.org/x/sync/errgroup"
)

// Engine wires the pipeline stages together. Stages share only read-only
// configuration, so submissions are scored fully in parallel.
type Engine struct {
	storage   service.Storage
	extractor *signal.Extractor
	agg       *scoring.Aggregator
	validator *trust.Validator
	gate      AdmissionGate
	enricher  Enricher
	cfg       config.Pipeline

	// Progress is called once per processed submission, if set.
	Progress func()
}

// New creates an engine from validated pipeline tuning. The enricher may
// be nil when only scoring is needed.
func New(storage service.Storage, enricher Enricher, cfg config.Pipeline) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline config: %w", err)
	}

	agg, err := scoring.NewAggregator(cfg.Weights, cfg.Bands)
	if err != nil {
		return nil, err
	}
	validator, err := trust.NewValidator(cfg.Trust)
	if err != nil {
		return nil, err
	}

	return &Engine{
		storage:   storage,
		extractor: signal.NewExtractor(),
		agg:       agg,
		validator: validator,
		gate:      NewAdmissionGate(cfg.Admission),
		enricher:  enricher,
		cfg:       cfg,
	}, nil
}

// ScoreSubmission runs the CPU-bound stages for one submission and returns
// the resulting record. It never fails on low-signal input; empty text
// simply scores low.
func (e *Engine) ScoreSubmission(sub *model.Submission) *model.OpportunityRecord {
	cand := signal.DeriveCandidate(sub)
	extraction := e.extractor.Extract(sub, &cand)

	scores := extraction.Scores
	simplicity, disqualified := scoring.Simplicity(len(cand.CoreFunctions))
	scores.SimplicityScore = simplicity

	status := model.StatusIdentified
	if disqualified {
		status = model.StatusDisqualified
	}

	total := e.agg.Total(scores)
	assessment := e.validator.Assess(sub, &cand, extraction.Confidence)

	return &model.OpportunityRecord{
		ProcessedAt: time.Now(),
		Candidate:   cand,
		Scores:      scores,
		Trust:       assessment,
		TotalScore:  total,
		Priority:    e.agg.Priority(total),
		Status:      status,
	}
}

// ScoreBatch scores every submission and persists the records. Submissions
// are independent, so scoring fans out across workers; a failed persist is
// retried with bounded attempts, then reported and skipped so the batch
// continues. Running the batch twice over the same submissions yields
// exactly one record per candidate.
func (e *Engine) ScoreBatch(ctx context.Context, submissions []model.Submission) (service.RunStats, error) {
	started := time.Now()
	stats := service.RunStats{RunID: uuid.NewString()}

	if len(submissions) == 0 {
		return stats, common.ErrNoSubmissions
	}

	slog.Info("Starting scoring run",
		"run_id", stats.RunID,
		"submissions", len(submissions),
		"workers", e.cfg.Workers)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)

	retryOpts := service.RetryOptions{MaxAttempts: e.cfg.MaxRetries}

	for i := range submissions {
		sub := &submissions[i]
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			record := e.ScoreSubmission(sub)

			err := common.WithRetry(gctx, func() error {
				_, upsertErr := e.storage.UpsertOpportunity(gctx, record)
				return upsertErr
			}, retryOpts)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// Reported and skipped, never silently dropped
				stats.Failed++
				common.LogError(err, "Failed to persist opportunity", common.Fields{
					"candidate_id": record.Candidate.CandidateID,
					"submission":   sub.ID,
				})
			} else {
				stats.Extracted++
				if record.Status == model.StatusDisqualified {
					stats.Disqualified++
				}
			}
			if e.Progress != nil {
				e.Progress()
			}
			return nil
		})
	}

	err := g.Wait()
	stats.Duration = time.Since(started)

	slog.Info("Scoring run complete",
		"run_id", stats.RunID,
		"extracted", stats.Extracted,
		"disqualified", stats.Disqualified,
		"failed", stats.Failed,
		"duration", stats.Duration)

	return stats, err
}

// EnrichAdmitted applies the admission gate to identified records and
// fans enrichment out to the external collaborator with bounded
// concurrency. An enrichment failure leaves the record identified, with
// its scores intact, to be retried on a later run.
func (e *Engine) EnrichAdmitted(ctx context.Context, limit int) (service.RunStats, error) {
	started := time.Now()
	stats := service.RunStats{RunID: uuid.NewString()}

	if e.enricher == nil {
		return stats, fmt.Errorf("no enricher configured")
	}

	records, err := e.storage.GetEnrichableOpportunities(ctx, limit)
	if err != nil {
		return stats, fmt.Errorf("failed to load enrichable opportunities: %w", err)
	}

	admitted := make([]model.OpportunityRecord, 0, len(records))
	for i := range records {
		if e.gate.Admit(&records[i]) {
			admitted = append(admitted, records[i])
		}
	}
	stats.Admitted = len(admitted)

	slog.Info("Starting enrichment run",
		"run_id", stats.RunID,
		"candidates", len(records),
		"admitted", stats.Admitted,
		"max_concurrency", e.cfg.MaxEnrich)

	if len(admitted) == 0 {
		stats.Duration = time.Since(started)
		return stats, nil
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, e.cfg.MaxEnrich)

	for i := range admitted {
		record := admitted[i]
		wg.Add(1)
		go func() {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			err := e.enrichOne(ctx, &record)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				stats.Failed++
				common.LogError(err, "Enrichment failed, record stays identified", common.Fields{
					"candidate_id": record.Candidate.CandidateID,
				})
			} else {
				stats.Enriched++
			}
			if e.Progress != nil {
				e.Progress()
			}
		}()
	}

	wg.Wait()
	stats.Duration = time.Since(started)

	slog.Info("Enrichment run complete",
		"run_id", stats.RunID,
		"enriched", stats.Enriched,
		"failed", stats.Failed,
		"duration", stats.Duration)

	return stats, ctx.Err()
}

// enrichOne calls the collaborator for a single record and persists the
// result. The record only transitions to enriched after a successful
// response; the upsert is keyed on candidate_id, so retries never create
// a second row.
func (e *Engine) enrichOne(ctx context.Context, record *model.OpportunityRecord) error {
	sub, err := e.storage.GetSubmissionByID(ctx, record.Candidate.SubmissionID)
	if err != nil {
		return fmt.Errorf("failed to load submission %s: %w", record.Candidate.SubmissionID, err)
	}

	profile, err := e.enricher.Enrich(ctx, enrich.Request{
		CandidateID:      record.Candidate.CandidateID,
		ProblemStatement: record.Candidate.ProblemStatement,
		CandidateText:    sub.Text(),
		CommunityContext: sub.Community,
	})
	if err != nil {
		return err
	}

	record.Profile = profile
	record.Status = model.StatusEnriched
	record.ProcessedAt = time.Now()

	return common.WithRetry(ctx, func() error {
		_, upsertErr := e.storage.UpsertOpportunity(ctx, record)
		return upsertErr
	}, service.RetryOptions{MaxAttempts: e.cfg.MaxRetries})
}

// Gate exposes the admission gate for reporting.
func (e *Engine) Gate() AdmissionGate {
	return e.gate
}
