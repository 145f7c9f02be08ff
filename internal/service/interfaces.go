// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/launchpick/launchpick/internal/model"
)

// SubmissionFilter defines filtering options for submission queries.
type SubmissionFilter struct {
	Since     *time.Time
	Community string
	Limit     int
}

// UpsertResult reports whether an upsert inserted a new row or updated an
// existing one.
type UpsertResult string

// Upsert outcomes.
const (
	UpsertInserted UpsertResult = "inserted"
	UpsertUpdated  UpsertResult = "updated"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Submission operations
	SaveSubmissions(ctx context.Context, submissions []model.Submission) error
	GetSubmissions(ctx context.Context, filter SubmissionFilter) ([]model.Submission, error)
	GetSubmissionByID(ctx context.Context, id string) (*model.Submission, error)

	// Opportunity operations. UpsertOpportunity is keyed on CandidateID:
	// a second write for the same key updates the row in place.
	UpsertOpportunity(ctx context.Context, record *model.OpportunityRecord) (UpsertResult, error)
	GetOpportunity(ctx context.Context, candidateID string) (*model.OpportunityRecord, error)
	GetTopOpportunities(ctx context.Context, limit int) ([]model.OpportunityRecord, error)
	GetEnrichableOpportunities(ctx context.Context, limit int) ([]model.OpportunityRecord, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// RunStats shows per-stage counts for a pipeline run. A run reports these
// instead of failing outright on a single bad record.
type RunStats struct {
	RunID        string
	Extracted    int
	Disqualified int
	Admitted     int
	Enriched     int
	Failed       int
	Duration     time.Duration
}
