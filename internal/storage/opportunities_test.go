package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/launchpick/launchpick/internal/common"
	"github.com/launchpick/launchpick/internal/model"
	"github.com/launchpick/launchpick/internal/service"
)

// Helper function to create a scored test record.
func createTestRecord(sub *model.Submission, total float64, status model.Status) *model.OpportunityRecord {
	return &model.OpportunityRecord{
		ProcessedAt: time.Now().UTC().Truncate(time.Second),
		Candidate: model.Candidate{
			CandidateID:      sub.CandidateID(),
			SubmissionID:     sub.ID,
			AppName:          "InvoiceMatcher",
			ProblemStatement: "Reconciling these manually is a nightmare",
			TargetSegment:    "small businesses",
			CoreFunctions:    []string{"match payments to invoices"},
		},
		Scores: model.DimensionScores{
			MarketDemand:          80,
			PainIntensity:         90,
			MonetizationPotential: 70,
			MarketGap:             60,
			TechnicalFeasibility:  95,
			SimplicityScore:       100,
		},
		Trust: model.TrustAssessment{
			ActivityScore:     75,
			EngagementLevel:   model.EngagementHigh,
			TrendVelocity:     1.5,
			ProblemValidity:   model.QualityStrong,
			DiscussionQuality: model.QualityFair,
			ConfidenceLevel:   model.ConfidenceHigh,
			ConfidenceScore:   82,
			TrustScore:        71,
			TrustLevel:        model.TrustHigh,
			TrustBadge:        "Active Community",
		},
		TotalScore: total,
		Priority:   model.PriorityExceptional,
		Status:     status,
	}
}

func saveTestSubmissions(t *testing.T, store *SQLiteStorage, subs []model.Submission) {
	t.Helper()
	if err := store.SaveSubmissions(context.Background(), subs); err != nil {
		t.Fatalf("Failed to save submissions: %v", err)
	}
}

func TestSQLiteStorage_UpsertOpportunityInsertThenUpdate(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	subs := createTestSubmissions(1)
	saveTestSubmissions(t, store, subs)
	record := createTestRecord(&subs[0], 83.25, model.StatusIdentified)

	result, err := store.UpsertOpportunity(ctx, record)
	if err != nil {
		t.Fatalf("First upsert failed: %v", err)
	}
	if result != service.UpsertInserted {
		t.Errorf("Expected inserted, got %s", result)
	}

	// Second write for the same candidate updates in place.
	record.TotalScore = 79.5
	record.Priority = model.PriorityStrong
	result, err = store.UpsertOpportunity(ctx, record)
	if err != nil {
		t.Fatalf("Second upsert failed: %v", err)
	}
	if result != service.UpsertUpdated {
		t.Errorf("Expected updated, got %s", result)
	}

	got, err := store.GetOpportunity(ctx, record.Candidate.CandidateID)
	if err != nil {
		t.Fatalf("Failed to get opportunity: %v", err)
	}
	if got.TotalScore != 79.5 {
		t.Errorf("Expected updated total 79.5, got %v", got.TotalScore)
	}
	if got.Priority != model.PriorityStrong {
		t.Errorf("Expected updated priority, got %s", got.Priority)
	}

	// Exactly one row for the candidate.
	records, err := store.GetTopOpportunities(ctx, 10)
	if err != nil {
		t.Fatalf("Failed to list opportunities: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Expected 1 record after two upserts, got %d", len(records))
	}
}

func TestSQLiteStorage_UpsertOpportunityRoundTrip(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	subs := createTestSubmissions(1)
	saveTestSubmissions(t, store, subs)
	record := createTestRecord(&subs[0], 83.25, model.StatusIdentified)

	if _, err := store.UpsertOpportunity(ctx, record); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, err := store.GetOpportunity(ctx, record.Candidate.CandidateID)
	if err != nil {
		t.Fatalf("Failed to get opportunity: %v", err)
	}

	if got.Candidate.AppName != record.Candidate.AppName {
		t.Errorf("AppName mismatch: %q vs %q", got.Candidate.AppName, record.Candidate.AppName)
	}
	if len(got.Candidate.CoreFunctions) != 1 || got.Candidate.CoreFunctions[0] != "match payments to invoices" {
		t.Errorf("CoreFunctions did not round-trip: %v", got.Candidate.CoreFunctions)
	}
	if got.Scores != record.Scores {
		t.Errorf("Scores did not round-trip: %+v vs %+v", got.Scores, record.Scores)
	}
	if got.Trust.TrustLevel != model.TrustHigh || got.Trust.TrustBadge != "Active Community" {
		t.Errorf("Trust did not round-trip: %+v", got.Trust)
	}
	if got.Profile != nil {
		t.Errorf("Expected no profile before enrichment, got %+v", got.Profile)
	}
}

func TestSQLiteStorage_UpsertPreservesEnrichedStatusOnRescore(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	subs := createTestSubmissions(1)
	saveTestSubmissions(t, store, subs)

	// Enrich the record first.
	enriched := createTestRecord(&subs[0], 83.25, model.StatusEnriched)
	enriched.Profile = &model.Profile{
		ValueProposition:  "Stops manual reconciliation",
		TargetUser:        "agency owners",
		MonetizationModel: "subscription",
		CoreFunctions:     []string{"match payments", "flag duplicates"},
	}
	if _, err := store.UpsertOpportunity(ctx, enriched); err != nil {
		t.Fatalf("Enriched upsert failed: %v", err)
	}

	// A plain re-score carries no profile and status identified.
	rescored := createTestRecord(&subs[0], 81.0, model.StatusIdentified)
	if _, err := store.UpsertOpportunity(ctx, rescored); err != nil {
		t.Fatalf("Re-score upsert failed: %v", err)
	}

	got, err := store.GetOpportunity(ctx, enriched.Candidate.CandidateID)
	if err != nil {
		t.Fatalf("Failed to get opportunity: %v", err)
	}
	if got.Status != model.StatusEnriched {
		t.Errorf("Re-score must not regress enriched status, got %s", got.Status)
	}
	if got.Profile == nil || got.Profile.ValueProposition != "Stops manual reconciliation" {
		t.Errorf("Re-score must not erase the stored profile, got %+v", got.Profile)
	}
	if got.TotalScore != 81.0 {
		t.Errorf("Re-score must still update the scores, got total %v", got.TotalScore)
	}

	// A fresh disqualification still overrides.
	disqualified := createTestRecord(&subs[0], 0, model.StatusDisqualified)
	disqualified.Scores.SimplicityScore = 0
	if _, err := store.UpsertOpportunity(ctx, disqualified); err != nil {
		t.Fatalf("Disqualifying upsert failed: %v", err)
	}
	got, err = store.GetOpportunity(ctx, enriched.Candidate.CandidateID)
	if err != nil {
		t.Fatalf("Failed to get opportunity: %v", err)
	}
	if got.Status != model.StatusDisqualified {
		t.Errorf("Disqualification must override enriched status, got %s", got.Status)
	}
}

func TestSQLiteStorage_GetTopOpportunitiesExcludesDisqualified(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	subs := createTestSubmissions(3)
	saveTestSubmissions(t, store, subs)

	// Disqualified record with the highest raw total must never appear.
	records := []*model.OpportunityRecord{
		createTestRecord(&subs[0], 55, model.StatusIdentified),
		createTestRecord(&subs[1], 99, model.StatusDisqualified),
		createTestRecord(&subs[2], 72, model.StatusEnriched),
	}
	for _, r := range records {
		if _, err := store.UpsertOpportunity(ctx, r); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	top, err := store.GetTopOpportunities(ctx, 10)
	if err != nil {
		t.Fatalf("Failed to get top opportunities: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(top))
	}
	if top[0].TotalScore != 72 || top[1].TotalScore != 55 {
		t.Errorf("Expected descending order 72, 55; got %v, %v", top[0].TotalScore, top[1].TotalScore)
	}
	for _, r := range top {
		if r.Status == model.StatusDisqualified {
			t.Error("Disqualified record leaked into top view")
		}
	}
}

func TestSQLiteStorage_GetEnrichableOpportunities(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	subs := createTestSubmissions(3)
	saveTestSubmissions(t, store, subs)

	records := []*model.OpportunityRecord{
		createTestRecord(&subs[0], 55, model.StatusIdentified),
		createTestRecord(&subs[1], 99, model.StatusDisqualified),
		createTestRecord(&subs[2], 72, model.StatusEnriched),
	}
	for _, r := range records {
		if _, err := store.UpsertOpportunity(ctx, r); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	enrichable, err := store.GetEnrichableOpportunities(ctx, 10)
	if err != nil {
		t.Fatalf("Failed to get enrichable opportunities: %v", err)
	}
	if len(enrichable) != 1 {
		t.Fatalf("Expected 1 identified record, got %d", len(enrichable))
	}
	if enrichable[0].Status != model.StatusIdentified {
		t.Errorf("Expected identified record, got %s", enrichable[0].Status)
	}
}

func TestSQLiteStorage_GetOpportunityNotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.GetOpportunity(context.Background(), "missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStorage_UpsertValidation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := store.UpsertOpportunity(ctx, nil); err == nil {
		t.Error("Expected error for nil record")
	}

	bad := &model.OpportunityRecord{Status: model.StatusIdentified}
	if _, err := store.UpsertOpportunity(ctx, bad); err == nil {
		t.Error("Expected error for record without candidate id")
	}
}
