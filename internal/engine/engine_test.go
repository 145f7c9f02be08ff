package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/launchpick/launchpick/internal/common"
	"github.com/launchpick/launchpick/internal/config"
	"github.com/launchpick/launchpick/internal/model"
	"github.com/launchpick/launchpick/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStorage is an in-memory service.Storage for engine tests.
type memoryStorage struct {
	mu            sync.Mutex
	submissions   map[string]model.Submission
	opportunities map[string]model.OpportunityRecord
	upsertErr     error
	upsertCalls   int
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{
		submissions:   make(map[string]model.Submission),
		opportunities: make(map[string]model.OpportunityRecord),
	}
}

func (m *memoryStorage) SaveSubmissions(_ context.Context, subs []model.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range subs {
		if _, exists := m.submissions[s.ID]; !exists {
			m.submissions[s.ID] = s
		}
	}
	return nil
}

func (m *memoryStorage) GetSubmissions(_ context.Context, _ service.SubmissionFilter) ([]model.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Submission, 0, len(m.submissions))
	for _, s := range m.submissions {
		out = append(out, s)
	}
	return out, nil
}

func (m *memoryStorage) GetSubmissionByID(_ context.Context, id string) (*model.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.submissions[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &s, nil
}

func (m *memoryStorage) UpsertOpportunity(_ context.Context, record *model.OpportunityRecord) (service.UpsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsertCalls++
	if m.upsertErr != nil {
		return "", m.upsertErr
	}
	key := record.Candidate.CandidateID
	result := service.UpsertInserted
	if _, exists := m.opportunities[key]; exists {
		result = service.UpsertUpdated
	}
	m.opportunities[key] = *record
	return result, nil
}

func (m *memoryStorage) GetOpportunity(_ context.Context, candidateID string) (*model.OpportunityRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.opportunities[candidateID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &r, nil
}

func (m *memoryStorage) GetTopOpportunities(_ context.Context, limit int) ([]model.OpportunityRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.OpportunityRecord
	for _, r := range m.opportunities {
		if r.Status != model.StatusDisqualified {
			out = append(out, r)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memoryStorage) GetEnrichableOpportunities(_ context.Context, limit int) ([]model.OpportunityRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.OpportunityRecord
	for _, r := range m.opportunities {
		if r.Status == model.StatusIdentified {
			out = append(out, r)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memoryStorage) Migrate(_ context.Context) error { return nil }
func (m *memoryStorage) Close() error                    { return nil }

func testSubmissions() []model.Submission {
	strong := model.Submission{
		ID:        "post-strong",
		Title:     "Tired of manually reconciling invoices every month",
		Community: "r/smallbusiness",
		Upvotes:   400,
		Comments:  90,
		CreatedAt: time.Now().Add(-24 * time.Hour),
		BodyText: `I am so frustrated reconciling client payments manually. It is a nightmare
and a waste of time. I've tried everything and couldn't find a simple tool.
I just need something to match payments to invoices automatically.
I would pay $25/mo for this, honestly. Anyone else need this?`,
	}
	sprawling := model.Submission{
		ID:        "post-sprawling",
		Title:     "Platform idea: everything app for businesses",
		Community: "r/startups",
		Upvotes:   12,
		Comments:  3,
		CreatedAt: time.Now().Add(-72 * time.Hour),
		BodyText: `It should do:
- manage invoices
- run payroll
- social network for vendors
- realtime chat
- marketplace for services`,
	}
	return []model.Submission{strong, sprawling}
}

func newTestEngine(t *testing.T, store service.Storage, enricher Enricher) *Engine {
	t.Helper()
	cfg := config.DefaultPipeline()
	cfg.Workers = 2
	cfg.MaxEnrich = 2
	eng, err := New(store, enricher, cfg)
	require.NoError(t, err)
	return eng
}

func TestScoreBatchPersistsOneRecordPerCandidate(t *testing.T) {
	store := newMemoryStorage()
	eng := newTestEngine(t, store, nil)
	subs := testSubmissions()

	stats, err := eng.ScoreBatch(context.Background(), subs)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Extracted)
	assert.Equal(t, 1, stats.Disqualified, "five core functions must disqualify")
	assert.Equal(t, 0, stats.Failed)
	assert.Len(t, store.opportunities, 2)

	// Second run converges to the same rows, no duplicates.
	stats2, err := eng.ScoreBatch(context.Background(), subs)
	require.NoError(t, err)
	assert.Equal(t, 2, stats2.Extracted)
	assert.Len(t, store.opportunities, 2)
}

func TestScoreBatchDisqualificationOverrides(t *testing.T) {
	store := newMemoryStorage()
	eng := newTestEngine(t, store, nil)

	_, err := eng.ScoreBatch(context.Background(), testSubmissions())
	require.NoError(t, err)

	sprawlingID := (&model.Submission{ID: "post-sprawling", Community: "r/startups"}).CandidateID()
	record, err := store.GetOpportunity(context.Background(), sprawlingID)
	require.NoError(t, err)

	assert.Equal(t, model.StatusDisqualified, record.Status)
	assert.Equal(t, 0.0, record.Scores.SimplicityScore)
	assert.False(t, eng.Gate().Admit(record), "disqualified records never pass the gate")
}

func TestScoreBatchCountsFailuresWithoutAborting(t *testing.T) {
	store := newMemoryStorage()
	store.upsertErr = errors.New("disk full")
	eng := newTestEngine(t, store, nil)

	stats, err := eng.ScoreBatch(context.Background(), testSubmissions())
	require.NoError(t, err, "a failed record must not abort the batch")

	assert.Equal(t, 0, stats.Extracted)
	assert.Equal(t, 2, stats.Failed)

	// Each record was retried to its attempt bound before being skipped.
	assert.Equal(t, 2*config.DefaultPipeline().MaxRetries, store.upsertCalls)
}

func TestScoreBatchEmptyInput(t *testing.T) {
	store := newMemoryStorage()
	eng := newTestEngine(t, store, nil)

	_, err := eng.ScoreBatch(context.Background(), nil)
	assert.ErrorIs(t, err, common.ErrNoSubmissions)
}

func TestEnrichAdmittedTransitionsStatus(t *testing.T) {
	store := newMemoryStorage()
	enricher := NewMockEnricher()
	eng := newTestEngine(t, store, enricher)

	subs := testSubmissions()
	require.NoError(t, store.SaveSubmissions(context.Background(), subs))
	_, err := eng.ScoreBatch(context.Background(), subs)
	require.NoError(t, err)

	stats, err := eng.EnrichAdmitted(context.Background(), 10)
	require.NoError(t, err)

	require.Equal(t, 1, stats.Admitted, "only the strong candidate clears the gate")
	assert.Equal(t, 1, stats.Enriched)
	assert.Equal(t, 0, stats.Failed)

	strongID := (&model.Submission{ID: "post-strong", Community: "r/smallbusiness"}).CandidateID()
	record, err := store.GetOpportunity(context.Background(), strongID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusEnriched, record.Status)
	require.NotNil(t, record.Profile)
	assert.NotEmpty(t, record.Profile.ValueProposition)

	// The collaborator saw exactly the admitted candidate.
	requests := enricher.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, strongID, requests[0].CandidateID)
}

func TestEnrichAdmittedFailureLeavesRecordIdentified(t *testing.T) {
	store := newMemoryStorage()
	enricher := NewMockEnricher()
	enricher.SetError(errors.New("provider timeout"))
	eng := newTestEngine(t, store, enricher)

	subs := testSubmissions()
	require.NoError(t, store.SaveSubmissions(context.Background(), subs))
	_, err := eng.ScoreBatch(context.Background(), subs)
	require.NoError(t, err)

	stats, err := eng.EnrichAdmitted(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Admitted)
	assert.Equal(t, 0, stats.Enriched)
	assert.Equal(t, 1, stats.Failed)

	strongID := (&model.Submission{ID: "post-strong", Community: "r/smallbusiness"}).CandidateID()
	record, err := store.GetOpportunity(context.Background(), strongID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusIdentified, record.Status, "failure must not consume the record")
	assert.Nil(t, record.Profile)
	assert.Greater(t, record.TotalScore, 0.0, "scores stay intact on enrichment failure")

	// A later run retries the same candidate.
	enricher.SetError(nil)
	retry, err := eng.EnrichAdmitted(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, retry.Enriched)
}

func TestEnrichAdmittedWithoutEnricher(t *testing.T) {
	store := newMemoryStorage()
	eng := newTestEngine(t, store, nil)

	_, err := eng.EnrichAdmitted(context.Background(), 10)
	assert.Error(t, err)
}

func TestScoreSubmissionMatchesWorkedExample(t *testing.T) {
	store := newMemoryStorage()
	eng := newTestEngine(t, store, nil)

	record := eng.ScoreSubmission(&testSubmissions()[0])

	assert.Equal(t, model.StatusIdentified, record.Status)
	assert.Equal(t, 100.0, record.Scores.SimplicityScore, "one core function scores 100")
	assert.Equal(t, eng.agg.Priority(record.TotalScore), record.Priority)
	assert.NotEmpty(t, record.Trust.TrustBadge)
}
