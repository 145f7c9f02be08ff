package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/launchpick/launchpick/internal/common"
	"github.com/launchpick/launchpick/internal/model"
	"github.com/launchpick/launchpick/internal/service"
)

// UpsertOpportunity writes an opportunity record keyed on its candidate_id.
// The operation is select-then-update-or-insert inside one transaction, so
// any number of pipeline runs over the same submission converge to exactly
// one row. A re-score never erases a previously persisted enrichment
// profile unless the incoming record carries a fresh one.
func (s *SQLiteStorage) UpsertOpportunity(ctx context.Context, record *model.OpportunityRecord) (service.UpsertResult, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateRecord(record); err != nil {
		return "", err
	}

	if record.ProcessedAt.IsZero() {
		record.ProcessedAt = time.Now()
	}

	coreFunctions, err := json.Marshal(record.Candidate.CoreFunctions)
	if err != nil {
		return "", fmt.Errorf("failed to marshal core functions: %w", err)
	}

	tx, err := s.beginTx(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM opportunities WHERE candidate_id = ?)
	`, record.Candidate.CandidateID).Scan(&exists)
	if err != nil {
		return "", fmt.Errorf("failed to check for existing record: %w", err)
	}

	var profileArgs []any
	var enrichedFunctions []byte
	if record.Profile != nil {
		enrichedFunctions, err = json.Marshal(record.Profile.CoreFunctions)
		if err != nil {
			return "", fmt.Errorf("failed to marshal enriched functions: %w", err)
		}
		profileArgs = []any{
			record.Profile.ValueProposition,
			record.Profile.TargetUser,
			record.Profile.MonetizationModel,
			string(enrichedFunctions),
		}
	}

	result := service.UpsertUpdated
	if exists {
		// An enriched row keeps its status on a plain re-score so it isn't
		// enriched (and paid for) again; an incoming disqualification still
		// overrides.
		query := `
			UPDATE opportunities SET
				submission_id = ?, app_name = ?, problem_statement = ?,
				target_segment = ?, core_functions = ?,
				market_demand = ?, pain_intensity = ?, monetization_potential = ?,
				market_gap = ?, technical_feasibility = ?, simplicity_score = ?,
				total_score = ?, priority = ?,
				status = CASE WHEN status = 'ENRICHED' AND ? = 'IDENTIFIED' THEN status ELSE ? END,
				activity_score = ?, engagement_level = ?, trend_velocity = ?,
				problem_validity = ?, discussion_quality = ?,
				confidence_level = ?, confidence_score = ?,
				trust_score = ?, trust_level = ?, trust_badge = ?,
				processed_at = ?`
		args := upsertArgs(record, string(coreFunctions), true)
		if record.Profile != nil {
			query += `,
				value_proposition = ?, target_user = ?,
				monetization_model = ?, enriched_functions = ?`
			args = append(args, profileArgs...)
		}
		query += ` WHERE candidate_id = ?`
		args = append(args, record.Candidate.CandidateID)

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return "", fmt.Errorf("failed to update opportunity %s: %w", record.Candidate.CandidateID, err)
		}
	} else {
		result = service.UpsertInserted
		args := append([]any{record.Candidate.CandidateID}, upsertArgs(record, string(coreFunctions), false)...)
		if record.Profile == nil {
			profileArgs = []any{nil, nil, nil, nil}
		}
		args = append(args, profileArgs...)

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO opportunities (
				candidate_id, submission_id, app_name, problem_statement,
				target_segment, core_functions,
				market_demand, pain_intensity, monetization_potential,
				market_gap, technical_feasibility, simplicity_score,
				total_score, priority, status,
				activity_score, engagement_level, trend_velocity,
				problem_validity, discussion_quality,
				confidence_level, confidence_score,
				trust_score, trust_level, trust_badge,
				processed_at,
				value_proposition, target_user, monetization_model, enriched_functions
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, args...); err != nil {
			return "", fmt.Errorf("failed to insert opportunity %s: %w", record.Candidate.CandidateID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit upsert: %w", err)
	}
	return result, nil
}

// upsertArgs renders the shared column values in statement order,
// excluding the key and the profile columns. The update statement binds
// the status twice for its CASE expression.
func upsertArgs(record *model.OpportunityRecord, coreFunctions string, doubleStatus bool) []any {
	args := []any{
		record.Candidate.SubmissionID,
		record.Candidate.AppName,
		record.Candidate.ProblemStatement,
		record.Candidate.TargetSegment,
		coreFunctions,
		record.Scores.MarketDemand,
		record.Scores.PainIntensity,
		record.Scores.MonetizationPotential,
		record.Scores.MarketGap,
		record.Scores.TechnicalFeasibility,
		record.Scores.SimplicityScore,
		record.TotalScore,
		string(record.Priority),
		string(record.Status),
	}
	if doubleStatus {
		args = append(args, string(record.Status))
	}
	return append(args,
		record.Trust.ActivityScore,
		string(record.Trust.EngagementLevel),
		record.Trust.TrendVelocity,
		string(record.Trust.ProblemValidity),
		string(record.Trust.DiscussionQuality),
		string(record.Trust.ConfidenceLevel),
		record.Trust.ConfidenceScore,
		record.Trust.TrustScore,
		string(record.Trust.TrustLevel),
		record.Trust.TrustBadge,
		record.ProcessedAt,
	)
}

const opportunityColumns = `
	candidate_id, submission_id, app_name, problem_statement,
	target_segment, core_functions,
	market_demand, pain_intensity, monetization_potential,
	market_gap, technical_feasibility, simplicity_score,
	total_score, priority, status,
	activity_score, engagement_level, trend_velocity,
	problem_validity, discussion_quality,
	confidence_level, confidence_score,
	trust_score, trust_level, trust_badge,
	processed_at,
	value_proposition, target_user, monetization_model, enriched_functions`

// GetOpportunity retrieves one record by candidate id.
func (s *SQLiteStorage) GetOpportunity(ctx context.Context, candidateID string) (*model.OpportunityRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(candidateID, "candidateID"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+opportunityColumns+`
		FROM opportunities WHERE candidate_id = ?
	`, candidateID)

	record, err := scanOpportunity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get opportunity %s: %w", candidateID, err)
	}
	return record, nil
}

// GetTopOpportunities returns the highest-scoring records. Disqualified
// records are excluded regardless of their total score.
func (s *SQLiteStorage) GetTopOpportunities(ctx context.Context, limit int) ([]model.OpportunityRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+opportunityColumns+`
		FROM opportunities
		WHERE status != ?
		ORDER BY total_score DESC, candidate_id
		LIMIT ?
	`, string(model.StatusDisqualified), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top opportunities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectOpportunities(rows)
}

// GetEnrichableOpportunities returns identified records awaiting
// enrichment, best first. Threshold filtering happens in the admission
// gate, not here, so the gate stays re-evaluatable against stored scores.
func (s *SQLiteStorage) GetEnrichableOpportunities(ctx context.Context, limit int) ([]model.OpportunityRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+opportunityColumns+`
		FROM opportunities
		WHERE status = ?
		ORDER BY total_score DESC, candidate_id
		LIMIT ?
	`, string(model.StatusIdentified), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrichable opportunities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectOpportunities(rows)
}

// scanner abstracts sql.Row and sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanOpportunity(row scanner) (*model.OpportunityRecord, error) {
	var record model.OpportunityRecord
	var coreFunctions string
	var problemStatement, targetSegment sql.NullString
	var engagement, validity, discussion, confidence, trustLevel, badge sql.NullString
	var valueProp, targetUser, monetization, enrichedFunctions sql.NullString

	err := row.Scan(
		&record.Candidate.CandidateID,
		&record.Candidate.SubmissionID,
		&record.Candidate.AppName,
		&problemStatement,
		&targetSegment,
		&coreFunctions,
		&record.Scores.MarketDemand,
		&record.Scores.PainIntensity,
		&record.Scores.MonetizationPotential,
		&record.Scores.MarketGap,
		&record.Scores.TechnicalFeasibility,
		&record.Scores.SimplicityScore,
		&record.TotalScore,
		&record.Priority,
		&record.Status,
		&record.Trust.ActivityScore,
		&engagement,
		&record.Trust.TrendVelocity,
		&validity,
		&discussion,
		&confidence,
		&record.Trust.ConfidenceScore,
		&record.Trust.TrustScore,
		&trustLevel,
		&badge,
		&record.ProcessedAt,
		&valueProp,
		&targetUser,
		&monetization,
		&enrichedFunctions,
	)
	if err != nil {
		return nil, err
	}

	record.Candidate.ProblemStatement = problemStatement.String
	record.Candidate.TargetSegment = targetSegment.String
	record.Trust.EngagementLevel = model.EngagementLevel(engagement.String)
	record.Trust.ProblemValidity = model.QualityRating(validity.String)
	record.Trust.DiscussionQuality = model.QualityRating(discussion.String)
	record.Trust.ConfidenceLevel = model.ConfidenceLevel(confidence.String)
	record.Trust.TrustLevel = model.TrustLevel(trustLevel.String)
	record.Trust.TrustBadge = badge.String

	if coreFunctions != "" {
		if err := json.Unmarshal([]byte(coreFunctions), &record.Candidate.CoreFunctions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal core functions: %w", err)
		}
	}

	if valueProp.Valid && valueProp.String != "" {
		profile := &model.Profile{
			ValueProposition:  valueProp.String,
			TargetUser:        targetUser.String,
			MonetizationModel: monetization.String,
		}
		if enrichedFunctions.Valid && enrichedFunctions.String != "" {
			if err := json.Unmarshal([]byte(enrichedFunctions.String), &profile.CoreFunctions); err != nil {
				return nil, fmt.Errorf("failed to unmarshal enriched functions: %w", err)
			}
		}
		record.Profile = profile
	}

	return &record, nil
}

func collectOpportunities(rows *sql.Rows) ([]model.OpportunityRecord, error) {
	var records []model.OpportunityRecord
	for rows.Next() {
		record, err := scanOpportunity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opportunity: %w", err)
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}
