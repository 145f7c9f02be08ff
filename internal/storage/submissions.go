package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/launchpick/launchpick/internal/common"
	"github.com/launchpick/launchpick/internal/model"
	"github.com/launchpick/launchpick/internal/service"
)

// SaveSubmissions saves collected submissions. Re-importing an overlapping
// dump is safe: already-known submissions are ignored, never duplicated.
func (s *SQLiteStorage) SaveSubmissions(ctx context.Context, submissions []model.Submission) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSubmissions(submissions); err != nil {
		return err
	}

	tx, err := s.beginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO submissions (
			id, title, body_text, community, upvotes, comments, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, sub := range submissions {
		if _, err := stmt.ExecContext(ctx,
			sub.ID,
			sub.Title,
			sub.BodyText,
			sub.Community,
			sub.Upvotes,
			sub.Comments,
			sub.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert submission %s: %w", sub.ID, err)
		}
	}

	return tx.Commit()
}

// GetSubmissions retrieves submissions matching the filter.
func (s *SQLiteStorage) GetSubmissions(ctx context.Context, filter service.SubmissionFilter) ([]model.Submission, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, title, body_text, community, upvotes, comments, created_at
		FROM submissions`
	var conditions []string
	var args []any

	if filter.Community != "" {
		conditions = append(conditions, "community = ?")
		args = append(args, filter.Community)
	}
	if filter.Since != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *filter.Since)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var submissions []model.Submission
	for rows.Next() {
		var sub model.Submission
		var body sql.NullString
		if err := rows.Scan(&sub.ID, &sub.Title, &body, &sub.Community, &sub.Upvotes, &sub.Comments, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		sub.BodyText = body.String
		submissions = append(submissions, sub)
	}

	return submissions, rows.Err()
}

// GetSubmissionByID retrieves a single submission.
func (s *SQLiteStorage) GetSubmissionByID(ctx context.Context, id string) (*model.Submission, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var sub model.Submission
	var body sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, body_text, community, upvotes, comments, created_at
		FROM submissions WHERE id = ?
	`, id).Scan(&sub.ID, &sub.Title, &body, &sub.Community, &sub.Upvotes, &sub.Comments, &sub.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get submission %s: %w", id, err)
	}

	sub.BodyText = body.String
	return &sub, nil
}
