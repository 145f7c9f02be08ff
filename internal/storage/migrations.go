package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a
// fatal error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS submissions (
					id TEXT PRIMARY KEY,
					title TEXT NOT NULL,
					body_text TEXT,
					community TEXT NOT NULL,
					upvotes INTEGER DEFAULT 0,
					comments INTEGER DEFAULT 0,
					created_at DATETIME NOT NULL,
					imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_submissions_community ON submissions(community)`,
				`CREATE INDEX idx_submissions_created ON submissions(created_at)`,

				`CREATE TABLE IF NOT EXISTS opportunities (
					candidate_id TEXT PRIMARY KEY,
					submission_id TEXT NOT NULL,
					app_name TEXT NOT NULL,
					problem_statement TEXT,
					target_segment TEXT,
					core_functions TEXT,
					market_demand REAL NOT NULL DEFAULT 0,
					pain_intensity REAL NOT NULL DEFAULT 0,
					monetization_potential REAL NOT NULL DEFAULT 0,
					market_gap REAL NOT NULL DEFAULT 0,
					technical_feasibility REAL NOT NULL DEFAULT 0,
					simplicity_score REAL NOT NULL DEFAULT 0,
					total_score REAL NOT NULL DEFAULT 0,
					priority TEXT NOT NULL,
					status TEXT NOT NULL,
					activity_score REAL NOT NULL DEFAULT 0,
					engagement_level TEXT,
					trend_velocity REAL NOT NULL DEFAULT 0,
					problem_validity TEXT,
					discussion_quality TEXT,
					confidence_level TEXT,
					confidence_score REAL NOT NULL DEFAULT 0,
					trust_score REAL NOT NULL DEFAULT 0,
					trust_level TEXT,
					trust_badge TEXT,
					processed_at DATETIME NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (submission_id) REFERENCES submissions(id)
				)`,
				`CREATE INDEX idx_opportunities_status ON opportunities(status)`,
				`CREATE INDEX idx_opportunities_total ON opportunities(total_score)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add enrichment profile columns",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`ALTER TABLE opportunities ADD COLUMN value_proposition TEXT`,
				`ALTER TABLE opportunities ADD COLUMN target_user TEXT`,
				`ALTER TABLE opportunities ADD COLUMN monetization_model TEXT`,
				`ALTER TABLE opportunities ADD COLUMN enriched_functions TEXT`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Composite index for the top-opportunities view",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_opportunities_status_total ON opportunities(status, total_score DESC)`)
			return err
		},
	},
}

// Migrate applies any pending schema migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	if currentVersion > ExpectedSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than expected %d", currentVersion, ExpectedSchemaVersion)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		slog.Info("Applying migration",
			"version", migration.Version,
			"description", migration.Description)

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration transaction: %w", err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		// PRAGMA doesn't accept bind parameters
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to set schema version: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}
