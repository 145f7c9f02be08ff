package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/launchpick/launchpick/internal/config"
	"github.com/launchpick/launchpick/internal/engine"
	"github.com/launchpick/launchpick/internal/enrich"
	"github.com/launchpick/launchpick/internal/service"
	"github.com/launchpick/launchpick/internal/storage"
	"github.com/spf13/viper"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/launchpick/launchpick.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// buildEnricher creates the configured LLM enricher, or a mock one when
// dryRun is set so the pipeline can be exercised without spending tokens.
func buildEnricher(dryRun bool) (engine.Enricher, func(), error) {
	if dryRun {
		slog.Info("Dry-run mode, using mock enricher")
		return engine.NewMockEnricher(), func() {}, nil
	}

	provider := viper.GetString("enrichment.provider")
	if provider == "" {
		provider = "anthropic"
	}

	cfg := enrich.Config{
		Provider:    provider,
		APIKey:      viper.GetString("enrichment.api_key"),
		Model:       viper.GetString("enrichment.model"),
		MaxRetries:  viper.GetInt("enrichment.max_retries"),
		RateLimit:   viper.GetInt("enrichment.rate_limit"),
		Temperature: viper.GetFloat64("enrichment.temperature"),
		MaxTokens:   viper.GetInt("enrichment.max_tokens"),
	}

	enricher, err := enrich.NewEnricher(cfg, slog.Default())
	if err != nil {
		return nil, nil, err
	}
	return enricher, enricher.Close, nil
}

// buildEngine assembles the pipeline engine from the active configuration.
func buildEngine(store service.Storage, enricher engine.Enricher) (*engine.Engine, error) {
	cfg, err := config.PipelineFromViper()
	if err != nil {
		return nil, fmt.Errorf("invalid pipeline configuration: %w", err)
	}
	return engine.New(store, enricher, cfg)
}
