package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func enrichCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Enrich admitted candidates into product profiles",
		Long: `Send candidates that cleared the admission gate to the enrichment
provider and store the resulting product profiles.

Only identified records above the score threshold are enriched, so the
gate bounds what a run can cost. A failed enrichment leaves the record
identified and it is retried on the next run.

Examples:
  launchpick enrich              # enrich up to the default batch size
  launchpick enrich --limit 10   # cap this run at 10 candidates
  launchpick enrich --dry-run    # exercise the pipeline without spending`,
		RunE: runEnrich,
	}

	// Flags
	cmd.Flags().IntP("limit", "n", 25, "Maximum candidates to enrich this run")
	cmd.Flags().Bool("dry-run", false, "Use a mock provider instead of a paid API")

	_ = viper.BindPFlag("enrich.limit", cmd.Flags().Lookup("limit"))
	_ = viper.BindPFlag("enrich.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runEnrich(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	limit := viper.GetInt("enrich.limit")
	dryRun := viper.GetBool("enrich.dry_run")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	enricher, closeEnricher, err := buildEnricher(dryRun)
	if err != nil {
		return fmt.Errorf("failed to create enricher: %w", err)
	}
	defer closeEnricher()

	eng, err := buildEngine(store, enricher)
	if err != nil {
		return err
	}

	stats, err := eng.EnrichAdmitted(ctx, limit)
	if err != nil {
		return fmt.Errorf("enrichment run failed: %w", err)
	}

	slog.Info("Enrichment complete",
		"run_id", stats.RunID,
		"admitted", stats.Admitted,
		"enriched", stats.Enriched,
		"failed", stats.Failed,
		"duration", stats.Duration.Round(time.Millisecond))
	return nil
}
