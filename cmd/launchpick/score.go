package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/launchpick/launchpick/internal/service"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func scoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score imported submissions",
		Long: `Run the scoring pipeline over imported submissions: derive a
candidate from each post, extract the six dimension scores, validate
signal credibility, and persist one opportunity record per candidate.

Scoring is idempotent: re-running over the same submissions updates the
existing records in place.

Examples:
  launchpick score                      # score everything
  launchpick score --community r/sales  # one community only
  launchpick score --since 720h         # last 30 days`,
		RunE: runScore,
	}

	// Flags
	cmd.Flags().StringP("community", "c", "", "Only score submissions from this community")
	cmd.Flags().Duration("since", 0, "Only score submissions newer than this age (e.g. 720h)")
	cmd.Flags().Int("limit", 0, "Maximum submissions to score (0 = all)")

	// Bind to viper (errors are rare and can be ignored in practice)
	_ = viper.BindPFlag("score.community", cmd.Flags().Lookup("community"))
	_ = viper.BindPFlag("score.since", cmd.Flags().Lookup("since"))
	_ = viper.BindPFlag("score.limit", cmd.Flags().Lookup("limit"))

	return cmd
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	filter := service.SubmissionFilter{
		Community: viper.GetString("score.community"),
		Limit:     viper.GetInt("score.limit"),
	}
	if since := viper.GetDuration("score.since"); since > 0 {
		cutoff := time.Now().Add(-since)
		filter.Since = &cutoff
	}

	submissions, err := store.GetSubmissions(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to load submissions: %w", err)
	}
	if len(submissions) == 0 {
		slog.Warn("No submissions match the filter, nothing to score")
		return nil
	}

	eng, err := buildEngine(store, nil)
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(len(submissions),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Scoring submissions..."),
	)
	eng.Progress = func() { _ = bar.Add(1) }

	stats, err := eng.ScoreBatch(ctx, submissions)
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("scoring run failed: %w", err)
	}

	slog.Info("Scoring complete",
		"run_id", stats.RunID,
		"extracted", stats.Extracted,
		"disqualified", stats.Disqualified,
		"failed", stats.Failed,
		"duration", stats.Duration.Round(time.Millisecond))
	return nil
}
