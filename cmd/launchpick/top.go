package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/launchpick/launchpick/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func topCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the highest-scoring opportunities",
		Long: `List stored opportunity records ordered by total score.
Disqualified records are never shown, whatever their score.

Examples:
  launchpick top
  launchpick top --limit 25`,
		RunE: runTop,
	}

	cmd.Flags().IntP("limit", "n", 10, "Number of opportunities to show")
	_ = viper.BindPFlag("top.limit", cmd.Flags().Lookup("limit"))

	return cmd
}

func runTop(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	limit := viper.GetInt("top.limit")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	records, err := store.GetTopOpportunities(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to load opportunities: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No opportunities scored yet. Run 'launchpick import' then 'launchpick score'.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tPRIORITY\tTRUST\tSTATUS\tAPP\tPROBLEM")
	for i := range records {
		r := &records[i]
		fmt.Fprintf(w, "%.1f\t%s\t%s\t%s\t%s\t%s\n",
			r.TotalScore,
			r.Priority,
			r.Trust.TrustBadge,
			statusLabel(r),
			r.Candidate.AppName,
			truncate(r.Candidate.ProblemStatement, 60),
		)
	}
	return w.Flush()
}

func statusLabel(r *model.OpportunityRecord) string {
	if r.Status == model.StatusEnriched && r.Profile != nil {
		return "ENRICHED"
	}
	return string(r.Status)
}

func truncate(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
