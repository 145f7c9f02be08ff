package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/launchpick/launchpick/internal/collector"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <dump.ndjson>",
		Short: "Import a community submission dump",
		Long: `Import submissions from a newline-delimited JSON dump.

Each line is one submission with id, title, body_text, community,
upvotes, comments, and created_at fields. Re-importing an overlapping
dump is safe: already-known submissions are skipped, never duplicated.

Examples:
  launchpick import dump.ndjson
  launchpick import -          # read from stdin`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	var file *os.File
	if path == "-" {
		file = os.Stdin
	} else {
		var err error
		file, err = os.Open(path) // #nosec G304 -- user-supplied dump path
		if err != nil {
			return fmt.Errorf("failed to open dump: %w", err)
		}
		defer func() { _ = file.Close() }()
	}

	submissions, err := collector.ReadSubmissions(file)
	if err != nil {
		return fmt.Errorf("failed to parse dump: %w", err)
	}
	if len(submissions) == 0 {
		slog.Warn("Dump contained no submissions", "path", path)
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveSubmissions(ctx, submissions); err != nil {
		return fmt.Errorf("failed to save submissions: %w", err)
	}

	slog.Info("Import complete", "submissions", len(submissions), "path", path)
	return nil
}
