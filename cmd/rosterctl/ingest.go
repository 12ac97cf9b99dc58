package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	app "github.com/hostelhub/roster-import/internal/application/roster"
	"github.com/hostelhub/roster-import/internal/config"
	domain "github.com/hostelhub/roster-import/internal/domain/roster"
	"github.com/hostelhub/roster-import/internal/infrastructure/db"
	"github.com/hostelhub/roster-import/internal/infrastructure/file"
	"github.com/hostelhub/roster-import/internal/infrastructure/repository"
	"github.com/hostelhub/roster-import/internal/infrastructure/repository/memory"
)

var errRowsFailed = errors.New("some roster rows were not saved")

type ingestOptions struct {
	file   string
	dryRun bool
	strict bool
}

func newIngestCmd(root *rootOptions) *cobra.Command {
	var opts ingestOptions

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest a roster CSV file into the student and account tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}

			if opts.dryRun {
				return runIngest(cmd.Context(), cmd.OutOrStdout(), cfg, opts, memory.NewRosterStore())
			}

			if err := cfg.RequireDatabase(); err != nil {
				return err
			}
			pool, err := db.NewPool(cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			writer := repository.NewRosterRepository(pool, repository.RosterRepositoryOptions{
				RowTransaction: cfg.Ingest.RowTransaction,
			})
			return runIngest(cmd.Context(), cmd.OutOrStdout(), cfg, opts, writer)
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "Roster CSV file, relative to ingest.import_base_dir unless absolute (required)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Validate and report without writing to the database")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Exit non-zero when any row fails")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runIngest(ctx context.Context, out io.Writer, cfg *config.Config, opts ingestOptions, writer domain.RosterWriter) error {
	source := file.NewRosterSource(cfg.Ingest.ImportBaseDir)
	payload, err := source.ReadAll(ctx, opts.file)
	if err != nil {
		return err
	}

	result, err := app.NewIngestRoster(writer).Execute(ctx, app.IngestRosterInput{
		Payload: payload,
		Source:  opts.file,
	})
	if err != nil {
		return fmt.Errorf("ingest %s: %w", opts.file, err)
	}

	mode := "applied"
	if opts.dryRun {
		mode = "dry-run"
	}
	fmt.Fprintf(out, "run %s (%s): %s\n", result.RunID, mode, result.Message)
	fmt.Fprintf(out, "saved: %d, failed: %d\n", result.SuccessCount, result.FailedCount)
	if len(result.Errors) > 0 {
		fmt.Fprintln(out, "issues:")
		fmt.Fprintln(out, "  "+strings.Join(result.Errors, "\n  "))
	}

	if opts.strict && result.FailedCount > 0 {
		return fmt.Errorf("%w: %d of %d", errRowsFailed, result.FailedCount, result.SuccessCount+result.FailedCount)
	}
	return nil
}
