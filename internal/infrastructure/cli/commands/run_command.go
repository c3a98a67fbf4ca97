package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"spellbook/internal/app"
	"spellbook/internal/domain"
)

// NewRunCommand creates the run command, the explicit form of running
// spellbook with no arguments.
func NewRunCommand(container *app.Container) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Archive the current history and rebuild the working history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunPipeline(cmd.Context(), cmd.OutOrStdout(), container, dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report planned operations without writing anything")
	return cmd
}

// RunPipeline executes the full archival pipeline and renders the report.
func RunPipeline(ctx context.Context, out io.Writer, container *app.Container, dryRun bool) error {
	fs := container.Effects(dryRun)
	service, closeLedger := container.Pipeline(fs, out)
	defer closeLedger()

	report, err := service.Run(ctx)
	if err != nil {
		return err
	}
	displayRunReport(out, report)
	return nil
}

func displayRunReport(out io.Writer, report domain.RunReport) {
	if report.Mode == domain.RunModeDryRun {
		fmt.Fprintln(out)
		fmt.Fprintln(out, MsgDryRunHeader)
		if len(report.Journal) == 0 {
			fmt.Fprintln(out, "  (none)")
		}
		for _, op := range report.Journal {
			fmt.Fprintf(out, "  %s\n", op)
		}
	}

	fmt.Fprintln(out)
	if report.Archive.ID != "" {
		fmt.Fprintf(out, "Archive: %s\n", report.Archive.ID)
	}
	fmt.Fprintf(out, "Archives in library: %d\n", report.ArchivesFound)
	fmt.Fprintf(out, "Corpus commands: %d\n", report.CorpusSize)
	fmt.Fprintf(out, "Synthetic entries: %d\n", report.SyntheticCount)
	fmt.Fprintf(out, "Working history: %s\n", humanize.Bytes(uint64(report.WorkingHistoryBytes)))
	fmt.Fprintf(out, "Completed in %s\n", report.Duration.Round(time.Millisecond))
}
