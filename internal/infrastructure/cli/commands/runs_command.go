package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"spellbook/internal/app"
	"spellbook/internal/infrastructure/ledger"
)

// NewRunsCommand creates the runs command, which lists the ledger.
func NewRunsCommand(container *app.Container) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent runs from the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunRecent(cmd.Context(), cmd.OutOrStdout(), container, limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", DefaultRunsLimit, "Max runs to show")
	return cmd
}

// RunRecent prints the most recent ledger rows, newest first, headed by
// the ledger location.
func RunRecent(ctx context.Context, out io.Writer, container *app.Container, limit int) error {
	path := container.Config.LedgerPath()

	// Opening would create an empty database; stat first so a listing
	// never mutates the library.
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintln(out, MsgNoRunsRecorded)
		return nil
	}
	store, err := ledger.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoRunsRecorded)
		return nil
	}
	fmt.Fprintf(out, "Ledger: %s\n", store.Path())
	for _, rec := range records {
		fmt.Fprintf(out, "%s | %-7s | %3d archives | %5d corpus | %9s | %8s | %s\n",
			rec.StartedAt.Format(time.RFC3339),
			rec.Mode,
			rec.ArchivesFound,
			rec.CorpusSize,
			humanize.Bytes(uint64(rec.WorkingHistoryBytes)),
			rec.Duration.Round(time.Millisecond),
			rec.Status)
	}
	return nil
}
