package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"spellbook/internal/app"
	"spellbook/internal/domain"
)

// NewSilenceCommand creates the silence command group.
func NewSilenceCommand(container *app.Container) *cobra.Command {
	silenceCmd := &cobra.Command{
		Use:   "silence",
		Short: "Manage the command exclusion set",
	}

	var dryRun bool
	addCmd := &cobra.Command{
		Use:   "add <command>[,<command>...]",
		Short: "Add commands to the silence list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunSilenceAdd(cmd.Context(), cmd.OutOrStdout(), container, strings.Join(args, ","), dryRun)
		},
	}
	addCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be silenced without writing")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print the silence list",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSilenceList(cmd.OutOrStdout(), container)
		},
	}

	silenceCmd.AddCommand(addCmd, listCmd)
	return silenceCmd
}

// RunSilenceAdd parses a comma-separated command list and adds each entry
// to the exclusion set. Entries already present are reported, not errors.
func RunSilenceAdd(_ context.Context, out io.Writer, container *app.Container, csv string, dryRun bool) error {
	entries := splitAndTrimCSV(csv)
	if len(entries) == 0 {
		return domain.NewConfigError(ErrSilenceListEmpty)
	}

	fs := container.Effects(dryRun)
	report, err := container.SilenceStore(fs).Add(entries)
	if err != nil {
		return err
	}

	for _, command := range report.Added {
		fmt.Fprintf(out, "silenced: %s\n", command)
	}
	for _, command := range report.AlreadyPresent {
		fmt.Fprintf(out, "already silenced: %s\n", command)
	}
	fmt.Fprintf(out, "Silence list now holds %d commands.\n", report.Total)

	if dryRun {
		fmt.Fprintln(out, MsgDryRunHeader)
		ops := fs.Journal()
		if len(ops) == 0 {
			fmt.Fprintln(out, "  (none)")
		}
		for _, op := range ops {
			fmt.Fprintf(out, "  %s\n", op)
		}
	}
	return nil
}

func runSilenceList(out io.Writer, container *app.Container) error {
	entries, err := container.SilenceStore(container.Effects(true)).Entries()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, MsgSilenceEmpty)
		return nil
	}
	for _, entry := range entries {
		fmt.Fprintln(out, entry)
	}
	return nil
}

// splitAndTrimCSV splits a comma-separated string and trims whitespace,
// dropping empty entries.
func splitAndTrimCSV(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	var result []string
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
