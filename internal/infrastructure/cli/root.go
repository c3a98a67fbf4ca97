package cli

import (
	"context"

	"github.com/spf13/cobra"

	"spellbook/internal/app"
	"spellbook/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose    bool
	ConfigPath string
}

// NewRootCmd wires the cobra root command. Running it bare executes the
// full archival pipeline; --top and --silence are standalone shortcuts
// that exit without running the pipeline.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, app.Options{
		ConfigPath: opts.ConfigPath,
		Verbose:    opts.Verbose,
	})
	if err != nil {
		return nil, err
	}

	var (
		topN       int
		silenceCSV string
		dryRun     bool
	)

	root := &cobra.Command{
		Use:   "spellbook",
		Short: "Spellbook - shell history archival engine",
		Long: "Spellbook snapshots your zsh history, ranks commands by use, and regenerates\n" +
			"a working history from the accumulated corpus.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch {
			case cmd.Flags().Changed("top"):
				return commands.RunTop(cmd.Context(), out, container, topN)
			case cmd.Flags().Changed("silence"):
				return commands.RunSilenceAdd(cmd.Context(), out, container, silenceCSV, dryRun)
			default:
				return commands.RunPipeline(cmd.Context(), out, container, dryRun)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().IntVar(&topN, "top", 0, "Print the top N corpus commands and exit")
	root.Flags().StringVar(&silenceCSV, "silence", "", "Comma-separated commands to add to the silence list, then exit")
	root.Flags().BoolVar(&dryRun, "dry-run", false, "Report planned operations without writing anything")
	root.MarkFlagsMutuallyExclusive("top", "silence")

	root.AddCommand(commands.NewRunCommand(container))
	root.AddCommand(commands.NewTopCommand(container))
	root.AddCommand(commands.NewSilenceCommand(container))
	root.AddCommand(commands.NewStatusCommand(container))
	root.AddCommand(commands.NewRunsCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root, nil
}
