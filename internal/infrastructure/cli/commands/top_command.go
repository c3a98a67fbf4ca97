package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"spellbook/internal/app"
	"spellbook/internal/domain"
	"spellbook/internal/infrastructure/corpus"
)

// NewTopCommand creates the top command.
func NewTopCommand(container *app.Container) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Print the most used commands from the corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunTop(cmd.Context(), cmd.OutOrStdout(), container, limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", DefaultTopLimit, "How many commands to print")
	return cmd
}

// RunTop prints the top limit corpus commands in rank order. A missing
// corpus is an error; an empty one is not.
func RunTop(_ context.Context, out io.Writer, container *app.Container, limit int) error {
	if limit < 1 {
		return domain.NewConfigError(ErrTopLimitInvalid)
	}

	entries, err := corpus.ReadEntries(container.Config.CorpusPath())
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ErrNoCorpus
		}
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, MsgCorpusEmpty)
		return nil
	}

	if limit > len(entries) {
		limit = len(entries)
	}
	for i, command := range entries[:limit] {
		fmt.Fprintf(out, "%3d. %s\n", i+1, command)
	}
	return nil
}
