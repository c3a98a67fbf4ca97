package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"spellbook/internal/app"
	"spellbook/internal/domain"
)

// NewStatusCommand creates the status command.
func NewStatusCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Inspect the library and its inputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := container.StatusService().Run(cmd.Context())
			displayStatusReport(cmd.OutOrStdout(), report)
			if err != nil {
				return err
			}
			if !report.Healthy() {
				return errors.New(ErrStatusProblems)
			}
			return nil
		},
	}
}

func displayStatusReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Fprintf(out, "[%s] %s - %s\n",
			strings.ToUpper(string(check.Status)),
			check.Name,
			check.Details)
	}
}
