package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eykd/behave-go/internal/stepdefs"
	"github.com/eykd/behave-go/internal/steps"
)

// NewStepsCmd creates the steps subcommand, which lists the built-in step
// patterns in match order.
func NewStepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "steps",
		Short:        "List the available step definitions",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := steps.NewRegistry()
			stepdefs.Register(reg)
			for _, def := range reg.Definitions() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), def.Pattern.String()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
