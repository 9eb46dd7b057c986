package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/eykd/behave-go/acceptance"
)

// NewFormatCmd creates the format subcommand.
func NewFormatCmd(reader FeatureReader) *cobra.Command {
	return &cobra.Command{
		Use:          "format <paths...>",
		Short:        "Print feature files as Gherkin text",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			features, err := loadFeatures(cmd.Context(), reader, args)
			if err != nil {
				return err
			}
			return writeFormatted(cmd.OutOrStdout(), features)
		},
	}
}

// writeFormatted writes each feature's Gherkin text, separated by a blank line.
func writeFormatted(w io.Writer, features []*acceptance.Feature) error {
	for i, f := range features {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, acceptance.Format(f)); err != nil {
			return fmt.Errorf("writing %s: %w", f.Name, err)
		}
	}
	return nil
}
