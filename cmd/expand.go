package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eykd/behave-go/acceptance"
)

// NewExpandCmd creates the expand subcommand.
func NewExpandCmd(reader FeatureReader) *cobra.Command {
	return newExpandCmdWithWriter(reader, acceptance.WriteIRImpl)
}

func newExpandCmdWithWriter(reader FeatureReader, writeFile func(path string, data []byte) error) *cobra.Command {
	var (
		strict bool
		asJSON bool
		out    string
	)

	cmd := &cobra.Command{
		Use:          "expand <path>",
		Short:        "Expand scenario outlines into concrete scenarios",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := reader.ReadFeature(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("reading feature: %w", err)
			}
			expanded, err := f.Expand(strict)
			if err != nil {
				return fmt.Errorf("expanding %s: %w", args[0], err)
			}

			if out != "" {
				data, err := acceptance.SerializeIR(expanded)
				if err != nil {
					return fmt.Errorf("serializing feature: %w", err)
				}
				if err := writeFile(out, data); err != nil {
					return fmt.Errorf("writing %s: %w", out, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d scenarios to %s\n", len(expanded.Scenarios), out)
				return nil
			}

			if asJSON {
				data, err := acceptance.SerializeIR(expanded)
				if err != nil {
					return fmt.Errorf("serializing feature: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), acceptance.Format(expanded))
			return err
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail on placeholders without a matching Examples header")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the expanded feature as JSON IR")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the expanded JSON IR to this file")

	return cmd
}
