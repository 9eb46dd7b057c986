// Package cmd implements the behave CLI commands.
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root behave command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "behave",
		Short:         "behave - run Gherkin-style behavior scenarios",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE:          rootRunE,
	}
	reader := newDefaultFeatureReader()
	root.AddCommand(NewRunCmd(reader))
	root.AddCommand(NewFormatCmd(reader))
	root.AddCommand(NewExpandCmd(reader))
	root.AddCommand(NewStepsCmd())
	root.AddCommand(NewInitCmd(newDefaultInitIO()))
	return root
}

func rootRunE(cmd *cobra.Command, _ []string) error {
	return cmd.Help()
}

// resolveProject returns the --project directory, falling back to the
// current working directory.
func resolveProject(project string, getwd func() (string, error)) (string, error) {
	if project != "" {
		return filepath.Clean(project), nil
	}
	cwd, err := getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return cwd, nil
}

func projectFlag(cmd *cobra.Command) string {
	project, _ := cmd.Flags().GetString("project")
	return project
}
