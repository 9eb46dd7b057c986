package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eykd/behave-go/internal/config"
	"github.com/eykd/behave-go/internal/logging"
	"github.com/eykd/behave-go/internal/report"
	"github.com/eykd/behave-go/internal/runner"
	"github.com/eykd/behave-go/internal/stepdefs"
	"github.com/eykd/behave-go/internal/steps"
)

// ErrScenariosFailed is returned by the run command when any scenario fails.
var ErrScenariosFailed = errors.New("scenarios failed")

// NewRunCmd creates the run subcommand.
func NewRunCmd(reader FeatureReader) *cobra.Command {
	return newRunCmdWithGetCWD(reader, config.LoadConfig, os.Getwd)
}

func newRunCmdWithGetCWD(reader FeatureReader, loadConfig func(string) (*config.Config, error), getwd func() (string, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "run [paths...]",
		Short:        "Run the scenarios of feature files or directories",
		Long:         "Run executes every scenario in the given feature files (YAML or JSON).\nDirectories are searched recursively. With no paths, <project>/features is used.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := resolveProject(projectFlag(cmd), getwd)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(project)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if err := applyRunFlags(cmd, cfg); err != nil {
				return err
			}

			log := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)

			paths := args
			if len(paths) == 0 {
				paths = []string{filepath.Join(project, "features")}
			}
			features, err := loadFeatures(cmd.Context(), reader, paths)
			if err != nil {
				return err
			}

			reg := steps.NewRegistry()
			stepdefs.Register(reg)
			r := runner.New(reg,
				runner.WithLogger(log),
				runner.WithStepTimeout(cfg.Run.StepTimeout),
				runner.WithAlwaysRunAfterScenario(cfg.Run.AlwaysRunAfterHooks),
				runner.WithStrictPlaceholders(cfg.Run.StrictPlaceholders),
				runner.WithTags(cfg.Tags.Include, cfg.Tags.Exclude),
			)
			log.Debug("running features", "count", len(features), "steps", reg.Len())
			rep := r.RunFeatures(cmd.Context(), features...)

			if cfg.Run.Output == config.OutputJSON {
				err = report.WriteJSON(cmd.OutOrStdout(), rep)
			} else {
				err = report.NewConsole(cmd.OutOrStdout()).Write(rep)
			}
			if err != nil {
				return fmt.Errorf("writing report: %w", err)
			}

			if !rep.Success() {
				return fmt.Errorf("%d of %d scenarios: %w", rep.Failed, rep.Passed+rep.Failed, ErrScenariosFailed)
			}
			return nil
		},
	}

	cmd.Flags().String("project", "", "project directory (default: current directory)")
	cmd.Flags().StringSlice("tags", nil, "run only scenarios carrying one of these tags")
	cmd.Flags().StringSlice("exclude-tags", nil, "skip scenarios carrying any of these tags")
	cmd.Flags().Bool("json", false, "write the report as JSON")
	cmd.Flags().Bool("strict", false, "fail outlines with unresolved placeholders")
	cmd.Flags().Duration("step-timeout", 0, "per step and hook timeout (0 disables)")
	cmd.Flags().Bool("always-run-after-hooks", false, "run after hooks even when a scenario fails")
	cmd.Flags().String("log-level", "", "log level: debug, info, warn or error")

	return cmd
}

// applyRunFlags overrides config values with flags the user set explicitly.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("tags") {
		cfg.Tags.Include, _ = flags.GetStringSlice("tags")
	}
	if flags.Changed("exclude-tags") {
		cfg.Tags.Exclude, _ = flags.GetStringSlice("exclude-tags")
	}
	if flags.Changed("json") {
		if asJSON, _ := flags.GetBool("json"); asJSON {
			cfg.Run.Output = config.OutputJSON
		} else {
			cfg.Run.Output = config.OutputConsole
		}
	}
	if flags.Changed("strict") {
		cfg.Run.StrictPlaceholders, _ = flags.GetBool("strict")
	}
	if flags.Changed("step-timeout") {
		cfg.Run.StepTimeout, _ = flags.GetDuration("step-timeout")
	}
	if flags.Changed("always-run-after-hooks") {
		cfg.Run.AlwaysRunAfterHooks, _ = flags.GetBool("always-run-after-hooks")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}
