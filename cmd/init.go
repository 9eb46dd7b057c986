package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/eykd/behave-go/internal/config"
)

// InitIO handles I/O for the init command.
type InitIO interface {
	StatFile(path string) (bool, error)
	MkdirAll(path string) error
	WriteFileAtomic(path, content string) error
}

// exampleFeature is the starter feature written by init. Every step it uses
// is in the built-in step library.
const exampleFeature = `name: Calculator
description: Adding numbers on a stack calculator
tags: [example]
background:
  steps:
    - keyword: Given
      text: the app is running
scenarios:
  - name: Add two numbers
    steps:
      - keyword: Given
        text: I have entered 2 into the calculator
      - keyword: And
        text: I have entered 3 into the calculator
      - keyword: When
        text: I press add
      - keyword: Then
        text: the result should be 5 on the screen
  - name: Subtract <b> from <a>
    outline: true
    steps:
      - keyword: Given
        text: I have entered <a> into the calculator
      - keyword: And
        text: I have entered <b> into the calculator
      - keyword: When
        text: I press subtract
      - keyword: Then
        text: the result should be <result> on the screen
    examples:
      headers: [a, b, result]
      rows:
        - ["10", "4", "6"]
        - ["3", "5", "-2"]
`

// NewInitCmd creates the init subcommand.
func NewInitCmd(io InitIO) *cobra.Command {
	return newInitCmdWithGetCWD(io, os.Getwd)
}

func newInitCmdWithGetCWD(io InitIO, getwd func() (string, error)) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:          "init",
		Short:        "Initialize a behave project in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := resolveProject(projectFlag(cmd), getwd)
			if err != nil {
				return err
			}

			configPath := filepath.Join(project, ".behave", "config.yaml")
			featurePath := filepath.Join(project, "features", "example.yaml")

			configExists, err := io.StatFile(configPath)
			if err != nil {
				return fmt.Errorf("checking %s: %w", configPath, err)
			}
			if configExists && !force {
				return fmt.Errorf(".behave/config.yaml already exists in %s; use --force to overwrite", project)
			}

			needsWarning := force && configExists

			configContent, err := yaml.Marshal(config.DefaultConfig())
			if err != nil {
				return fmt.Errorf("encoding default config: %w", err)
			}
			if err := io.MkdirAll(filepath.Dir(configPath)); err != nil {
				return fmt.Errorf("creating %s: %w", filepath.Dir(configPath), err)
			}
			if err := io.WriteFileAtomic(configPath, "# behave project configuration\n"+string(configContent)); err != nil {
				return fmt.Errorf("writing .behave/config.yaml: %w", err)
			}

			featureExists, err := io.StatFile(featurePath)
			if err != nil {
				return fmt.Errorf("checking %s: %w", featurePath, err)
			}

			needsWarning = needsWarning || (force && featureExists)

			if !featureExists || force {
				if err := io.MkdirAll(filepath.Dir(featurePath)); err != nil {
					return fmt.Errorf("creating %s: %w", filepath.Dir(featurePath), err)
				}
				if err := io.WriteFileAtomic(featurePath, exampleFeature); err != nil {
					return fmt.Errorf(
						"writing features/example.yaml (partial init; re-run with --force to recover): %w", err)
				}
			}

			if needsWarning {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: overwriting existing files")
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Initialized "+project)
			return nil
		},
	}

	cmd.Flags().String("project", "", "project directory (default: current directory)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")

	return cmd
}

// fileInitIO implements InitIO using OS file I/O.
type fileInitIO struct{}

func newDefaultInitIO() *fileInitIO {
	return &fileInitIO{}
}

// StatFile returns true if the file at path exists, false if it does not.
// Returns an error only for unexpected OS errors.
func (f *fileInitIO) StatFile(path string) (bool, error) {
	return f.StatFileImpl(path)
}

// StatFileImpl wraps os.Stat to check file existence.
func (f *fileInitIO) StatFileImpl(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// MkdirAll creates path and any missing parents.
func (f *fileInitIO) MkdirAll(path string) error {
	return f.MkdirAllImpl(path)
}

// MkdirAllImpl wraps os.MkdirAll.
func (f *fileInitIO) MkdirAllImpl(path string) error {
	return os.MkdirAll(path, 0o755)
}

// WriteFileAtomic writes content to path atomically via a temp file with 0644 permissions.
func (f *fileInitIO) WriteFileAtomic(path, content string) error {
	return f.WriteFileAtomicImpl(path, content)
}

// WriteFileAtomicImpl performs the atomic write via OS temp file rename.
func (f *fileInitIO) WriteFileAtomicImpl(path, content string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".init-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err = tmp.Write([]byte(content)); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
