// Package config loads runner settings from .behave/config.yaml.
package config

import "time"

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// RunConfig controls scenario execution and reporting.
type RunConfig struct {
	StepTimeout         time.Duration `yaml:"step_timeout"`
	StrictPlaceholders  bool          `yaml:"strict_placeholders"`
	AlwaysRunAfterHooks bool          `yaml:"always_run_after_hooks"`
	Output              string        `yaml:"output"`
}

// TagsConfig selects scenarios by tag.
type TagsConfig struct {
	Include []string `yaml:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty"`
}

// Config represents the .behave/config.yaml file.
type Config struct {
	Log  LogConfig  `yaml:"log"`
	Run  RunConfig  `yaml:"run"`
	Tags TagsConfig `yaml:"tags"`
}

// Output formats.
const (
	OutputConsole = "console"
	OutputJSON    = "json"
)
