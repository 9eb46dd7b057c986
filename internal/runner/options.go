package runner

import (
	"log/slog"
	"strings"
	"time"
)

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithStepTimeout bounds every handler and hook invocation. Zero disables the limit.
func WithStepTimeout(d time.Duration) Option {
	return func(r *Runner) { r.stepTimeout = d }
}

// WithAlwaysRunAfterScenario makes AfterScenario and AfterStep hooks run on
// failure too. Errors from those hooks are logged and do not replace the
// original failure.
func WithAlwaysRunAfterScenario(always bool) Option {
	return func(r *Runner) { r.alwaysRunAfter = always }
}

// WithStrictPlaceholders makes outline expansion fail on placeholders that
// have no Examples header.
func WithStrictPlaceholders(strict bool) Option {
	return func(r *Runner) { r.strictPlaceholders = strict }
}

// WithTags restricts the run to scenarios carrying at least one include tag
// (when include is non-empty) and none of the exclude tags. Feature tags are
// inherited by its scenarios. A leading '@' is ignored.
func WithTags(include, exclude []string) Option {
	return func(r *Runner) {
		r.filter = tagFilter{include: normalizeTags(include), exclude: normalizeTags(exclude)}
	}
}

type tagFilter struct {
	include []string
	exclude []string
}

func (f tagFilter) allows(tags []string) bool {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	for _, t := range f.exclude {
		if set[t] {
			return false
		}
	}
	if len(f.include) == 0 {
		return true
	}
	for _, t := range f.include {
		if set[t] {
			return true
		}
	}
	return false
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimPrefix(strings.TrimSpace(t), "@")
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// effectiveTags returns the feature tags followed by the scenario's own, without duplicates.
func effectiveTags(featureTags, scenarioTags []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range normalizeTags(append(append([]string(nil), featureTags...), scenarioTags...)) {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
