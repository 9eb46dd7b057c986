// Package acceptance provides the Gherkin-style data model for behavior
// scenarios: features, scenarios, scenario outlines and their steps, plus
// outline expansion and a Gherkin-like text formatter.
package acceptance

import (
	"errors"
	"fmt"
)

// Keyword is the display keyword of a step. It is cosmetic: step matching
// only ever looks at Step.Text.
type Keyword string

// Step keywords.
const (
	Given Keyword = "Given"
	When  Keyword = "When"
	Then  Keyword = "Then"
	And   Keyword = "And"
	But   Keyword = "But"
)

// Valid reports whether k is one of the five Gherkin step keywords.
func (k Keyword) Valid() bool {
	switch k {
	case Given, When, Then, And, But:
		return true
	}
	return false
}

// DataTable is an ordered grid of cells attached to a step.
type DataTable [][]string

// Step represents a single Given/When/Then/And/But instruction in a scenario.
type Step struct {
	// Keyword is the step keyword used for display only.
	Keyword Keyword `json:"keyword" yaml:"keyword"`
	// Text is the step description without the keyword prefix. It is the match key.
	Text string `json:"text" yaml:"text"`
	// DataTable is an optional table payload; nil when absent.
	DataTable DataTable `json:"dataTable,omitempty" yaml:"dataTable,omitempty"`
	// DocString is an optional multi-line payload; nil when absent.
	DocString *string `json:"docString,omitempty" yaml:"docString,omitempty"`
}

// Examples is the parameter table of a scenario outline.
type Examples struct {
	Headers []string   `json:"headers" yaml:"headers"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

// Scenario represents a named scenario, or a scenario outline when IsOutline is set.
type Scenario struct {
	// Name is the human-readable scenario title. Outline names may contain <header> placeholders.
	Name string `json:"name" yaml:"name"`
	// Tags are the scenario's own tags, without the leading '@'.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	// Steps is the ordered sequence of steps.
	Steps []Step `json:"steps" yaml:"steps"`
	// IsOutline marks the scenario as a template expanded from Examples.
	IsOutline bool `json:"outline,omitempty" yaml:"outline,omitempty"`
	// Examples holds the outline parameters. Required when IsOutline is true.
	Examples *Examples `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// Background holds the steps shared by every scenario of a feature.
type Background struct {
	Steps []Step `json:"steps" yaml:"steps"`
}

// Feature is the top-level container of an optional background and its scenarios.
type Feature struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string    `json:"tags,omitempty" yaml:"tags,omitempty"`
	Background  *Background `json:"background,omitempty" yaml:"background,omitempty"`
	Scenarios   []Scenario  `json:"scenarios" yaml:"scenarios"`

	// SourceFile is the path the feature was loaded from, if any.
	SourceFile string `json:"-" yaml:"-"`
}

// ErrMissingExamples is returned when an outline without an Examples table is expanded.
var ErrMissingExamples = errors.New("scenario outline has no examples")

// ErrInvalidKeyword is returned by Validate for a step with an unknown keyword.
var ErrInvalidKeyword = errors.New("invalid step keyword")

// Validate checks structural invariants of the feature: known keywords on
// every step and an Examples table on every outline.
func (f *Feature) Validate() error {
	if f.Background != nil {
		for i, st := range f.Background.Steps {
			if !st.Keyword.Valid() {
				return fmt.Errorf("background step %d %q: %w", i+1, st.Keyword, ErrInvalidKeyword)
			}
		}
	}
	for _, sc := range f.Scenarios {
		if err := sc.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the scenario's keywords and outline invariant.
func (s *Scenario) Validate() error {
	for i, st := range s.Steps {
		if !st.Keyword.Valid() {
			return fmt.Errorf("scenario %q step %d %q: %w", s.Name, i+1, st.Keyword, ErrInvalidKeyword)
		}
	}
	if s.IsOutline && s.Examples == nil {
		return fmt.Errorf("scenario %q: %w", s.Name, ErrMissingExamples)
	}
	return nil
}
