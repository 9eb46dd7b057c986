// Package steps provides step definitions and the ordered registry that
// resolves scenario steps to their handlers.
package steps

import (
	"context"
	"sync"

	"github.com/eykd/behave-go/acceptance"
)

// Args carries the inputs of one handler invocation.
type Args struct {
	// Params holds the values captured by the definition's pattern.
	Params []string
	// DataTable is the step's table payload, nil when absent.
	DataTable acceptance.DataTable
	// DocString is the step's multi-line payload, nil when absent.
	DocString *string
}

// Handler executes a matched step. The returned value is recorded in the
// step result; a non-nil error fails the step.
type Handler func(ctx context.Context, st *State, args Args) (any, error)

// StepDefinition binds a pattern to a handler.
type StepDefinition struct {
	Pattern Pattern
	Handler Handler
}

// Match is a definition that matched a step, with the extracted parameters.
type Match struct {
	Definition StepDefinition
	// Index is the definition's registration position.
	Index  int
	Params []string
}

// Registry is an ordered list of step definitions. Registration order is
// significant: FindMatch returns the earliest matching definition.
type Registry struct {
	mu   sync.RWMutex
	defs []StepDefinition
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a definition. Duplicate patterns are allowed; Resolve
// reports them as ambiguous when both match a step.
func (r *Registry) Register(p Pattern, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs = append(r.defs, StepDefinition{Pattern: p, Handler: h})
}

// Step registers h for expr, which may be a string (exact match), a
// *regexp.Regexp or a Pattern. It panics on any other type.
func (r *Registry) Step(expr any, h Handler) {
	r.Register(toPattern(expr), h)
}

// Given is an alias of Step. The keyword plays no role in matching.
func (r *Registry) Given(expr any, h Handler) { r.Step(expr, h) }

// When is an alias of Step.
func (r *Registry) When(expr any, h Handler) { r.Step(expr, h) }

// Then is an alias of Step.
func (r *Registry) Then(expr any, h Handler) { r.Step(expr, h) }

// FindMatch returns the first registered definition matching the step text.
func (r *Registry) FindMatch(step acceptance.Step) (*Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i, def := range r.defs {
		if params, ok := def.Pattern.Match(step.Text); ok {
			return &Match{Definition: def, Index: i, Params: params}, true
		}
	}
	return nil, false
}

// FindAllMatches returns every definition matching the step text, in
// registration order.
func (r *Registry) FindAllMatches(step acceptance.Step) []Match {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matches []Match
	for i, def := range r.defs {
		if params, ok := def.Pattern.Match(step.Text); ok {
			matches = append(matches, Match{Definition: def, Index: i, Params: params})
		}
	}
	return matches
}

// Resolve returns the single definition matching the step. It fails with
// *UndefinedStepError when nothing matches and *AmbiguousMatchError when
// more than one definition does.
func (r *Registry) Resolve(step acceptance.Step) (*Match, error) {
	matches := r.FindAllMatches(step)
	switch len(matches) {
	case 0:
		return nil, &UndefinedStepError{Text: step.Text}
	case 1:
		return &matches[0], nil
	}
	patterns := make([]string, len(matches))
	for i, m := range matches {
		patterns[i] = m.Definition.Pattern.String()
	}
	return nil, &AmbiguousMatchError{Text: step.Text, Patterns: patterns}
}

// Definitions returns a copy of the registered definitions in order.
func (r *Registry) Definitions() []StepDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]StepDefinition(nil), r.defs...)
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}
