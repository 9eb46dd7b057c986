package runner

import (
	"context"
	"fmt"

	"github.com/eykd/behave-go/acceptance"
	"github.com/eykd/behave-go/internal/steps"
)

// HookType identifies a point in the scenario lifecycle.
type HookType int

const (
	// BeforeScenario hooks run before the background; an error aborts the scenario.
	BeforeScenario HookType = iota
	// AfterScenario hooks run after the last step of a passing scenario.
	AfterScenario
	// BeforeStep hooks run before each step handler.
	BeforeStep
	// AfterStep hooks run after each successful step handler.
	AfterStep
)

func (h HookType) String() string {
	switch h {
	case BeforeScenario:
		return "beforeScenario"
	case AfterScenario:
		return "afterScenario"
	case BeforeStep:
		return "beforeStep"
	case AfterStep:
		return "afterStep"
	default:
		return fmt.Sprintf("HookType(%d)", int(h))
	}
}

func (h HookType) valid() bool {
	return h >= BeforeScenario && h <= AfterStep
}

// HookContext describes where in the lifecycle a hook is invoked.
type HookContext struct {
	Feature  *acceptance.Feature
	Scenario *acceptance.Scenario
	// State is the scenario's scratch space, shared with its step handlers.
	State *steps.State
	// Step is set for BeforeStep and AfterStep hooks.
	Step *acceptance.Step
	// Result is set for AfterStep hooks.
	Result *StepResult
}

// HookFunc is a lifecycle hook. A non-nil error fails the current scenario.
type HookFunc func(ctx context.Context, hc *HookContext) error

// HookError wraps an error returned by a hook.
type HookError struct {
	Type HookType
	Err  error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("%s hook: %v", e.Type, e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }
