// Package runner executes features against a step registry.
//
// Scenarios run strictly in sequence. Each concrete scenario moves through
// BeforeScenario hooks, the feature background, its own steps and finally
// AfterScenario hooks; the first failing unit stops the scenario and later
// steps are not attempted. Every failure is recorded in the returned result
// tree rather than returned as an error.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/eykd/behave-go/acceptance"
	"github.com/eykd/behave-go/internal/steps"
)

// Runner runs features. It holds only configuration, a registry and hooks,
// all read-only during a run, so one Runner can serve several runs.
type Runner struct {
	registry *steps.Registry
	hooks    map[HookType][]HookFunc
	log      *slog.Logger

	stepTimeout        time.Duration
	alwaysRunAfter     bool
	strictPlaceholders bool
	filter             tagFilter
}

// New returns a Runner resolving steps against reg.
func New(reg *steps.Registry, opts ...Option) *Runner {
	r := &Runner{
		registry: reg,
		hooks:    make(map[HookType][]HookFunc),
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry returns the registry steps are resolved against.
func (r *Runner) Registry() *steps.Registry {
	return r.registry
}

// AddHook registers fn for the given lifecycle point. Hooks of one type run
// in registration order. It panics on an unknown hook type.
func (r *Runner) AddHook(t HookType, fn HookFunc) {
	if !t.valid() {
		panic(fmt.Sprintf("runner: unknown hook type %v", t))
	}
	r.hooks[t] = append(r.hooks[t], fn)
}

// RunFeatures runs each feature in order and merges the results into a new Report.
func (r *Runner) RunFeatures(ctx context.Context, features ...*acceptance.Feature) *Report {
	report := NewReport()
	for _, f := range features {
		report.Merge(r.RunFeature(ctx, f))
	}
	return report
}

// RunFeature expands and runs every scenario of f in declaration order.
// Outline scenarios run once per Examples row, in row order.
func (r *Runner) RunFeature(ctx context.Context, f *acceptance.Feature) *FeatureResult {
	start := time.Now()
	res := &FeatureResult{
		ID:        uuid.NewString(),
		Name:      f.Name,
		Scenarios: []ScenarioResult{},
	}
	log := r.log.With("feature", f.Name, "run", res.ID)
	log.Info("feature started", "scenarios", len(f.Scenarios))

	for i := range f.Scenarios {
		tmpl := &f.Scenarios[i]
		tags := effectiveTags(f.Tags, tmpl.Tags)
		if !r.filter.allows(tags) {
			log.Debug("scenario filtered out", "scenario", tmpl.Name, "tags", tags)
			continue
		}

		concrete, err := r.expand(tmpl)
		if err != nil {
			log.Warn("outline expansion failed", "scenario", tmpl.Name, "err", err)
			res.add(ScenarioResult{
				Name:        tmpl.Name,
				Tags:        tags,
				StepResults: []StepResult{},
				Error:       err.Error(),
			})
			continue
		}
		for j := range concrete {
			res.add(r.runScenario(ctx, log, f, &concrete[j], tags))
		}
	}

	res.Duration = time.Since(start)
	log.Info("feature finished", "passed", res.Passed, "failed", res.Failed, "duration", res.Duration)
	return res
}

func (r *Runner) expand(sc *acceptance.Scenario) ([]acceptance.Scenario, error) {
	if r.strictPlaceholders {
		return sc.ExpandOutlineStrict()
	}
	return sc.ExpandOutline()
}

// runScenario runs one concrete scenario with a fresh State.
func (r *Runner) runScenario(ctx context.Context, log *slog.Logger, f *acceptance.Feature, sc *acceptance.Scenario, tags []string) ScenarioResult {
	start := time.Now()
	res := ScenarioResult{Name: sc.Name, Tags: tags, StepResults: []StepResult{}}
	log = log.With("scenario", sc.Name)

	if err := ctx.Err(); err != nil {
		res.Error = err.Error()
		res.Duration = time.Since(start)
		log.Warn("scenario not started", "err", err)
		return res
	}

	hc := &HookContext{Feature: f, Scenario: sc, State: steps.NewState()}
	if err := r.runHooks(ctx, BeforeScenario, hc); err != nil {
		res.Error = err.Error()
		res.Duration = time.Since(start)
		log.Warn("scenario failed", "err", err)
		return res
	}

	var background []acceptance.Step
	if f.Background != nil {
		background = f.Background.Steps
	}

	failed := false
units:
	for _, group := range [][]acceptance.Step{background, sc.Steps} {
		for _, st := range group {
			sr := r.runStep(ctx, log, hc, st)
			res.StepResults = append(res.StepResults, sr)
			if !sr.Passed {
				res.Error = sr.Error
				failed = true
				break units
			}
		}
	}

	if failed {
		if r.alwaysRunAfter {
			if err := r.runHooks(ctx, AfterScenario, hc); err != nil {
				log.Warn("after-scenario hook failed on failed scenario", "err", err)
			}
		}
		res.Duration = time.Since(start)
		log.Warn("scenario failed", "err", res.Error)
		return res
	}

	if err := r.runHooks(ctx, AfterScenario, hc); err != nil {
		res.Error = err.Error()
		res.Duration = time.Since(start)
		log.Warn("scenario failed", "err", err)
		return res
	}

	res.Passed = true
	res.Duration = time.Since(start)
	log.Debug("scenario passed", "steps", len(res.StepResults), "duration", res.Duration)
	return res
}

// runStep resolves and executes a single step between its step hooks.
func (r *Runner) runStep(ctx context.Context, log *slog.Logger, hc *HookContext, st acceptance.Step) (res StepResult) {
	start := time.Now()
	res = StepResult{Step: st.Text, Keyword: st.Keyword}
	defer func() {
		res.Duration = time.Since(start)
		log.Debug("step finished", "step", st.Text, "status", res.Status)
	}()

	m, err := r.registry.Resolve(st)
	if err != nil {
		res.Status = StatusFailed
		switch {
		case errors.Is(err, steps.ErrUndefined):
			res.Status = StatusUndefined
		case errors.Is(err, steps.ErrAmbiguous):
			res.Status = StatusAmbiguous
		}
		res.Error = err.Error()
		return res
	}

	shc := *hc
	shc.Step = &st
	if err := r.runHooks(ctx, BeforeStep, &shc); err != nil {
		res.Status = StatusFailed
		res.Error = err.Error()
		return res
	}

	args := steps.Args{Params: m.Params, DataTable: st.DataTable.Clone(), DocString: st.DocString}
	value, err := invoke(ctx, r.stepTimeout, func(ctx context.Context) (any, error) {
		return m.Definition.Handler(ctx, hc.State, args)
	})
	if err != nil {
		res.Status = StatusFailed
		res.Error = err.Error()
		if r.alwaysRunAfter {
			shc.Result = &res
			if herr := r.runHooks(ctx, AfterStep, &shc); herr != nil {
				log.Warn("after-step hook failed on failed step", "step", st.Text, "err", herr)
			}
		}
		return res
	}

	res.Passed = true
	res.Status = StatusPassed
	res.Value = value

	shc.Result = &res
	if err := r.runHooks(ctx, AfterStep, &shc); err != nil {
		res.Passed = false
		res.Status = StatusFailed
		res.Error = err.Error()
		res.Value = nil
	}
	return res
}

// runHooks runs the hooks of type t in order and stops at the first error.
func (r *Runner) runHooks(ctx context.Context, t HookType, hc *HookContext) error {
	for _, fn := range r.hooks[t] {
		_, err := invoke(ctx, r.stepTimeout, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, fn(ctx, hc)
		})
		if err != nil {
			return &HookError{Type: t, Err: err}
		}
	}
	return nil
}

type outcome[T any] struct {
	value T
	err   error
}

// invoke calls fn and waits for it to return, for ctx to be done, or for
// the timeout to elapse. A panic in fn is returned as an error. When invoke
// gives up waiting, fn keeps running in its goroutine and its result is dropped.
func invoke[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done := make(chan outcome[T], 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				var zero T
				done <- outcome[T]{value: zero, err: fmt.Errorf("panic: %v", p)}
			}
		}()
		v, err := fn(ctx)
		done <- outcome[T]{value: v, err: err}
	}()

	select {
	case out := <-done:
		return out.value, out.err
	case <-ctx.Done():
		select {
		case out := <-done:
			return out.value, out.err
		default:
		}
		var zero T
		return zero, ctx.Err()
	}
}
