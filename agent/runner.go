// Package agent runs the action loop: ask a driver for the next action,
// execute it, append it to the thread, and stop on Done, a failure, or
// the action budget.
package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/rickchristie/stride"
	"github.com/rickchristie/stride/drivers"
	"github.com/rickchristie/stride/hooks"
)

// Runner orchestrates the loop for a thread, resolving drivers by name and
// firing lifecycle hooks.
//
// The Runner is responsible for:
//   - Resolving the RunContext's driver through the driver registry
//   - Stepping the driver and executing the returned actions
//   - Invoking hooks around the whole loop and around each step
//
// A zero-configuration Runner uses the built-in drivers and no hooks:
//
//	runner := agent.New()
//	result := runner.Run(ctx, rc, threadID)
type Runner struct {
	drivers *drivers.Registry
	hooks   *hooks.Registry
}

// New creates a Runner with the default driver registry and an empty hook
// registry.
func New() *Runner {
	return &Runner{
		drivers: drivers.Default(),
		hooks:   hooks.NewRegistry(),
	}
}

// WithDrivers replaces the driver registry. Use this to add custom drivers
// or to script steps in tests. Returns the runner for chaining.
func (r *Runner) WithDrivers(registry *drivers.Registry) *Runner {
	r.drivers = registry
	return r
}

// WithHooks replaces the runner's hook registry with the provided one.
// Use this when you need to share a registry across multiple runners.
// Returns the runner for chaining.
func (r *Runner) WithHooks(registry *hooks.Registry) *Runner {
	r.hooks = registry
	return r
}

// RegisterHook adds a hook to the runner's existing hook registry. The hook
// can implement any combination of the hook interfaces. Returns the runner
// for chaining.
//
// Example:
//
//	runner := agent.New().
//	    RegisterHook(hooks.NewLogging()).
//	    RegisterHook(&MetricsHook{})
func (r *Runner) RegisterHook(hook any) *Runner {
	r.hooks.Register(hook)
	return r
}

// Run retrieves the thread from the RunContext's store and runs the loop
// on it. A store miss propagates as the run's failure. BeforeLoop and
// AfterLoop hooks bracket the loop; AfterLoop is guaranteed to fire once
// BeforeLoop has.
func (r *Runner) Run(
	ctx context.Context,
	rc *stride.RunContext,
	threadID string,
) stride.Result[stride.Action] {
	if rc.Store == nil {
		return stride.Fail[stride.Action]("no thread store configured")
	}

	found := rc.Store.Get(threadID)
	if found.IsFail() {
		rc.Logger.ErrorContext(ctx, "retrieving thread failed",
			"thread", threadID, "error", found.Err())
		return stride.Fail[stride.Action](found.Err())
	}
	thread := found.Value()

	r.hooks.FireBeforeLoop(ctx, rc, stride.BeforeLoopEvent{Thread: thread})
	start := time.Now()

	result := stride.Fail[stride.Action]("loop did not run")
	defer func() {
		r.hooks.FireAfterLoop(ctx, rc, stride.AfterLoopEvent{
			Thread:   thread,
			Result:   result,
			Duration: time.Since(start),
		})
	}()

	result = r.Loop(ctx, rc, thread)
	return result
}

// Loop drives the thread until a Done action, a failure, or the action
// budget from rc.Settings.MaxActions.
//
// Each iteration:
//  1. Returns a failure if ctx has been cancelled.
//  2. Asks the driver for the next action (BeforeStep and AfterStep hooks
//     bracket the step).
//  3. Executes the action; an execution error or panic fails the loop
//     without appending the action.
//  4. Echoes the executed action to rc.IO and appends it to the thread.
//  5. Returns Ok when the action is Done.
//
// A driver step failure is returned unchanged, with no retry.
func (r *Runner) Loop(
	ctx context.Context,
	rc *stride.RunContext,
	thread *stride.Thread,
) stride.Result[stride.Action] {
	resolved := r.drivers.Lookup(rc.Driver)
	if resolved.IsFail() {
		return stride.Fail[stride.Action](resolved.Err())
	}
	driver := resolved.Value()

	maxActions := rc.Settings.MaxActions
	for iteration := 1; iteration <= maxActions; iteration++ {
		if err := ctx.Err(); err != nil {
			return stride.Failf[stride.Action]("%v", err)
		}

		r.hooks.FireBeforeStep(ctx, rc, stride.BeforeStepEvent{
			Thread:    thread,
			Iteration: iteration,
			Driver:    rc.Driver,
		})
		stepStart := time.Now()
		step := driver.Step(ctx, rc, thread)
		r.hooks.FireAfterStep(ctx, rc, stride.AfterStepEvent{
			Thread:    thread,
			Iteration: iteration,
			Driver:    rc.Driver,
			Result:    step,
			Duration:  time.Since(stepStart),
		})
		if step.IsFail() {
			return step
		}

		action := step.Value()
		if err := executeAction(ctx, rc.IO, action); err != nil {
			return stride.Failf[stride.Action]("executing %s: %v", action.Name(), err)
		}

		if rc.IO != nil {
			rc.IO.Echo(" - " + action.String())
		}
		thread.Add(action)
		r.hooks.FireActionExecuted(ctx, rc, stride.ActionExecutedEvent{
			Thread:    thread,
			Iteration: iteration,
			Action:    action,
		})

		if done, ok := action.(*stride.Done); ok {
			return stride.Ok[stride.Action](done)
		}
	}

	return stride.Failf[stride.Action](
		"exceeded maximum of %d actions without reaching completion", maxActions)
}

// executeAction runs the action, converting a panic into an error so a
// misbehaving action fails the loop instead of crashing the caller.
func executeAction(ctx context.Context, io stride.UserIO, action stride.Action) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	_, err = action.Execute(ctx, io)
	return err
}
