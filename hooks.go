package stride

import (
	"context"
)

// -----------------------------------------------------------------------------
// Loop Hook Interfaces
// -----------------------------------------------------------------------------
//
// Hooks observe the agent loop at its boundaries: around the whole run,
// around each driver step, and after each executed action. To use hooks:
//
//  1. Implement the desired hook interface(s)
//  2. Register with hooks.Registry
//  3. Pass the registry to agent.New(...).WithHooks(registry)
//
// Example:
//
//	type TimingHook struct {
//	    start time.Time
//	}
//
//	func (h *TimingHook) OnBeforeLoop(ctx context.Context, rc *stride.RunContext, e stride.BeforeLoopEvent) {
//	    h.start = time.Now()
//	}
//
//	func (h *TimingHook) OnAfterLoop(ctx context.Context, rc *stride.RunContext, e stride.AfterLoopEvent) {
//	    log.Printf("thread %s finished in %v", e.Thread.ID, time.Since(h.start))
//	}
//
// Hooks are called in registration order. For paired hooks (Before/After),
// the After hook is always called if the Before hook was called, even when
// the run ends in failure. Hooks should not panic; a panic in a hook stops
// the run.
// -----------------------------------------------------------------------------

// BeforeLoopHook is implemented by hooks that want to be notified once
// before the first iteration of a run.
type BeforeLoopHook interface {
	// OnBeforeLoop is called once before the first driver step.
	OnBeforeLoop(ctx context.Context, rc *RunContext, event BeforeLoopEvent)
}

// AfterLoopHook is implemented by hooks that want to be notified once after
// a run terminates. It is always called if OnBeforeLoop was called, whatever
// the outcome, which makes it the place to close spans and record run-level
// metrics.
type AfterLoopHook interface {
	// OnAfterLoop is called once after the loop terminates.
	OnAfterLoop(ctx context.Context, rc *RunContext, event AfterLoopEvent)
}

// BeforeStepHook is implemented by hooks that want to be notified before
// each driver step.
type BeforeStepHook interface {
	// OnBeforeStep is called before each Driver.Step call.
	OnBeforeStep(ctx context.Context, rc *RunContext, event BeforeStepEvent)
}

// AfterStepHook is implemented by hooks that want to be notified after each
// driver step, successful or not. Paired with [BeforeStepHook] this brackets
// the loop's only suspension point, which is where tracing spans around
// model calls belong.
type AfterStepHook interface {
	// OnAfterStep is called after each Driver.Step call completes.
	OnAfterStep(ctx context.Context, rc *RunContext, event AfterStepEvent)
}

// ActionExecutedHook is implemented by hooks that want to be notified after
// an action has been executed and appended to the thread.
type ActionExecutedHook interface {
	// OnActionExecuted is called after each successfully executed action.
	OnActionExecuted(ctx context.Context, rc *RunContext, event ActionExecutedEvent)
}
