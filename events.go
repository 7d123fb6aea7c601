package stride

import "time"

// HookEvent is a marker interface for all hook events.
type HookEvent interface {
	hookEvent()
}

// BeforeLoopEvent is emitted once before the first iteration of a run.
type BeforeLoopEvent struct {
	// Thread is the thread about to be processed.
	Thread *Thread
}

func (BeforeLoopEvent) hookEvent() {}

// AfterLoopEvent is emitted once after a run terminates.
type AfterLoopEvent struct {
	// Thread is the processed thread, including every appended action.
	Thread *Thread

	// Result is the run's outcome: the terminal action or the failure that
	// ended the run.
	Result Result[Action]

	// Duration is how long the whole run took.
	Duration time.Duration
}

func (AfterLoopEvent) hookEvent() {}

// BeforeStepEvent is emitted before each driver step.
type BeforeStepEvent struct {
	// Thread is the thread being processed.
	Thread *Thread

	// Iteration is the current iteration number (1-indexed).
	Iteration int

	// Driver is the name of the driver about to be stepped.
	Driver string
}

func (BeforeStepEvent) hookEvent() {}

// AfterStepEvent is emitted after each driver step completes.
type AfterStepEvent struct {
	// Thread is the thread being processed.
	Thread *Thread

	// Iteration is the current iteration number (1-indexed).
	Iteration int

	// Driver is the name of the driver that was stepped.
	Driver string

	// Result is the step's outcome: the chosen action or the failure
	// reported by the driver.
	Result Result[Action]

	// Duration is how long the step took.
	Duration time.Duration
}

func (AfterStepEvent) hookEvent() {}

// ActionExecutedEvent is emitted after an action has been executed and
// appended to the thread.
type ActionExecutedEvent struct {
	// Thread is the thread the action was appended to.
	Thread *Thread

	// Iteration is the iteration that produced the action (1-indexed).
	Iteration int

	// Action is the executed action, result populated.
	Action Action
}

func (ActionExecutedEvent) hookEvent() {}
