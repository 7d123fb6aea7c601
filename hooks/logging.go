package hooks

import (
	"context"
	"log/slog"

	"github.com/rickchristie/stride"
)

// Logging is a hook that logs every loop event through slog. It is the
// default telemetry sink wired up by the CLI and the HTTP server: the run
// is bracketed by a start and finish line, each driver step is logged with
// its duration, and every executed action is recorded.
//
// By default events go to the RunContext's logger, so log routing follows
// whatever the caller configured for the request. Use WithLogger to pin a
// dedicated logger instead.
type Logging struct {
	logger *slog.Logger
}

var (
	_ stride.BeforeLoopHook     = (*Logging)(nil)
	_ stride.AfterLoopHook      = (*Logging)(nil)
	_ stride.BeforeStepHook     = (*Logging)(nil)
	_ stride.AfterStepHook      = (*Logging)(nil)
	_ stride.ActionExecutedHook = (*Logging)(nil)
)

// NewLogging creates a Logging hook that writes to each run's own logger.
func NewLogging() *Logging {
	return &Logging{}
}

// WithLogger pins the hook to one logger instead of the RunContext's.
// Returns the hook for chaining.
func (h *Logging) WithLogger(logger *slog.Logger) *Logging {
	h.logger = logger
	return h
}

func (h *Logging) active(rc *stride.RunContext) *slog.Logger {
	if h.logger != nil {
		return h.logger
	}
	return rc.Logger
}

// OnBeforeLoop logs the start of a run with the thread's query.
func (h *Logging) OnBeforeLoop(ctx context.Context, rc *stride.RunContext, event stride.BeforeLoopEvent) {
	h.active(rc).InfoContext(ctx, "processing thread",
		"thread", event.Thread.ID,
		"query", event.Thread.Query,
		"driver", rc.Driver,
	)
}

// OnAfterLoop logs the run's outcome and total duration.
func (h *Logging) OnAfterLoop(ctx context.Context, rc *stride.RunContext, event stride.AfterLoopEvent) {
	if event.Result.IsFail() {
		h.active(rc).ErrorContext(ctx, "run failed",
			"thread", event.Thread.ID,
			"error", event.Result.Err(),
			"duration", event.Duration,
		)
		return
	}
	h.active(rc).InfoContext(ctx, "run finished",
		"thread", event.Thread.ID,
		"result", event.Result.Value().String(),
		"actions", len(event.Thread.Actions),
		"duration", event.Duration,
	)
}

// OnBeforeStep logs the upcoming iteration.
func (h *Logging) OnBeforeStep(ctx context.Context, rc *stride.RunContext, event stride.BeforeStepEvent) {
	h.active(rc).DebugContext(ctx, "starting iteration",
		"thread", event.Thread.ID,
		"iteration", event.Iteration,
		"max_actions", rc.Settings.MaxActions,
	)
}

// OnAfterStep logs the step outcome with its duration.
func (h *Logging) OnAfterStep(ctx context.Context, rc *stride.RunContext, event stride.AfterStepEvent) {
	if event.Result.IsFail() {
		h.active(rc).ErrorContext(ctx, "determining next action failed",
			"thread", event.Thread.ID,
			"iteration", event.Iteration,
			"driver", event.Driver,
			"error", event.Result.Err(),
			"duration", event.Duration,
		)
		return
	}
	h.active(rc).DebugContext(ctx, "next action determined",
		"thread", event.Thread.ID,
		"iteration", event.Iteration,
		"driver", event.Driver,
		"action", event.Result.Value().String(),
		"duration", event.Duration,
	)
}

// OnActionExecuted logs the executed action with its populated result.
func (h *Logging) OnActionExecuted(ctx context.Context, rc *stride.RunContext, event stride.ActionExecutedEvent) {
	h.active(rc).InfoContext(ctx, "executed action",
		"thread", event.Thread.ID,
		"iteration", event.Iteration,
		"action", event.Action.String(),
	)
}
