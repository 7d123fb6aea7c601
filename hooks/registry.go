package hooks

import (
	"context"

	"github.com/rickchristie/stride"
)

// Registry manages a collection of hooks and dispatches events to them.
//
// Registry stores registered hooks in order and dispatches each event to
// the hooks that implement the relevant interface. A single hook can
// implement any combination of hook interfaces; it only receives events for
// the interfaces it implements.
//
//	registry := hooks.NewRegistry()
//	registry.Register(hooks.NewLogging())
//	registry.Register(&MetricsHook{})
//
//	runner := agent.New().WithHooks(registry)
//
// # Thread Safety
//
// Registry is not thread-safe. Register all hooks before starting runs.
// Fire methods should only be called by the runner.
type Registry struct {
	hooks []any
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		hooks: make([]any, 0),
	}
}

// Register adds a hook to the registry. The hook can implement any
// combination of hook interfaces (BeforeLoopHook, AfterStepHook, etc.).
//
// Hooks are called in the order they are registered.
func (r *Registry) Register(hook any) *Registry {
	r.hooks = append(r.hooks, hook)
	return r
}

// FireBeforeLoop dispatches a BeforeLoopEvent to all registered
// BeforeLoopHook implementations.
func (r *Registry) FireBeforeLoop(ctx context.Context, rc *stride.RunContext, event stride.BeforeLoopEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(stride.BeforeLoopHook); ok {
			hook.OnBeforeLoop(ctx, rc, event)
		}
	}
}

// FireAfterLoop dispatches an AfterLoopEvent to all registered
// AfterLoopHook implementations.
func (r *Registry) FireAfterLoop(ctx context.Context, rc *stride.RunContext, event stride.AfterLoopEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(stride.AfterLoopHook); ok {
			hook.OnAfterLoop(ctx, rc, event)
		}
	}
}

// FireBeforeStep dispatches a BeforeStepEvent to all registered
// BeforeStepHook implementations.
func (r *Registry) FireBeforeStep(ctx context.Context, rc *stride.RunContext, event stride.BeforeStepEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(stride.BeforeStepHook); ok {
			hook.OnBeforeStep(ctx, rc, event)
		}
	}
}

// FireAfterStep dispatches an AfterStepEvent to all registered
// AfterStepHook implementations.
func (r *Registry) FireAfterStep(ctx context.Context, rc *stride.RunContext, event stride.AfterStepEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(stride.AfterStepHook); ok {
			hook.OnAfterStep(ctx, rc, event)
		}
	}
}

// FireActionExecuted dispatches an ActionExecutedEvent to all registered
// ActionExecutedHook implementations.
func (r *Registry) FireActionExecuted(ctx context.Context, rc *stride.RunContext, event stride.ActionExecutedEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(stride.ActionExecutedHook); ok {
			hook.OnActionExecuted(ctx, rc, event)
		}
	}
}

// Len returns the number of registered hooks.
func (r *Registry) Len() int {
	return len(r.hooks)
}

// Clear removes all registered hooks.
func (r *Registry) Clear() {
	r.hooks = make([]any, 0)
}
