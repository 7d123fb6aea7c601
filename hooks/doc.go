// Package hooks provides a registry for managing agent loop lifecycle hooks.
//
// Hooks allow you to observe a run at its boundaries. Each hook interface
// corresponds to one event; implement only the interfaces you need.
//
// # Hook Interfaces
//
// Run lifecycle hooks:
//   - [stride.BeforeLoopHook] - Called once before the first iteration
//   - [stride.AfterLoopHook] - Called once after the run ends
//
// Step hooks, bracketing each driver call:
//   - [stride.BeforeStepHook] - Called before each Driver.Step
//   - [stride.AfterStepHook] - Called after each Driver.Step
//
// Action hooks:
//   - [stride.ActionExecutedHook] - Called after each executed action
//
// # Creating a Hook
//
// Create a hook by implementing any combination of interfaces:
//
//	type MetricsHook struct{}
//
//	func (h *MetricsHook) OnAfterStep(
//	    ctx context.Context,
//	    rc *stride.RunContext,
//	    event stride.AfterStepEvent,
//	) {
//	    metrics.RecordStep(event.Driver, event.Duration)
//	}
//
//	// Compile-time check
//	var _ stride.AfterStepHook = (*MetricsHook)(nil)
//
// # Registering Hooks
//
// Register directly on the runner for simple cases:
//
//	runner := agent.New().
//	    RegisterHook(&MetricsHook{}).
//	    RegisterHook(hooks.NewLogging())
//
// Or use a shared registry when several runners should fire the same hooks:
//
//	registry := hooks.NewRegistry()
//	registry.Register(&SharedHook{})
//
//	r1 := agent.New().WithHooks(registry)
//	r2 := agent.New().WithHooks(registry)
package hooks
