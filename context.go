package stride

import (
	"io"
	"log/slog"
)

// RunContext bundles everything one request needs: the active driver name,
// the logger, the user-interaction capability, the thread store and the
// resolved settings. It is constructed once per invocation and passed by
// pointer to every component alongside the context.Context, so concurrent
// requests with different drivers or settings stay fully isolated. There is
// no process-global "active driver"; selection lives here and nowhere else.
//
// # Creating a RunContext
//
//	rc := stride.NewRunContext().
//	    WithDriver("anthropic").
//	    WithStore(store.NewInMemory()).
//	    WithLogger(logger).
//	    WithSettings(cfg.ForDriver("anthropic"))
//
// NewRunContext fills in inert defaults (discard logger, built-in settings)
// so a bare RunContext is safe to use in tests. IO and Store default to nil:
// without IO the AskUser action fails with [ErrNoUserIO], and without Store
// only agent.Run's lookup is unavailable.
type RunContext struct {
	// Driver is the name of the driver that picks the next action.
	Driver string

	// Logger receives structured logs from the loop and the drivers.
	Logger *slog.Logger

	// IO is the user-interaction capability, nil when the caller cannot
	// interact with a user.
	IO UserIO

	// Store holds every live thread for this process.
	Store ThreadStore

	// Settings are the resolved tunables for Driver.
	Settings Settings
}

// NewRunContext returns a RunContext with the default driver, a discard
// logger and built-in settings.
func NewRunContext() *RunContext {
	return &RunContext{
		Driver:   DefaultDriver,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Settings: DefaultSettings(),
	}
}

// WithDriver sets the active driver name. Returns the RunContext for
// chaining.
func (rc *RunContext) WithDriver(name string) *RunContext {
	rc.Driver = name
	return rc
}

// WithLogger sets the logger. Returns the RunContext for chaining.
func (rc *RunContext) WithLogger(logger *slog.Logger) *RunContext {
	rc.Logger = logger
	return rc
}

// WithIO sets the user-interaction capability. Returns the RunContext for
// chaining.
func (rc *RunContext) WithIO(io UserIO) *RunContext {
	rc.IO = io
	return rc
}

// WithStore sets the thread store. Returns the RunContext for chaining.
func (rc *RunContext) WithStore(store ThreadStore) *RunContext {
	rc.Store = store
	return rc
}

// WithSettings sets the resolved tunables. Returns the RunContext for
// chaining.
func (rc *RunContext) WithSettings(settings Settings) *RunContext {
	rc.Settings = settings
	return rc
}
