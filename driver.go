package stride

import (
	"context"
	"errors"
)

// ErrUnknownDriver is returned by driver lookups when the requested name is
// not registered. Driver selection never falls back silently.
var ErrUnknownDriver = errors.New("unknown driver")

// Driver turns a thread's history into the next [Action] by calling a
// language model. It is the loop's only suspension point and its only
// non-deterministic collaborator; substituting a fake Driver makes the whole
// loop testable without network access.
//
// Implementations live in the drivers package and are selected by name
// through drivers.Registry.
type Driver interface {
	// Step determines the next action for the thread. It must not panic:
	// every failure, from a refused API call to an unparsable response,
	// is reported as a failed Result carrying a descriptive message.
	Step(ctx context.Context, rc *RunContext, thread *Thread) Result[Action]
}

// StepFunc adapts a plain function to the [Driver] interface, mostly for
// fakes in tests:
//
//	driver := stride.StepFunc(func(ctx context.Context, rc *stride.RunContext, t *stride.Thread) stride.Result[stride.Action] {
//	    return stride.Ok[stride.Action](stride.NewDone("fin"))
//	})
type StepFunc func(ctx context.Context, rc *RunContext, thread *Thread) Result[Action]

// Step calls f.
func (f StepFunc) Step(ctx context.Context, rc *RunContext, thread *Thread) Result[Action] {
	return f(ctx, rc, thread)
}

var _ Driver = (StepFunc)(nil)
