package stride

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDivisionByZero is returned by [Divide] when the divisor is exactly zero.
	ErrDivisionByZero = errors.New("division by zero is not allowed")

	// ErrNoUserIO is returned by [AskUser] when no user interaction capability
	// was provided to Execute.
	ErrNoUserIO = errors.New("no user IO available to request input")

	// ErrUnknownAction is returned by [DecodeAction] when the action name does
	// not match any variant. The set of variants is closed; unrecognized names
	// are never mapped to a fallback.
	ErrUnknownAction = errors.New("unknown action type")
)

// Action is one discrete step an agent can take: an arithmetic operation, a
// request for user input, or completion. The set of variants is closed and
// known at compile time: [Add], [Subtract], [Multiply], [Divide], [AskUser]
// and [Done]. Code that dispatches on an Action should type-switch over
// exactly these six pointers; there will never be a seventh implementation
// outside this package.
//
// Actions are created either directly (NewAdd, NewDone, ...) or decoded from
// model output via [DecodeAction]. Drivers return them, the loop executes
// them, the [Thread] accumulates them.
//
// # Execution and Memoization
//
// Execute computes the variant's value exactly once. The first successful
// call caches the result; later calls return the cache without recomputing,
// so executing an already-executed action is always safe and side-effect
// free. A failed computation caches nothing and may be retried.
//
//	div := stride.NewDivide(1, 3)
//	v, err := div.Execute(ctx, nil) // computes
//	v, err = div.Execute(ctx, nil)  // returns the cached value
//
// Only [AskUser] uses the UserIO argument; every other variant accepts nil.
type Action interface {
	// Name returns the action's wire name, e.g. "Add". It is the exact string
	// a model must produce to select this variant.
	Name() string

	// Rationale returns the model's stated reasoning for choosing this
	// action, or "" when none was given.
	Rationale() string

	// Execute computes and caches the action's value. See the interface
	// documentation for memoization semantics.
	Execute(ctx context.Context, io UserIO) (any, error)

	// Result returns the cached value and whether Execute has succeeded yet.
	Result() (any, bool)

	// String renders the action with its operands and current result, in the
	// form used verbatim inside prompts, e.g. "Add(a=1, b=2), result=3".
	String() string

	isAction()
}

// Reasoning is the free-text rationale common to every variant. Models may
// include it in the arguments object; it never affects execution. The type
// is exported only so the json package can set it through the embedding
// variant structs.
type Reasoning struct {
	ChainOfThought string `json:"chain_of_thought,omitempty"`
}

// Rationale returns the model's stated reasoning, or "" when none was given.
func (r Reasoning) Rationale() string { return r.ChainOfThought }

// memo is the lazily-computed result slot shared by all variants.
// Its fields are unexported so the cached value never leaks into JSON.
type memo struct {
	value    any
	computed bool
}

// once returns the cached value, or runs compute and caches its result.
// Failures are not cached.
func (m *memo) once(compute func() (any, error)) (any, error) {
	if m.computed {
		return m.value, nil
	}
	v, err := compute()
	if err != nil {
		return nil, err
	}
	m.value = v
	m.computed = true
	return v, nil
}

// Result returns the cached value and whether a computation has succeeded.
func (m *memo) Result() (any, bool) {
	return m.value, m.computed
}

// resultString renders the result slot for prompts and logs. Unexecuted
// actions read as a sentinel so the model can tell pending from done.
func (m *memo) resultString() string {
	if !m.computed {
		return "not yet calculated"
	}
	return fmt.Sprint(m.value)
}

// Add sums two numbers.
type Add struct {
	Reasoning
	memo
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// NewAdd returns an Add action with the given operands.
func NewAdd(a, b float64) *Add {
	return &Add{A: a, B: b}
}

func (x *Add) Name() string { return "Add" }

func (x *Add) Execute(_ context.Context, _ UserIO) (any, error) {
	return x.once(func() (any, error) { return x.A + x.B, nil })
}

func (x *Add) String() string {
	return fmt.Sprintf("Add(a=%v, b=%v), result=%s", x.A, x.B, x.resultString())
}

// Subtract subtracts the second number from the first.
type Subtract struct {
	Reasoning
	memo
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// NewSubtract returns a Subtract action with the given operands.
func NewSubtract(a, b float64) *Subtract {
	return &Subtract{A: a, B: b}
}

func (x *Subtract) Name() string { return "Subtract" }

func (x *Subtract) Execute(_ context.Context, _ UserIO) (any, error) {
	return x.once(func() (any, error) { return x.A - x.B, nil })
}

func (x *Subtract) String() string {
	return fmt.Sprintf("Subtract(a=%v, b=%v), result=%s", x.A, x.B, x.resultString())
}

// Multiply multiplies two numbers.
type Multiply struct {
	Reasoning
	memo
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// NewMultiply returns a Multiply action with the given operands.
func NewMultiply(a, b float64) *Multiply {
	return &Multiply{A: a, B: b}
}

func (x *Multiply) Name() string { return "Multiply" }

func (x *Multiply) Execute(_ context.Context, _ UserIO) (any, error) {
	return x.once(func() (any, error) { return x.A * x.B, nil })
}

func (x *Multiply) String() string {
	return fmt.Sprintf("Multiply(a=%v, b=%v), result=%s", x.A, x.B, x.resultString())
}

// Divide divides the first number by the second. A divisor of exactly zero
// fails with [ErrDivisionByZero]; the action never yields ±Inf.
type Divide struct {
	Reasoning
	memo
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// NewDivide returns a Divide action with the given dividend and divisor.
func NewDivide(a, b float64) *Divide {
	return &Divide{A: a, B: b}
}

func (x *Divide) Name() string { return "Divide" }

func (x *Divide) Execute(_ context.Context, _ UserIO) (any, error) {
	return x.once(func() (any, error) {
		if x.B == 0 {
			return nil, ErrDivisionByZero
		}
		return x.A / x.B, nil
	})
}

func (x *Divide) String() string {
	return fmt.Sprintf("Divide(a=%v, b=%v), result=%s", x.A, x.B, x.resultString())
}

// AskUser pauses the task to request input from the user. Its result is
// whatever the user answered. Executing it requires a [UserIO]; without one
// it fails with [ErrNoUserIO].
type AskUser struct {
	Reasoning
	memo
	Request string `json:"request"`
}

// NewAskUser returns an AskUser action with the given request message.
func NewAskUser(request string) *AskUser {
	return &AskUser{Request: request}
}

func (x *AskUser) Name() string { return "AskUser" }

func (x *AskUser) Execute(ctx context.Context, io UserIO) (any, error) {
	return x.once(func() (any, error) {
		if io == nil {
			return nil, ErrNoUserIO
		}
		return io.Prompt(ctx, x.Request)
	})
}

func (x *AskUser) String() string {
	return fmt.Sprintf("AskUser(request=%s), result=%s", x.Request, x.resultString())
}

// Done marks the task as complete. Output carries the final answer (number,
// string, or nil when the task has no value to report). Done is the loop's
// only terminal action.
type Done struct {
	Reasoning
	memo
	Output any `json:"output"`
}

// NewDone returns a Done action carrying the final output.
func NewDone(output any) *Done {
	return &Done{Output: output}
}

func (x *Done) Name() string { return "Done" }

func (x *Done) Execute(_ context.Context, _ UserIO) (any, error) {
	return x.once(func() (any, error) { return x.Output, nil })
}

func (x *Done) String() string {
	return fmt.Sprintf("Done(output=%v)", x.Output)
}

func (*Add) isAction()      {}
func (*Subtract) isAction() {}
func (*Multiply) isAction() {}
func (*Divide) isAction()   {}
func (*AskUser) isAction()  {}
func (*Done) isAction()     {}

// variant ties a wire name to its usage line and an empty instance factory.
// The slice order is the order actions are advertised to the model.
type variant struct {
	name  string
	usage string
	alloc func() Action
}

var variants = []variant{
	{"Add", "Add(a: number, b: number): Add two numbers (a + b).", func() Action { return &Add{} }},
	{"Subtract", "Subtract(a: number, b: number): Subtract two numbers (a - b).", func() Action { return &Subtract{} }},
	{"Multiply", "Multiply(a: number, b: number): Multiply two numbers (a * b).", func() Action { return &Multiply{} }},
	{"Divide", "Divide(a: number, b: number): Divide two numbers (a / b).", func() Action { return &Divide{} }},
	{"AskUser", "AskUser(request: str): Request user input with a specific message.", func() Action { return &AskUser{} }},
	{"Done", "Done(output: str | number): Mark the task as done with a result.", func() Action { return &Done{} }},
}

// ActionUsage returns one bulleted usage line per variant, suitable for
// pasting into a prompt that advertises the available actions.
func ActionUsage() string {
	lines := make([]string, len(variants))
	for i, v := range variants {
		lines[i] = "- " + v.usage
	}
	return strings.Join(lines, "\n")
}

// ActionNames returns the comma-separated wire names of every variant, in
// the same order ActionUsage lists them.
func ActionNames() string {
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.name
	}
	return strings.Join(names, ", ")
}

// DecodeAction instantiates the variant named name from its JSON arguments
// object. Names are matched exactly; anything else fails with
// [ErrUnknownAction]. Empty arguments decode to the variant's zero operands.
//
// DecodeAction performs no schema validation. Callers that receive untrusted
// arguments (the drivers) validate them before decoding.
func DecodeAction(name string, arguments json.RawMessage) (Action, error) {
	for _, v := range variants {
		if v.name != name {
			continue
		}
		action := v.alloc()
		if len(arguments) == 0 {
			return action, nil
		}
		if err := json.Unmarshal(arguments, action); err != nil {
			return nil, fmt.Errorf("decoding %s arguments: %w", name, err)
		}
		return action, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}
