package stride

import "fmt"

// Result is a two-variant outcome container: either a success value of type T
// or a failure message. It is used on every expected failure path (store
// lookups, driver steps, the loop result) so that "the model returned
// garbage" and "the thread does not exist" travel as ordinary values instead
// of Go errors or panics.
//
// The zero value is a failure with an empty message. Construct results with
// [Ok], [Fail] or [Failf].
//
// # Composing Results
//
// Map and FlatMap transform the success value and leave failures untouched,
// which lets fallible stages chain without nested unwrapping:
//
//	content := d.complete(ctx, rc, messages)        // Result[string]
//	payload := FlatMapResult(content, parsePayload) // Result[actionPayload]
//	action := FlatMapResult(payload, toAction)      // Result[Action]
//
// Fold eliminates the union at the boundary by applying exactly one handler:
//
//	code := stride.Fold(result,
//	    func(msg string) int { fmt.Println("Error:", msg); return 1 },
//	    func(a stride.Action) int { return 0 },
//	)
//
// Methods can only express same-type transforms (Go methods cannot introduce
// new type parameters); use the package-level [MapResult], [FlatMapResult]
// and [Fold] when the value type changes.
type Result[T any] struct {
	value T
	msg   string
	ok    bool
}

// Ok returns a success Result holding value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Fail returns a failure Result carrying msg.
func Fail[T any](msg string) Result[T] {
	return Result[T]{msg: msg}
}

// Failf returns a failure Result with a formatted message.
func Failf[T any](format string, args ...any) Result[T] {
	return Result[T]{msg: fmt.Sprintf(format, args...)}
}

// IsOk reports whether r is a success.
func (r Result[T]) IsOk() bool {
	return r.ok
}

// IsFail reports whether r is a failure.
func (r Result[T]) IsFail() bool {
	return !r.ok
}

// Value returns the success value, or the zero value of T when r is a
// failure. Check IsOk first, or use [Fold].
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the failure message, or "" when r is a success.
func (r Result[T]) Err() string {
	return r.msg
}

// Map applies f to the success value. Failures propagate unchanged.
func (r Result[T]) Map(f func(T) T) Result[T] {
	if !r.ok {
		return r
	}
	return Ok(f(r.value))
}

// FlatMap applies f, which itself returns a Result, to the success value and
// returns that Result directly. Failures propagate unchanged.
func (r Result[T]) FlatMap(f func(T) Result[T]) Result[T] {
	if !r.ok {
		return r
	}
	return f(r.value)
}

// String renders the result for logs: Ok(<value>) or Fail(<message>).
func (r Result[T]) String() string {
	if r.ok {
		return fmt.Sprintf("Ok(%v)", r.value)
	}
	return fmt.Sprintf("Fail(%s)", r.msg)
}

// MapResult applies f to the success value of r, producing a Result of a new
// type. Failures propagate with their message intact.
func MapResult[T, U any](r Result[T], f func(T) U) Result[U] {
	if !r.ok {
		return Fail[U](r.msg)
	}
	return Ok(f(r.value))
}

// FlatMapResult applies a fallible f to the success value of r and returns
// its Result directly. Failures propagate with their message intact.
func FlatMapResult[T, U any](r Result[T], f func(T) Result[U]) Result[U] {
	if !r.ok {
		return Fail[U](r.msg)
	}
	return f(r.value)
}

// Fold eliminates the union by applying exactly one handler: onFail for a
// failure, onOk for a success.
func Fold[T, U any](r Result[T], onFail func(string) U, onOk func(T) U) U {
	if !r.ok {
		return onFail(r.msg)
	}
	return onOk(r.value)
}
