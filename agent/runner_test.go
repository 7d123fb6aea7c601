package agent

import (
	"context"
	"fmt"
	"testing"

	"github.com/rickchristie/stride"
	"github.com/rickchristie/stride/drivers"
	"github.com/rickchristie/stride/hooks"
	"github.com/rickchristie/stride/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ----------------------------------------------------------------------------
// Test helpers
// ----------------------------------------------------------------------------

// scripted returns a driver that replays the given step results in order.
func scripted(results ...stride.Result[stride.Action]) stride.StepFunc {
	i := 0
	return func(
		_ context.Context, _ *stride.RunContext, _ *stride.Thread,
	) stride.Result[stride.Action] {
		if i >= len(results) {
			return stride.Fail[stride.Action]("no scripted steps left")
		}
		result := results[i]
		i++
		return result
	}
}

func ok(action stride.Action) stride.Result[stride.Action] {
	return stride.Ok(action)
}

// recordingIO queues answers for prompts and records every echo.
type recordingIO struct {
	answers []string
	prompts []string
	echoes  []string
}

func (io *recordingIO) Prompt(_ context.Context, request string) (string, error) {
	io.prompts = append(io.prompts, request)
	if len(io.answers) == 0 {
		return "", fmt.Errorf("no scripted answer for %q", request)
	}
	answer := io.answers[0]
	io.answers = io.answers[1:]
	return answer, nil
}

func (io *recordingIO) Echo(message string) {
	io.echoes = append(io.echoes, message)
}

// panickingIO explodes on Prompt, for exercising the loop's panic guard.
type panickingIO struct{ recordingIO }

func (io *panickingIO) Prompt(_ context.Context, _ string) (string, error) {
	panic("prompt exploded")
}

// recordingHook records the order every hook fires in.
type recordingHook struct {
	order     []string
	afterLoop []stride.AfterLoopEvent
}

func (h *recordingHook) OnBeforeLoop(_ context.Context, _ *stride.RunContext, _ stride.BeforeLoopEvent) {
	h.order = append(h.order, "BeforeLoop")
}

func (h *recordingHook) OnAfterLoop(_ context.Context, _ *stride.RunContext, event stride.AfterLoopEvent) {
	h.order = append(h.order, "AfterLoop")
	h.afterLoop = append(h.afterLoop, event)
}

func (h *recordingHook) OnBeforeStep(_ context.Context, _ *stride.RunContext, _ stride.BeforeStepEvent) {
	h.order = append(h.order, "BeforeStep")
}

func (h *recordingHook) OnAfterStep(_ context.Context, _ *stride.RunContext, _ stride.AfterStepEvent) {
	h.order = append(h.order, "AfterStep")
}

func (h *recordingHook) OnActionExecuted(_ context.Context, _ *stride.RunContext, _ stride.ActionExecutedEvent) {
	h.order = append(h.order, "ActionExecuted")
}

// newRun builds a runner with a single scripted driver, a stored thread,
// and a RunContext bound to both.
func newRun(query string, results ...stride.Result[stride.Action]) (*Runner, *stride.RunContext, *stride.Thread) {
	registry := drivers.NewRegistry().Register("scripted", scripted(results...))
	runner := New().WithDrivers(registry)

	threads := store.NewInMemory()
	thread := threads.Add(stride.NewThread(query))

	rc := stride.NewRunContext().
		WithDriver("scripted").
		WithStore(threads).
		WithIO(&recordingIO{})
	return runner, rc, thread
}

// ----------------------------------------------------------------------------
// Run and Loop
// ----------------------------------------------------------------------------

func TestRunCompletesWithDone(t *testing.T) {
	t.Parallel()

	runner, rc, thread := newRun("add 2 and 3",
		ok(stride.NewAdd(2, 3)),
		ok(stride.NewDone(5)),
	)

	result := runner.Run(context.Background(), rc, thread.ID)
	require.True(t, result.IsOk(), result.Err())
	assert.Equal(t, "Done", result.Value().Name())

	require.Len(t, thread.Actions, 2)
	value, computed := thread.Actions[0].Result()
	require.True(t, computed)
	assert.Equal(t, 5.0, value)

	io := rc.IO.(*recordingIO)
	assert.Equal(t, []string{
		" - Add(a=2, b=3), result=5",
		" - Done(output=5)",
	}, io.echoes)
}

func TestRunStopsAtBudget(t *testing.T) {
	t.Parallel()

	registry := drivers.NewRegistry().Register("scripted", stride.StepFunc(func(
		_ context.Context, _ *stride.RunContext, _ *stride.Thread,
	) stride.Result[stride.Action] {
		return ok(stride.NewAdd(1, 1))
	}))
	runner := New().WithDrivers(registry)

	threads := store.NewInMemory()
	thread := threads.Add(stride.NewThread("never finishes"))

	settings := stride.DefaultSettings()
	settings.MaxActions = 3
	rc := stride.NewRunContext().
		WithDriver("scripted").
		WithStore(threads).
		WithSettings(settings)

	result := runner.Run(context.Background(), rc, thread.ID)
	require.True(t, result.IsFail())
	assert.Equal(t,
		"exceeded maximum of 3 actions without reaching completion",
		result.Err())
	assert.Len(t, thread.Actions, 3)
}

func TestRunPropagatesDriverFailure(t *testing.T) {
	t.Parallel()

	runner, rc, thread := newRun("q", stride.Fail[stride.Action]("boom"))

	result := runner.Run(context.Background(), rc, thread.ID)
	require.True(t, result.IsFail())
	assert.Equal(t, "boom", result.Err())
	assert.Empty(t, thread.Actions)
}

func TestRunUnknownDriver(t *testing.T) {
	t.Parallel()

	hook := &recordingHook{}
	runner, rc, thread := newRun("q", ok(stride.NewDone(nil)))
	runner.RegisterHook(hook)
	rc.WithDriver("nope")

	result := runner.Run(context.Background(), rc, thread.ID)
	require.True(t, result.IsFail())
	assert.Contains(t, result.Err(), `unknown driver: "nope"`)
	assert.Contains(t, result.Err(), "available drivers: scripted")

	// The loop never reached a step, but the loop hooks still fired.
	assert.Equal(t, []string{"BeforeLoop", "AfterLoop"}, hook.order)
}

func TestRunMissingThread(t *testing.T) {
	t.Parallel()

	runner, rc, _ := newRun("q", ok(stride.NewDone(nil)))

	result := runner.Run(context.Background(), rc, "zzzzzzzz")
	require.True(t, result.IsFail())
	assert.Equal(t, `thread "zzzzzzzz" not found in store`, result.Err())
}

func TestRunWithoutStore(t *testing.T) {
	t.Parallel()

	result := New().Run(context.Background(), stride.NewRunContext(), "any")
	require.True(t, result.IsFail())
	assert.Equal(t, "no thread store configured", result.Err())
}

func TestRunCancelledBeforeFirstStep(t *testing.T) {
	t.Parallel()

	steps := 0
	registry := drivers.NewRegistry().Register("scripted", stride.StepFunc(func(
		_ context.Context, _ *stride.RunContext, _ *stride.Thread,
	) stride.Result[stride.Action] {
		steps++
		return ok(stride.NewDone(nil))
	}))
	runner := New().WithDrivers(registry)

	threads := store.NewInMemory()
	thread := threads.Add(stride.NewThread("q"))
	rc := stride.NewRunContext().WithDriver("scripted").WithStore(threads)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := runner.Run(ctx, rc, thread.ID)
	require.True(t, result.IsFail())
	assert.Equal(t, "context canceled", result.Err())
	assert.Zero(t, steps)
	assert.Empty(t, thread.Actions)
}

func TestRunCancelledMidLoop(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	registry := drivers.NewRegistry().Register("scripted", stride.StepFunc(func(
		_ context.Context, _ *stride.RunContext, _ *stride.Thread,
	) stride.Result[stride.Action] {
		cancel()
		return ok(stride.NewAdd(1, 1))
	}))
	runner := New().WithDrivers(registry)

	threads := store.NewInMemory()
	thread := threads.Add(stride.NewThread("q"))
	rc := stride.NewRunContext().WithDriver("scripted").WithStore(threads)

	result := runner.Run(ctx, rc, thread.ID)
	require.True(t, result.IsFail())
	assert.Equal(t, "context canceled", result.Err())

	// The first action still landed; the cancellation is noticed at the
	// top of the next iteration.
	assert.Len(t, thread.Actions, 1)
}

func TestExecutionFailureDoesNotAppend(t *testing.T) {
	t.Parallel()

	runner, rc, thread := newRun("divide by zero",
		ok(stride.NewDivide(1, 0)),
	)

	result := runner.Run(context.Background(), rc, thread.ID)
	require.True(t, result.IsFail())
	assert.Equal(t, "executing Divide: division by zero is not allowed", result.Err())
	assert.Empty(t, thread.Actions)
	assert.Empty(t, rc.IO.(*recordingIO).echoes)
}

func TestExecutionPanicBecomesFailure(t *testing.T) {
	t.Parallel()

	runner, rc, thread := newRun("ask",
		ok(stride.NewAskUser("anything?")),
	)
	rc.WithIO(&panickingIO{})

	result := runner.Run(context.Background(), rc, thread.ID)
	require.True(t, result.IsFail())
	assert.Equal(t, "executing AskUser: panic: prompt exploded", result.Err())
	assert.Empty(t, thread.Actions)
}

func TestAskUserFlow(t *testing.T) {
	t.Parallel()

	runner, rc, thread := newRun("halve my age",
		ok(stride.NewAskUser("What is your age?")),
		ok(stride.NewDivide(42, 2)),
		ok(stride.NewDone(21)),
	)
	io := &recordingIO{answers: []string{"42"}}
	rc.WithIO(io)

	result := runner.Run(context.Background(), rc, thread.ID)
	require.True(t, result.IsOk(), result.Err())

	assert.Equal(t, []string{"What is your age?"}, io.prompts)
	require.Len(t, thread.Actions, 3)
	answer, computed := thread.Actions[0].Result()
	require.True(t, computed)
	assert.Equal(t, "42", answer)
	assert.Equal(t, " - AskUser(request=What is your age?), result=42", io.echoes[0])
}

func TestAskUserWithoutIO(t *testing.T) {
	t.Parallel()

	registry := drivers.NewRegistry().Register("scripted",
		scripted(ok(stride.NewAskUser("anything?"))))
	runner := New().WithDrivers(registry)

	threads := store.NewInMemory()
	thread := threads.Add(stride.NewThread("q"))
	rc := stride.NewRunContext().WithDriver("scripted").WithStore(threads)

	result := runner.Run(context.Background(), rc, thread.ID)
	require.True(t, result.IsFail())
	assert.Equal(t,
		"executing AskUser: no user IO available to request input",
		result.Err())
}

// ----------------------------------------------------------------------------
// Hooks
// ----------------------------------------------------------------------------

func TestHookFiringOrder(t *testing.T) {
	t.Parallel()

	hook := &recordingHook{}
	runner, rc, thread := newRun("add 2 and 3",
		ok(stride.NewAdd(2, 3)),
		ok(stride.NewDone(5)),
	)
	runner.RegisterHook(hook)

	result := runner.Run(context.Background(), rc, thread.ID)
	require.True(t, result.IsOk(), result.Err())

	assert.Equal(t, []string{
		"BeforeLoop",
		"BeforeStep", "AfterStep", "ActionExecuted",
		"BeforeStep", "AfterStep", "ActionExecuted",
		"AfterLoop",
	}, hook.order)

	require.Len(t, hook.afterLoop, 1)
	assert.True(t, hook.afterLoop[0].Result.IsOk())
	assert.Equal(t, "Done", hook.afterLoop[0].Result.Value().Name())
}

func TestAfterLoopFiresOnFailure(t *testing.T) {
	t.Parallel()

	hook := &recordingHook{}
	runner, rc, thread := newRun("q", stride.Fail[stride.Action]("boom"))
	runner.RegisterHook(hook)

	result := runner.Run(context.Background(), rc, thread.ID)
	require.True(t, result.IsFail())

	require.Len(t, hook.afterLoop, 1)
	assert.True(t, hook.afterLoop[0].Result.IsFail())
	assert.Equal(t, "boom", hook.afterLoop[0].Result.Err())
	assert.Equal(t, []string{
		"BeforeLoop", "BeforeStep", "AfterStep", "AfterLoop",
	}, hook.order)
}

func TestSharedHookRegistry(t *testing.T) {
	t.Parallel()

	hook := &recordingHook{}
	shared := hooks.NewRegistry().Register(hook)

	runner, rc, thread := newRun("q", ok(stride.NewDone(nil)))
	runner.WithHooks(shared)

	result := runner.Run(context.Background(), rc, thread.ID)
	require.True(t, result.IsOk(), result.Err())
	assert.Contains(t, hook.order, "BeforeLoop")
	assert.Contains(t, hook.order, "AfterLoop")
}
