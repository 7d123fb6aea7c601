package eval

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/rickchristie/stride"
	"github.com/rickchristie/stride/agent"
	"github.com/rickchristie/stride/drivers"
	"github.com/rickchristie/stride/store"
)

// answerTolerance is the absolute error allowed when comparing numeric
// answers, so "0.333" passes against 1.0/3.
const answerTolerance = 1e-3

// Evaluator runs dataset cases against one driver and scores the
// transcripts. Each case gets a fresh thread store and a [ScriptedIO]
// replaying the case's user inputs.
type Evaluator struct {
	driver   string
	runner   *agent.Runner
	settings stride.Settings
	logger   *slog.Logger
}

// New creates an evaluator for the named driver, using the built-in driver
// registry and default settings.
func New(driver string) *Evaluator {
	return &Evaluator{
		driver:   driver,
		runner:   agent.New(),
		settings: stride.DefaultSettings(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithDrivers sets the driver registry. Returns the Evaluator for chaining.
func (e *Evaluator) WithDrivers(registry *drivers.Registry) *Evaluator {
	e.runner = agent.New().WithDrivers(registry)
	return e
}

// WithSettings sets the resolved driver settings. Returns the Evaluator for
// chaining.
func (e *Evaluator) WithSettings(settings stride.Settings) *Evaluator {
	e.settings = settings
	return e
}

// WithLogger sets the logger passed to runs. Returns the Evaluator for
// chaining.
func (e *Evaluator) WithLogger(logger *slog.Logger) *Evaluator {
	e.logger = logger
	return e
}

// CaseResult is the scored outcome of one case.
type CaseResult struct {
	// CaseID is the dataset id of the case.
	CaseID string `json:"test_id"`

	// ThreadID identifies the thread the case ran on.
	ThreadID string `json:"thread_id"`

	// TaskCompleted reports whether the run finished with a Done action.
	TaskCompleted bool `json:"task_completed"`

	// ResultValid reports whether the final answer matched the expectation.
	ResultValid bool `json:"result_valid"`

	// StepsMatch reports whether the executed action names matched the
	// expected sequence.
	StepsMatch bool `json:"steps_match"`

	// ActualAnswer is the Done output, nil when the run did not complete.
	ActualAnswer any `json:"actual_result"`

	// ActualSteps is the executed history in prompt form.
	ActualSteps []string `json:"actual_steps"`

	// StepsDiff is a unified diff of expected versus actual steps, empty
	// when they match.
	StepsDiff string `json:"steps_diff,omitempty"`

	// Error carries the loop's failure message when the run failed.
	Error string `json:"error_message,omitempty"`

	// Duration is how long the case took.
	Duration time.Duration `json:"-"`
}

// Passed reports whether every subscore passed.
func (r CaseResult) Passed() bool {
	return r.TaskCompleted && r.ResultValid && r.StepsMatch
}

// EvaluateCase runs one case and scores it.
func (e *Evaluator) EvaluateCase(ctx context.Context, c Case) CaseResult {
	threads := store.NewInMemory()
	thread := threads.Add(stride.NewThread(c.Prompt))

	rc := stride.NewRunContext().
		WithDriver(e.driver).
		WithStore(threads).
		WithIO(NewScriptedIO(c.UserInput...)).
		WithLogger(e.logger).
		WithSettings(e.settings)

	start := time.Now()
	result := e.runner.Run(ctx, rc, thread.ID)
	elapsed := time.Since(start)

	cr := CaseResult{
		CaseID:      c.ID,
		ThreadID:    thread.ID,
		ActualSteps: stepStrings(thread),
		Duration:    elapsed,
	}
	if result.IsOk() {
		if done, ok := result.Value().(*stride.Done); ok {
			cr.TaskCompleted = true
			cr.ActualAnswer = done.Output
		}
	} else {
		cr.Error = result.Err()
	}

	cr.ResultValid = answersMatch(cr.ActualAnswer, c.ExpectedAnswer)
	cr.StepsMatch = namesEqual(actionNames(c.ExpectedSteps), actionNames(cr.ActualSteps))
	if !cr.StepsMatch {
		cr.StepsDiff = stepsDiff(c.ExpectedSteps, cr.ActualSteps)
	}
	return cr
}

// Evaluate runs every case in order. The optional observer is called after
// each case, which is how the CLI streams progress lines.
func (e *Evaluator) Evaluate(ctx context.Context, cases []Case, observer func(CaseResult)) *Report {
	report := &Report{Driver: e.driver}
	for _, c := range cases {
		result := e.EvaluateCase(ctx, c)
		report.Results = append(report.Results, result)
		if observer != nil {
			observer(result)
		}
	}
	return report
}

func stepStrings(thread *stride.Thread) []string {
	steps := make([]string, len(thread.Actions))
	for i, action := range thread.Actions {
		steps[i] = action.String()
	}
	return steps
}

// answersMatch compares an actual answer against the expectation. Both sides
// are tried as numbers first (commas read as decimal points) and compared
// with [answerTolerance]; otherwise trimmed strings must be equal. The
// expectation "refusal" matches any non-numeric answer.
func answersMatch(actual, expected any) bool {
	if actual == nil && expected == nil {
		return true
	}
	if actual == nil || expected == nil {
		return false
	}

	actualText := strings.TrimSpace(stringify(actual))
	expectedText := strings.TrimSpace(stringify(expected))

	if expectedText == "refusal" {
		_, err := parseNumber(actualText)
		return err != nil
	}

	actualNum, actualErr := parseNumber(actualText)
	expectedNum, expectedErr := parseNumber(expectedText)
	if actualErr == nil && expectedErr == nil {
		return math.Abs(actualNum-expectedNum) < answerTolerance
	}

	return actualText == expectedText
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func parseNumber(text string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64)
}

// actionNames extracts the normalized action names from prompt-form steps.
// "Add(a=1, b=2)" and a bare "Add" both read as "Add".
func actionNames(steps []string) []string {
	names := make([]string, 0, len(steps))
	for _, step := range steps {
		name := strings.TrimSpace(strings.SplitN(step, "(", 2)[0])
		if name == "" {
			continue
		}
		names = append(names, normalizeActionName(name))
	}
	return names
}

// normalizeActionName maps legacy action spellings onto the current set.
func normalizeActionName(name string) string {
	if name == "RequestUserInput" {
		return "AskUser"
	}
	return name
}

func namesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func stepsDiff(expected, actual []string) string {
	diff := difflib.UnifiedDiff{
		A:        diffLines(expected),
		B:        diffLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return ""
	}
	return text
}

func diffLines(steps []string) []string {
	lines := make([]string, len(steps))
	for i, step := range steps {
		lines[i] = step + "\n"
	}
	return lines
}
