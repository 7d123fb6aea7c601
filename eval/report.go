package eval

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// Report aggregates the results of one evaluation run.
type Report struct {
	Driver  string       `json:"driver"`
	Dataset string       `json:"dataset,omitempty"`
	Results []CaseResult `json:"results"`
}

// Summary holds the per-axis totals of a report.
type Summary struct {
	Total         int `json:"total_tests"`
	TaskCompleted int `json:"task_completed"`
	ResultValid   int `json:"result_valid"`
	StepsMatch    int `json:"steps_match"`
	Passed        int `json:"passed"`
}

// Summary computes the totals across all results.
func (r *Report) Summary() Summary {
	s := Summary{Total: len(r.Results)}
	for _, result := range r.Results {
		if result.TaskCompleted {
			s.TaskCompleted++
		}
		if result.ResultValid {
			s.ResultValid++
		}
		if result.StepsMatch {
			s.StepsMatch++
		}
		if result.Passed() {
			s.Passed++
		}
	}
	return s
}

// PassRate returns the percentage of fully passed cases, 0 when the report
// is empty.
func (s Summary) PassRate() float64 {
	return percent(s.Passed, s.Total)
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

// WriteJSON writes the report with its summary as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	payload := struct {
		Driver  string       `json:"driver"`
		Dataset string       `json:"dataset,omitempty"`
		Summary Summary      `json:"summary"`
		Results []CaseResult `json:"results"`
	}{r.Driver, r.Dataset, r.Summary(), r.Results}

	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	_, err = w.Write(append(encoded, '\n'))
	return err
}

// ReportFilename builds the report file name from the driver, the dataset
// path and a timestamp: "openai-simple_tasks-20260825-1430.json".
func ReportFilename(driver, datasetPath string, now time.Time) string {
	base := filepath.Base(datasetPath)
	dataset := strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s-%s-%s.json", driver, dataset, now.Format("20060102-1504"))
}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

// Writer renders evaluation progress and summaries as text. Colors are ANSI
// escapes, enabled by default; turn them off with WithColor when the output
// is not a terminal.
type Writer struct {
	out   io.Writer
	color bool
}

// NewWriter returns a Writer with colors enabled.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out, color: true}
}

// WithColor toggles ANSI colors. Returns the Writer for chaining.
func (w *Writer) WithColor(enabled bool) *Writer {
	w.color = enabled
	return w
}

func (w *Writer) paint(color, text string) string {
	if !w.color {
		return text
	}
	return color + text + colorReset
}

// WriteHeader prints the run header.
func (w *Writer) WriteHeader(driver, dataset string, cases int) {
	fmt.Fprintf(w.out, "%s\n", w.paint(colorBold, "Running evaluation"))
	fmt.Fprintf(w.out, "%s %s\n", w.paint(colorCyan, "Dataset:"), dataset)
	fmt.Fprintf(w.out, "%s %s\n", w.paint(colorCyan, "Driver:"), driver)
	fmt.Fprintf(w.out, "%s %d\n\n", w.paint(colorCyan, "Test cases:"), cases)
}

// WriteCase prints one per-case line, plus the failure details when the case
// did not pass.
func (w *Writer) WriteCase(r CaseResult) {
	status := w.paint(colorGreen, "PASS")
	if !r.Passed() {
		status = w.paint(colorRed, "FAIL")
	}
	fmt.Fprintf(w.out, "  %s: %s (%.1fs)\n", r.CaseID, status, r.Duration.Seconds())

	if r.Error != "" {
		fmt.Fprintf(w.out, "    %s %s\n", w.paint(colorRed, "error:"), r.Error)
	}
	if r.StepsDiff != "" {
		for _, line := range strings.Split(strings.TrimRight(r.StepsDiff, "\n"), "\n") {
			fmt.Fprintf(w.out, "    %s\n", w.paint(colorDim, line))
		}
	}
}

// WriteSummary prints the per-axis totals and the overall pass rate.
func (w *Writer) WriteSummary(report *Report) {
	s := report.Summary()

	fmt.Fprintf(w.out, "\n%s\n", w.paint(colorBold, "Summary"))
	w.writeAxis("Task completed", s.TaskCompleted, s.Total)
	w.writeAxis("Result valid", s.ResultValid, s.Total)
	w.writeAxis("Steps match", s.StepsMatch, s.Total)

	rateColor := colorRed
	switch rate := s.PassRate(); {
	case rate >= 80:
		rateColor = colorGreen
	case rate >= 60:
		rateColor = colorYellow
	}
	fmt.Fprintf(w.out, "%s %s\n",
		w.paint(colorBold, "Overall pass rate:"),
		w.paint(rateColor, fmt.Sprintf("%d/%d (%.1f%%)", s.Passed, s.Total, s.PassRate())))
}

func (w *Writer) writeAxis(label string, n, total int) {
	fmt.Fprintf(w.out, "  %s: %d/%d (%.1f%%)\n", label, n, total, percent(n, total))
}
