// Command stride-eval runs an evaluation dataset against a driver and
// writes a JSON report next to the console summary.
//
//	stride-eval -driver openai -dataset evals/simple_tasks.yaml
//
// Each case prints as it finishes; the summary scores task completion,
// result validity, and step matching across the dataset.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rickchristie/stride"
	"github.com/rickchristie/stride/config"
	"github.com/rickchristie/stride/drivers"
	"github.com/rickchristie/stride/eval"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	driver := flag.String("driver", stride.DefaultDriver,
		"LLM driver to evaluate")
	configPath := flag.String("config", "config.yaml",
		"path to the configuration file")
	dataset := flag.String("dataset", "evals/simple_tasks.yaml",
		"path to the dataset file")
	reportDir := flag.String("report-dir", ".",
		"directory to write the JSON report to")
	noColor := flag.Bool("no-color", false,
		"disable colored output")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	registry := drivers.Default()
	if found := registry.Lookup(*driver); found.IsFail() {
		fmt.Fprintf(os.Stderr, "Error: %s\n", found.Err())
		return 1
	}

	cases, err := eval.LoadDataset(*dataset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	datasetName := strings.TrimSuffix(filepath.Base(*dataset), filepath.Ext(*dataset))
	out := eval.NewWriter(os.Stdout).WithColor(!*noColor)
	out.WriteHeader(*driver, datasetName, len(cases))

	evaluator := eval.New(*driver).
		WithDrivers(registry).
		WithSettings(cfg.ForDriver(*driver))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report := evaluator.Evaluate(ctx, cases, out.WriteCase)
	report.Dataset = datasetName
	out.WriteSummary(report)

	if err := saveReport(report, *reportDir, *driver, *dataset); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func saveReport(report *eval.Report, dir, driver, datasetPath string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}

	path := filepath.Join(dir, eval.ReportFilename(driver, datasetPath, time.Now()))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	if err := report.WriteJSON(f); err != nil {
		return err
	}
	fmt.Printf("\nReport saved to: %s\n", path)
	return nil
}
