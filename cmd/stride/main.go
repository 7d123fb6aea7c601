// Command stride runs a single task through the agent loop from the
// terminal.
//
//	stride -driver anthropic "What is 2 + 3, times 7?"
//
// The task runs until the agent reports completion, asks for input through
// the terminal, or fails. Each executed action is echoed as it lands; the
// final output is printed followed by a separator line. Exit code 0 means
// the task completed, 1 means it did not.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/rickchristie/stride"
	"github.com/rickchristie/stride/agent"
	"github.com/rickchristie/stride/config"
	"github.com/rickchristie/stride/drivers"
	"github.com/rickchristie/stride/hooks"
	"github.com/rickchristie/stride/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	driver := flag.String("driver", stride.DefaultDriver,
		"LLM driver to use (openai, anthropic, ollama)")
	configPath := flag.String("config", "config.yaml",
		"path to the configuration file")
	maxActions := flag.Int("max-actions", 0,
		"override the action budget (0 uses the configured value)")
	verbose := flag.Bool("verbose", false,
		"log every loop step to stderr")
	flag.Parse()

	task := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if task == "" {
		fmt.Fprintln(os.Stderr, "Usage: stride [flags] <task>")
		flag.PrintDefaults()
		return 1
	}

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

	settings := cfg.ForDriver(*driver)
	if *maxActions > 0 {
		settings.MaxActions = *maxActions
	}

	userIO, closeIO := newUserIO()
	defer closeIO()

	threads := store.NewInMemory()
	thread := threads.Add(stride.NewThread(task))

	fmt.Printf("Processing task: %s\n", task)
	fmt.Printf("Thread ID: %s\n", thread.ID)

	rc := stride.NewRunContext().
		WithDriver(*driver).
		WithStore(threads).
		WithIO(userIO).
		WithLogger(newLogger(*verbose)).
		WithSettings(settings)

	runner := agent.New().
		WithDrivers(registry).
		RegisterHook(hooks.NewLogging())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result := runner.Run(ctx, rc, thread.ID)
	if result.IsFail() {
		fmt.Fprintf(os.Stderr, "Error: %s\n", result.Err())
		return 1
	}

	if done, ok := result.Value().(*stride.Done); ok {
		fmt.Println(done.Output)
		fmt.Println(strings.Repeat("-", 40))
	}
	return 0
}

// newLogger builds the stderr logger. Quiet by default so log lines do not
// interleave with the interactive output; -verbose surfaces the loop's step
// logs.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: level,
	}))
}
