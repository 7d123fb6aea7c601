// Command strided serves the agent loop over HTTP.
//
// POST /thread starts a new thread from a message, POST /thread/{id}/response
// continues an existing one, GET /thread/{id} returns its state. Driver
// settings come from the configuration file; requests may override the
// driver per call. The server drains in-flight requests on SIGINT and
// SIGTERM before exiting.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rickchristie/stride"
	"github.com/rickchristie/stride/agent"
	"github.com/rickchristie/stride/config"
	"github.com/rickchristie/stride/drivers"
	"github.com/rickchristie/stride/hooks"
	"github.com/rickchristie/stride/httpapi"
	"github.com/rickchristie/stride/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	addr := flag.String("addr", ":8080", "address to listen on")
	configPath := flag.String("config", "config.yaml",
		"path to the configuration file")
	driver := flag.String("driver", stride.DefaultDriver,
		"driver for requests that do not name one")
	flag.Parse()

	logger := newLogger(os.Stderr)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	registry := drivers.Default()
	if found := registry.Lookup(*driver); found.IsFail() {
		return errors.New(found.Err())
	}

	router := httpapi.NewRouter(httpapi.Server{
		Runner:  agent.New().WithDrivers(registry).RegisterHook(hooks.NewLogging()),
		Drivers: registry,
		Store:   store.NewInMemory(),
		Config:  cfg,
		Logger:  logger,
		Driver:  *driver,
	})

	server := &http.Server{
		Addr:    *addr,
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", *addr, "driver", *driver)
		serverErr <- server.ListenAndServe()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			_ = server.Close()
		}
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-serverErr; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
