// Package httpapi exposes the agent loop over HTTP.
//
// Three endpoints operate on threads:
//
//	POST /thread                 create a thread from a message and run it
//	POST /thread/{id}/response   continue a thread with a follow-up message
//	GET  /thread/{id}            fetch a thread's current state
//
// Responses carry the thread id, the rendered action history, the final
// output when the run completed, and the URL for follow-ups. Failures use a
// JSON envelope {"error": {"code": ..., "message": ...}} with codes
// not_found, invalid_request, agent_error and internal.
//
// Requests run without user IO: a run that reaches AskUser fails with
// agent_error, and the client continues the conversation through the
// response endpoint instead.
package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/rickchristie/stride"
	"github.com/rickchristie/stride/agent"
	"github.com/rickchristie/stride/config"
	"github.com/rickchristie/stride/drivers"
	"github.com/rickchristie/stride/store"
)

// Runner runs the agent loop on a stored thread. *agent.Runner is the
// canonical implementation.
type Runner interface {
	Run(ctx context.Context, rc *stride.RunContext, threadID string) stride.Result[stride.Action]
}

// Server wires the pieces one handler set needs. Zero fields are filled with
// working defaults by NewRouter, so an empty Server serves requests against
// the built-in drivers and a fresh in-memory store.
type Server struct {
	// Runner executes the agent loop.
	Runner Runner

	// Drivers resolves driver names from request bodies.
	Drivers *drivers.Registry

	// Store holds the live threads. Shared across requests.
	Store stride.ThreadStore

	// Config resolves per-driver settings.
	Config *config.Config

	// Logger receives request and loop logs.
	Logger *slog.Logger

	// Driver is the driver used when a request does not name one.
	Driver string
}

type handlers struct {
	server Server
}

// NewRouter returns the HTTP handler for the thread endpoints.
func NewRouter(server Server) http.Handler {
	if server.Drivers == nil {
		server.Drivers = drivers.Default()
	}
	if server.Runner == nil {
		server.Runner = agent.New().WithDrivers(server.Drivers)
	}
	if server.Store == nil {
		server.Store = store.NewInMemory()
	}
	if server.Config == nil {
		server.Config = &config.Config{}
	}
	if server.Logger == nil {
		server.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if server.Driver == "" {
		server.Driver = stride.DefaultDriver
	}

	h := &handlers{server: server}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /thread", h.handleThreadCreate)
	mux.HandleFunc("POST /thread/{id}/response", h.handleThreadContinue)
	mux.HandleFunc("GET /thread/{id}", h.handleThreadGet)
	return mux
}
