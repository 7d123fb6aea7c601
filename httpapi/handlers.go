package httpapi

import (
	"net/http"
	"strings"

	"github.com/rickchristie/stride"
)

type messageRequest struct {
	Message string `json:"message"`
	Driver  string `json:"driver,omitempty"`
}

func (h *handlers) handleThreadCreate(w http.ResponseWriter, r *http.Request) {
	var request messageRequest
	if err := decodeJSONBody(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, errorCodeInvalidRequest, err.Error())
		return
	}
	if strings.TrimSpace(request.Message) == "" {
		writeError(w, http.StatusBadRequest, errorCodeInvalidRequest, "message is required")
		return
	}

	driver, ok := h.resolveDriver(w, request.Driver)
	if !ok {
		return
	}

	thread := h.server.Store.Add(stride.NewThread(request.Message))
	h.server.Logger.InfoContext(r.Context(), "created thread",
		"thread", thread.ID, "driver", driver)

	h.runAndRespond(w, r, thread, driver)
}

func (h *handlers) handleThreadContinue(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	found := h.server.Store.Get(id)
	if found.IsFail() {
		h.server.Logger.ErrorContext(r.Context(), "thread not found", "thread", id)
		writeError(w, http.StatusNotFound, errorCodeNotFound, found.Err())
		return
	}

	var request messageRequest
	if err := decodeJSONBody(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, errorCodeInvalidRequest, err.Error())
		return
	}
	if strings.TrimSpace(request.Message) == "" {
		writeError(w, http.StatusBadRequest, errorCodeInvalidRequest, "message is required")
		return
	}

	driver, ok := h.resolveDriver(w, request.Driver)
	if !ok {
		return
	}

	thread := found.Value()
	thread.Query = thread.Query + "\n" + request.Message

	h.runAndRespond(w, r, thread, driver)
}

func (h *handlers) handleThreadGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	found := h.server.Store.Get(id)
	if found.IsFail() {
		h.server.Logger.ErrorContext(r.Context(), "thread not found", "thread", id)
		writeError(w, http.StatusNotFound, errorCodeNotFound, found.Err())
		return
	}

	writeThreadResponse(w, http.StatusOK, found.Value(), nil)
}

// resolveDriver picks the request's driver or the server default, rejecting
// names the registry does not know before any thread state changes.
func (h *handlers) resolveDriver(w http.ResponseWriter, requested string) (string, bool) {
	driver := requested
	if driver == "" {
		driver = h.server.Driver
	}
	if found := h.server.Drivers.Lookup(driver); found.IsFail() {
		writeError(w, http.StatusBadRequest, errorCodeInvalidRequest, found.Err())
		return "", false
	}
	return driver, true
}

// runAndRespond runs the loop on the thread and writes the outcome. A failed
// run is an agent_error; a run that reports success without a terminal Done
// action is an internal inconsistency.
func (h *handlers) runAndRespond(w http.ResponseWriter, r *http.Request, thread *stride.Thread, driver string) {
	rc := stride.NewRunContext().
		WithDriver(driver).
		WithStore(h.server.Store).
		WithLogger(h.server.Logger).
		WithSettings(h.server.Config.ForDriver(driver))

	result := h.server.Runner.Run(r.Context(), rc, thread.ID)
	if result.IsFail() {
		h.server.Logger.ErrorContext(r.Context(), "agent run failed",
			"thread", thread.ID, "error", result.Err())
		writeError(w, http.StatusInternalServerError, errorCodeAgent, result.Err())
		return
	}

	last := thread.Last()
	if last.IsFail() {
		h.server.Logger.ErrorContext(r.Context(), "no actions in thread after run",
			"thread", thread.ID)
		writeError(w, http.StatusInternalServerError, errorCodeInternal,
			"no actions in thread after run")
		return
	}
	done, ok := last.Value().(*stride.Done)
	if !ok {
		h.server.Logger.ErrorContext(r.Context(), "unexpected final action",
			"thread", thread.ID, "action", last.Value().Name())
		writeError(w, http.StatusInternalServerError, errorCodeInternal,
			"unexpected final action: "+last.Value().Name())
		return
	}

	writeThreadResponse(w, http.StatusOK, thread, done.Output)
}
