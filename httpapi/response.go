package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rickchristie/stride"
)

const (
	errorCodeNotFound       = "not_found"
	errorCodeInvalidRequest = "invalid_request"
	errorCodeAgent          = "agent_error"
	errorCodeInternal       = "internal"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiErrorResponse struct {
	Error apiError `json:"error"`
}

type threadResponse struct {
	ThreadID    string     `json:"thread_id"`
	Thread      threadView `json:"thread"`
	Message     any        `json:"message,omitempty"`
	ResponseURL string     `json:"response_url"`
}

type threadView struct {
	ID      string       `json:"id"`
	Query   string       `json:"query"`
	Actions []actionView `json:"actions"`
}

// actionView renders one executed action. Detail is the same line the
// drivers see in prompts; Result is the executed value when one exists.
type actionView struct {
	Action string `json:"action"`
	Detail string `json:"detail"`
	Result any    `json:"result,omitempty"`
}

func writeThreadResponse(w http.ResponseWriter, status int, thread *stride.Thread, message any) {
	view := threadView{
		ID:      thread.ID,
		Query:   thread.Query,
		Actions: make([]actionView, 0, len(thread.Actions)),
	}
	for _, action := range thread.Actions {
		av := actionView{Action: action.Name(), Detail: action.String()}
		if value, computed := action.Result(); computed {
			av.Result = value
		}
		view.Actions = append(view.Actions, av)
	}

	writeJSON(w, status, threadResponse{
		ThreadID:    thread.ID,
		Thread:      view,
		Message:     message,
		ResponseURL: fmt.Sprintf("/thread/%s/response", thread.ID),
	})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiErrorResponse{
		Error: apiError{
			Code:    code,
			Message: message,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSONBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return fmt.Errorf("invalid JSON body: %v", err)
	}

	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain exactly one JSON object")
	}

	return nil
}
