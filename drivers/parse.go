package drivers

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rickchristie/stride"
)

// actionPayload is the wire shape every driver asks the model to produce.
type actionPayload struct {
	Action    string          `json:"action"`
	Arguments json.RawMessage `json:"arguments"`
}

// parseCompletion extracts the action payload from the completion text.
// Models do not always return bare JSON; anthropic in particular likes to
// wrap it in a ```json fence or lead with prose, so the parser scans for
// the first complete JSON object instead of unmarshalling the whole text.
func parseCompletion(
	ctx context.Context,
	rc *stride.RunContext,
	content string,
) stride.Result[actionPayload] {
	raw, ok := firstJSONObject(content)
	if !ok {
		return stride.Fail[actionPayload]("no JSON object in completion")
	}

	var payload actionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return stride.Failf[actionPayload]("parsing output: %v", err)
	}

	rc.Logger.InfoContext(ctx, "received action payload",
		"action", payload.Action, "arguments", string(payload.Arguments))
	return stride.Ok(payload)
}

// firstJSONObject scans text for the first '{' and decodes one complete
// JSON value from there. The decoder stops at the end of the object, so
// fences, labels and trailing prose around the JSON are all tolerated.
func firstJSONObject(text string) (json.RawMessage, bool) {
	trimmed := strings.TrimSpace(text)
	start := strings.IndexByte(trimmed, '{')
	if start < 0 {
		return nil, false
	}

	decoder := json.NewDecoder(strings.NewReader(trimmed[start:]))

	var raw json.RawMessage
	if err := decoder.Decode(&raw); err != nil {
		return nil, false
	}
	return raw, true
}

// convertToAction validates the payload's arguments against the schema for
// the named action and decodes them into the action value. Unknown names
// fail without guessing.
func convertToAction(
	ctx context.Context,
	rc *stride.RunContext,
	payload actionPayload,
) stride.Result[stride.Action] {
	args := payload.Arguments
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}

	if s, ok := actionSchemas[payload.Action]; ok {
		if err := s.ValidateBytes(args); err != nil {
			return stride.Failf[stride.Action]("converting to action: %v", err)
		}
	}

	action, err := stride.DecodeAction(payload.Action, args)
	if err != nil {
		return stride.Fail[stride.Action](err.Error())
	}

	rc.Logger.InfoContext(ctx, "converted to action", "action", action.String())
	return stride.Ok(action)
}
