package drivers

import (
	"context"
	"testing"

	"github.com/rickchristie/stride"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstJSONObject(t *testing.T) {
	t.Parallel()

	type input struct {
		text string
	}
	type expected struct {
		raw string
		ok  bool
	}
	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:     "bare object",
			input:    input{text: `{"action": "Done", "arguments": {}}`},
			expected: expected{raw: `{"action": "Done", "arguments": {}}`, ok: true},
		},
		{
			name:     "json fence",
			input:    input{text: "```json\n{\"action\": \"Add\"}\n```"},
			expected: expected{raw: `{"action": "Add"}`, ok: true},
		},
		{
			name:     "plain fence",
			input:    input{text: "```\n{\"action\": \"Add\"}\n```"},
			expected: expected{raw: `{"action": "Add"}`, ok: true},
		},
		{
			name:     "leading prose",
			input:    input{text: `Here is the next action: {"action": "Done"}`},
			expected: expected{raw: `{"action": "Done"}`, ok: true},
		},
		{
			name:     "trailing prose",
			input:    input{text: `{"action": "Done"} Let me know if you need more.`},
			expected: expected{raw: `{"action": "Done"}`, ok: true},
		},
		{
			name:     "nested objects stop at the outer close",
			input:    input{text: `{"arguments": {"a": 1}} trailing`},
			expected: expected{raw: `{"arguments": {"a": 1}}`, ok: true},
		},
		{
			name:     "surrounding whitespace",
			input:    input{text: "\n\n  {\"action\": \"Done\"}  \n"},
			expected: expected{raw: `{"action": "Done"}`, ok: true},
		},
		{
			name:     "no object",
			input:    input{text: "I cannot help with that."},
			expected: expected{ok: false},
		},
		{
			name:     "unterminated object",
			input:    input{text: `{"action": "Add"`},
			expected: expected{ok: false},
		},
		{
			name:     "empty",
			input:    input{text: ""},
			expected: expected{ok: false},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			raw, ok := firstJSONObject(test.input.text)
			require.Equal(t, test.expected.ok, ok)
			if test.expected.ok {
				assert.Equal(t, test.expected.raw, string(raw))
			}
		})
	}
}

func TestParseCompletion(t *testing.T) {
	t.Parallel()

	rc := stride.NewRunContext()

	t.Run("bare payload", func(t *testing.T) {
		t.Parallel()
		result := parseCompletion(context.Background(), rc,
			`{"action": "Add", "arguments": {"a": 2, "b": 3}}`)
		require.True(t, result.IsOk())
		assert.Equal(t, "Add", result.Value().Action)
		assert.JSONEq(t, `{"a": 2, "b": 3}`, string(result.Value().Arguments))
	})

	t.Run("fenced payload", func(t *testing.T) {
		t.Parallel()
		result := parseCompletion(context.Background(), rc,
			"Sure, here it is:\n```json\n{\"action\": \"Done\", \"arguments\": {\"output\": 5}}\n```")
		require.True(t, result.IsOk())
		assert.Equal(t, "Done", result.Value().Action)
	})

	t.Run("no JSON", func(t *testing.T) {
		t.Parallel()
		result := parseCompletion(context.Background(), rc, "I cannot help with that.")
		require.True(t, result.IsFail())
		assert.Equal(t, "no JSON object in completion", result.Err())
	})

	t.Run("wrong shape", func(t *testing.T) {
		t.Parallel()
		result := parseCompletion(context.Background(), rc, `{"action": 42}`)
		require.True(t, result.IsFail())
		assert.Contains(t, result.Err(), "parsing output")
	})
}

func TestConvertToAction(t *testing.T) {
	t.Parallel()

	type input struct {
		action    string
		arguments string
	}
	type expected struct {
		ok        bool
		name      string
		rationale string
		errSubstr string
	}
	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:     "add with operands",
			input:    input{action: "Add", arguments: `{"chain_of_thought": "start", "a": 2, "b": 3}`},
			expected: expected{ok: true, name: "Add", rationale: "start"},
		},
		{
			name:     "divide without rationale",
			input:    input{action: "Divide", arguments: `{"a": 10, "b": 4}`},
			expected: expected{ok: true, name: "Divide"},
		},
		{
			name:     "ask user",
			input:    input{action: "AskUser", arguments: `{"request": "What is your age?"}`},
			expected: expected{ok: true, name: "AskUser"},
		},
		{
			name:     "done with output",
			input:    input{action: "Done", arguments: `{"output": 21}`},
			expected: expected{ok: true, name: "Done"},
		},
		{
			name:     "done with null output",
			input:    input{action: "Done", arguments: `{"output": null}`},
			expected: expected{ok: true, name: "Done"},
		},
		{
			name:     "done without arguments",
			input:    input{action: "Done", arguments: ""},
			expected: expected{ok: true, name: "Done"},
		},
		{
			name:     "unknown action",
			input:    input{action: "Teleport", arguments: `{}`},
			expected: expected{errSubstr: `unknown action type: "Teleport"`},
		},
		{
			name:     "missing action name",
			input:    input{action: "", arguments: `{}`},
			expected: expected{errSubstr: `unknown action type: ""`},
		},
		{
			name:     "case sensitive name",
			input:    input{action: "add", arguments: `{"a": 1, "b": 2}`},
			expected: expected{errSubstr: `unknown action type: "add"`},
		},
		{
			name:     "missing operand",
			input:    input{action: "Add", arguments: `{"a": 2}`},
			expected: expected{errSubstr: "converting to action"},
		},
		{
			name:     "no arguments for arithmetic",
			input:    input{action: "Multiply", arguments: ""},
			expected: expected{errSubstr: "converting to action"},
		},
		{
			name:     "wrong operand type",
			input:    input{action: "Add", arguments: `{"a": "two", "b": 3}`},
			expected: expected{errSubstr: "converting to action"},
		},
		{
			name:     "ask user without request",
			input:    input{action: "AskUser", arguments: `{}`},
			expected: expected{errSubstr: "converting to action"},
		},
		{
			name:     "arguments not an object",
			input:    input{action: "Add", arguments: `"a=2 b=3"`},
			expected: expected{errSubstr: "converting to action"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			payload := actionPayload{Action: test.input.action}
			if test.input.arguments != "" {
				payload.Arguments = []byte(test.input.arguments)
			}

			result := convertToAction(context.Background(), stride.NewRunContext(), payload)
			if !test.expected.ok {
				require.True(t, result.IsFail())
				assert.Contains(t, result.Err(), test.expected.errSubstr)
				return
			}

			require.True(t, result.IsOk(), result.Err())
			action := result.Value()
			assert.Equal(t, test.expected.name, action.Name())
			assert.Equal(t, test.expected.rationale, action.Rationale())
		})
	}
}
