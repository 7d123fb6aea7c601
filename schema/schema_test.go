package schema_test

import (
	"testing"

	"github.com/rickchristie/stride/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject(t *testing.T) {
	t.Parallel()

	type input struct {
		properties map[string]*schema.Property
		required   []string
	}
	type expected struct {
		schema map[string]any
	}
	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "operand pair with required fields",
			input: input{
				properties: map[string]*schema.Property{
					"a": schema.Number("First operand."),
					"b": schema.Number("Second operand."),
				},
				required: []string{"a", "b"},
			},
			expected: expected{
				schema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"a": map[string]any{"type": "number", "description": "First operand."},
						"b": map[string]any{"type": "number", "description": "Second operand."},
					},
					"required": []string{"a", "b"},
				},
			},
		},
		{
			name: "all optional omits required",
			input: input{
				properties: map[string]*schema.Property{
					"output": schema.Any("Final result of the actions."),
				},
			},
			expected: expected{
				schema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"output": map[string]any{"description": "Final result of the actions."},
					},
				},
			},
		},
		{
			name: "property types",
			input: input{
				properties: map[string]*schema.Property{
					"s": schema.String("a string"),
					"i": schema.Integer("an integer"),
					"b": schema.Boolean("a flag"),
				},
			},
			expected: expected{
				schema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"s": map[string]any{"type": "string", "description": "a string"},
						"i": map[string]any{"type": "integer", "description": "an integer"},
						"b": map[string]any{"type": "boolean", "description": "a flag"},
					},
				},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got := schema.Object(test.input.properties, test.input.required...)
			assert.Equal(t, test.expected.schema, got)
		})
	}
}

func TestValidateBytes(t *testing.T) {
	t.Parallel()

	operands := schema.MustCompile(schema.Object(map[string]*schema.Property{
		"a":                schema.Number("First operand."),
		"b":                schema.Number("Second operand."),
		"chain_of_thought": schema.String("Reasoning."),
	}, "a", "b"))

	type expected struct {
		valid bool
	}
	tests := []struct {
		name     string
		input    string
		expected expected
	}{
		{
			name:     "valid operands",
			input:    `{"a": 2, "b": 3}`,
			expected: expected{valid: true},
		},
		{
			name:     "fractional operands",
			input:    `{"a": 1.5, "b": -0.25}`,
			expected: expected{valid: true},
		},
		{
			name:     "optional reasoning included",
			input:    `{"a": 1, "b": 2, "chain_of_thought": "adding first"}`,
			expected: expected{valid: true},
		},
		{
			name:     "extra properties are ignored",
			input:    `{"a": 1, "b": 2, "confidence": 0.9}`,
			expected: expected{valid: true},
		},
		{
			name:     "missing required operand",
			input:    `{"a": 2}`,
			expected: expected{valid: false},
		},
		{
			name:     "string where number belongs",
			input:    `{"a": "two", "b": 3}`,
			expected: expected{valid: false},
		},
		{
			name:     "malformed document",
			input:    `{"a": 2,`,
			expected: expected{valid: false},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			err := operands.ValidateBytes([]byte(test.input))
			if test.expected.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestAnyAcceptsEveryValue(t *testing.T) {
	t.Parallel()

	output := schema.MustCompile(schema.Object(map[string]*schema.Property{
		"output": schema.Any("Final result of the actions."),
	}))

	for _, doc := range []string{
		`{"output": 42}`,
		`{"output": "all done"}`,
		`{"output": null}`,
		`{}`,
	} {
		assert.NoError(t, output.ValidateBytes([]byte(doc)), doc)
	}
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	s, err := schema.Compile(nil)
	require.NoError(t, err)
	assert.Nil(t, s)

	// A nil schema validates everything.
	assert.NoError(t, s.ValidateBytes([]byte(`{"anything": true}`)))

	_, err = schema.Compile(map[string]any{"type": 42})
	assert.Error(t, err)
}

func TestRaw(t *testing.T) {
	t.Parallel()

	raw := schema.Object(map[string]*schema.Property{
		"request": schema.String("Request for user input."),
	}, "request")
	s := schema.MustCompile(raw)
	assert.Equal(t, raw, s.Raw())

	var nilSchema *schema.Schema
	assert.Nil(t, nilSchema.Raw())
}
