// Package schema provides JSON Schema building and validation for action
// arguments.
//
// Drivers receive an arguments object from the model and validate it before
// decoding, so a missing operand or a string where a number belongs becomes
// a descriptive failure instead of a zero value.
//
// # Quick Start
//
//	operands := schema.MustCompile(schema.Object(map[string]*schema.Property{
//	    "a": schema.Number("First operand."),
//	    "b": schema.Number("Second operand."),
//	}, "a", "b")) // "a" and "b" are required
//
//	if err := operands.ValidateBytes(arguments); err != nil {
//	    // reject the model output
//	}
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema represents a JSON Schema definition. It provides both the raw map
// representation (for serialization and prompts) and a compiled validator
// (for runtime validation).
type Schema struct {
	raw      map[string]any
	compiled *jsonschema.Schema
}

// Raw returns the underlying map[string]any representation.
func (s *Schema) Raw() map[string]any {
	if s == nil {
		return nil
	}
	return s.raw
}

// Validate validates already-decoded JSON data against the schema.
// Returns nil if valid, or an error describing the validation failure.
func (s *Schema) Validate(data any) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	if err := s.compiled.Validate(data); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// ValidateBytes validates a raw JSON document against the schema. The
// document is decoded with the validator's own number handling, so large
// integers survive the round trip.
func (s *Schema) ValidateBytes(raw []byte) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	data, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}
	return s.Validate(data)
}

// ValidationError wraps a JSON Schema validation error with a cleaner message.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Compile compiles a raw schema map into a Schema with a compiled validator.
// Returns an error if the schema itself is invalid.
func Compile(raw map[string]any) (*Schema, error) {
	if raw == nil {
		return nil, nil
	}

	schemaJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	schemaData, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaData); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Schema{
		raw:      raw,
		compiled: compiled,
	}, nil
}

// MustCompile is like Compile but panics on error.
// Use this for schemas defined at init time.
func MustCompile(raw map[string]any) *Schema {
	s, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// Object creates an object schema with the given properties. Pass property
// names as variadic arguments to mark them as required. Properties not
// listed in the schema are allowed and ignored, matching how the drivers
// treat extra arguments from the model.
//
// Example:
//
//	schema.Object(map[string]*schema.Property{
//	    "request":          schema.String("Request for user input."),
//	    "chain_of_thought": schema.String("Reasoning for this choice."),
//	}, "request")
func Object(properties map[string]*Property, required ...string) map[string]any {
	props := make(map[string]any, len(properties))
	for name, prop := range properties {
		props[name] = prop.build()
	}

	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}

	if len(required) > 0 {
		schema["required"] = required
	}

	return schema
}

// Property represents a property in an object schema.
type Property struct {
	typ         string
	description string
}

func (p *Property) build() map[string]any {
	m := map[string]any{}

	if p.typ != "" {
		m["type"] = p.typ
	}
	if p.description != "" {
		m["description"] = p.description
	}

	return m
}

// String creates a string property.
func String(description string) *Property {
	return &Property{typ: "string", description: description}
}

// Number creates a number property (floating point).
func Number(description string) *Property {
	return &Property{typ: "number", description: description}
}

// Integer creates an integer property.
func Integer(description string) *Property {
	return &Property{typ: "integer", description: description}
}

// Boolean creates a boolean property.
func Boolean(description string) *Property {
	return &Property{typ: "boolean", description: description}
}

// Any creates a property with no type constraint: any JSON value validates,
// including null. Use it for fields like a final output that may be a
// number, a string, or absent.
func Any(description string) *Property {
	return &Property{description: description}
}
