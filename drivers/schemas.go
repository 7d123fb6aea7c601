package drivers

import (
	"github.com/rickchristie/stride/schema"
)

// actionSchemas holds the compiled argument schema for each action, keyed
// by wire name. Arguments are validated against these before decoding, so
// a model that omits an operand or sends the wrong type fails the step
// instead of silently producing zero values.
var actionSchemas = map[string]*schema.Schema{
	"Add":      schema.MustCompile(operandsSchema()),
	"Subtract": schema.MustCompile(operandsSchema()),
	"Multiply": schema.MustCompile(operandsSchema()),
	"Divide":   schema.MustCompile(operandsSchema()),
	"AskUser": schema.MustCompile(schema.Object(
		map[string]*schema.Property{
			"request":          schema.String("Message shown to the user when requesting input."),
			"chain_of_thought": chainOfThought(),
		},
		"request",
	)),
	"Done": schema.MustCompile(schema.Object(
		map[string]*schema.Property{
			"output":           schema.Any("Final result of the task. A string, a number, or null."),
			"chain_of_thought": chainOfThought(),
		},
	)),
}

// operandsSchema describes the arguments shared by the four arithmetic
// actions: two required numeric operands.
func operandsSchema() map[string]any {
	return schema.Object(
		map[string]*schema.Property{
			"a":                schema.Number("First operand."),
			"b":                schema.Number("Second operand."),
			"chain_of_thought": chainOfThought(),
		},
		"a", "b",
	)
}

func chainOfThought() *schema.Property {
	return schema.String("Short reasoning for choosing this action.")
}
