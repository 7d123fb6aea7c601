// Package drivers contains the LLM backends that decide the next action
// for a thread.
//
// # Overview
//
// A driver receives the current thread and returns the next action wrapped
// in a stride.Result. All built-in drivers (openai, anthropic, ollama) ride
// langchaingo and share one pipeline:
//
//  1. Render the driver's prompt templates with the action catalog, the
//     few-shot examples, the user query and the thread history.
//  2. Request a completion using the model, temperature and token cap from
//     stride.Settings.
//  3. Parse the completion as {"action": ..., "arguments": {...}},
//     tolerating fenced code blocks and surrounding prose.
//  4. Validate the arguments against the action's JSON schema and decode
//     into the matching stride.Action.
//
// Each stage returns a stride.Result and stages are chained with
// stride.FlatMapResult, so the first failure short-circuits the step with a
// message naming the stage that failed.
//
// # Quick Start
//
//	registry := drivers.Default()
//	driver := registry.Lookup("anthropic")
//	if driver.IsFail() {
//	    // unknown driver, message lists the available names
//	}
//	next := driver.Value().Step(ctx, rc, thread)
//
// # Clients
//
// Backend clients are created lazily on the first step, so building the
// default registry never fails even when some API keys are absent. Only
// the driver actually used needs its credentials:
//
//   - openai reads OPENAI_API_KEY
//   - anthropic reads ANTHROPIC_API_KEY
//   - ollama talks to a local server (OLLAMA_HOST overrides the address)
//
// # Custom Drivers
//
// Anything implementing stride.Driver can be registered under a new name
// with Registry.Register. Tests typically register a stride.StepFunc that
// returns scripted actions.
//
// # Prompt Overrides
//
// Built-in prompt templates are embedded. Setting stride.Settings.PromptDir
// loads <dir>/<driver>/{system,user,examples}.tmpl from disk instead,
// which allows prompt iteration without rebuilding.
package drivers
