// Package stride implements a minimal action-loop agent: given a user query,
// it repeatedly asks a language model driver for the next action, executes
// it, appends it to the conversation thread, and stops on a terminal action
// or when the iteration budget runs out.
//
// The root package holds the core value types and interfaces. Subpackages
// provide the moving parts: agent (the loop), drivers (LLM backends),
// store (thread storage), hooks (observability), config (YAML settings),
// httpapi (HTTP front end) and eval (transcript scoring).
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//	    "os"
//
//	    "github.com/rickchristie/stride"
//	    "github.com/rickchristie/stride/agent"
//	    "github.com/rickchristie/stride/store"
//	)
//
//	func main() {
//	    threads := store.NewInMemory()
//	    thread := stride.NewThread("What is 4 + 7, divided by 2?")
//	    threads.Add(thread)
//
//	    rc := stride.NewRunContext().
//	        WithDriver("openai").
//	        WithStore(threads)
//
//	    result := agent.New().Run(context.Background(), rc, thread.ID)
//	    os.Exit(stride.Fold(result,
//	        func(msg string) int { fmt.Println("Error:", msg); return 1 },
//	        func(a stride.Action) int { fmt.Println(a); return 0 },
//	    ))
//	}
//
// # Actions
//
// An [Action] is one discrete step: Add, Subtract, Multiply, Divide, AskUser
// or Done. The set is closed; drivers decode model output into exactly these
// six variants and reject anything else. Execution is memoized, so an action
// computes its value once no matter how many times it is executed. Done is
// the terminal action that ends a run successfully.
//
// # Results
//
// Expected failures travel as [Result] values rather than Go errors: a
// driver that cannot parse model output, a store lookup for an unknown id
// and an exhausted iteration budget all produce a Fail carrying a message.
// Results compose with Map, FlatMap and [Fold]; see [Result] for the
// chaining rules.
//
// # Drivers
//
// A [Driver] turns a thread's history into the next action. The drivers
// package implements OpenAI, Anthropic and Ollama backends and a name-keyed
// registry; [StepFunc] adapts a plain function for tests. The driver step is
// the loop's only suspension point, so a fake driver makes the entire loop
// testable without network access.
//
// # Hooks
//
// Hooks observe a run at its boundaries: [BeforeLoopHook]/[AfterLoopHook]
// around the whole run, [BeforeStepHook]/[AfterStepHook] around each driver
// call, and [ActionExecutedHook] after each executed action. Implement the
// interfaces you care about and register with hooks.Registry.
package stride
