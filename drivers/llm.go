package drivers

import (
	"context"
	"sync"

	"github.com/rickchristie/stride"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// LLM is the shared implementation behind the built-in drivers. A backend
// is described by its prompt templates and a client factory; everything
// else (prompt rendering, the completion call, parsing, decoding) is
// common.
//
// The client is created on the first step and reused afterwards, so
// constructing a driver never touches the network or requires credentials.
type LLM struct {
	name      string
	prompts   *promptSet
	newClient func() (llms.Model, error)

	// checkStop rejects completions whose finish reason is not "stop".
	// Only enabled for backends that report it reliably.
	checkStop bool

	mu        sync.Mutex
	client    llms.Model
	clientErr error
}

// WithClient replaces the backend client. Intended for tests that inject a
// fake llms.Model; production code relies on the lazy default.
func (d *LLM) WithClient(client llms.Model) *LLM {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.client = client
	d.clientErr = nil
	return d
}

// Step determines the next action for the thread. The stages are chained
// with stride.FlatMapResult: completion, then parsing, then conversion to
// an action. The first failing stage produces the step's failure.
func (d *LLM) Step(
	ctx context.Context,
	rc *stride.RunContext,
	thread *stride.Thread,
) stride.Result[stride.Action] {
	rc.Logger.InfoContext(ctx, "determining next action",
		"driver", d.name, "thread", thread.ID)

	system, user, err := d.prompts.render(thread, rc.Settings.PromptDir)
	if err != nil {
		return stride.Failf[stride.Action]("rendering prompts: %v", err)
	}

	completion := d.complete(ctx, rc, system, user)
	payload := stride.FlatMapResult(completion,
		func(content string) stride.Result[actionPayload] {
			return parseCompletion(ctx, rc, content)
		})
	return stride.FlatMapResult(payload,
		func(p actionPayload) stride.Result[stride.Action] {
			return convertToAction(ctx, rc, p)
		})
}

// complete sends the rendered prompts to the backend and extracts the text
// of the first choice.
func (d *LLM) complete(
	ctx context.Context,
	rc *stride.RunContext,
	system, user string,
) stride.Result[string] {
	client, err := d.getClient()
	if err != nil {
		return stride.Failf[string]("creating client: %v", err)
	}

	messages := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextContent{Text: system}},
		},
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: user}},
		},
	}

	opts := []llms.CallOption{
		llms.WithMaxTokens(rc.Settings.MaxTokens),
		llms.WithTemperature(rc.Settings.Temperature),
	}
	if rc.Settings.Model != "" {
		opts = append(opts, llms.WithModel(rc.Settings.Model))
	}

	resp, err := client.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return stride.Failf[string]("getting completion: %v", err)
	}
	if len(resp.Choices) == 0 {
		return stride.Fail[string]("no choices in completion")
	}

	choice := resp.Choices[0]
	if d.checkStop && choice.StopReason != "" && choice.StopReason != "stop" {
		return stride.Failf[string]("unexpected finish reason: %s", choice.StopReason)
	}
	if choice.Content == "" {
		return stride.Fail[string]("no content in completion message")
	}
	return stride.Ok(choice.Content)
}

func (d *LLM) getClient() (llms.Model, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.client == nil && d.clientErr == nil {
		d.client, d.clientErr = d.newClient()
	}
	return d.client, d.clientErr
}

// Compile-time check that LLM implements stride.Driver.
var _ stride.Driver = (*LLM)(nil)
