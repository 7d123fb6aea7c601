package drivers

import (
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// NewOpenAI creates the OpenAI-backed driver. The client reads
// OPENAI_API_KEY from the environment on the first step. Completions are
// requested in JSON mode, and a finish reason other than "stop" fails the
// step.
func NewOpenAI() *LLM {
	return &LLM{
		name:    "openai",
		prompts: mustLoadPrompts("openai"),
		newClient: func() (llms.Model, error) {
			return openai.New(
				openai.WithResponseFormat(openai.ResponseFormatJSON),
			)
		},
		checkStop: true,
	}
}
