package drivers

import (
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
)

// NewAnthropic creates the Anthropic-backed driver. The client reads
// ANTHROPIC_API_KEY from the environment on the first step. Anthropic has
// no JSON response mode, so the prompt instructs the model to answer with
// bare JSON and the parser tolerates fenced output.
func NewAnthropic() *LLM {
	return &LLM{
		name:    "anthropic",
		prompts: mustLoadPrompts("anthropic"),
		newClient: func() (llms.Model, error) {
			return anthropic.New()
		},
	}
}
