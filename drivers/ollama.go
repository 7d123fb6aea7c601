package drivers

import (
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// NewOllama creates the driver for a local Ollama server. The address
// defaults to http://localhost:11434; OLLAMA_HOST overrides it.
// Completions are requested in JSON format.
func NewOllama() *LLM {
	return &LLM{
		name:    "ollama",
		prompts: mustLoadPrompts("ollama"),
		newClient: func() (llms.Model, error) {
			opts := []ollama.Option{
				ollama.WithFormat("json"),
			}
			if host := os.Getenv("OLLAMA_HOST"); host != "" {
				opts = append(opts, ollama.WithServerURL(host))
			}
			return ollama.New(opts...)
		},
	}
}
