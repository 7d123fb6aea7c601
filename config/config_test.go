package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rickchristie/stride"
	"github.com/rickchristie/stride/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
default:
  model: default-model
  max_tokens: 500
  temperature: 0.5

openai:
  model: gpt-4o-mini
  max_actions: 20

anthropic:
  model: claude-3-5-haiku-latest
  max_tokens: 2000
  temperature: 0.0

ollama:
  prompt_dir: /etc/stride/prompts
`

func TestForDriver(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte(sampleYAML))
	require.NoError(t, err)

	type expected struct {
		model       string
		maxTokens   int
		temperature float64
		maxActions  int
		promptDir   string
	}

	tests := []struct {
		name     string
		driver   string
		expected expected
	}{
		{
			name:   "driver section overrides default",
			driver: "openai",
			expected: expected{
				model:       "gpt-4o-mini",
				maxTokens:   500,
				temperature: 0.5,
				maxActions:  20,
			},
		},
		{
			name:   "zero temperature in driver section wins",
			driver: "anthropic",
			expected: expected{
				model:       "claude-3-5-haiku-latest",
				maxTokens:   2000,
				temperature: 0.0,
				maxActions:  stride.DefaultMaxActions,
			},
		},
		{
			name:   "sparse section falls through to default then built-ins",
			driver: "ollama",
			expected: expected{
				model:       "default-model",
				maxTokens:   500,
				temperature: 0.5,
				maxActions:  stride.DefaultMaxActions,
				promptDir:   "/etc/stride/prompts",
			},
		},
		{
			name:   "unknown driver resolves to default section",
			driver: "mystery",
			expected: expected{
				model:       "default-model",
				maxTokens:   500,
				temperature: 0.5,
				maxActions:  stride.DefaultMaxActions,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := cfg.ForDriver(tt.driver)

			assert.Equal(t, tt.expected.model, settings.Model)
			assert.Equal(t, tt.expected.maxTokens, settings.MaxTokens)
			assert.Equal(t, tt.expected.temperature, settings.Temperature)
			assert.Equal(t, tt.expected.maxActions, settings.MaxActions)
			assert.Equal(t, tt.expected.promptDir, settings.PromptDir)
		})
	}
}

func TestForDriverEmptyConfig(t *testing.T) {
	t.Parallel()

	settings := (&config.Config{}).ForDriver("openai")
	assert.Equal(t, stride.DefaultSettings(), settings)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, stride.DefaultSettings(), cfg.ForDriver("openai"))
	assert.Empty(t, cfg.Drivers())
}

func TestLoadMalformedYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("openai: [unclosed"), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", cfg.ForDriver("openai").Model)
}

func TestDrivers(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"anthropic", "ollama", "openai"}, cfg.Drivers())
}

func TestHasDriver(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.True(t, cfg.HasDriver("openai"))
	assert.False(t, cfg.HasDriver("mystery"))
	assert.False(t, cfg.HasDriver("default"))
}
