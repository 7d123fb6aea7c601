package stride

// Defaults applied when neither a driver section nor the default section of
// the configuration provides a value.
const (
	// DefaultDriver is the driver used when none is selected explicitly.
	DefaultDriver = "openai"

	// DefaultMaxTokens caps the completion length of a single driver step.
	DefaultMaxTokens = 1000

	// DefaultTemperature keeps action selection deterministic.
	DefaultTemperature = 0.0

	// DefaultMaxActions is the iteration budget of the agent loop.
	DefaultMaxActions = 10
)

// Settings holds the per-driver tunables resolved from configuration. The
// value is immutable once placed in a [RunContext]; concurrent requests with
// different settings never observe each other.
//
// Use config.ForDriver to resolve a Settings from a configuration file, or
// [DefaultSettings] to start from the built-in defaults.
type Settings struct {
	// Model is the model identifier sent to the backend, e.g. "gpt-4o-mini".
	// Empty means the backend's default model.
	Model string

	// MaxTokens caps the completion length of a single driver step.
	MaxTokens int

	// Temperature is the sampling temperature for driver steps.
	Temperature float64

	// MaxActions caps the number of loop iterations before the run is
	// declared exhausted.
	MaxActions int

	// PromptDir optionally points at a directory of prompt templates that
	// override the drivers' embedded ones. Empty means embedded templates.
	PromptDir string
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
		MaxActions:  DefaultMaxActions,
	}
}
