// Package config loads per-driver settings from a YAML file.
//
// The file has one section per driver plus an optional "default" section:
//
//	default:
//	  max_tokens: 1000
//	  temperature: 0.0
//	  max_actions: 10
//
//	openai:
//	  model: gpt-4o-mini
//
//	anthropic:
//	  model: claude-3-5-haiku-latest
//	  max_tokens: 2000
//
// ForDriver resolves the hierarchy: a key set in the driver's section wins,
// then the default section, then the built-in defaults from
// stride.DefaultSettings. Only the recognized keys participate; unknown keys
// are ignored so config files can carry notes for other tools.
package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/rickchristie/stride"
	"gopkg.in/yaml.v3"
)

// section holds one driver's (or the default) raw values. Pointer fields
// distinguish "absent" from "set to zero": temperature 0 in a driver section
// must override a nonzero default.
type section struct {
	Model       *string  `yaml:"model"`
	MaxTokens   *int     `yaml:"max_tokens"`
	Temperature *float64 `yaml:"temperature"`
	MaxActions  *int     `yaml:"max_actions"`
	PromptDir   *string  `yaml:"prompt_dir"`
}

// Config is a parsed configuration file. The zero value (and the result of
// loading a missing file) resolves every driver to the built-in defaults.
type Config struct {
	sections map[string]section
}

// Load reads and parses the configuration at path. A missing file is not an
// error: it yields an empty Config so the built-in defaults apply. Malformed
// YAML is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse parses configuration bytes.
func Parse(data []byte) (*Config, error) {
	var sections map[string]section
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &Config{sections: sections}, nil
}

// ForDriver resolves the settings for the named driver: driver section over
// default section over built-in defaults. Unknown driver names simply
// resolve to the default-plus-built-in layers.
func (c *Config) ForDriver(name string) stride.Settings {
	settings := stride.DefaultSettings()
	c.apply(&settings, "default")
	c.apply(&settings, name)
	return settings
}

func (c *Config) apply(settings *stride.Settings, name string) {
	s, ok := c.sections[name]
	if !ok {
		return
	}
	if s.Model != nil {
		settings.Model = *s.Model
	}
	if s.MaxTokens != nil {
		settings.MaxTokens = *s.MaxTokens
	}
	if s.Temperature != nil {
		settings.Temperature = *s.Temperature
	}
	if s.MaxActions != nil {
		settings.MaxActions = *s.MaxActions
	}
	if s.PromptDir != nil {
		settings.PromptDir = *s.PromptDir
	}
}

// Drivers returns the configured driver names in sorted order, excluding the
// default section.
func (c *Config) Drivers() []string {
	names := make([]string, 0, len(c.sections))
	for name := range c.sections {
		if name == "default" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasDriver reports whether the file has a section for the named driver.
func (c *Config) HasDriver(name string) bool {
	_, ok := c.sections[name]
	return ok && name != "default"
}
