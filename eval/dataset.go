// Package eval scores agent transcripts against a golden dataset.
//
// A dataset is a YAML list of cases:
//
//	- id: simple_addition
//	  prompt: What is 2 + 3?
//	  expected_answer: 5
//	  expected_steps:
//	    - Add(a=2, b=3)
//	    - Done(output=5)
//
//	- id: age_halved
//	  prompt: What is half my age?
//	  expected_answer: 21
//	  user_input: "42"
//	  expected_steps:
//	    - AskUser(request=What is your age?)
//	    - Divide(a=42, b=2)
//	    - Done(output=21)
//
// Each case runs on a fresh thread and is scored on three axes: the run
// completed with Done, the final answer matches (numeric tolerance), and the
// executed action names match the expected sequence.
package eval

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Case is one dataset entry.
type Case struct {
	// ID names the case in reports.
	ID string `yaml:"id"`

	// Prompt is the user query the thread starts with.
	Prompt string `yaml:"prompt"`

	// ExpectedAnswer is the Done output the run should produce. The value
	// "refusal" matches any non-numeric answer.
	ExpectedAnswer any `yaml:"expected_answer"`

	// ExpectedSteps is the expected action sequence, written as prompt-form
	// steps ("Add(a=2, b=3)") or bare action names. Only the names are
	// compared.
	ExpectedSteps []string `yaml:"expected_steps"`

	// UserInput holds the scripted answers for AskUser prompts.
	UserInput UserInput `yaml:"user_input"`
}

// UserInput is the scripted user answers of a case. The YAML value may be a
// single string or a list of strings.
type UserInput []string

// UnmarshalYAML accepts both the scalar and the list form.
func (u *UserInput) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*u = nil
			return nil
		}
		var answer string
		if err := value.Decode(&answer); err != nil {
			return err
		}
		*u = UserInput{answer}
		return nil
	case yaml.SequenceNode:
		var answers []string
		if err := value.Decode(&answers); err != nil {
			return err
		}
		*u = UserInput(answers)
		return nil
	}
	return fmt.Errorf("user_input must be a string or a list of strings")
}

// LoadDataset reads and parses the dataset at path.
func LoadDataset(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	var cases []Case
	if err := yaml.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}
	return cases, nil
}
