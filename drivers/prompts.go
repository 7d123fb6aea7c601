package drivers

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/rickchristie/stride"
)

//go:embed prompts
var promptFS embed.FS

// promptData contains the data passed to driver prompt templates. Every
// template receives the full set; the openai templates reference the
// action catalog from the system prompt while anthropic and ollama carry
// it in the user prompt.
type promptData struct {
	// ActionsFull is the bulleted usage line of every action.
	ActionsFull string

	// ActionsShort is the comma-separated list of action names.
	ActionsShort string

	// Examples is the rendered few-shot examples block.
	Examples string

	// Query is the user's task.
	Query string

	// Thread is the thread rendering, including every executed action.
	Thread string
}

// promptSet holds the parsed system, user and examples templates for one
// driver.
type promptSet struct {
	driver   string
	system   *template.Template
	user     *template.Template
	examples *template.Template
}

// loadPrompts parses the embedded templates for the named driver.
func loadPrompts(driver string) (*promptSet, error) {
	return parsePrompts(driver, func(name string) ([]byte, error) {
		return promptFS.ReadFile("prompts/" + driver + "/" + name + ".tmpl")
	})
}

// mustLoadPrompts is loadPrompts for the embedded built-ins, where a
// failure to parse is a packaging bug.
func mustLoadPrompts(driver string) *promptSet {
	set, err := loadPrompts(driver)
	if err != nil {
		panic(err)
	}
	return set
}

// loadPromptsDir parses <dir>/<driver>/{system,user,examples}.tmpl from
// disk.
func loadPromptsDir(dir, driver string) (*promptSet, error) {
	return parsePrompts(driver, func(name string) ([]byte, error) {
		return os.ReadFile(filepath.Join(dir, driver, name+".tmpl"))
	})
}

func parsePrompts(driver string, read func(name string) ([]byte, error)) (*promptSet, error) {
	parse := func(name string) (*template.Template, error) {
		content, err := read(name)
		if err != nil {
			return nil, fmt.Errorf("reading %s prompt: %w", name, err)
		}
		tmpl, err := template.New(driver + "_" + name).Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("parsing %s prompt: %w", name, err)
		}
		return tmpl, nil
	}

	set := &promptSet{driver: driver}
	var err error
	if set.system, err = parse("system"); err != nil {
		return nil, err
	}
	if set.user, err = parse("user"); err != nil {
		return nil, err
	}
	if set.examples, err = parse("examples"); err != nil {
		return nil, err
	}
	return set, nil
}

// render produces the system and user prompts for the thread. When
// promptDir is non-empty the templates are loaded from disk instead of
// the embedded defaults.
func (p *promptSet) render(thread *stride.Thread, promptDir string) (system, user string, err error) {
	set := p
	if promptDir != "" {
		set, err = loadPromptsDir(promptDir, p.driver)
		if err != nil {
			return "", "", err
		}
	}

	data := promptData{
		ActionsFull:  stride.ActionUsage(),
		ActionsShort: stride.ActionNames(),
		Query:        thread.Query,
		Thread:       thread.String(),
	}

	data.Examples, err = executeTemplate(set.examples, data)
	if err != nil {
		return "", "", fmt.Errorf("rendering examples prompt: %w", err)
	}
	system, err = executeTemplate(set.system, data)
	if err != nil {
		return "", "", fmt.Errorf("rendering system prompt: %w", err)
	}
	user, err = executeTemplate(set.user, data)
	if err != nil {
		return "", "", fmt.Errorf("rendering user prompt: %w", err)
	}
	return system, user, nil
}

// executeTemplate executes a template with the given data and returns the
// result.
func executeTemplate(tmpl *template.Template, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
