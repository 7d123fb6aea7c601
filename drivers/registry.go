package drivers

import (
	"sort"
	"strings"
	"sync"

	"github.com/rickchristie/stride"
)

// Registry maps driver names to stride.Driver implementations. It is safe
// for concurrent use, so handlers serving requests with different drivers
// can share one instance.
type Registry struct {
	mu      sync.RWMutex
	drivers map[string]stride.Driver
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		drivers: make(map[string]stride.Driver),
	}
}

// Default creates a registry with the built-in drivers registered under
// their canonical names: openai, anthropic and ollama.
func Default() *Registry {
	return NewRegistry().
		Register("openai", NewOpenAI()).
		Register("anthropic", NewAnthropic()).
		Register("ollama", NewOllama())
}

// Register adds a driver under the given name, replacing any driver
// already registered under it. Returns the registry for chaining.
func (r *Registry) Register(name string, driver stride.Driver) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drivers[name] = driver
	return r
}

// Lookup resolves a driver by name. Unknown names fail with a message
// listing the registered drivers.
func (r *Registry) Lookup(name string) stride.Result[stride.Driver] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	driver, ok := r.drivers[name]
	if !ok {
		return stride.Failf[stride.Driver](
			"%s: %q, available drivers: %s",
			stride.ErrUnknownDriver, name, strings.Join(r.names(), ", "),
		)
	}
	return stride.Ok(driver)
}

// Names returns the registered driver names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.names()
}

// names must be called with the lock held.
func (r *Registry) names() []string {
	names := make([]string, 0, len(r.drivers))
	for name := range r.drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
