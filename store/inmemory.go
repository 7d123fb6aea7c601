// Package store provides thread storage backends.
package store

import (
	"sync"

	"github.com/rickchristie/stride"
)

// InMemory is a [stride.ThreadStore] backed by a map. It is safe for
// concurrent use: writes take the exclusive lock, reads take the shared
// lock. Go maps are not safe for concurrent read and write, so reads are
// locked too rather than relying on the backing implementation.
//
// Entries live until Clear; there is no eviction and no persistence.
type InMemory struct {
	mu      sync.RWMutex
	threads map[string]*stride.Thread
}

var _ stride.ThreadStore = (*InMemory)(nil)

// NewInMemory returns an empty store.
func NewInMemory() *InMemory {
	return &InMemory{threads: make(map[string]*stride.Thread)}
}

// Add inserts the thread under its id and returns it for chaining. An
// existing entry with the same id is replaced.
func (s *InMemory) Add(t *stride.Thread) *stride.Thread {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.threads[t.ID] = t
	return t
}

// Get returns the thread stored under id, or a failure when absent.
func (s *InMemory) Get(id string) stride.Result[*stride.Thread] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.threads[id]
	if !ok {
		return stride.Failf[*stride.Thread]("thread %q not found in store", id)
	}
	return stride.Ok(t)
}

// Clear removes every thread.
func (s *InMemory) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.threads)
}

// Len reports the number of stored threads.
func (s *InMemory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.threads)
}
