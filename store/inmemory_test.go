package store_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/rickchristie/stride"
	"github.com/rickchristie/stride/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	s := store.NewInMemory()
	thread := stride.NewThread("count to three")
	returned := s.Add(thread)
	assert.Same(t, thread, returned)

	got := s.Get(thread.ID)
	require.True(t, got.IsOk())
	assert.Same(t, thread, got.Value())
	assert.Equal(t, "count to three", got.Value().Query)
}

func TestGetMissing(t *testing.T) {
	t.Parallel()

	s := store.NewInMemory()
	got := s.Get("nonexistent")
	assert.True(t, got.IsFail())
	assert.Equal(t, `thread "nonexistent" not found in store`, got.Err())
}

func TestClear(t *testing.T) {
	t.Parallel()

	s := store.NewInMemory()
	first := s.Add(stride.NewThread("one"))
	second := s.Add(stride.NewThread("two"))
	assert.Equal(t, 2, s.Len())

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.True(t, s.Get(first.ID).IsFail())
	assert.True(t, s.Get(second.ID).IsFail())
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := store.NewInMemory()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			thread := stride.NewThread(fmt.Sprintf("query %d", i))
			s.Add(thread)
			got := s.Get(thread.ID)
			assert.True(t, got.IsOk())
		}()
	}
	// Readers of ids that may not exist yet must not corrupt the map.
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Get("nonexistent")
			s.Len()
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, s.Len())
}
