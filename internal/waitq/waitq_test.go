// File: internal/waitq/waitq_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package waitq

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-ipc/api"
)

func TestQueue_WakeOrder(t *testing.T) {
	var mu sync.Mutex
	wq := New()

	mu.Lock()
	first := wq.Add()
	second := wq.Add()
	require.Equal(t, 2, wq.Len())
	mu.Unlock()

	order := make(chan string, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		mu.Lock()
		out := first.Wait(&mu, api.Forever)
		mu.Unlock()
		assert.Equal(t, Signaled, out)
		order <- "first"
	}()
	go func() {
		defer wg.Done()
		mu.Lock()
		out := second.Wait(&mu, api.Forever)
		mu.Unlock()
		assert.Equal(t, Signaled, out)
		order <- "second"
	}()

	time.Sleep(20 * time.Millisecond)

	// Wake one at a time; arrival order must be preserved.
	mu.Lock()
	require.True(t, wq.WakeOne(Signaled))
	mu.Unlock()
	assert.Equal(t, "first", <-order)

	mu.Lock()
	require.True(t, wq.WakeOne(Signaled))
	require.Equal(t, 0, wq.Len())
	mu.Unlock()
	assert.Equal(t, "second", <-order)
	wg.Wait()
}

func TestQueue_TimeoutAbandonsEntry(t *testing.T) {
	var mu sync.Mutex
	wq := New()

	mu.Lock()
	stale := wq.Add()
	mu.Unlock()

	mu.Lock()
	out := stale.Wait(&mu, api.After(5*time.Millisecond))
	mu.Unlock()
	require.Equal(t, TimedOut, out)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, wq.Len())

	// The stale entry is still queued but must be skipped by wakes.
	fresh := wq.Add()
	require.True(t, wq.WakeOne(Signaled))
	assert.Equal(t, Signaled, <-fresh.ch)
	assert.Equal(t, 0, wq.Len())
	assert.False(t, wq.WakeOne(Signaled))
}

func TestQueue_WakeAll(t *testing.T) {
	var mu sync.Mutex
	wq := New()

	done := make(chan Outcome, 3)
	var wg sync.WaitGroup
	mu.Lock()
	for i := 0; i < 3; i++ {
		w := wq.Add()
		wg.Add(1)
		go func(w *Waiter) {
			defer wg.Done()
			mu.Lock()
			out := w.Wait(&mu, api.Forever)
			mu.Unlock()
			done <- out
		}(w)
	}
	mu.Unlock()

	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	n := wq.WakeAll(Cancelled)
	mu.Unlock()
	require.Equal(t, 3, n)
	wg.Wait()

	for i := 0; i < 3; i++ {
		assert.Equal(t, Cancelled, <-done)
	}
}

func TestQueue_WakeEmpty(t *testing.T) {
	var mu sync.Mutex
	wq := New()

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, wq.WakeOne(Signaled))
	assert.Equal(t, 0, wq.WakeAll(Closed))
}
