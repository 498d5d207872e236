// Package inflight tracks games with a pending or running rebalance so
// a burst of vote changes enqueues at most one job per game.
package inflight

import (
	"context"
	"sync"
	"sync/atomic"
)

// Default tracker configuration constants.
const (
	defaultMaxSize = 10_000
)

// Tracker guards per-game rebalance work.
type Tracker interface {
	// Acquire atomically claims the id. It returns true when the claim
	// succeeded, false when the id is already in flight (or the tracker
	// is at capacity and refuses new claims as backpressure).
	Acquire(ctx context.Context, id string) bool

	// Release frees a previously acquired id. Releasing an id that is
	// not held is a no-op.
	Release(ctx context.Context, id string)

	// Size returns the number of ids currently in flight.
	Size() int64
}

// inMemoryTracker implements Tracker with a mutex-guarded set. Entries
// are short-lived (claimed on enqueue, freed when the worker finishes),
// so no eviction is needed beyond the capacity refusal.
type inMemoryTracker struct {
	mu      sync.Mutex
	held    map[string]struct{}
	maxSize int
	size    atomic.Int64
}

// NewInMemoryTracker creates a tracker with configuration options.
func NewInMemoryTracker(opts ...Option) Tracker {
	t := &inMemoryTracker{
		maxSize: defaultMaxSize,
	}

	for _, opt := range opts {
		opt(t)
	}

	t.held = make(map[string]struct{})

	return t
}

func (t *inMemoryTracker) Acquire(_ context.Context, id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.held[id]; exists {
		return false
	}
	if t.maxSize > 0 && len(t.held) >= t.maxSize {
		return false
	}

	t.held[id] = struct{}{}
	t.size.Add(1)
	return true
}

func (t *inMemoryTracker) Release(_ context.Context, id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.held[id]; exists {
		delete(t.held, id)
		t.size.Add(-1)
	}
}

func (t *inMemoryTracker) Size() int64 {
	return t.size.Load()
}
