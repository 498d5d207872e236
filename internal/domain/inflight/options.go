// Package inflight tracks games with a pending or running rebalance.
package inflight

// Option applies a configuration option to the in-memory tracker.
type Option func(*inMemoryTracker)

// WithMaxSize bounds the number of simultaneously held ids.
// maxSize <= 0 removes the bound.
func WithMaxSize(maxSize int) Option {
	return func(t *inMemoryTracker) {
		t.maxSize = maxSize
	}
}
