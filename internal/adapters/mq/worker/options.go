// Package worker defines worker contracts for asynchronous team
// regeneration.
package worker

import (
	"github.com/courtside/matchday/pkg/logger"
)

// Option applies a configuration option to the RebalanceWorker.
type Option func(*RebalanceWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *RebalanceWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(logger logger.Logger) Option {
	return func(w *RebalanceWorker) {
		if logger != nil {
			w.logger = logger
		}
	}
}
