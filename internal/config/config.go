// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import "runtime"

// Default policy values.
const (
	defaultGenerationThreshold = 8
	defaultQueueSize           = 10_000
	defaultInflightSize        = 10_000
	defaultMaxRosterLimit      = 200
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8880".
	Addr string `koanf:"addr"`

	// RebalanceQueueSize bounds the in-memory rebalance job queue.
	RebalanceQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of rebalance workers.
	WorkerCount int `koanf:"worker_count"`

	// InflightSize bounds the per-game in-flight rebalance tracker.
	InflightSize int `koanf:"inflight_size"`

	// GenerationThreshold is the minimum attending count before team
	// generation is offered. The allocator itself only needs 2; this
	// is group policy (the roster view advertises an ideal of 10-16).
	GenerationThreshold int `koanf:"generation_threshold"`

	// MaxRosterLimit caps GET /players?limit.
	MaxRosterLimit int `koanf:"max_roster_limit"`

	// OffenseWeight, DefenseWeight and BallHandlingWeight tune the
	// composite team strength used while balancing.
	OffenseWeight      float64 `koanf:"offense_weight"`
	DefenseWeight      float64 `koanf:"defense_weight"`
	BallHandlingWeight float64 `koanf:"ball_handling_weight"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":8880",
		RebalanceQueueSize:  defaultQueueSize,
		WorkerCount:         runtime.NumCPU() * 2,
		InflightSize:        defaultInflightSize,
		GenerationThreshold: defaultGenerationThreshold,
		MaxRosterLimit:      defaultMaxRosterLimit,
		OffenseWeight:       0.8,
		DefenseWeight:       0.8,
		BallHandlingWeight:  0.6,
	}
}
