package config

import (
	"errors"
)

// Sentinel error kinds for config loading. Callers match with errors.Is.
var (
	// ErrInvalidConfig marks a loaded config that failed validation.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig marks a failure reading defaults, file or environment.
	ErrLoadConfig = errors.New("load config failed")
)
