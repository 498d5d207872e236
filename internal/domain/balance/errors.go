package balance

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrInsufficientPlayers is returned when fewer than MinPlayers
	// attend; no partial partition is produced.
	ErrInsufficientPlayers = errors.New("insufficient players")
)
