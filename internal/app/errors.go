package service

import "errors"

// Sentinel errors returned by the service layer. Handlers map these to
// HTTP status codes.
var (
	// ErrInvalidPlayer signals a player payload that failed validation.
	ErrInvalidPlayer = errors.New("invalid player")

	// ErrInvalidGame signals a game payload that failed validation.
	ErrInvalidGame = errors.New("invalid game")

	// ErrInvalidVote signals an unknown vote status.
	ErrInvalidVote = errors.New("invalid vote")

	// ErrBelowThreshold signals that too few players are attending for
	// team generation to be offered.
	ErrBelowThreshold = errors.New("not enough attending players")

	// ErrNotStarted signals use of the service before Start.
	ErrNotStarted = errors.New("service not started")
)
