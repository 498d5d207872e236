// Package repository defines the session store interface and errors.
package repository

import (
	"context"

	"github.com/courtside/matchday/internal/domain/model"
)

// Store provides read/write access to players, games, votes and the
// team assignments produced for them.
type Store interface {
	// CreatePlayer registers a player and assigns its id.
	CreatePlayer(ctx context.Context, p model.Player) (model.Player, error)

	// GetPlayer returns a player by id.
	// Returns ErrNotFound if the player is unknown.
	GetPlayer(ctx context.Context, id int64) (model.Player, error)

	// ListPlayers returns the full roster ordered by overall rating
	// desc, then id asc (deterministic).
	ListPlayers(ctx context.Context) []model.Player

	// CreateGame stores a scheduled game.
	CreateGame(ctx context.Context, g model.Game) error

	// GetGame returns a game by id.
	// Returns ErrNotFound if the game is unknown.
	GetGame(ctx context.Context, id string) (model.Game, error)

	// SetVote upserts a player's attendance vote for a game. The last
	// vote per (game, player) wins.
	SetVote(ctx context.Context, v model.Vote) error

	// Attending returns the players whose current vote for the game is
	// "going", in the order they first voted.
	Attending(ctx context.Context, gameID string) ([]model.Player, error)

	// SaveAssignment stores the team assignment for its game,
	// replacing any previous one (last write wins).
	SaveAssignment(ctx context.Context, a model.TeamAssignment) error

	// GetAssignment returns the current assignment for a game.
	// Returns ErrNotFound when none has been generated yet.
	GetAssignment(ctx context.Context, gameID string) (model.TeamAssignment, error)

	// Counts reports the number of stored players and games.
	Counts(ctx context.Context) (players, games int)
}
