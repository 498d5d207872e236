// Package repository defines the session store interface and errors.
package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/courtside/matchday/internal/domain/model"
	"github.com/courtside/matchday/pkg/metrics"
)

// MemStore is an in-memory Store implementation guarded by a single
// RWMutex. All returned slices are copies; callers never observe
// internal state, so concurrent readers and writers are safe.
//
// Roster ordering: overall rating DESC, then player id ASC. The same
// deterministic order feeds both the ladder listing and the allocator
// input, so repeated generations over an unchanged attending set yield
// the identical partition.
type MemStore struct {
	mu sync.RWMutex

	players      map[int64]model.Player
	games        map[string]model.Game
	votes        map[string]map[int64]model.Vote
	voteOrder    map[string][]int64
	assignments  map[string]model.TeamAssignment
	nextPlayerID int64
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(_ context.Context) *MemStore {
	return &MemStore{
		players:      make(map[int64]model.Player),
		games:        make(map[string]model.Game),
		votes:        make(map[string]map[int64]model.Vote),
		voteOrder:    make(map[string][]int64),
		assignments:  make(map[string]model.TeamAssignment),
		nextPlayerID: 1,
	}
}

// CreatePlayer registers a player and assigns its id.
func (s *MemStore) CreatePlayer(_ context.Context, p model.Player) (model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextPlayerID
	s.nextPlayerID++
	s.players[p.ID] = p

	metrics.UpdateRosterSize(len(s.players))
	return p, nil
}

// GetPlayer returns a player by id.
func (s *MemStore) GetPlayer(_ context.Context, id int64) (model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[id]
	if !ok {
		return model.Player{}, fmt.Errorf("player %d: %w", id, ErrNotFound)
	}
	return p, nil
}

// ListPlayers returns the roster ordered by rating desc, id asc.
func (s *MemStore) ListPlayers(_ context.Context) []model.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roster := make([]model.Player, 0, len(s.players))
	for _, p := range s.players {
		roster = append(roster, p)
	}
	sort.Slice(roster, func(i, j int) bool {
		if roster[i].Overall != roster[j].Overall {
			return roster[i].Overall > roster[j].Overall
		}
		return roster[i].ID < roster[j].ID
	})
	return roster
}

// CreateGame stores a scheduled game.
func (s *MemStore) CreateGame(_ context.Context, g model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[g.ID]; exists {
		return fmt.Errorf("game %s: %w", g.ID, ErrDuplicateGame)
	}
	s.games[g.ID] = g
	s.votes[g.ID] = make(map[int64]model.Vote)

	metrics.UpdateGameCount(len(s.games))
	return nil
}

// GetGame returns a game by id.
func (s *MemStore) GetGame(_ context.Context, id string) (model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[id]
	if !ok {
		return model.Game{}, fmt.Errorf("game %s: %w", id, ErrNotFound)
	}
	return g, nil
}

// SetVote upserts a player's attendance vote for a game.
func (s *MemStore) SetVote(_ context.Context, v model.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[v.GameID]; !ok {
		return fmt.Errorf("game %s: %w", v.GameID, ErrNotFound)
	}
	if _, ok := s.players[v.PlayerID]; !ok {
		return fmt.Errorf("player %d: %w", v.PlayerID, ErrNotFound)
	}

	if _, voted := s.votes[v.GameID][v.PlayerID]; !voted {
		// First vote for this game fixes the player's position in the
		// attending order; later status flips keep it.
		s.voteOrder[v.GameID] = append(s.voteOrder[v.GameID], v.PlayerID)
	}
	s.votes[v.GameID][v.PlayerID] = v

	metrics.RecordVote(string(v.Status))
	return nil
}

// Attending returns the current "going" voters in first-vote order.
func (s *MemStore) Attending(_ context.Context, gameID string) ([]model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.games[gameID]; !ok {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrNotFound)
	}

	var attending []model.Player
	for _, playerID := range s.voteOrder[gameID] {
		v := s.votes[gameID][playerID]
		if v.Status != model.VoteGoing {
			continue
		}
		if p, ok := s.players[playerID]; ok {
			attending = append(attending, p)
		}
	}
	return attending, nil
}

// SaveAssignment stores the assignment for its game, last write wins.
func (s *MemStore) SaveAssignment(_ context.Context, a model.TeamAssignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[a.GameID]; !ok {
		return fmt.Errorf("game %s: %w", a.GameID, ErrNotFound)
	}
	s.assignments[a.GameID] = a

	metrics.RecordAssignmentSaved()
	return nil
}

// GetAssignment returns the current assignment for a game.
func (s *MemStore) GetAssignment(_ context.Context, gameID string) (model.TeamAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.assignments[gameID]
	if !ok {
		return model.TeamAssignment{}, fmt.Errorf("assignment for game %s: %w", gameID, ErrNotFound)
	}
	return cloneAssignment(a), nil
}

// cloneAssignment copies the team slices so callers cannot mutate the
// stored partition.
func cloneAssignment(a model.TeamAssignment) model.TeamAssignment {
	a.TeamA = append([]model.Player(nil), a.TeamA...)
	a.TeamB = append([]model.Player(nil), a.TeamB...)
	a.Bench = append([]model.Player(nil), a.Bench...)
	return a
}

// Counts reports the number of stored players and games.
func (s *MemStore) Counts(_ context.Context) (players, games int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players), len(s.games)
}
