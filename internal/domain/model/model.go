// Package model contains domain models passed between layers.
package model

import "time"

// Skill ratings live on a 1..10 scale.
const (
	MinRating = 1.0
	MaxRating = 10.0
)

// Player is a registered member of the group with per-skill ratings.
// Overall is the primary ranking key; it is typically the mean of the
// three sub-skill ratings but may be set independently.
type Player struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Offense      float64 `json:"offense"`
	Defense      float64 `json:"defense"`
	BallHandling float64 `json:"ball_handling"`
	Overall      float64 `json:"overall"`
}

// DeriveOverall returns the mean of the three sub-skill ratings.
func (p Player) DeriveOverall() float64 {
	return (p.Offense + p.Defense + p.BallHandling) / 3
}

// Game is a single scheduled session players vote on.
type Game struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Venue    string    `json:"venue"`
	StartsAt time.Time `json:"starts_at"`
}

// VoteStatus is a player's attendance answer for a game.
type VoteStatus string

// Valid vote statuses.
const (
	VoteGoing VoteStatus = "going"
	VoteMaybe VoteStatus = "maybe"
	VoteOut   VoteStatus = "out"
)

// Valid reports whether s is one of the known statuses.
func (s VoteStatus) Valid() bool {
	switch s {
	case VoteGoing, VoteMaybe, VoteOut:
		return true
	}
	return false
}

// Vote records a player's latest attendance answer for a game.
// Last write per (game, player) wins.
type Vote struct {
	GameID   string     `json:"game_id"`
	PlayerID int64      `json:"player_id"`
	Status   VoteStatus `json:"status"`
	CastAt   time.Time  `json:"cast_at"`
}

// TeamAssignment is the partition produced for a game's attending roster.
// TeamA, TeamB and Bench are disjoint and together cover the roster exactly.
type TeamAssignment struct {
	GameID      string    `json:"game_id"`
	TeamA       []Player  `json:"team_a"`
	TeamB       []Player  `json:"team_b"`
	Bench       []Player  `json:"bench"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Size returns the total number of players covered by the assignment.
func (a TeamAssignment) Size() int {
	return len(a.TeamA) + len(a.TeamB) + len(a.Bench)
}

// AverageRating is the mean overall rating of a set of players, the
// derived number the roster view shows next to each team. Empty teams
// average to zero.
func AverageRating(team []Player) float64 {
	if len(team) == 0 {
		return 0
	}
	var sum float64
	for _, p := range team {
		sum += p.Overall
	}
	return sum / float64(len(team))
}

// RebalanceJob asks the workers to regenerate teams for a game after its
// attending set changed.
type RebalanceJob struct {
	GameID   string
	Reason   string
	Enqueued time.Time
}
