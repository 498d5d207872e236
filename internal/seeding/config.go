package seeding

import "time"

// Config holds configuration for the seeding run
type Config struct {
	BaseURL    string        // Base URL of the service
	NumPlayers int           // Number of players to register
	NumGames   int           // Number of games to schedule
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	Generate   bool          // Generate teams after voting
	LogFile    string        // Log file for seeding output
	Verbose    bool          // Enable verbose logging
}

// PlayerRequest mirrors the POST /players payload
type PlayerRequest struct {
	Name         string  `json:"name"`
	Offense      float64 `json:"offense"`
	Defense      float64 `json:"defense"`
	BallHandling float64 `json:"ball_handling"`
}

// Player mirrors the registration response
type Player struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Overall float64 `json:"overall"`
}

// GameRequest mirrors the POST /games payload
type GameRequest struct {
	Title    string `json:"title"`
	Venue    string `json:"venue"`
	StartsAt string `json:"starts_at"`
}

// Game mirrors the scheduling response
type Game struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// VoteRequest mirrors the PUT vote payload
type VoteRequest struct {
	Status string `json:"status"`
}

// RosterEntry is a single player row inside a team view
type RosterEntry struct {
	PlayerID int64   `json:"player_id"`
	Name     string  `json:"name"`
	Overall  float64 `json:"overall"`
}

// Team is one side of a generated assignment
type Team struct {
	Players       []RosterEntry `json:"players"`
	AverageRating float64       `json:"average_rating"`
}

// Assignment mirrors the team generation response
type Assignment struct {
	GameID string `json:"game_id"`
	TeamA  Team   `json:"team_a"`
	TeamB  Team   `json:"team_b"`
	Bench  Team   `json:"bench"`
}

// Stats holds seeding statistics
type Stats struct {
	PlayersCreated int
	PlayersFailed  int
	GamesCreated   int
	VotesCast      int
	VotesFailed    int
	TeamsGenerated int
	VerifyFailures int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}
