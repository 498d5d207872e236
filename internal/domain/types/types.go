// Package types contains common read-side types used across the application
package types

// RosterEntry represents one row of the rating-ordered roster listing.
type RosterEntry struct {
	Rank         int     `json:"rank"`
	PlayerID     int64   `json:"player_id"`
	Name         string  `json:"name"`
	Offense      float64 `json:"offense"`
	Defense      float64 `json:"defense"`
	BallHandling float64 `json:"ball_handling"`
	Overall      float64 `json:"overall"`
}

// TeamView is one side of an assignment as rendered to clients,
// including the derived average rating.
type TeamView struct {
	Players       []RosterEntry `json:"players"`
	AverageRating float64       `json:"average_rating"`
}

// AssignmentView is the full read shape for GET /games/{id}/teams.
type AssignmentView struct {
	GameID      string   `json:"game_id"`
	TeamA       TeamView `json:"team_a"`
	TeamB       TeamView `json:"team_b"`
	Bench       TeamView `json:"bench"`
	GeneratedAt string   `json:"generated_at"`
}
