package seeding

import (
	"crypto/rand"
	"math/big"
	"strconv"

	"github.com/google/uuid"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	archetypeDivisor   = 5
)

// Rating ranges per archetype. Ratings stay inside the 1..10 scale the
// service accepts.
const (
	averageMin   = 4.0
	averageRange = 3.0
	scorerMin    = 7.0
	scorerRange  = 2.5
	anchorMin    = 6.5
	anchorRange  = 3.0
	casualMin    = 1.5
	casualRange  = 3.0
	wideMin      = 1.0
	wideRange    = 9.0
)

// Archetype cases.
const (
	caseAverage = 0
	caseScorer  = 1
	caseAnchor  = 2
	caseCasual  = 3
	caseWide    = 4
)

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// generatePlayers creates varied player payloads so seeded rosters span
// the rating scale instead of clustering in the middle.
func generatePlayers(count int) []PlayerRequest {
	players := make([]PlayerRequest, count)
	for i := range players {
		players[i] = generateSinglePlayer(i)
	}
	return players
}

// generateSinglePlayer creates one player with archetype-driven ratings.
func generateSinglePlayer(index int) PlayerRequest {
	archetype, _ := rand.Int(rand.Reader, big.NewInt(archetypeDivisor))

	var offense, defense, handling float64
	switch archetype.Int64() {
	case caseAverage:
		// Solid regulars, the most common shape
		offense = averageMin + getRandomFloat()*averageRange
		defense = averageMin + getRandomFloat()*averageRange
		handling = averageMin + getRandomFloat()*averageRange
	case caseScorer:
		// Offense-heavy, weaker on defense
		offense = scorerMin + getRandomFloat()*scorerRange
		defense = casualMin + getRandomFloat()*casualRange
		handling = averageMin + getRandomFloat()*averageRange
	case caseAnchor:
		// Defensive anchors
		offense = casualMin + getRandomFloat()*casualRange
		defense = anchorMin + getRandomFloat()*anchorRange
		handling = averageMin + getRandomFloat()*averageRange
	case caseCasual:
		// Shows up for the fun of it
		offense = casualMin + getRandomFloat()*casualRange
		defense = casualMin + getRandomFloat()*casualRange
		handling = casualMin + getRandomFloat()*casualRange
	default:
		// Anything goes
		offense = wideMin + getRandomFloat()*wideRange
		defense = wideMin + getRandomFloat()*wideRange
		handling = wideMin + getRandomFloat()*wideRange
	}

	// uuid suffix keeps names unique across repeated seeding runs
	// against the same service instance.
	return PlayerRequest{
		Name:         "player-" + strconv.Itoa(index) + "-" + uuid.New().String()[:8],
		Offense:      clampRating(offense),
		Defense:      clampRating(defense),
		BallHandling: clampRating(handling),
	}
}

func clampRating(v float64) float64 {
	if v < 1.0 {
		return 1.0
	}
	if v > 10.0 {
		return 10.0
	}
	return v
}

// pickVoteStatus weights votes so most seeded players attend.
func pickVoteStatus() string {
	n, _ := rand.Int(rand.Reader, big.NewInt(10))
	switch {
	case n.Int64() < 7:
		return "going"
	case n.Int64() < 9:
		return "maybe"
	default:
		return "out"
	}
}
