package seeding

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/courtside/matchday/pkg/logger"
)

// Run executes the complete seeding flow: register players, schedule
// games, cast votes, and optionally generate teams.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting matchday seeding",
		logger.String("baseURL", config.BaseURL),
		logger.Int("players", config.NumPlayers),
		logger.Int("games", config.NumGames),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Any("generate", config.Generate))

	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	players, err := registerPlayers(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("player registration failed: %w", err)
	}

	games, err := scheduleGames(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("game scheduling failed: %w", err)
	}

	if err := castVotes(ctx, config, players, games, stats); err != nil {
		return fmt.Errorf("vote casting failed: %w", err)
	}

	if config.Generate {
		generateTeams(ctx, config, games, stats)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	logger.Get().Info(ctx, "seeding completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// registerPlayers creates the seeded roster concurrently.
func registerPlayers(ctx context.Context, config *Config, stats *Stats) ([]Player, error) {
	requests := generatePlayers(config.NumPlayers)
	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/players"

	var (
		created int64
		failed  int64
		mu      sync.Mutex
	)
	players := make([]Player, 0, len(requests))

	reqChan := make(chan PlayerRequest, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for req := range reqChan {
				select {
				case <-ctx.Done():
					return
				default:
				}
				resp, err := client.Post(ctx, url, req)
				if err != nil || resp.StatusCode != http.StatusCreated {
					if resp != nil {
						_ = resp.Body.Close()
					}
					atomic.AddInt64(&failed, 1)
					continue
				}
				var player Player
				if err := decodeResponse(resp, &player); err != nil {
					atomic.AddInt64(&failed, 1)
					continue
				}
				atomic.AddInt64(&created, 1)
				mu.Lock()
				players = append(players, player)
				mu.Unlock()
			}
		}()
	}

	go func() {
		defer close(reqChan)
		for _, req := range requests {
			select {
			case <-ctx.Done():
				return
			case reqChan <- req:
			}
		}
	}()

	wg.Wait()

	stats.PlayersCreated = int(atomic.LoadInt64(&created))
	stats.PlayersFailed = int(atomic.LoadInt64(&failed))
	logger.Get().Info(ctx, "players registered",
		logger.Int("created", stats.PlayersCreated),
		logger.Int("failed", stats.PlayersFailed))

	if len(players) == 0 {
		return nil, fmt.Errorf("no players could be registered")
	}
	return players, nil
}

// scheduleGames creates the requested number of games.
func scheduleGames(ctx context.Context, config *Config, stats *Stats) ([]Game, error) {
	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/games"

	games := make([]Game, 0, config.NumGames)
	for i := 0; i < config.NumGames; i++ {
		req := GameRequest{
			Title:    fmt.Sprintf("Seeded run #%d", i+1),
			Venue:    "Main gym",
			StartsAt: time.Now().Add(time.Duration(i+1) * 24 * time.Hour).UTC().Format(time.RFC3339),
		}
		resp, err := client.Post(ctx, url, req)
		if err != nil {
			return nil, fmt.Errorf("failed to schedule game %d: %w", i, err)
		}
		if resp.StatusCode != http.StatusCreated {
			_ = resp.Body.Close()
			return nil, fmt.Errorf("game scheduling returned status %d", resp.StatusCode)
		}
		var game Game
		if err := decodeResponse(resp, &game); err != nil {
			return nil, fmt.Errorf("failed to decode game %d: %w", i, err)
		}
		games = append(games, game)
	}

	stats.GamesCreated = len(games)
	logger.Get().Info(ctx, "games scheduled", logger.Int("count", len(games)))
	return games, nil
}

// castVotes records a weighted attendance vote for every player on
// every game, fanned out across workers.
func castVotes(ctx context.Context, config *Config, players []Player, games []Game, stats *Stats) error {
	client := newHTTPClient(config.Timeout)

	type voteTask struct {
		gameID   string
		playerID int64
	}

	var (
		cast   int64
		failed int64
	)

	taskChan := make(chan voteTask, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskChan {
				select {
				case <-ctx.Done():
					return
				default:
				}
				url := fmt.Sprintf("%s/games/%s/votes/%d", config.BaseURL, task.gameID, task.playerID)
				resp, err := client.Put(ctx, url, VoteRequest{Status: pickVoteStatus()})
				if err != nil {
					atomic.AddInt64(&failed, 1)
					continue
				}
				_ = resp.Body.Close()
				if resp.StatusCode == http.StatusOK {
					atomic.AddInt64(&cast, 1)
				} else {
					atomic.AddInt64(&failed, 1)
				}
			}
		}()
	}

	go func() {
		defer close(taskChan)
		for _, game := range games {
			for _, player := range players {
				select {
				case <-ctx.Done():
					return
				case taskChan <- voteTask{gameID: game.ID, playerID: player.ID}:
				}
			}
		}
	}()

	wg.Wait()

	stats.VotesCast = int(atomic.LoadInt64(&cast))
	stats.VotesFailed = int(atomic.LoadInt64(&failed))
	logger.Get().Info(ctx, "votes cast",
		logger.Int("cast", stats.VotesCast),
		logger.Int("failed", stats.VotesFailed))
	return nil
}

// generateTeams asks the service to balance each seeded game and logs
// the resulting split. Failures are reported but do not abort seeding;
// a game can legitimately sit below the attendance threshold.
func generateTeams(ctx context.Context, config *Config, games []Game, stats *Stats) {
	client := newHTTPClient(config.Timeout)

	for _, game := range games {
		url := fmt.Sprintf("%s/games/%s/teams", config.BaseURL, game.ID)
		resp, err := client.Post(ctx, url, nil)
		if err != nil {
			logger.Get().Warn(ctx, "team generation request failed",
				logger.String("gameID", game.ID), logger.Error(err))
			continue
		}
		if resp.StatusCode != http.StatusCreated {
			_ = resp.Body.Close()
			logger.Get().Warn(ctx, "team generation refused",
				logger.String("gameID", game.ID),
				logger.Int("status", resp.StatusCode))
			continue
		}
		var assignment Assignment
		if err := decodeResponse(resp, &assignment); err != nil {
			logger.Get().Warn(ctx, "failed to decode assignment",
				logger.String("gameID", game.ID), logger.Error(err))
			continue
		}
		if err := verifyAssignment(assignment); err != nil {
			stats.VerifyFailures++
			logger.Get().Warn(ctx, "assignment failed verification",
				logger.String("gameID", game.ID), logger.Error(err))
			continue
		}
		stats.TeamsGenerated++
		logger.Get().Info(ctx, "teams generated",
			logger.String("gameID", game.ID),
			logger.Int("teamA", len(assignment.TeamA.Players)),
			logger.Int("teamB", len(assignment.TeamB.Players)),
			logger.Int("bench", len(assignment.Bench.Players)),
			logger.Float64("avgA", assignment.TeamA.AverageRating),
			logger.Float64("avgB", assignment.TeamB.AverageRating))
	}
}

// verifyAssignment checks the invariants a balanced split must hold: no
// player appears twice across the three groups, and team sizes differ by
// at most one whenever nobody is benched.
func verifyAssignment(a Assignment) error {
	seen := make(map[int64]bool)
	for _, team := range []Team{a.TeamA, a.TeamB, a.Bench} {
		for _, entry := range team.Players {
			if seen[entry.PlayerID] {
				return fmt.Errorf("player %d assigned twice", entry.PlayerID)
			}
			seen[entry.PlayerID] = true
		}
	}

	sizeA, sizeB := len(a.TeamA.Players), len(a.TeamB.Players)
	if len(a.Bench.Players) == 0 && (sizeA-sizeB > 1 || sizeB-sizeA > 1) {
		return fmt.Errorf("team sizes %d/%d differ by more than one with empty bench", sizeA, sizeB)
	}
	return nil
}

// displayFinalStats prints the final seeding statistics.
func displayFinalStats(stats *Stats) {
	var votesPerSecond float64
	if stats.Duration > 0 {
		votesPerSecond = float64(stats.VotesCast) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("playersCreated", stats.PlayersCreated),
		logger.Int("playersFailed", stats.PlayersFailed),
		logger.Int("gamesCreated", stats.GamesCreated),
		logger.Int("votesCast", stats.VotesCast),
		logger.Int("votesFailed", stats.VotesFailed),
		logger.Int("teamsGenerated", stats.TeamsGenerated),
		logger.Int("verifyFailures", stats.VerifyFailures),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("votesPerSecond", votesPerSecond))
}
