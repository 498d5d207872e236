// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	jobqueue "github.com/courtside/matchday/internal/adapters/mq/queue"
	workerpool "github.com/courtside/matchday/internal/adapters/mq/worker"
	repository "github.com/courtside/matchday/internal/adapters/repository"
	"github.com/courtside/matchday/internal/domain/balance"
	"github.com/courtside/matchday/internal/domain/inflight"
	"github.com/courtside/matchday/internal/domain/model"
	"github.com/courtside/matchday/internal/domain/types"
	"github.com/courtside/matchday/pkg/logger"
	"github.com/courtside/matchday/pkg/metrics"
)

// Default service configuration.
const (
	defaultQueueSize           = 10_000
	defaultInflightSize        = 10_000
	defaultGenerationThreshold = 8
)

// Service implements the API dependencies for the session coordinator.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     repository.Store
	tracker   inflight.Tracker
	jobQueue  jobqueue.Queue
	allocator *balance.Allocator
	pool      *workerpool.Pool

	// Configuration
	workerCount         int
	queueSize           int
	inflightSize        int
	generationThreshold int
	offenseWeight       float64
	defenseWeight       float64
	ballHandlingWeight  float64

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of rebalance workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the rebalance job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithInflightSize bounds the per-game in-flight rebalance tracker.
func WithInflightSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.inflightSize = size
		}
	}
}

// WithGenerationThreshold sets the minimum attending count before team
// generation is offered.
func WithGenerationThreshold(n int) Option {
	return func(s *Service) {
		if n >= balance.MinPlayers {
			s.generationThreshold = n
		}
	}
}

// WithSkillWeights tunes the composite strength used while balancing.
// Non-positive values keep the defaults.
func WithSkillWeights(offense, defense, ballHandling float64) Option {
	return func(s *Service) {
		if offense > 0 {
			s.offenseWeight = offense
		}
		if defense > 0 {
			s.defenseWeight = defense
		}
		if ballHandling > 0 {
			s.ballHandlingWeight = ballHandling
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:         runtime.NumCPU() * 2,
		queueSize:           defaultQueueSize,
		inflightSize:        defaultInflightSize,
		generationThreshold: defaultGenerationThreshold,
		offenseWeight:       0.8,
		defenseWeight:       0.8,
		ballHandlingWeight:  0.6,
		stopCh:              make(chan struct{}),
		logger:              nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting matchday service...")

	s.store = repository.NewMemStore(ctx)
	s.tracker = inflight.NewInMemoryTracker(
		inflight.WithMaxSize(s.inflightSize),
	)
	s.jobQueue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
	)
	s.allocator = balance.New(
		balance.WithSkillWeights(s.offenseWeight, s.defenseWeight, s.ballHandlingWeight),
	)

	s.pool = workerpool.NewPool(s.workerCount, s.jobQueue, s.store, s.allocator, s.store, s.tracker)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "matchday service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("generationThreshold", s.generationThreshold),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping matchday service...")

	if s.pool != nil {
		s.pool.Stop()
	}

	if q, ok := s.jobQueue.(*jobqueue.InMemoryQueue); ok {
		_ = q.Close()
	}

	select {
	case <-s.stopCh:
		// Channel already closed
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "matchday service stopped")
}

// CreatePlayer validates and registers a player. A zero Overall is
// derived from the three sub-skill ratings.
func (s *Service) CreatePlayer(ctx context.Context, p model.Player) (model.Player, error) {
	if p.Name == "" {
		return model.Player{}, fmt.Errorf("%w: name is required", ErrInvalidPlayer)
	}
	for _, rating := range []struct {
		name  string
		value float64
	}{
		{"offense", p.Offense},
		{"defense", p.Defense},
		{"ball_handling", p.BallHandling},
	} {
		if rating.value < model.MinRating || rating.value > model.MaxRating {
			return model.Player{}, fmt.Errorf("%w: %s must be between %.0f and %.0f",
				ErrInvalidPlayer, rating.name, model.MinRating, model.MaxRating)
		}
	}
	if p.Overall == 0 {
		p.Overall = p.DeriveOverall()
	}
	if p.Overall < model.MinRating || p.Overall > model.MaxRating {
		return model.Player{}, fmt.Errorf("%w: overall must be between %.0f and %.0f",
			ErrInvalidPlayer, model.MinRating, model.MaxRating)
	}

	created, err := s.store.CreatePlayer(ctx, p)
	if err != nil {
		return model.Player{}, fmt.Errorf("creating player: %w", err)
	}

	s.logger.Debug(ctx, "player registered",
		logger.Int64("playerID", created.ID),
		logger.String("name", created.Name),
		logger.Float64("overall", created.Overall),
	)

	return created, nil
}

// GetPlayer returns a player by id.
func (s *Service) GetPlayer(ctx context.Context, id int64) (model.Player, error) {
	return s.store.GetPlayer(ctx, id)
}

// ListPlayers returns the rating-ordered roster, capped at limit when
// limit is positive.
func (s *Service) ListPlayers(ctx context.Context, limit int) []types.RosterEntry {
	players := s.store.ListPlayers(ctx)
	if limit > 0 && limit < len(players) {
		players = players[:limit]
	}

	entries := make([]types.RosterEntry, len(players))
	for i, p := range players {
		entries[i] = types.RosterEntry{
			Rank:         i + 1,
			PlayerID:     p.ID,
			Name:         p.Name,
			Offense:      p.Offense,
			Defense:      p.Defense,
			BallHandling: p.BallHandling,
			Overall:      p.Overall,
		}
	}
	return entries
}

// CreateGame validates and stores a scheduled game, assigning an id
// when the caller did not provide one.
func (s *Service) CreateGame(ctx context.Context, g model.Game) (model.Game, error) {
	if g.Title == "" {
		return model.Game{}, fmt.Errorf("%w: title is required", ErrInvalidGame)
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}

	if err := s.store.CreateGame(ctx, g); err != nil {
		return model.Game{}, fmt.Errorf("creating game: %w", err)
	}

	s.logger.Debug(ctx, "game scheduled",
		logger.String("gameID", g.ID),
		logger.String("title", g.Title),
	)

	return g, nil
}

// GetGame returns a game by id.
func (s *Service) GetGame(ctx context.Context, id string) (model.Game, error) {
	return s.store.GetGame(ctx, id)
}

// CastVote upserts a player's attendance vote for a game. When the game
// already has published teams, a rebalance job is enqueued so the
// assignment tracks the new attending set; a burst of votes for the
// same game collapses into a single job.
func (s *Service) CastVote(ctx context.Context, gameID string, playerID int64, status model.VoteStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidVote, status)
	}
	if _, err := s.store.GetGame(ctx, gameID); err != nil {
		return fmt.Errorf("looking up game %s: %w", gameID, err)
	}
	if _, err := s.store.GetPlayer(ctx, playerID); err != nil {
		return fmt.Errorf("looking up player %d: %w", playerID, err)
	}

	vote := model.Vote{
		GameID:   gameID,
		PlayerID: playerID,
		Status:   status,
		CastAt:   time.Now(),
	}
	if err := s.store.SetVote(ctx, vote); err != nil {
		return fmt.Errorf("recording vote: %w", err)
	}

	s.maybeEnqueueRebalance(ctx, gameID)

	return nil
}

// maybeEnqueueRebalance schedules a regeneration when the game already
// has a published assignment. The in-flight tracker guarantees at most
// one pending job per game.
func (s *Service) maybeEnqueueRebalance(ctx context.Context, gameID string) {
	if _, err := s.store.GetAssignment(ctx, gameID); err != nil {
		return // nothing published yet, nothing to refresh
	}

	if !s.tracker.Acquire(ctx, gameID) {
		s.logger.Debug(ctx, "rebalance already pending", logger.String("gameID", gameID))
		return
	}

	job := model.RebalanceJob{
		GameID:   gameID,
		Reason:   "vote_changed",
		Enqueued: time.Now(),
	}
	if !s.jobQueue.Enqueue(ctx, job) {
		// Queue full or closed: free the claim so a later vote retries.
		s.tracker.Release(ctx, gameID)
		s.logger.Warn(ctx, "rebalance enqueue refused", logger.String("gameID", gameID))
		return
	}

	s.logger.Debug(ctx, "rebalance enqueued", logger.String("gameID", gameID))
}

// GenerateTeams synchronously allocates balanced teams for a game's
// attending roster and publishes the result.
func (s *Service) GenerateTeams(ctx context.Context, gameID string) (types.AssignmentView, error) {
	if _, err := s.store.GetGame(ctx, gameID); err != nil {
		return types.AssignmentView{}, fmt.Errorf("looking up game %s: %w", gameID, err)
	}

	attending, err := s.store.Attending(ctx, gameID)
	if err != nil {
		return types.AssignmentView{}, fmt.Errorf("loading attending roster: %w", err)
	}

	s.mu.RLock()
	threshold := s.generationThreshold
	allocator := s.allocator
	s.mu.RUnlock()

	if len(attending) < threshold {
		return types.AssignmentView{}, fmt.Errorf("%w: have %d going, need %d",
			ErrBelowThreshold, len(attending), threshold)
	}

	start := time.Now()
	assignment, err := allocator.Allocate(attending)
	if err != nil {
		metrics.RecordAllocationError()
		return types.AssignmentView{}, fmt.Errorf("allocating teams for game %s: %w", gameID, err)
	}
	assignment.GameID = gameID
	assignment.GeneratedAt = time.Now()

	if err := s.store.SaveAssignment(ctx, assignment); err != nil {
		return types.AssignmentView{}, fmt.Errorf("saving assignment: %w", err)
	}

	metrics.RecordAllocation()
	metrics.RecordAllocationLatency(float64(time.Since(start).Milliseconds()))

	s.logger.Info(ctx, "teams generated",
		logger.String("gameID", gameID),
		logger.Int("attending", len(attending)),
		logger.Int("teamA", len(assignment.TeamA)),
		logger.Int("teamB", len(assignment.TeamB)),
		logger.Int("bench", len(assignment.Bench)),
	)

	return toAssignmentView(assignment), nil
}

// GetAssignment returns the published assignment for a game.
func (s *Service) GetAssignment(ctx context.Context, gameID string) (types.AssignmentView, error) {
	assignment, err := s.store.GetAssignment(ctx, gameID)
	if err != nil {
		return types.AssignmentView{}, err
	}
	return toAssignmentView(assignment), nil
}

// toAssignmentView converts a stored assignment into the read shape,
// including derived team averages.
func toAssignmentView(a model.TeamAssignment) types.AssignmentView {
	return types.AssignmentView{
		GameID:      a.GameID,
		TeamA:       toTeamView(a.TeamA),
		TeamB:       toTeamView(a.TeamB),
		Bench:       toTeamView(a.Bench),
		GeneratedAt: a.GeneratedAt.UTC().Format(time.RFC3339),
	}
}

func toTeamView(team []model.Player) types.TeamView {
	entries := make([]types.RosterEntry, len(team))
	for i, p := range team {
		entries[i] = types.RosterEntry{
			Rank:         i + 1,
			PlayerID:     p.ID,
			Name:         p.Name,
			Offense:      p.Offense,
			Defense:      p.Defense,
			BallHandling: p.BallHandling,
			Overall:      p.Overall,
		}
	}
	return types.TeamView{
		Players:       entries,
		AverageRating: model.AverageRating(team),
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":             s.started,
		"workerCount":         s.workerCount,
		"queueSize":           s.queueSize,
		"generationThreshold": s.generationThreshold,
	}

	if s.started {
		players, games := s.store.Counts(ctx)
		queueLen := s.jobQueue.Len(ctx)

		stats["players"] = players
		stats["games"] = games
		stats["queueLength"] = queueLen
		stats["inflightRebalances"] = s.tracker.Size()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}
