package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/courtside/matchday/internal/adapters/mq/queue"
	"github.com/courtside/matchday/internal/domain/balance"
	"github.com/courtside/matchday/internal/domain/model"
	"github.com/courtside/matchday/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type fakeRoster struct {
	mu      sync.Mutex
	players map[string][]model.Player
	err     error
}

func (f *fakeRoster) Attending(_ context.Context, gameID string) ([]model.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.players[gameID], nil
}

type fakeSaver struct {
	mu    sync.Mutex
	saved []model.TeamAssignment
	err   error
}

func (f *fakeSaver) SaveAssignment(_ context.Context, a model.TeamAssignment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, a)
	return nil
}

func (f *fakeSaver) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

type fakeGuard struct {
	mu       sync.Mutex
	released []string
}

func (f *fakeGuard) Release(_ context.Context, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = append(f.released, id)
}

func (f *fakeGuard) releasedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.released)
}

func flatRoster(n int) []model.Player {
	players := make([]model.Player, n)
	for i := range players {
		r := float64(3 + i%7)
		players[i] = model.Player{ID: int64(i + 1), Offense: r, Defense: r, BallHandling: r, Overall: r}
	}
	return players
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestRebalanceWorker_ProcessJob(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := queue.NewInMemoryQueue(queue.WithCapacity(10))
	roster := &fakeRoster{players: map[string][]model.Player{"g1": flatRoster(10)}}
	saver := &fakeSaver{}
	guard := &fakeGuard{}

	w := NewRebalanceWorker(q, roster, balance.New(), saver, guard, WithName("test-worker"))
	go w.Run(ctx)

	q.Enqueue(ctx, model.RebalanceJob{GameID: "g1", Reason: "vote_changed"})

	waitFor(t, func() bool { return saver.count() == 1 })

	saver.mu.Lock()
	got := saver.saved[0]
	saver.mu.Unlock()

	if got.GameID != "g1" {
		t.Errorf("assignment gameID = %q, want g1", got.GameID)
	}
	if len(got.TeamA) != 5 || len(got.TeamB) != 5 {
		t.Errorf("sizes = (%d, %d), want (5, 5)", len(got.TeamA), len(got.TeamB))
	}
	if got.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not stamped")
	}

	waitFor(t, func() bool { return guard.releasedCount() == 1 })
}

func TestRebalanceWorker_AllocationErrorKeepsOldAssignment(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := queue.NewInMemoryQueue(queue.WithCapacity(10))
	// One attending player: below the allocator's floor.
	roster := &fakeRoster{players: map[string][]model.Player{"g1": flatRoster(1)}}
	saver := &fakeSaver{}
	guard := &fakeGuard{}

	w := NewRebalanceWorker(q, roster, balance.New(), saver, guard)
	go w.Run(ctx)

	q.Enqueue(ctx, model.RebalanceJob{GameID: "g1", Reason: "vote_changed"})

	// The guard must be released even on failure.
	waitFor(t, func() bool { return guard.releasedCount() == 1 })
	if saver.count() != 0 {
		t.Errorf("saved %d assignments, want 0", saver.count())
	}
}

func TestRebalanceWorker_RosterError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := queue.NewInMemoryQueue(queue.WithCapacity(10))
	roster := &fakeRoster{err: errors.New("store down")}
	saver := &fakeSaver{}
	guard := &fakeGuard{}

	w := NewRebalanceWorker(q, roster, balance.New(), saver, guard)
	go w.Run(ctx)

	q.Enqueue(ctx, model.RebalanceJob{GameID: "g1"})

	waitFor(t, func() bool { return guard.releasedCount() == 1 })
	if saver.count() != 0 {
		t.Errorf("saved %d assignments, want 0", saver.count())
	}
}

func TestRebalanceWorker_Shutdown(t *testing.T) {
	ctx := context.Background()

	q := queue.NewInMemoryQueue(queue.WithCapacity(10))
	roster := &fakeRoster{players: map[string][]model.Player{}}
	w := NewRebalanceWorker(q, roster, balance.New(), &fakeSaver{}, &fakeGuard{})
	go w.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := w.Shutdown(shutdownCtx); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}

func TestPool_ProcessesManyGames(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := queue.NewInMemoryQueue(queue.WithCapacity(100))
	players := make(map[string][]model.Player)
	games := []string{"g1", "g2", "g3", "g4", "g5"}
	for _, g := range games {
		players[g] = flatRoster(12)
	}
	roster := &fakeRoster{players: players}
	saver := &fakeSaver{}
	guard := &fakeGuard{}

	pool := NewPool(3, q, roster, balance.New(), saver, guard)
	pool.Start(ctx)
	defer pool.Stop()

	for _, g := range games {
		q.Enqueue(ctx, model.RebalanceJob{GameID: g, Reason: "vote_changed"})
	}

	waitFor(t, func() bool { return saver.count() == len(games) })
	waitFor(t, func() bool { return guard.releasedCount() == len(games) })
}
