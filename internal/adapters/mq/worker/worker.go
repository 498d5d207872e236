// Package worker defines worker contracts for asynchronous team
// regeneration.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/courtside/matchday/internal/domain/model"
	"github.com/courtside/matchday/pkg/logger"
	"github.com/courtside/matchday/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Job is what workers read off the queue.
type Job = model.RebalanceJob

// Roster supplies the current attending players for a game.
type Roster interface {
	Attending(ctx context.Context, gameID string) ([]model.Player, error)
}

// Allocator partitions an attending roster into teams.
type Allocator interface {
	Allocate(players []model.Player) (model.TeamAssignment, error)
}

// Saver persists a regenerated assignment.
type Saver interface {
	SaveAssignment(ctx context.Context, a model.TeamAssignment) error
}

// Guard releases the per-game in-flight claim once a job finishes.
type Guard interface {
	Release(ctx context.Context, id string)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker processes rebalance jobs until stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// RebalanceWorker implements Worker for regenerating team assignments.
type RebalanceWorker struct {
	queue     Queue
	roster    Roster
	allocator Allocator
	saver     Saver
	guard     Guard
	name      string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewRebalanceWorker creates a new worker with configuration options.
func NewRebalanceWorker(queue Queue, roster Roster, allocator Allocator, saver Saver, guard Guard, opts ...Option) *RebalanceWorker {
	w := &RebalanceWorker{
		queue:     queue,
		roster:    roster,
		allocator: allocator,
		saver:     saver,
		guard:     guard,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *RebalanceWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobChan:
			if !ok {
				return
			}
			if err := w.processJob(ctx, job); err != nil {
				w.logger.Error(ctx, "rebalance failed",
					logger.String("gameID", job.GameID),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *RebalanceWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processJob regenerates the assignment for one game. The in-flight
// claim is released whatever the outcome so later vote changes can
// trigger a fresh job.
func (w *RebalanceWorker) processJob(ctx context.Context, job Job) error {
	defer w.guard.Release(ctx, job.GameID)

	start := time.Now()

	attending, err := w.roster.Attending(ctx, job.GameID)
	if err != nil {
		metrics.RecordWorkerError()
		return fmt.Errorf("loading attending roster for game %s: %w", job.GameID, err)
	}

	assignment, err := w.allocator.Allocate(attending)
	if err != nil {
		// The previous assignment stays in place; a shrunken roster
		// must not wipe teams that were already published.
		metrics.RecordAllocationError()
		metrics.RecordWorkerError()
		return fmt.Errorf("allocating teams for game %s: %w", job.GameID, err)
	}
	assignment.GameID = job.GameID
	assignment.GeneratedAt = time.Now()

	if err := w.saver.SaveAssignment(ctx, assignment); err != nil {
		metrics.RecordWorkerError()
		return fmt.Errorf("saving assignment for game %s: %w", job.GameID, err)
	}

	metrics.RecordAllocation()
	metrics.RecordAllocationLatency(float64(time.Since(start).Milliseconds()))

	w.logger.Debug(ctx, "assignment regenerated",
		logger.String("gameID", job.GameID),
		logger.String("reason", job.Reason),
		logger.Int("attending", len(attending)),
	)

	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers []*RebalanceWorker

	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, roster Roster, allocator Allocator, saver Saver, guard Guard) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers: make([]*RebalanceWorker, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewRebalanceWorker(
			queue, roster, allocator, saver, guard,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
}

// Stop gracefully stops all workers, bounded by the worker timeout.
func (p *Pool) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), workerShutdownTimeout)
	defer cancel()
	_ = p.Shutdown(ctx)
}

// Shutdown stops the pool, waiting up to the pool timeout for workers
// to drain.
func (p *Pool) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		if err := worker.Shutdown(shutdownCtx); err != nil {
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}
