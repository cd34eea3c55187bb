package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"problem-solver/internal/lock"
	"problem-solver/internal/models"
)

// Generator produces the report for a submission that is still "new"
type Generator interface {
	GenerateIfNew(ctx context.Context, submissionID string) (*models.Report, error)
}

// GenerationQueue runs report generation on a fixed pool of workers.
// Enqueue never blocks; a full queue drops the job and the pending sweep picks it up later.
type GenerationQueue struct {
	generator  Generator
	workers    int
	jobTimeout time.Duration
	jobs       chan string

	mu      sync.Mutex
	started bool
	stopped bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewGenerationQueue creates a queue with the given number of workers and capacity
func NewGenerationQueue(generator Generator, workers, queueSize int, jobTimeout time.Duration) *GenerationQueue {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}
	if jobTimeout <= 0 {
		jobTimeout = 2 * time.Minute
	}
	return &GenerationQueue{
		generator:  generator,
		workers:    workers,
		jobTimeout: jobTimeout,
		jobs:       make(chan string, queueSize),
	}
}

// Start launches the workers. Calling it twice is a no-op.
func (q *GenerationQueue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started || q.stopped {
		return
	}
	q.started = true

	ctx, q.cancel = context.WithCancel(ctx)

	slog.Info("Starting generation queue", "workers", q.workers, "capacity", cap(q.jobs))
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx, i)
	}
}

// Enqueue schedules generation for a submission and reports whether it was accepted
func (q *GenerationQueue) Enqueue(submissionID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.stopped {
		return false
	}

	select {
	case q.jobs <- submissionID:
		return true
	default:
		return false
	}
}

// Len returns the number of queued jobs
func (q *GenerationQueue) Len() int {
	return len(q.jobs)
}

// Stop stops accepting jobs, lets workers drain the queue and waits for them.
// Jobs still queued when ctx expires are abandoned.
func (q *GenerationQueue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return nil
	}
	q.stopped = true
	close(q.jobs)
	started := q.started
	q.mu.Unlock()

	if !started {
		return nil
	}

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		q.cancel()
		slog.Info("Generation queue stopped")
		return nil
	case <-ctx.Done():
		q.cancel()
		<-done
		return ctx.Err()
	}
}

func (q *GenerationQueue) worker(ctx context.Context, id int) {
	defer q.wg.Done()

	for submissionID := range q.jobs {
		if ctx.Err() != nil {
			continue
		}
		q.run(ctx, id, submissionID)
	}
}

func (q *GenerationQueue) run(ctx context.Context, workerID int, submissionID string) {
	ctx, cancel := context.WithTimeout(ctx, q.jobTimeout)
	defer cancel()

	start := time.Now()
	report, err := q.generator.GenerateIfNew(ctx, submissionID)
	switch {
	case errors.Is(err, ErrNotPending):
		slog.Debug("Submission already generated, skipping", "submission_id", submissionID, "worker", workerID)
	case errors.Is(err, lock.ErrBusy):
		slog.Info("Submission busy, skipping generation", "submission_id", submissionID, "worker", workerID)
	case err != nil:
		slog.Error("Report generation failed", "submission_id", submissionID, "worker", workerID, "error", err)
	default:
		slog.Debug("Generation job finished",
			"submission_id", submissionID,
			"worker", workerID,
			"fallback", report.IsFallback,
			"duration", time.Since(start),
		)
	}
}
