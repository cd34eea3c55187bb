package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"problem-solver/internal/config"
	"problem-solver/internal/models"
)

// PendingLister finds submissions waiting in a status
type PendingLister interface {
	ListByStatusOlderThan(ctx context.Context, status models.Status, before time.Time, limit int) ([]models.Submission, error)
}

// Enqueuer schedules report generation
type Enqueuer interface {
	Enqueue(submissionID string) bool
}

// SessionCleaner removes expired admin sessions
type SessionCleaner interface {
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}

// Scheduler handles periodic tasks
type Scheduler struct {
	submissions PendingLister
	queue       Enqueuer
	sessions    SessionCleaner
	config      *config.SchedulerConfig
	now         func() time.Time
	stopChan    chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

// NewScheduler creates a new scheduler
func NewScheduler(submissions PendingLister, queue Enqueuer, sessions SessionCleaner, cfg *config.SchedulerConfig) *Scheduler {
	return &Scheduler{
		submissions: submissions,
		queue:       queue,
		sessions:    sessions,
		config:      cfg,
		now:         time.Now,
		stopChan:    make(chan struct{}),
	}
}

// Start starts all scheduled tasks
func (s *Scheduler) Start() {
	slog.Info("Starting scheduler",
		"pending_sweep_enabled", s.config.EnablePendingSweep,
		"session_cleanup_enabled", s.config.EnableSessionCleanup)

	if s.config.EnablePendingSweep && s.config.PendingSweepInterval > 0 {
		s.wg.Add(1)
		go s.scheduleIntervalTask(s.config.PendingSweepInterval, "pending_sweep", s.SweepPending)
	}

	if s.config.EnableSessionCleanup && s.config.SessionCleanupInterval > 0 {
		s.wg.Add(1)
		go s.scheduleIntervalTask(s.config.SessionCleanupInterval, "session_cleanup", s.CleanupSessions)
	}

	slog.Info("Scheduler started")
}

// Stop stops all tasks and waits for a running task to return
func (s *Scheduler) Stop() {
	slog.Info("Stopping scheduler")
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
}

func (s *Scheduler) scheduleIntervalTask(interval time.Duration, taskName string, task func(ctx context.Context)) {
	defer s.wg.Done()
	slog.Info("Starting interval task", "task", taskName, "interval", interval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-s.stopChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			slog.Debug("Running interval task", "task", taskName)
			task(ctx)
		case <-s.stopChan:
			return
		}
	}
}

// SweepPending re-enqueues submissions that stayed in "new" longer than the configured age,
// e.g. after a restart or a full generation queue
func (s *Scheduler) SweepPending(ctx context.Context) {
	before := s.now().Add(-s.config.PendingAge)
	limit := s.config.PendingBatchSize
	if limit <= 0 {
		limit = 50
	}

	subs, err := s.submissions.ListByStatusOlderThan(ctx, models.StatusNew, before, limit)
	if err != nil {
		slog.Error("Failed to list pending submissions", "error", err)
		return
	}

	enqueued := 0
	for _, sub := range subs {
		if !s.queue.Enqueue(sub.ID) {
			slog.Warn("Generation queue full, stopping pending sweep", "remaining", len(subs)-enqueued)
			break
		}
		enqueued++
	}

	if enqueued > 0 {
		slog.Info("Re-enqueued pending submissions", "count", enqueued)
	}
}

// CleanupSessions deletes expired admin sessions
func (s *Scheduler) CleanupSessions(ctx context.Context) {
	n, err := s.sessions.CleanupExpiredSessions(ctx)
	if err != nil {
		slog.Error("Failed to clean up sessions", "error", err)
		return
	}
	if n > 0 {
		slog.Info("Expired sessions removed", "count", n)
	}
}
