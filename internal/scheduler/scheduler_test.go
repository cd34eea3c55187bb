package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"problem-solver/internal/config"
	"problem-solver/internal/models"
)

type fakeLister struct {
	subs   []models.Submission
	before time.Time
	limit  int
	err    error
}

func (f *fakeLister) ListByStatusOlderThan(_ context.Context, status models.Status, before time.Time, limit int) ([]models.Submission, error) {
	if status != models.StatusNew {
		return nil, errors.New("unexpected status")
	}
	f.before = before
	f.limit = limit
	return f.subs, f.err
}

type fakeQueue struct {
	mu       sync.Mutex
	ids      []string
	capacity int
}

func (q *fakeQueue) Enqueue(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.ids) >= q.capacity {
		return false
	}
	q.ids = append(q.ids, id)
	return true
}

type fakeCleaner struct {
	mu    sync.Mutex
	calls int
}

func (c *fakeCleaner) CleanupExpiredSessions(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return 2, nil
}

func (c *fakeCleaner) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestSweepPending(t *testing.T) {
	lister := &fakeLister{subs: []models.Submission{{ID: "a"}, {ID: "b"}, {ID: "c"}}}
	queue := &fakeQueue{capacity: 10}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s := NewScheduler(lister, queue, &fakeCleaner{}, &config.SchedulerConfig{
		PendingAge:       10 * time.Minute,
		PendingBatchSize: 25,
	})
	s.now = func() time.Time { return now }

	s.SweepPending(context.Background())

	if len(queue.ids) != 3 {
		t.Fatalf("enqueued %v, want 3 ids", queue.ids)
	}
	if !lister.before.Equal(now.Add(-10 * time.Minute)) {
		t.Errorf("before = %v", lister.before)
	}
	if lister.limit != 25 {
		t.Errorf("limit = %d", lister.limit)
	}
}

func TestSweepPendingStopsWhenQueueFull(t *testing.T) {
	lister := &fakeLister{subs: []models.Submission{{ID: "a"}, {ID: "b"}, {ID: "c"}}}
	queue := &fakeQueue{capacity: 1}

	s := NewScheduler(lister, queue, &fakeCleaner{}, &config.SchedulerConfig{PendingAge: time.Minute})
	s.SweepPending(context.Background())

	if len(queue.ids) != 1 || queue.ids[0] != "a" {
		t.Errorf("enqueued %v, want [a]", queue.ids)
	}
	if lister.limit != 50 {
		t.Errorf("default limit = %d, want 50", lister.limit)
	}
}

func TestSweepPendingListError(t *testing.T) {
	lister := &fakeLister{err: errors.New("db down")}
	queue := &fakeQueue{capacity: 10}

	s := NewScheduler(lister, queue, &fakeCleaner{}, &config.SchedulerConfig{})
	s.SweepPending(context.Background())

	if len(queue.ids) != 0 {
		t.Errorf("enqueued %v after list error", queue.ids)
	}
}

func TestSchedulerRunsAndStops(t *testing.T) {
	cleaner := &fakeCleaner{}
	s := NewScheduler(&fakeLister{}, &fakeQueue{}, cleaner, &config.SchedulerConfig{
		SessionCleanupInterval: 10 * time.Millisecond,
		EnableSessionCleanup:   true,
	})

	s.Start()
	deadline := time.Now().Add(2 * time.Second)
	for cleaner.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	s.Stop()
	s.Stop()

	if cleaner.count() == 0 {
		t.Fatal("session cleanup never ran")
	}
}
