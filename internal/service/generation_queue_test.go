package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"problem-solver/internal/models"
)

type countingGenerator struct {
	mu    sync.Mutex
	ids   []string
	block chan struct{}
}

func (g *countingGenerator) GenerateIfNew(ctx context.Context, id string) (*models.Report, error) {
	if g.block != nil {
		select {
		case <-g.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ids = append(g.ids, id)
	return &models.Report{SubmissionID: id}, nil
}

func (g *countingGenerator) processed() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.ids...)
}

func TestGenerationQueue_ProcessesJobs(t *testing.T) {
	gen := &countingGenerator{}
	q := NewGenerationQueue(gen, 2, 10, time.Second)
	q.Start(context.Background())

	for _, id := range []string{"a", "b", "c"} {
		require.True(t, q.Enqueue(id))
	}

	require.NoError(t, q.Stop(context.Background()))
	assert.ElementsMatch(t, []string{"a", "b", "c"}, gen.processed())
	assert.False(t, q.Enqueue("d"))
}

func TestGenerationQueue_FullQueueRejects(t *testing.T) {
	gen := &countingGenerator{}
	q := NewGenerationQueue(gen, 1, 1, time.Second)

	assert.True(t, q.Enqueue("a"))
	assert.False(t, q.Enqueue("b"))
	assert.Equal(t, 1, q.Len())

	q.Start(context.Background())
	require.NoError(t, q.Stop(context.Background()))
	assert.Equal(t, []string{"a"}, gen.processed())
}

func TestGenerationQueue_StopDeadline(t *testing.T) {
	gen := &countingGenerator{block: make(chan struct{})}
	q := NewGenerationQueue(gen, 1, 5, time.Minute)
	q.Start(context.Background())
	require.True(t, q.Enqueue("a"))
	require.True(t, q.Enqueue("b"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := q.Stop(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, gen.processed())
}

func TestGenerationQueue_SkipsDeliveredSubmission(t *testing.T) {
	ctx := context.Background()
	subs := newFakeSubmissionStore()
	reports := newFakeReportStore()
	llm := &stubCompleter{response: validReportJSON}
	gen, err := NewReportGenerator(subs, reports, llm, nil)
	require.NoError(t, err)

	sub := storedSubmission(models.StatusNew)
	subs.put(sub)
	_, err = gen.Generate(ctx, sub.ID)
	require.NoError(t, err)
	_, err = NewDispatcher(subs, reports, &recordingSender{}, nil).Dispatch(ctx, sub.ID)
	require.NoError(t, err)

	// a late duplicate job must not replace the delivered report with a fallback
	llm.err = errDown
	q := NewGenerationQueue(gen, 1, 5, time.Second)
	q.Start(ctx)
	require.True(t, q.Enqueue(sub.ID))
	require.NoError(t, q.Stop(ctx))

	assert.Equal(t, models.StatusDelivered, subs.status(sub.ID))
	assert.Equal(t, 1, llm.calls)
	report, err := reports.GetBySubmissionID(ctx, sub.ID)
	require.NoError(t, err)
	assert.False(t, report.IsFallback)
	assert.Equal(t, "68% of peers", report.Content.IndustryComparison.Prevalence)
}
