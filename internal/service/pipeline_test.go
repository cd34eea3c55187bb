package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"problem-solver/internal/models"
)

// TestPipeline walks one submission from intake to delivery and back through an override
func TestPipeline(t *testing.T) {
	ctx := context.Background()
	subs := newFakeSubmissionStore()
	reports := newFakeReportStore()
	sender := &recordingSender{}

	gen, err := NewReportGenerator(subs, reports, &stubCompleter{response: validReportJSON}, nil)
	require.NoError(t, err)
	queue := NewGenerationQueue(gen, 1, 10, time.Second)
	queue.Start(ctx)

	submissions := NewSubmissionService(subs, queue)
	dispatcher := NewDispatcher(subs, reports, sender, nil)
	notes := NewNoteService(subs, &fakeNoteStore{})

	draft := models.SubmissionDraft{
		Industry:           models.Known("technology"),
		ProblemDescription: "Customer service delays",
		Email:              "a@b.com",
	}
	id, err := submissions.Create(ctx, draft)
	require.NoError(t, err)

	require.NoError(t, queue.Stop(ctx))
	assert.Equal(t, models.StatusAnalyzed, subs.status(id))

	report, err := gen.Report(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, "68% of peers", report.Content.IndustryComparison.Prevalence)

	delivered, err := dispatcher.Dispatch(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, delivered.Status)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "a@b.com", sender.sent[0].To)

	_, err = notes.AddNote(ctx, id, "Good lead, follow up next week", "")
	require.NoError(t, err)

	archived, err := submissions.UpdateStatus(ctx, id, "archived")
	require.NoError(t, err)
	assert.Equal(t, models.StatusArchived, archived.Status)

	_, err = dispatcher.Dispatch(ctx, id)
	assert.ErrorIs(t, err, ErrPrecondition)

	list, err := notes.ListNotes(ctx, id)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
