package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"problem-solver/internal/email"
	"problem-solver/internal/models"
)

func seedReport(t *testing.T, reports *fakeReportStore, submissionID string) {
	t.Helper()
	parser, err := NewReportParser()
	require.NoError(t, err)
	content, err := parser.Parse(validReportJSON)
	require.NoError(t, err)
	require.NoError(t, reports.Upsert(context.Background(), &models.Report{
		SubmissionID: submissionID,
		Content:      content,
		GeneratedAt:  time.Now().UTC(),
	}))
}

func TestDispatcher_Dispatch(t *testing.T) {
	subs := newFakeSubmissionStore()
	reports := newFakeReportStore()
	sender := &recordingSender{}
	d := NewDispatcher(subs, reports, sender, nil)

	sub := storedSubmission(models.StatusAnalyzed)
	subs.put(sub)
	seedReport(t, reports, sub.ID)

	updated, err := d.Dispatch(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, updated.Status)
	assert.Equal(t, models.StatusDelivered, subs.status(sub.ID))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "a@b.com", msg.To)
	assert.Equal(t, email.ReportSubject, msg.Subject)
	assert.Contains(t, msg.HTMLBody, "68% of peers")
	assert.Contains(t, msg.HTMLBody, "Customer service delays...")
}

func TestDispatcher_ResendDelivered(t *testing.T) {
	subs := newFakeSubmissionStore()
	reports := newFakeReportStore()
	sender := &recordingSender{}
	d := NewDispatcher(subs, reports, sender, nil)

	sub := storedSubmission(models.StatusDelivered)
	subs.put(sub)
	seedReport(t, reports, sub.ID)
	// delivered has no outgoing edge, so no status write is attempted
	subs.casErr = errDown

	updated, err := d.Dispatch(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, updated.Status)
	assert.Len(t, sender.sent, 1)
}

func TestDispatcher_MailFailureKeepsStatus(t *testing.T) {
	subs := newFakeSubmissionStore()
	reports := newFakeReportStore()
	d := NewDispatcher(subs, reports, &recordingSender{err: errDown}, nil)

	sub := storedSubmission(models.StatusAnalyzed)
	subs.put(sub)
	seedReport(t, reports, sub.ID)

	_, err := d.Dispatch(context.Background(), sub.ID)
	var extErr *ExternalServiceError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, "mail", extErr.Service)
	assert.Equal(t, models.StatusAnalyzed, subs.status(sub.ID))
}

func TestDispatcher_Preconditions(t *testing.T) {
	tests := []struct {
		name       string
		status     models.Status
		withReport bool
	}{
		{"new submission", models.StatusNew, true},
		{"archived submission", models.StatusArchived, true},
		{"analyzed without report", models.StatusAnalyzed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs := newFakeSubmissionStore()
			reports := newFakeReportStore()
			sender := &recordingSender{}
			d := NewDispatcher(subs, reports, sender, nil)

			sub := storedSubmission(tt.status)
			subs.put(sub)
			if tt.withReport {
				seedReport(t, reports, sub.ID)
			}

			_, err := d.Dispatch(context.Background(), sub.ID)
			assert.ErrorIs(t, err, ErrPrecondition)
			assert.Empty(t, sender.sent)
			assert.Equal(t, tt.status, subs.status(sub.ID))
		})
	}
}

func TestDispatcher_NotFound(t *testing.T) {
	d := NewDispatcher(newFakeSubmissionStore(), newFakeReportStore(), &recordingSender{}, nil)

	_, err := d.Dispatch(context.Background(), "7d444840-9dc0-11d1-b245-5ffdce74fad2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDispatcher_StorageFailures(t *testing.T) {
	t.Run("report load", func(t *testing.T) {
		subs := newFakeSubmissionStore()
		reports := newFakeReportStore()
		sender := &recordingSender{}
		d := NewDispatcher(subs, reports, sender, nil)

		sub := storedSubmission(models.StatusAnalyzed)
		subs.put(sub)
		seedReport(t, reports, sub.ID)
		reports.failErr = errDown

		_, err := d.Dispatch(context.Background(), sub.ID)
		var storageErr *StorageError
		require.ErrorAs(t, err, &storageErr)
		assert.Equal(t, "load report", storageErr.Op)
		assert.Empty(t, sender.sent)
		assert.Equal(t, models.StatusAnalyzed, subs.status(sub.ID))
	})

	t.Run("submission load", func(t *testing.T) {
		subs := newFakeSubmissionStore()
		sender := &recordingSender{}
		d := NewDispatcher(subs, newFakeReportStore(), sender, nil)

		sub := storedSubmission(models.StatusAnalyzed)
		subs.put(sub)
		subs.failErr = errDown

		_, err := d.Dispatch(context.Background(), sub.ID)
		var storageErr *StorageError
		require.ErrorAs(t, err, &storageErr)
		assert.Equal(t, "load submission", storageErr.Op)
		assert.Empty(t, sender.sent)
	})

	t.Run("mark delivered", func(t *testing.T) {
		subs := newFakeSubmissionStore()
		reports := newFakeReportStore()
		sender := &recordingSender{}
		d := NewDispatcher(subs, reports, sender, nil)

		sub := storedSubmission(models.StatusAnalyzed)
		subs.put(sub)
		seedReport(t, reports, sub.ID)
		subs.casErr = errDown

		_, err := d.Dispatch(context.Background(), sub.ID)
		var storageErr *StorageError
		require.ErrorAs(t, err, &storageErr)
		assert.Equal(t, "mark delivered", storageErr.Op)
		assert.Len(t, sender.sent, 1)
		assert.Equal(t, models.StatusAnalyzed, subs.status(sub.ID))
	})
}
