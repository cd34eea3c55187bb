package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"problem-solver/internal/models"
	"problem-solver/internal/repository"
	"problem-solver/internal/testutil"
)

func TestRepositories_Postgres(t *testing.T) {
	tdb := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	submissions := repository.NewSubmissionRepository(tdb.DB)
	reports := repository.NewReportRepository(tdb.DB)
	notes := repository.NewAdminNoteRepository(tdb.DB)

	created := time.Now().UTC().Truncate(time.Millisecond).Add(-2 * time.Hour)
	sub := &models.Submission{
		ID:                 uuid.NewString(),
		Industry:           models.Known("technology"),
		OperationalArea:    models.Other("Field service"),
		CurrentApproaches:  []models.Choice{models.Known("manual"), models.Other("a shared inbox")},
		ProblemDescription: "Customer service delays",
		Email:              "a@b.com",
		Status:             models.StatusNew,
		CreatedAt:          created,
	}
	require.NoError(t, submissions.Create(ctx, sub))

	t.Run("submission round trip keeps other choices", func(t *testing.T) {
		got, err := submissions.GetByID(ctx, sub.ID)
		require.NoError(t, err)
		assert.Equal(t, "Field service", got.OperationalArea.OtherText())
		require.Len(t, got.CurrentApproaches, 2)
		assert.Equal(t, "a shared inbox", got.CurrentApproaches[1].OtherText())
		assert.Equal(t, models.StatusNew, got.Status)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := submissions.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("stale sweep sees new submission", func(t *testing.T) {
		stale, err := submissions.ListByStatusOlderThan(ctx, models.StatusNew, time.Now().Add(-time.Hour), 10)
		require.NoError(t, err)
		require.Len(t, stale, 1)
		assert.Equal(t, sub.ID, stale[0].ID)
	})

	t.Run("report upsert replaces content", func(t *testing.T) {
		first := &models.Report{SubmissionID: sub.ID, Content: models.ReportContent{Recommendations: []string{"one"}}, IsFallback: true, GeneratedAt: time.Now().UTC()}
		require.NoError(t, reports.Upsert(ctx, first))

		second := &models.Report{SubmissionID: sub.ID, Content: models.ReportContent{Recommendations: []string{"two"}}, GeneratedAt: time.Now().UTC()}
		require.NoError(t, reports.Upsert(ctx, second))
		assert.Equal(t, first.ID, second.ID)

		got, err := reports.GetBySubmissionID(ctx, sub.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"two"}, got.Content.Recommendations)
		assert.False(t, got.IsFallback)
	})

	t.Run("compare and set only moves from expected status", func(t *testing.T) {
		moved, err := submissions.CompareAndSetStatus(ctx, sub.ID, models.StatusNew, models.StatusAnalyzed)
		require.NoError(t, err)
		assert.True(t, moved)

		moved, err = submissions.CompareAndSetStatus(ctx, sub.ID, models.StatusNew, models.StatusAnalyzed)
		require.NoError(t, err)
		assert.False(t, moved)

		analyzed := models.StatusAnalyzed
		list, err := submissions.List(ctx, &analyzed)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("notes newest first", func(t *testing.T) {
		base := time.Now().UTC()
		require.NoError(t, notes.Create(ctx, &models.AdminNote{SubmissionID: sub.ID, Content: "first", Author: "Admin", CreatedAt: base}))
		require.NoError(t, notes.Create(ctx, &models.AdminNote{SubmissionID: sub.ID, Content: "second", Author: "Admin", CreatedAt: base.Add(time.Second)}))

		list, err := notes.ListBySubmissionID(ctx, sub.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "second", list[0].Content)
	})
}
