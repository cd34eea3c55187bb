package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"problem-solver/internal/models"
)

var submissionRowColumns = []string{
	"id", "industry", "company_size", "years_in_business", "operational_area",
	"problem_frequency", "impact_severity", "current_approaches", "solution_satisfaction", "budget_range",
	"problem_description", "document_url", "email", "opt_in_future", "allow_follow_up", "interested_in_discount",
	"status", "created_at",
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func addSubmissionRow(rows *sqlmock.Rows, id string, status models.Status, createdAt time.Time) *sqlmock.Rows {
	return rows.AddRow(
		id, "technology", "11-50", 4, "other:field sales",
		"daily", "major", "{cloud-tools,other:spreadsheets}", "dissatisfied", "medium",
		"Customer service delays", nil, "a@b.com", true, false, true,
		string(status), createdAt,
	)
}

func TestSubmissionRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSubmissionRepository(db)

	now := time.Now()
	sub := &models.Submission{
		ID:                 "0b9f6f0c-6a38-4f43-9a65-0d5e9f8c1f11",
		Industry:           models.Known("technology"),
		OperationalArea:    models.Other("field sales"),
		CurrentApproaches:  []models.Choice{models.Known("cloud-tools")},
		ProblemDescription: "Customer service delays",
		Email:              "a@b.com",
		Status:             models.StatusNew,
		CreatedAt:          now,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO submissions")).
		WithArgs(
			sub.ID, "technology", "", 0, "other:field sales",
			"", "", sqlmock.AnyArg(), "", "",
			"Customer service delays", nil, "a@b.com", false, false, false,
			"new", now,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), sub))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepository_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSubmissionRepository(db)
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM submissions WHERE id = $1")).
		WithArgs("s1").
		WillReturnRows(addSubmissionRow(sqlmock.NewRows(submissionRowColumns), "s1", models.StatusAnalyzed, created))

	sub, err := repo.GetByID(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, "s1", sub.ID)
	assert.Equal(t, models.Known("technology"), sub.Industry)
	assert.Equal(t, models.Other("field sales"), sub.OperationalArea)
	assert.Equal(t, []models.Choice{models.Known("cloud-tools"), models.Other("spreadsheets")}, sub.CurrentApproaches)
	assert.Nil(t, sub.DocumentURL)
	assert.Equal(t, models.StatusAnalyzed, sub.Status)
	assert.Equal(t, created, sub.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepository_GetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSubmissionRepository(db)

	mock.ExpectQuery("FROM submissions").WithArgs("missing").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmissionRepository_ListWithFilter(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSubmissionRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows(submissionRowColumns)
	addSubmissionRow(rows, "s2", models.StatusAnalyzed, now)
	addSubmissionRow(rows, "s1", models.StatusAnalyzed, now.Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta("FROM submissions WHERE status = $1 ORDER BY created_at DESC")).
		WithArgs("analyzed").
		WillReturnRows(rows)

	status := models.StatusAnalyzed
	subs, err := repo.List(context.Background(), &status)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "s2", subs[0].ID)
	assert.Equal(t, "s1", subs[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepository_ListAll(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSubmissionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM submissions ORDER BY created_at DESC")).
		WithArgs().
		WillReturnRows(sqlmock.NewRows(submissionRowColumns))

	subs, err := repo.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, subs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepository_CompareAndSetStatus(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSubmissionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE submissions SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4")).
		WithArgs("analyzed", sqlmock.AnyArg(), "s1", "new").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $3 AND status = $4")).
		WithArgs("analyzed", sqlmock.AnyArg(), "s1", "new").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.CompareAndSetStatus(context.Background(), "s1", models.StatusNew, models.StatusAnalyzed)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.CompareAndSetStatus(context.Background(), "s1", models.StatusNew, models.StatusAnalyzed)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepository_UpdateStatusNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSubmissionRepository(db)

	mock.ExpectExec("UPDATE submissions SET status").
		WithArgs("archived", sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", models.StatusArchived)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmissionRepository_ListByStatusOlderThan(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSubmissionRepository(db)
	cutoff := time.Now().Add(-10 * time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = $1 AND created_at < $2")).
		WithArgs("new", cutoff, 25).
		WillReturnRows(addSubmissionRow(sqlmock.NewRows(submissionRowColumns), "s1", models.StatusNew, cutoff.Add(-time.Hour)))

	subs, err := repo.ListByStatusOlderThan(context.Background(), models.StatusNew, cutoff, 25)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, models.StatusNew, subs[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
