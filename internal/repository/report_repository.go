package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"problem-solver/internal/models"
)

// ReportRepository handles report database operations
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Upsert stores the report for its submission, replacing any earlier one.
// ID and GeneratedAt are filled from the stored row.
func (r *ReportRepository) Upsert(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (submission_id, report_content, is_fallback, generated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (submission_id) DO UPDATE
		SET report_content = EXCLUDED.report_content,
			is_fallback = EXCLUDED.is_fallback,
			generated_at = EXCLUDED.generated_at
		RETURNING id, generated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		report.SubmissionID,
		report.Content,
		report.IsFallback,
		report.GeneratedAt,
	).Scan(&report.ID, &report.GeneratedAt)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	return nil
}

// GetBySubmissionID retrieves the report of a submission
func (r *ReportRepository) GetBySubmissionID(ctx context.Context, submissionID string) (*models.Report, error) {
	query := `
		SELECT id, submission_id, report_content, is_fallback, generated_at
		FROM reports
		WHERE submission_id = $1
	`

	report := &models.Report{}
	err := r.db.QueryRowContext(ctx, query, submissionID).Scan(
		&report.ID,
		&report.SubmissionID,
		&report.Content,
		&report.IsFallback,
		&report.GeneratedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return report, nil
}
