package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"problem-solver/internal/models"
)

const submissionColumns = `id, industry, company_size, years_in_business, operational_area,
	problem_frequency, impact_severity, current_approaches, solution_satisfaction, budget_range,
	problem_description, document_url, email, opt_in_future, allow_follow_up, interested_in_discount,
	status, created_at`

// SubmissionRepository handles submission database operations
type SubmissionRepository struct {
	db *sql.DB
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create inserts a new submission. ID, Status and CreatedAt must already be set.
func (r *SubmissionRepository) Create(ctx context.Context, s *models.Submission) error {
	query := `
		INSERT INTO submissions (` + submissionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Industry,
		s.CompanySize,
		s.YearsInBusiness,
		s.OperationalArea,
		s.ProblemFrequency,
		s.ImpactSeverity,
		pq.StringArray(models.EncodeChoices(s.CurrentApproaches)),
		s.SolutionSatisfaction,
		s.BudgetRange,
		s.ProblemDescription,
		s.DocumentURL,
		s.Email,
		s.OptInFuture,
		s.AllowFollowUp,
		s.InterestedInDiscount,
		s.Status,
		s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}

	return nil
}

// GetByID retrieves a submission by ID
func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`

	s, err := scanSubmission(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	return s, nil
}

// List returns submissions newest first, optionally restricted to one status
func (r *SubmissionRepository) List(ctx context.Context, status *models.Status) ([]models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions`
	var args []any
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return collectSubmissions(rows)
}

// ListByStatusOlderThan returns up to limit submissions in the given status created before the cutoff, oldest first
func (r *SubmissionRepository) ListByStatusOlderThan(ctx context.Context, status models.Status, before time.Time, limit int) ([]models.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE status = $1 AND created_at < $2
		ORDER BY created_at ASC
		LIMIT $3
	`

	rows, err := r.db.QueryContext(ctx, query, status, before, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale submissions: %w", err)
	}
	return collectSubmissions(rows)
}

// UpdateStatus sets the status unconditionally
func (r *SubmissionRepository) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	query := `UPDATE submissions SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update submission status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update submission status: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// CompareAndSetStatus moves a submission from one status to another only if it is
// still in the expected status. It reports whether the row was updated.
func (r *SubmissionRepository) CompareAndSetStatus(ctx context.Context, id string, from, to models.Status) (bool, error) {
	query := `UPDATE submissions SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`

	result, err := r.db.ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return false, fmt.Errorf("failed to transition submission status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to transition submission status: %w", err)
	}

	return affected == 1, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (*models.Submission, error) {
	s := &models.Submission{}
	var approaches pq.StringArray
	var documentURL sql.NullString

	err := row.Scan(
		&s.ID,
		&s.Industry,
		&s.CompanySize,
		&s.YearsInBusiness,
		&s.OperationalArea,
		&s.ProblemFrequency,
		&s.ImpactSeverity,
		&approaches,
		&s.SolutionSatisfaction,
		&s.BudgetRange,
		&s.ProblemDescription,
		&documentURL,
		&s.Email,
		&s.OptInFuture,
		&s.AllowFollowUp,
		&s.InterestedInDiscount,
		&s.Status,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CurrentApproaches = models.DecodeChoices(approaches)
	if documentURL.Valid {
		s.DocumentURL = &documentURL.String
	}

	return s, nil
}

func collectSubmissions(rows *sql.Rows) ([]models.Submission, error) {
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("Failed to close rows", "error", err)
		}
	}()

	var submissions []models.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate submissions: %w", err)
	}

	return submissions, nil
}
