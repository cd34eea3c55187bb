package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"problem-solver/internal/models"
)

// AdminNoteRepository handles admin note database operations
type AdminNoteRepository struct {
	db *sql.DB
}

// NewAdminNoteRepository creates a new admin note repository
func NewAdminNoteRepository(db *sql.DB) *AdminNoteRepository {
	return &AdminNoteRepository{db: db}
}

// Create appends a note
func (r *AdminNoteRepository) Create(ctx context.Context, note *models.AdminNote) error {
	query := `
		INSERT INTO admin_notes (submission_id, note_content, admin_user, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		note.SubmissionID,
		note.Content,
		note.Author,
		note.CreatedAt,
	).Scan(&note.ID)
	if err != nil {
		return fmt.Errorf("failed to create admin note: %w", err)
	}

	return nil
}

// ListBySubmissionID returns the notes of a submission, most recent first
func (r *AdminNoteRepository) ListBySubmissionID(ctx context.Context, submissionID string) ([]models.AdminNote, error) {
	query := `
		SELECT id, submission_id, note_content, admin_user, created_at
		FROM admin_notes
		WHERE submission_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin notes: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("Failed to close rows", "error", err)
		}
	}()

	var notes []models.AdminNote
	for rows.Next() {
		var note models.AdminNote
		if err := rows.Scan(&note.ID, &note.SubmissionID, &note.Content, &note.Author, &note.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan admin note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate admin notes: %w", err)
	}

	return notes, nil
}
