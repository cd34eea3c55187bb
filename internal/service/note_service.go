package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"problem-solver/internal/models"
)

// DefaultNoteAuthor is used when a note carries no author
const DefaultNoteAuthor = "Admin"

const maxNoteLength = 10000

// NoteService manages the append-only admin annotation log
type NoteService struct {
	submissions SubmissionStore
	notes       NoteStore
	now         func() time.Time
}

// NewNoteService creates a new note service
func NewNoteService(submissions SubmissionStore, notes NoteStore) *NoteService {
	return &NoteService{submissions: submissions, notes: notes, now: time.Now}
}

// AddNote appends a note to a submission
func (s *NoteService) AddNote(ctx context.Context, submissionID, content, author string) (*models.AdminNote, error) {
	if strings.TrimSpace(content) == "" {
		return nil, newValidationError("note_content", "is required")
	}
	if len(content) > maxNoteLength {
		return nil, newValidationError("note_content", "must be at most 10000 characters")
	}
	if err := s.ensureSubmission(ctx, submissionID); err != nil {
		return nil, err
	}

	author = strings.TrimSpace(author)
	if author == "" {
		author = DefaultNoteAuthor
	}

	note := &models.AdminNote{
		SubmissionID: submissionID,
		Content:      content,
		Author:       author,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, storageErr("create note", err)
	}

	return note, nil
}

// ListNotes returns a submission's notes, most recent first
func (s *NoteService) ListNotes(ctx context.Context, submissionID string) ([]models.AdminNote, error) {
	if err := s.ensureSubmission(ctx, submissionID); err != nil {
		return nil, err
	}

	notes, err := s.notes.ListBySubmissionID(ctx, submissionID)
	if err != nil {
		return nil, storageErr("list notes", err)
	}
	if notes == nil {
		notes = []models.AdminNote{}
	}
	return notes, nil
}

func (s *NoteService) ensureSubmission(ctx context.Context, submissionID string) error {
	if _, err := uuid.Parse(submissionID); err != nil {
		return ErrNotFound
	}
	if _, err := s.submissions.GetByID(ctx, submissionID); err != nil {
		return storageErr("load submission", err)
	}
	return nil
}
