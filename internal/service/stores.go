package service

import (
	"context"
	"time"

	"problem-solver/internal/models"
)

// SubmissionStore is the persistence contract for submissions
type SubmissionStore interface {
	Create(ctx context.Context, s *models.Submission) error
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	List(ctx context.Context, status *models.Status) ([]models.Submission, error)
	ListByStatusOlderThan(ctx context.Context, status models.Status, before time.Time, limit int) ([]models.Submission, error)
	UpdateStatus(ctx context.Context, id string, status models.Status) error
	CompareAndSetStatus(ctx context.Context, id string, from, to models.Status) (bool, error)
}

// ReportStore is the persistence contract for reports
type ReportStore interface {
	Upsert(ctx context.Context, report *models.Report) error
	GetBySubmissionID(ctx context.Context, submissionID string) (*models.Report, error)
}

// NoteStore is the persistence contract for admin notes
type NoteStore interface {
	Create(ctx context.Context, note *models.AdminNote) error
	ListBySubmissionID(ctx context.Context, submissionID string) ([]models.AdminNote, error)
}

// SessionStore is the persistence contract for admin sessions
type SessionStore interface {
	Create(ctx context.Context, session *models.AdminSession) error
	GetByJTI(ctx context.Context, jti string) (*models.AdminSession, error)
	Touch(ctx context.Context, jti string) error
	DeleteByJTI(ctx context.Context, jti string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

// AuditStore is the persistence contract for audit logs
type AuditStore interface {
	Create(ctx context.Context, log *models.AuditLog) error
	List(ctx context.Context, limit, offset int) ([]models.AuditLog, error)
}
