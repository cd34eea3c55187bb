package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"problem-solver/internal/models"
)

// SessionRepository handles admin session database operations
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create creates a new session
func (r *SessionRepository) Create(ctx context.Context, session *models.AdminSession) error {
	query := `
		INSERT INTO admin_sessions (id, username, jti, expires_at, last_activity_at, created_at, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.Username,
		session.JTI,
		session.ExpiresAt,
		session.LastActivityAt,
		session.CreatedAt,
		session.IPAddress,
		session.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// GetByJTI retrieves a non-expired session by its token ID
func (r *SessionRepository) GetByJTI(ctx context.Context, jti string) (*models.AdminSession, error) {
	query := `
		SELECT id, username, jti, expires_at, last_activity_at, created_at, ip_address, user_agent
		FROM admin_sessions
		WHERE jti = $1 AND expires_at > $2
	`

	session := &models.AdminSession{}
	err := r.db.QueryRowContext(ctx, query, jti, time.Now()).Scan(
		&session.ID,
		&session.Username,
		&session.JTI,
		&session.ExpiresAt,
		&session.LastActivityAt,
		&session.CreatedAt,
		&session.IPAddress,
		&session.UserAgent,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// Touch records activity on a session
func (r *SessionRepository) Touch(ctx context.Context, jti string) error {
	query := `UPDATE admin_sessions SET last_activity_at = $1 WHERE jti = $2`

	if _, err := r.db.ExecContext(ctx, query, time.Now(), jti); err != nil {
		return fmt.Errorf("failed to update session activity: %w", err)
	}

	return nil
}

// DeleteByJTI removes a session
func (r *SessionRepository) DeleteByJTI(ctx context.Context, jti string) error {
	query := `DELETE FROM admin_sessions WHERE jti = $1`

	if _, err := r.db.ExecContext(ctx, query, jti); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// DeleteExpiredSessions removes expired sessions and returns how many were deleted
func (r *SessionRepository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	query := `DELETE FROM admin_sessions WHERE expires_at <= $1`

	result, err := r.db.ExecContext(ctx, query, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	return result.RowsAffected()
}
