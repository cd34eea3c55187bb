package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"problem-solver/internal/auth"
	"problem-solver/internal/config"
	"problem-solver/internal/models"
)

// LoginResult is returned on successful admin login
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Username  string    `json:"username"`
}

// AuthService handles admin login and server-side session validation
type AuthService struct {
	sessions SessionStore
	authSvc  *auth.Service
	admin    config.AdminConfig
	now      func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(sessions SessionStore, authSvc *auth.Service, admin config.AdminConfig) *AuthService {
	return &AuthService{
		sessions: sessions,
		authSvc:  authSvc,
		admin:    admin,
		now:      time.Now,
	}
}

// Login checks the operator credentials and opens a session
func (s *AuthService) Login(ctx context.Context, username, password, ipAddress, userAgent string) (*LoginResult, error) {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.admin.Username)) == 1
	// Always run bcrypt so timing does not reveal whether the username matched
	passwordErr := s.authSvc.VerifyPassword(s.admin.PasswordHash, password)
	if !usernameOK || passwordErr != nil {
		slog.Warn("Admin login failed", "username", username, "ip", ipAddress)
		return nil, ErrInvalidCredentials
	}

	token, jti, expiresAt, err := s.authSvc.GenerateToken(s.admin.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	now := s.now()
	session := &models.AdminSession{
		ID:             uuid.NewString(),
		Username:       s.admin.Username,
		JTI:            jti,
		ExpiresAt:      expiresAt,
		LastActivityAt: now,
		CreatedAt:      now,
		IPAddress:      ipAddress,
		UserAgent:      userAgent,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, storageErr("create session", err)
	}

	slog.Info("Admin logged in", "username", session.Username, "ip", ipAddress)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Username: session.Username}, nil
}

// ValidateSession verifies the token signature and that its session is still open
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*models.AdminSession, error) {
	claims, err := s.authSvc.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidSession
	}

	session, err := s.sessions.GetByJTI(ctx, claims.ID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, storageErr("load session", err)
	}

	if err := s.sessions.Touch(ctx, claims.ID); err != nil {
		slog.Warn("Failed to record session activity", "error", err)
	}

	return session, nil
}

// Logout revokes the session of a token, even an expired one
func (s *AuthService) Logout(ctx context.Context, token string) error {
	jti, err := s.authSvc.ExtractJTI(token)
	if err != nil {
		return ErrInvalidSession
	}
	if err := s.sessions.DeleteByJTI(ctx, jti); err != nil {
		return storageErr("delete session", err)
	}
	return nil
}

// CleanupExpiredSessions removes sessions past their expiry
func (s *AuthService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpiredSessions(ctx)
	if err != nil {
		return 0, storageErr("cleanup sessions", err)
	}
	return n, nil
}
