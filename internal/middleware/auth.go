package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"problem-solver/internal/models"
)

type contextKey string

const (
	UsernameKey  contextKey = "admin_username"
	SessionIDKey contextKey = "admin_session_id"
)

// SessionValidator resolves a bearer token to an open admin session
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*models.AdminSession, error)
}

// AuthMiddleware validates admin tokens
type AuthMiddleware struct {
	sessions SessionValidator
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(sessions SessionValidator) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// Authenticate validates the bearer token against its server-side session and adds the admin to the context
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := BearerToken(r)
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Missing or invalid authorization header")
			return
		}

		session, err := m.sessions.ValidateSession(r.Context(), token)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), UsernameKey, session.Username)
		ctx = context.WithValue(ctx, SessionIDKey, session.ID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

// GetUsername retrieves the admin username from the request context
func GetUsername(r *http.Request) (string, bool) {
	username, ok := r.Context().Value(UsernameKey).(string)
	return username, ok
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
