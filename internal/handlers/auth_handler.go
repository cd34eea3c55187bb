package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"problem-solver/internal/middleware"
	"problem-solver/internal/service"
)

// Authenticator opens and closes admin sessions
type Authenticator interface {
	Login(ctx context.Context, username, password, ipAddress, userAgent string) (*service.LoginResult, error)
	Logout(ctx context.Context, token string) error
}

// AuthHandler handles admin authentication requests
type AuthHandler struct {
	authService Authenticator
	audit       middleware.AuditLogger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService Authenticator, audit middleware.AuditLogger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		audit:       audit,
	}
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles admin login
// @Summary Admin login
// @Description Checks the operator credentials and returns a session token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} service.LoginResult
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /admin/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}

	username := strings.TrimSpace(req.Username)
	fields := map[string]string{}
	if username == "" {
		fields["username"] = "is required"
	}
	if req.Password == "" {
		fields["password"] = "is required"
	}
	if len(fields) > 0 {
		respondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{Error: ErrMsgValidationFailed, Fields: fields})
		return
	}

	ip := middleware.ClientIP(r)
	result, err := h.authService.Login(r.Context(), username, req.Password, ip, r.UserAgent())
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.audit.Log(r.Context(), service.AuditEntry{
			Action:    AuditActionLoginFailed,
			Resource:  "admin",
			Details:   "username=" + username,
			IPAddress: ip,
			UserAgent: r.UserAgent(),
		})
		respondWithError(w, http.StatusUnauthorized, ErrMsgInvalidCredentials)
		return
	}
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	h.audit.Log(r.Context(), service.AuditEntry{
		Actor:     result.Username,
		Action:    AuditActionLogin,
		Resource:  "admin",
		IPAddress: ip,
		UserAgent: r.UserAgent(),
	})

	respondWithJSON(w, http.StatusOK, result)
}

// Logout revokes the current session
// @Summary Admin logout
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string "Logged out"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /admin/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.BearerToken(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	if err := h.authService.Logout(r.Context(), token); err != nil {
		if errors.Is(err, service.ErrInvalidSession) {
			respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
			return
		}
		respondWithServiceError(w, r, err)
		return
	}

	username, _ := middleware.GetUsername(r)
	h.audit.Log(r.Context(), service.AuditEntry{
		Actor:     username,
		Action:    AuditActionLogout,
		Resource:  "admin",
		IPAddress: middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	})

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}
