package handlers

import (
	"context"
	"net/http"
	"strconv"

	"problem-solver/internal/models"
)

// AuditLister reads the audit log
type AuditLister interface {
	List(ctx context.Context, limit, offset int) ([]models.AuditLog, error)
}

// AuditHandler handles audit log requests
type AuditHandler struct {
	audit AuditLister
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(audit AuditLister) *AuditHandler {
	return &AuditHandler{
		audit: audit,
	}
}

// ListAuditLogs lists audit logs with pagination
// @Summary List audit logs
// @Description Get a paginated list of audit logs, newest first
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(50)
// @Success 200 {object} map[string]interface{} "Paginated audit logs"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /admin/audit-logs [get]
func (h *AuditHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	page := 1
	limit := 50

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	offset := (page - 1) * limit

	logs, err := h.audit.List(r.Context(), limit, offset)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	response := map[string]interface{}{
		"logs":  logs,
		"page":  page,
		"limit": limit,
	}

	respondWithJSON(w, http.StatusOK, response)
}
