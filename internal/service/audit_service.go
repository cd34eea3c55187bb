package service

import (
	"context"
	"log/slog"

	"problem-solver/internal/models"
)

// AuditEntry describes one administrative action
type AuditEntry struct {
	Actor     string
	Action    string
	Resource  string
	Details   string
	IPAddress string
	UserAgent string
}

// AuditService handles audit logging
type AuditService struct {
	auditRepo AuditStore
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo AuditStore) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// Log records an entry. Failures are logged and never fail the calling operation.
func (s *AuditService) Log(ctx context.Context, entry AuditEntry) {
	if err := s.LogError(ctx, entry); err != nil {
		slog.Warn("Failed to write audit log", "action", entry.Action, "resource", entry.Resource, "error", err)
	}
}

// LogError records an entry and returns any error
func (s *AuditService) LogError(ctx context.Context, entry AuditEntry) error {
	var actor *string
	if entry.Actor != "" {
		actor = &entry.Actor
	}
	return s.auditRepo.Create(ctx, &models.AuditLog{
		Actor:     actor,
		Action:    entry.Action,
		Resource:  entry.Resource,
		Details:   entry.Details,
		IPAddress: entry.IPAddress,
		UserAgent: entry.UserAgent,
	})
}

// List returns audit entries newest first
func (s *AuditService) List(ctx context.Context, limit, offset int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	logs, err := s.auditRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, storageErr("list audit logs", err)
	}
	return logs, nil
}
