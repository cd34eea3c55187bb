package middleware

import (
	"context"
	"fmt"
	"net/http"

	"problem-solver/internal/service"
)

// AuditLogger records administrative actions
type AuditLogger interface {
	Log(ctx context.Context, entry service.AuditEntry)
}

// AuditMiddleware logs admin actions after the handler ran
type AuditMiddleware struct {
	audit AuditLogger
}

// NewAuditMiddleware creates a new audit middleware
func NewAuditMiddleware(audit AuditLogger) *AuditMiddleware {
	return &AuditMiddleware{audit: audit}
}

// Log records action on resource once the handler finished. An {id} path value
// is appended to the resource.
func (m *AuditMiddleware) Log(action, resource string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			username, _ := GetUsername(r)
			m.audit.Log(r.Context(), service.AuditEntry{
				Actor:     username,
				Action:    action,
				Resource:  expandResource(r, resource),
				Details:   fmt.Sprintf("status=%d", wrapped.statusCode),
				IPAddress: ClientIP(r),
				UserAgent: r.UserAgent(),
			})
		})
	}
}

func expandResource(r *http.Request, resource string) string {
	if id := r.PathValue("id"); id != "" {
		return resource + ":" + id
	}
	return resource
}
