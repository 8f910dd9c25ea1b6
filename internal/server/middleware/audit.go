package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"account-platform/backend/internal/audit"
	"account-platform/backend/internal/audit/domain"
	auditrepo "account-platform/backend/internal/audit/repository"
)

// Audit records an audit log entry after each authenticated request. The
// action/resource pair derives from the route; skipPaths lists exact paths
// to leave unaudited (health checks, the audit listing itself). Writes are
// best-effort and never fail the request.
func Audit(repo auditrepo.Repository, skipPaths map[string]bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if skipPaths[r.URL.Path] {
				return
			}
			id, ok := GetIdentity(r.Context())
			if !ok {
				return
			}
			ar := audit.ParseRoute(r.Method, r.URL.Path)
			entry := &domain.AuditLog{
				ID:        uuid.New().String(),
				UserID:    id.UserID,
				Action:    ar.Action,
				Resource:  ar.Resource,
				Level:     domain.LevelInfo,
				IP:        ClientIP(r.Context()),
				Metadata:  "",
				CreatedAt: time.Now().UTC(),
			}
			if err := repo.Create(r.Context(), entry); err != nil {
				log.Printf("audit: failed to create audit log: %v", err)
			}
		})
	}
}
