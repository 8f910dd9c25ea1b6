package audit

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"account-platform/backend/internal/audit/domain"
	auditrepo "account-platform/backend/internal/audit/repository"
)

// SentinelUserID is the user_id used for audit events with no resolved user
// (e.g. login_failure on an unknown email).
const SentinelUserID = "_anonymous"

// IPExtractor returns the client IP from the request context.
type IPExtractor func(context.Context) string

// AuditLogger writes a single audit event with explicit action/resource.
// Used by the auth and admin code paths. Log and Warn are best-effort:
// failures are logged and do not affect the caller.
type AuditLogger interface {
	Log(ctx context.Context, userID, action, resource, metadata string)
	Warn(ctx context.Context, userID, action, resource, metadata string)
}

// Logger implements AuditLogger using the audit repository and an optional IP extractor.
type Logger struct {
	repo        auditrepo.Repository
	ipExtractor IPExtractor
}

// NewLogger returns an AuditLogger that persists to repo and uses ipExtractor for client IP.
// ipExtractor may be nil; then IP is recorded as "unknown".
func NewLogger(repo auditrepo.Repository, ipExtractor IPExtractor) *Logger {
	return &Logger{repo: repo, ipExtractor: ipExtractor}
}

// Log writes one info-level audit entry. Best-effort: errors are logged and not returned.
func (l *Logger) Log(ctx context.Context, userID, action, resource, metadata string) {
	l.write(ctx, domain.LevelInfo, userID, action, resource, metadata)
}

// Warn writes one warning-level audit entry, used for anomalies such as a
// device change observed during refresh. Best-effort.
func (l *Logger) Warn(ctx context.Context, userID, action, resource, metadata string) {
	l.write(ctx, domain.LevelWarning, userID, action, resource, metadata)
}

func (l *Logger) write(ctx context.Context, level domain.Level, userID, action, resource, metadata string) {
	if l.repo == nil {
		return
	}
	ip := "unknown"
	if l.ipExtractor != nil {
		ip = l.ipExtractor(ctx)
	}
	if userID == "" {
		userID = SentinelUserID
	}
	entry := &domain.AuditLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Resource:  resource,
		Level:     level,
		IP:        ip,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}
	if err := l.repo.Create(ctx, entry); err != nil {
		log.Printf("audit: failed to log event %s/%s: %v", action, resource, err)
	}
}
