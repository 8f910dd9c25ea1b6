package repository

import (
	"context"
	"database/sql"

	"account-platform/backend/internal/audit/domain"
	"account-platform/backend/internal/db/sqlc/gen"
)

type PostgresRepository struct {
	queries *gen.Queries
}

// NewPostgresRepository returns an audit log repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{queries: gen.New(db)}
}

// ListByUser returns audit logs for the given user, newest first, paginated
// by limit and offset. Returns (nil, error) only on database errors.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit, offset int32) ([]*domain.AuditLog, error) {
	list, err := r.queries.ListAuditLogsByUser(ctx, gen.ListAuditLogsByUserParams{UserID: userID, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	out := make([]*domain.AuditLog, len(list))
	for i := range list {
		out[i] = genAuditLogToDomain(&list[i])
	}
	return out, nil
}

// Create persists the audit log to the database. The audit log must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, a *domain.AuditLog) error {
	_, err := r.queries.CreateAuditLog(ctx, gen.CreateAuditLogParams{
		ID:        a.ID,
		UserID:    a.UserID,
		Action:    a.Action,
		Resource:  a.Resource,
		Level:     string(a.Level),
		Ip:        a.IP,
		Metadata:  a.Metadata,
		CreatedAt: a.CreatedAt,
	})
	return err
}

func genAuditLogToDomain(a *gen.AuditLog) *domain.AuditLog {
	if a == nil {
		return nil
	}
	return &domain.AuditLog{
		ID:        a.ID,
		UserID:    a.UserID,
		Action:    a.Action,
		Resource:  a.Resource,
		Level:     domain.Level(a.Level),
		IP:        a.Ip,
		Metadata:  a.Metadata,
		CreatedAt: a.CreatedAt,
	}
}
