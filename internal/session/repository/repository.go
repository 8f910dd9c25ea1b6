package repository

import (
	"context"
	"database/sql"

	"account-platform/backend/internal/session/domain"
)

// Repository defines persistence for refresh sessions. Lookups take the
// token hash, never the raw value. WithTx returns a copy bound to the given
// transaction so rotation creates and revokes atomically.
type Repository interface {
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshSession, error)
	Create(ctx context.Context, s *domain.RefreshSession) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUser(ctx context.Context, userID string) error
	WithTx(tx *sql.Tx) Repository
}
