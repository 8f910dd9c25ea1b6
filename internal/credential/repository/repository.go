package repository

import (
	"context"
	"database/sql"

	"account-platform/backend/internal/credential/domain"
)

// Repository defines persistence for credentials.
type Repository interface {
	GetByUserAndProvider(ctx context.Context, userID string, provider domain.Provider) (*domain.Credential, error)
	Create(ctx context.Context, c *domain.Credential) error
	UpdatePassword(ctx context.Context, userID string, provider domain.Provider, passwordHash string) error
	WithTx(tx *sql.Tx) Repository
}
