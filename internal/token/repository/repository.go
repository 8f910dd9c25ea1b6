package repository

import (
	"context"
	"database/sql"
	"time"

	"account-platform/backend/internal/token/domain"
)

// Repository defines persistence for one-time tokens. WithTx returns a copy
// bound to the given transaction so consumption and dependent state changes
// commit together.
type Repository interface {
	GetByValue(ctx context.Context, value string) (*domain.Token, error)
	Create(ctx context.Context, t *domain.Token) error
	DeprecatePending(ctx context.Context, userID string, kind domain.Kind) error
	Consume(ctx context.Context, id string, at time.Time) error
	WithTx(tx *sql.Tx) Repository
}
