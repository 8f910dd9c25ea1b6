package repository

import (
	"context"
	"database/sql"

	"account-platform/backend/internal/user/domain"
)

// Repository defines persistence for users. WithTx returns a copy bound to
// the given transaction for flows that mutate users alongside other records.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int32) ([]*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	UpdateStatus(ctx context.Context, id string, status domain.Status) error
	UpdateRole(ctx context.Context, id string, role domain.Role) error
	WithTx(tx *sql.Tx) Repository
}
