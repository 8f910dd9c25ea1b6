package repository

import (
	"context"

	"account-platform/backend/internal/company/domain"
)

// Repository defines persistence for companies.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	List(ctx context.Context, limit, offset int32) ([]*domain.Company, error)
	Create(ctx context.Context, c *domain.Company) error
	UpdateStatus(ctx context.Context, id string, status domain.Status) error
}
