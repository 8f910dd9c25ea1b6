package repository

import (
	"context"
	"database/sql"
	"errors"

	"account-platform/backend/internal/company/domain"
	"account-platform/backend/internal/db/sqlc/gen"
)

type PostgresRepository struct {
	queries *gen.Queries
}

// NewPostgresRepository returns a company repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{queries: gen.New(db)}
}

// GetByID returns the company for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	c, err := r.queries.GetCompany(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return genCompanyToDomain(&c), nil
}

// List returns companies with limit and offset, ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context, limit, offset int32) ([]*domain.Company, error) {
	list, err := r.queries.ListCompanies(ctx, gen.ListCompaniesParams{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Company, len(list))
	for i := range list {
		out[i] = genCompanyToDomain(&list[i])
	}
	return out, nil
}

// Create persists the company to the database. The company must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, c *domain.Company) error {
	_, err := r.queries.CreateCompany(ctx, gen.CreateCompanyParams{
		ID:        c.ID,
		Name:      c.Name,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
	})
	return err
}

// UpdateStatus transitions the company's status. Returns an error if the update fails.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	_, err := r.queries.UpdateCompanyStatus(ctx, gen.UpdateCompanyStatusParams{
		ID:     id,
		Status: string(status),
	})
	return err
}

func genCompanyToDomain(c *gen.Company) *domain.Company {
	if c == nil {
		return nil
	}
	return &domain.Company{
		ID:        c.ID,
		Name:      c.Name,
		Status:    domain.Status(c.Status),
		CreatedAt: c.CreatedAt,
	}
}
