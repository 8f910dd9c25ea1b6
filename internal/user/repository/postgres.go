package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"account-platform/backend/internal/db/sqlc/gen"
	"account-platform/backend/internal/user/domain"
)

type PostgresRepository struct {
	queries *gen.Queries
}

// NewPostgresRepository returns a user repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{queries: gen.New(db)}
}

// WithTx returns a repository bound to tx. The receiver is unchanged.
func (r *PostgresRepository) WithTx(tx *sql.Tx) Repository {
	return &PostgresRepository{queries: r.queries.WithTx(tx)}
}

// GetByID returns the user for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := r.queries.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return genUserToDomain(&u), nil
}

// GetByEmail returns the user with the given email, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := r.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return genUserToDomain(&u), nil
}

// ListByCompany returns users for the company with limit and offset, ordered by creation time.
func (r *PostgresRepository) ListByCompany(ctx context.Context, companyID string, limit, offset int32) ([]*domain.User, error) {
	list, err := r.queries.ListUsersByCompany(ctx, gen.ListUsersByCompanyParams{
		CompanyID: sql.NullString{String: companyID, Valid: companyID != ""},
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*domain.User, len(list))
	for i := range list {
		out[i] = genUserToDomain(&list[i])
	}
	return out, nil
}

// Create persists the user to the database. The user must have ID set; it is not assigned by this method.
func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	_, err := r.queries.CreateUser(ctx, gen.CreateUserParams{
		ID:        u.ID,
		CompanyID: sql.NullString{String: u.CompanyID, Valid: u.CompanyID != ""},
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  sql.NullString{String: u.LastName, Valid: u.LastName != ""},
		Locale:    u.Locale,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	})
	return err
}

// UpdateStatus transitions the user's status. Returns an error if the update fails.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	_, err := r.queries.UpdateUserStatus(ctx, gen.UpdateUserStatusParams{
		ID:        id,
		Status:    string(status),
		UpdatedAt: time.Now().UTC(),
	})
	return err
}

// UpdateRole changes the user's role. Returns an error if the update fails.
func (r *PostgresRepository) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	_, err := r.queries.UpdateUserRole(ctx, gen.UpdateUserRoleParams{
		ID:        id,
		Role:      string(role),
		UpdatedAt: time.Now().UTC(),
	})
	return err
}

func genUserToDomain(u *gen.User) *domain.User {
	if u == nil {
		return nil
	}
	companyID := ""
	if u.CompanyID.Valid {
		companyID = u.CompanyID.String
	}
	lastName := ""
	if u.LastName.Valid {
		lastName = u.LastName.String
	}
	return &domain.User{
		ID:        u.ID,
		CompanyID: companyID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  lastName,
		Locale:    u.Locale,
		Role:      domain.Role(u.Role),
		Status:    domain.Status(u.Status),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
