package repository

import (
	"context"
	"database/sql"
	"errors"

	"account-platform/backend/internal/credential/domain"
	"account-platform/backend/internal/db/sqlc/gen"
)

type PostgresRepository struct {
	queries *gen.Queries
}

// NewPostgresRepository returns a credential repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{queries: gen.New(db)}
}

// WithTx returns a repository bound to tx. The receiver is unchanged.
func (r *PostgresRepository) WithTx(tx *sql.Tx) Repository {
	return &PostgresRepository{queries: r.queries.WithTx(tx)}
}

// GetByUserAndProvider returns the credential for the given user and provider, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByUserAndProvider(ctx context.Context, userID string, provider domain.Provider) (*domain.Credential, error) {
	c, err := r.queries.GetCredentialByUserAndProvider(ctx, gen.GetCredentialByUserAndProviderParams{
		UserID:   userID,
		Provider: string(provider),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return genCredentialToDomain(&c), nil
}

// Create persists the credential to the database. The credential must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, c *domain.Credential) error {
	_, err := r.queries.CreateCredential(ctx, gen.CreateCredentialParams{
		ID:           c.ID,
		UserID:       c.UserID,
		Provider:     string(c.Provider),
		ProviderID:   c.ProviderID,
		PasswordHash: c.PasswordHash,
		CreatedAt:    c.CreatedAt,
	})
	return err
}

// UpdatePassword replaces the password hash for the user's credential with
// the given provider. Returns an error if the update fails.
func (r *PostgresRepository) UpdatePassword(ctx context.Context, userID string, provider domain.Provider, passwordHash string) error {
	_, err := r.queries.UpdateCredentialPassword(ctx, gen.UpdateCredentialPasswordParams{
		UserID:       userID,
		Provider:     string(provider),
		PasswordHash: passwordHash,
	})
	return err
}

func genCredentialToDomain(c *gen.Credential) *domain.Credential {
	if c == nil {
		return nil
	}
	return &domain.Credential{
		ID:           c.ID,
		UserID:       c.UserID,
		Provider:     domain.Provider(c.Provider),
		ProviderID:   c.ProviderID,
		PasswordHash: c.PasswordHash,
		CreatedAt:    c.CreatedAt,
	}
}
