package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"account-platform/backend/internal/db/sqlc/gen"
	"account-platform/backend/internal/token/domain"
)

type PostgresRepository struct {
	queries *gen.Queries
}

// NewPostgresRepository returns a token repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{queries: gen.New(db)}
}

// WithTx returns a repository bound to tx. The receiver is unchanged.
func (r *PostgresRepository) WithTx(tx *sql.Tx) Repository {
	return &PostgresRepository{queries: r.queries.WithTx(tx)}
}

// GetByValue returns the token matching the raw value, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByValue(ctx context.Context, value string) (*domain.Token, error) {
	t, err := r.queries.GetTokenByValue(ctx, value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return genTokenToDomain(&t), nil
}

// Create persists the token to the database. The token must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, t *domain.Token) error {
	_, err := r.queries.CreateToken(ctx, gen.CreateTokenParams{
		ID:         t.ID,
		UserID:     t.UserID,
		Kind:       string(t.Kind),
		Token:      t.Value,
		Status:     string(t.Status),
		ExpiresAt:  t.ExpiresAt,
		ConsumedAt: timeToNullTime(t.ConsumedAt),
		CreatedAt:  t.CreatedAt,
	})
	return err
}

// DeprecatePending marks all pending tokens of the given kind for the user as
// deprecated, so only the most recently minted one stays redeemable.
func (r *PostgresRepository) DeprecatePending(ctx context.Context, userID string, kind domain.Kind) error {
	_, err := r.queries.DeprecatePendingTokens(ctx, gen.DeprecatePendingTokensParams{
		UserID: userID,
		Kind:   string(kind),
	})
	return err
}

// Consume transitions the token from pending to used and stamps consumed-at.
// Returns domain.ErrTokenAlreadyUsed if the token was not pending.
func (r *PostgresRepository) Consume(ctx context.Context, id string, at time.Time) error {
	n, err := r.queries.ConsumeToken(ctx, gen.ConsumeTokenParams{
		ID:         id,
		ConsumedAt: sql.NullTime{Time: at, Valid: true},
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrTokenAlreadyUsed
	}
	return nil
}

func timeToNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullTimeToPtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	return &n.Time
}

func genTokenToDomain(t *gen.Token) *domain.Token {
	if t == nil {
		return nil
	}
	return &domain.Token{
		ID:         t.ID,
		UserID:     t.UserID,
		Kind:       domain.Kind(t.Kind),
		Value:      t.Token,
		Status:     domain.Status(t.Status),
		ExpiresAt:  t.ExpiresAt,
		ConsumedAt: nullTimeToPtr(t.ConsumedAt),
		CreatedAt:  t.CreatedAt,
	}
}
