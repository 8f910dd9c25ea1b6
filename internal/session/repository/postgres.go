package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"account-platform/backend/internal/db/sqlc/gen"
	"account-platform/backend/internal/session/domain"
)

type PostgresRepository struct {
	queries *gen.Queries
}

// NewPostgresRepository returns a refresh session repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{queries: gen.New(db)}
}

// WithTx returns a repository bound to tx. The receiver is unchanged.
func (r *PostgresRepository) WithTx(tx *sql.Tx) Repository {
	return &PostgresRepository{queries: r.queries.WithTx(tx)}
}

// GetByTokenHash returns the session matching the hash, or nil if not found.
// The query locks the row with FOR UPDATE; the lock only outlives the
// statement when called through WithTx, which is how rotation re-checks the
// session so two concurrent rotations serialize.
func (r *PostgresRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshSession, error) {
	s, err := r.queries.GetRefreshSessionByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return genSessionToDomain(&s), nil
}

// Create persists the session to the database. The session must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, s *domain.RefreshSession) error {
	_, err := r.queries.CreateRefreshSession(ctx, gen.CreateRefreshSessionParams{
		ID:        s.ID,
		UserID:    s.UserID,
		TokenHash: s.TokenHash,
		IpAddress: s.IPAddress,
		UserAgent: s.UserAgent,
		ExpiresAt: s.ExpiresAt,
		RevokedAt: timeToNullTime(s.RevokedAt),
		CreatedAt: s.CreatedAt,
	})
	return err
}

// RevokeByTokenHash marks the session with the given hash as revoked.
// Already-revoked sessions are left untouched.
func (r *PostgresRepository) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	_, err := r.queries.RevokeRefreshSessionByTokenHash(ctx, gen.RevokeRefreshSessionByTokenHashParams{
		TokenHash: tokenHash,
		RevokedAt: sql.NullTime{Time: time.Now().UTC(), Valid: true},
	})
	return err
}

// RevokeAllByUser revokes every live session for the user. Used by logout
// and by admin suspension.
func (r *PostgresRepository) RevokeAllByUser(ctx context.Context, userID string) error {
	_, err := r.queries.RevokeAllRefreshSessionsByUser(ctx, gen.RevokeAllRefreshSessionsByUserParams{
		UserID:    userID,
		RevokedAt: sql.NullTime{Time: time.Now().UTC(), Valid: true},
	})
	return err
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

func genSessionToDomain(s *gen.RefreshSession) *domain.RefreshSession {
	if s == nil {
		return nil
	}
	return &domain.RefreshSession{
		ID:        s.ID,
		UserID:    s.UserID,
		TokenHash: s.TokenHash,
		IPAddress: s.IpAddress,
		UserAgent: s.UserAgent,
		ExpiresAt: s.ExpiresAt,
		RevokedAt: nullTimeToPtr(s.RevokedAt),
		CreatedAt: s.CreatedAt,
	}
}
