// Package token mints the random credentials used across the auth flows and
// binds each kind to its default length and lifetime.
package token

import (
	"time"

	"account-platform/backend/internal/security"
	"account-platform/backend/internal/token/domain"
)

// Minted is a plain token for one-time, emailed use. Value is the plaintext
// that is both persisted and delivered to the user.
type Minted struct {
	Kind      domain.Kind
	Value     string
	ExpiresAt time.Time
}

// MintedHashed is bearer material for refresh sessions. Raw goes back to the
// client; only Hash is ever persisted.
type MintedHashed struct {
	Kind      domain.Kind
	Raw       string
	Hash      string
	ExpiresAt time.Time
}

// Option overrides the per-kind defaults. Intended for tests; production
// call sites use the defaults.
type Option func(*domain.Defaults)

// WithLength overrides the token length in hex characters.
func WithLength(n int) Option {
	return func(d *domain.Defaults) { d.Length = n }
}

// WithTTL overrides the token lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(d *domain.Defaults) { d.TTL = ttl }
}

// Mint generates a plain token of the given kind using the kind's defaults.
// Unknown kind panics.
func Mint(kind domain.Kind, opts ...Option) (Minted, error) {
	d := domain.DefaultsFor(kind)
	for _, opt := range opts {
		opt(&d)
	}
	value, expiresAt, err := security.GenerateTokenWithExpiry(d.Length, d.TTL)
	if err != nil {
		return Minted{}, err
	}
	return Minted{Kind: kind, Value: value, ExpiresAt: expiresAt}, nil
}

// MintHashed generates a bearer token of the given kind and returns both the
// raw value and its hash. Unknown kind panics.
func MintHashed(kind domain.Kind, opts ...Option) (MintedHashed, error) {
	m, err := Mint(kind, opts...)
	if err != nil {
		return MintedHashed{}, err
	}
	return MintedHashed{
		Kind:      m.Kind,
		Raw:       m.Value,
		Hash:      security.HashToken(m.Value),
		ExpiresAt: m.ExpiresAt,
	}, nil
}
