package domain

import (
	"fmt"
	"time"
)

// Kind enumerates the token kinds issued by the platform.
type Kind string

const (
	KindEmailVerification Kind = "email_verification"
	KindPasswordReset     Kind = "password_reset"
	KindRefresh           Kind = "refresh"
)

// Status enumerates the consumption states of a one-time token.
type Status string

const (
	StatusPending    Status = "pending"
	StatusUsed       Status = "used"
	StatusDeprecated Status = "deprecated"
)

// Token represents a one-time-use credential persisted for later consumption.
// Value holds the plaintext for emailed tokens; refresh bearer material is
// stored separately as a hashed session and never lands in this record.
type Token struct {
	ID         string
	UserID     string
	Kind       Kind
	Value      string
	Status     Status
	ExpiresAt  time.Time
	ConsumedAt *time.Time // nil until consumed
	CreatedAt  time.Time
}

// Defaults carries the per-kind length and lifetime policy.
type Defaults struct {
	Length int
	TTL    time.Duration
}

// DefaultsFor returns the length and lifetime policy for kind. An unknown
// kind is a programmer error and panics.
func DefaultsFor(kind Kind) Defaults {
	switch kind {
	case KindEmailVerification:
		return Defaults{Length: 64, TTL: 48 * time.Hour}
	case KindPasswordReset:
		return Defaults{Length: 64, TTL: time.Hour}
	case KindRefresh:
		return Defaults{Length: 64, TTL: 30 * 24 * time.Hour}
	default:
		panic(fmt.Sprintf("unknown token kind %q", kind))
	}
}
