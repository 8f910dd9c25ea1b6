package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrTokenNotFound is returned when no record matches the presented value.
	ErrTokenNotFound = errors.New("token not found")
	// ErrTokenAlreadyUsed is returned when the record was already consumed.
	ErrTokenAlreadyUsed = errors.New("token already used")
	// ErrTokenDeprecated is returned when a newer token of the same kind superseded this one.
	ErrTokenDeprecated = errors.New("token deprecated")
	// ErrTokenExpired is returned when the record's expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenTypeMismatch is the sentinel wrapped by KindMismatchError.
	ErrTokenTypeMismatch = errors.New("token type mismatch")
)

// KindMismatchError reports a token presented to a flow expecting a
// different kind. It unwraps to ErrTokenTypeMismatch.
type KindMismatchError struct {
	Expected Kind
	Actual   Kind
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("token type mismatch: want %s, got %s", e.Expected, e.Actual)
}

func (e *KindMismatchError) Unwrap() error { return ErrTokenTypeMismatch }

// Validate runs the consumption-state checks on a fetched token record, in
// order: existence, not used, not deprecated, not expired, kind match. The
// first failure wins. Both status and consumed-at are checked for "used" so
// an inconsistent record is still rejected. Pure function; callers mutate
// state only after it returns nil.
func Validate(t *Token, expected Kind, now time.Time) error {
	if t == nil {
		return ErrTokenNotFound
	}
	if t.Status == StatusUsed || t.ConsumedAt != nil {
		return ErrTokenAlreadyUsed
	}
	if t.Status == StatusDeprecated {
		return ErrTokenDeprecated
	}
	if !t.ExpiresAt.After(now) {
		return ErrTokenExpired
	}
	if t.Kind != expected {
		return &KindMismatchError{Expected: expected, Actual: t.Kind}
	}
	return nil
}
