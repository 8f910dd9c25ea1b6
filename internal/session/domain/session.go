package domain

import "time"

// RefreshSession is a long-lived bearer credential bound to a device. The
// raw token is known only to the client; TokenHash is the only stored form.
type RefreshSession struct {
	ID        string
	UserID    string
	TokenHash string
	IPAddress string
	UserAgent string
	ExpiresAt time.Time
	RevokedAt *time.Time // nil when not revoked
	CreatedAt time.Time
}

// Revoked reports whether the session has been revoked.
func (s *RefreshSession) Revoked() bool {
	return s.RevokedAt != nil
}

// Expired reports whether the session's expiry has passed at now.
func (s *RefreshSession) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
