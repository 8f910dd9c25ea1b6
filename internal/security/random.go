package security

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// GenerateToken returns a cryptographically random token of length hex
// characters. length must be even and positive.
func GenerateToken(length int) (string, error) {
	b := make([]byte, length/2)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateTokenWithExpiry returns a random token plus its expiry computed
// from now (UTC) and ttl.
func GenerateTokenWithExpiry(length int, ttl time.Duration) (string, time.Time, error) {
	token, err := GenerateToken(length)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, time.Now().UTC().Add(ttl), nil
}
