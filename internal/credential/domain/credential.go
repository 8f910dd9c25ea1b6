package domain

import "time"

// Credential represents a user's login material for one provider.
type Credential struct {
	ID           string
	UserID       string
	Provider     Provider
	ProviderID   string // the email for local credentials
	PasswordHash string // empty if not local
	CreatedAt    time.Time
}

type Provider string

const (
	ProviderLocal Provider = "local"
	ProviderOIDC  Provider = "oidc"
)
