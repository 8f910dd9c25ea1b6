package domain

import (
	"errors"
	"time"
)

// User is the core account entity.
type User struct {
	ID        string
	CompanyID string // empty for users not attached to a company
	Email     string
	FirstName string
	LastName  string // optional
	Locale    string
	Role      Role
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
	RoleOwner  Role = "owner"
)

type Status string

const (
	// StatusNew is the state between signup and email verification.
	StatusNew       Status = "new"
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleMember, RoleAdmin, RoleOwner:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusNew, StatusActive, StatusSuspended:
		return true
	}
	return false
}

// Validate validates the user for persistence. Returns an error describing
// the first validation failure.
func (u *User) Validate() error {
	if u.Email == "" {
		return errors.New("email is required")
	}
	if u.FirstName == "" {
		return errors.New("first name is required")
	}
	if u.Role == "" {
		u.Role = RoleMember
	}
	if !ValidRole(u.Role) {
		return errors.New("unknown role")
	}
	if u.Status == "" {
		u.Status = StatusNew
	}
	if !ValidStatus(u.Status) {
		return errors.New("unknown status")
	}
	if u.Locale == "" {
		u.Locale = "en"
	}
	return nil
}
