package domain

import (
	"errors"
	"time"
)

// Company represents a customer account grouping users.
type Company struct {
	ID        string
	Name      string
	Status    Status
	CreatedAt time.Time
}

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// Validate validates the company for persistence. Returns an error describing the first validation failure.
func (c *Company) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.Status == "" {
		c.Status = StatusActive
	}
	return nil
}
