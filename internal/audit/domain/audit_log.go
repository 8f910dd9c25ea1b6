package domain

import "time"

// AuditLog represents an audit event.
type AuditLog struct {
	ID        string
	UserID    string
	Action    string
	Resource  string
	Level     Level
	IP        string
	Metadata  string
	CreatedAt time.Time
}

// Level classifies the severity of an audit event.
type Level string

const (
	LevelInfo Level = "info"
	// LevelWarning marks anomalies such as a device change at refresh time.
	LevelWarning Level = "warning"
)
