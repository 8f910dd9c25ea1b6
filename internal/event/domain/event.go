package domain

import "time"

// Event represents a security event emitted by the auth flows (signup,
// login, refresh, device change). Events flow to OTel logs and to Kafka for
// the Loki forwarder; they are not the audit trail, which is persisted
// separately.
type Event struct {
	UserID    string    `json:"userId,omitempty"`
	SessionID string    `json:"sessionId,omitempty"`
	EventType string    `json:"eventType"`
	Source    string    `json:"source"`
	IP        string    `json:"ip,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	Metadata  []byte    `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Well-known event types.
const (
	TypeSignup                 = "signup"
	TypeEmailVerified          = "email_verified"
	TypeLoginSuccess           = "login_success"
	TypeLoginFailure           = "login_failure"
	TypeLogout                 = "logout"
	TypeTokenRefreshed         = "token_refreshed"
	TypeDeviceChange           = "device_change"
	TypePasswordResetRequested = "password_reset_requested"
	TypePasswordResetCompleted = "password_reset_completed"
)
