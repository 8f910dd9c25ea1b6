// Package middleware carries the HTTP middleware chain: request metadata
// capture, bearer-token authentication, and audit logging.
package middleware

import "context"

type contextKey struct{ name string }

var (
	identityKey = contextKey{"identity"}
	deviceKey   = contextKey{"device"}
)

// Identity is the authenticated caller, resolved from access-token claims.
type Identity struct {
	UserID string
	Email  string
	Role   string
	Status string
}

// Device is the caller's observed address and client, resolved from request
// headers before authentication runs.
type Device struct {
	IP        string
	UserAgent string
}

// WithIdentity returns a context carrying the authenticated identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// GetIdentity returns the identity from context and true if set.
func GetIdentity(ctx context.Context) (Identity, bool) {
	v, ok := ctx.Value(identityKey).(Identity)
	return v, ok
}

// WithDevice returns a context carrying the caller's device info.
func WithDevice(ctx context.Context, d Device) context.Context {
	return context.WithValue(ctx, deviceKey, d)
}

// GetDevice returns the device info from context and true if set.
func GetDevice(ctx context.Context) (Device, bool) {
	v, ok := ctx.Value(deviceKey).(Device)
	return v, ok
}

// ClientIP returns the device IP from context, or "unknown" when the request
// metadata middleware did not run. Shape matches audit.IPExtractor.
func ClientIP(ctx context.Context) string {
	if d, ok := GetDevice(ctx); ok && d.IP != "" {
		return d.IP
	}
	return "unknown"
}
