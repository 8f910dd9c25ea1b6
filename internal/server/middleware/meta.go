package middleware

import (
	"net"
	"net/http"
	"strings"
)

// RequestMeta resolves the client IP and user-agent from the request and
// stores them in context as Device. Runs first in the chain so every later
// stage, including unauthenticated auth flows, sees the same device info.
func RequestMeta(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d := Device{
			IP:        clientIPFromRequest(r),
			UserAgent: r.UserAgent(),
		}
		next.ServeHTTP(w, r.WithContext(WithDevice(r.Context(), d)))
	})
}

// clientIPFromRequest prefers X-Forwarded-For (first hop), then X-Real-IP,
// then the connection's remote address.
func clientIPFromRequest(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); v != "" {
		if i := strings.Index(v, ","); i > 0 {
			v = strings.TrimSpace(v[:i])
		}
		if v != "" {
			return v
		}
	}
	if v := strings.TrimSpace(r.Header.Get("X-Real-IP")); v != "" {
		return v
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
