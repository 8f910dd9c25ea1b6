// Package handler serves the health endpoint for load balancers and
// orchestration probes.
package handler

import (
	"context"
	"net/http"
	"time"

	"account-platform/backend/internal/server/respond"
)

// Pinger checks connectivity to a dependency. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

const pingTimeout = 2 * time.Second

// Handler reports service and database health.
type Handler struct {
	db Pinger
}

// NewHandler returns a health handler. db may be nil; then only process
// liveness is reported.
func NewHandler(db Pinger) *Handler {
	return &Handler{db: db}
}

// Check responds 200 with component statuses, or 503 when the database is
// unreachable.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	dbStatus := "ok"
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			status = http.StatusServiceUnavailable
			dbStatus = "unavailable"
		}
	}
	respond.JSON(w, status, map[string]string{
		"status":   statusWord(status),
		"database": dbStatus,
	})
}

func statusWord(status int) string {
	if status == http.StatusOK {
		return "ok"
	}
	return "degraded"
}
