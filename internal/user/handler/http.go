// Package handler serves the authenticated user's own profile.
package handler

import (
	"log"
	"net/http"
	"time"

	"account-platform/backend/internal/server/middleware"
	"account-platform/backend/internal/server/respond"
	userrepo "account-platform/backend/internal/user/repository"
)

// Handler serves /v1/me.
type Handler struct {
	users userrepo.Repository
}

// NewHandler returns a user handler over the given repository.
func NewHandler(users userrepo.Repository) *Handler {
	return &Handler{users: users}
}

// Register mounts the user routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/me", h.Me)
}

type mePayload struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId,omitempty"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName,omitempty"`
	Locale    string    `json:"locale"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Me returns the caller's current profile from storage, not from the token,
// so status and role changes since issuance are visible.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok || id.UserID == "" {
		respond.Error(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	u, err := h.users.GetByID(r.Context(), id.UserID)
	if err != nil {
		log.Printf("user: get profile: %v", err)
		respond.Error(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}
	if u == nil {
		respond.Error(w, http.StatusNotFound, "user_not_found", "user not found")
		return
	}
	respond.JSON(w, http.StatusOK, mePayload{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Locale:    u.Locale,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
	})
}
