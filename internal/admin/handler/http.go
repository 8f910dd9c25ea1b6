// Package handler serves the /v1/admin routes: user management, company
// management, and audit log listing. Every route is guarded by a role check
// resolved from the access-token claims.
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	auditrepo "account-platform/backend/internal/audit/repository"
	companydomain "account-platform/backend/internal/company/domain"
	companyrepo "account-platform/backend/internal/company/repository"
	"account-platform/backend/internal/platform/rbac"
	"account-platform/backend/internal/server/respond"
	sessionrepo "account-platform/backend/internal/session/repository"
	userdomain "account-platform/backend/internal/user/domain"
	userrepo "account-platform/backend/internal/user/repository"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Handler serves the admin routes.
type Handler struct {
	users     userrepo.Repository
	companies companyrepo.Repository
	sessions  sessionrepo.Repository
	audits    auditrepo.Repository
}

// NewHandler returns an admin handler over the given repositories.
func NewHandler(users userrepo.Repository, companies companyrepo.Repository, sessions sessionrepo.Repository, audits auditrepo.Repository) *Handler {
	return &Handler{users: users, companies: companies, sessions: sessions, audits: audits}
}

// Register mounts the admin routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/admin/users", h.ListUsers)
	mux.HandleFunc("GET /v1/admin/users/{id}", h.GetUser)
	mux.HandleFunc("POST /v1/admin/users/{id}/suspend", h.SuspendUser)
	mux.HandleFunc("POST /v1/admin/users/{id}/reactivate", h.ReactivateUser)
	mux.HandleFunc("PUT /v1/admin/users/{id}/role", h.ChangeUserRole)
	mux.HandleFunc("GET /v1/admin/companies", h.ListCompanies)
	mux.HandleFunc("POST /v1/admin/companies", h.CreateCompany)
	mux.HandleFunc("GET /v1/admin/companies/{id}", h.GetCompany)
	mux.HandleFunc("POST /v1/admin/companies/{id}/suspend", h.SuspendCompany)
	mux.HandleFunc("GET /v1/admin/audit-logs", h.ListAuditLogs)
}

type userPayload struct {
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

type companyPayload struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type auditLogPayload struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Action    string    `json:"action"`
	Resource  string    `json:"resource"`
	Level     string    `json:"level"`
	IP        string    `json:"ip"`
	Metadata  string    `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if _, err := rbac.RequireAdmin(r.Context()); err != nil {
		writeGuardError(w, err)
		return
	}
	companyID := r.URL.Query().Get("companyId")
	if companyID == "" {
		respond.Error(w, http.StatusBadRequest, "invalid_request", "companyId query parameter is required")
		return
	}
	limit, offset := pagination(r)
	users, err := h.users.ListByCompany(r.Context(), companyID, limit, offset)
	if err != nil {
		writeInternal(w, "list users", err)
		return
	}
	out := make([]userPayload, 0, len(users))
	for _, u := range users {
		out = append(out, toUserPayload(u))
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"users": out})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	if _, err := rbac.RequireAdmin(r.Context()); err != nil {
		writeGuardError(w, err)
		return
	}
	u, err := h.users.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeInternal(w, "get user", err)
		return
	}
	if u == nil {
		respond.Error(w, http.StatusNotFound, "user_not_found", "user not found")
		return
	}
	respond.JSON(w, http.StatusOK, toUserPayload(u))
}

// SuspendUser sets the user's status to suspended and revokes every live
// refresh session, so a suspended account cannot keep refreshing.
func (h *Handler) SuspendUser(w http.ResponseWriter, r *http.Request) {
	if _, err := rbac.RequireAdmin(r.Context()); err != nil {
		writeGuardError(w, err)
		return
	}
	id := r.PathValue("id")
	u, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeInternal(w, "suspend user", err)
		return
	}
	if u == nil {
		respond.Error(w, http.StatusNotFound, "user_not_found", "user not found")
		return
	}
	if err := h.users.UpdateStatus(r.Context(), id, userdomain.StatusSuspended); err != nil {
		writeInternal(w, "suspend user", err)
		return
	}
	if err := h.sessions.RevokeAllByUser(r.Context(), id); err != nil {
		writeInternal(w, "suspend user", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "suspended"})
}

func (h *Handler) ReactivateUser(w http.ResponseWriter, r *http.Request) {
	if _, err := rbac.RequireAdmin(r.Context()); err != nil {
		writeGuardError(w, err)
		return
	}
	id := r.PathValue("id")
	u, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeInternal(w, "reactivate user", err)
		return
	}
	if u == nil {
		respond.Error(w, http.StatusNotFound, "user_not_found", "user not found")
		return
	}
	if err := h.users.UpdateStatus(r.Context(), id, userdomain.StatusActive); err != nil {
		writeInternal(w, "reactivate user", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "active"})
}

// ChangeUserRole requires the owner role: admins must not be able to
// promote themselves or each other.
func (h *Handler) ChangeUserRole(w http.ResponseWriter, r *http.Request) {
	if _, err := rbac.RequireOwner(r.Context()); err != nil {
		writeGuardError(w, err)
		return
	}
	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}
	role := userdomain.Role(req.Role)
	if !userdomain.ValidRole(role) {
		respond.Error(w, http.StatusBadRequest, "invalid_request", "unknown role")
		return
	}
	id := r.PathValue("id")
	u, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeInternal(w, "change role", err)
		return
	}
	if u == nil {
		respond.Error(w, http.StatusNotFound, "user_not_found", "user not found")
		return
	}
	if err := h.users.UpdateRole(r.Context(), id, role); err != nil {
		writeInternal(w, "change role", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"role": req.Role})
}

func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	if _, err := rbac.RequireAdmin(r.Context()); err != nil {
		writeGuardError(w, err)
		return
	}
	limit, offset := pagination(r)
	companies, err := h.companies.List(r.Context(), limit, offset)
	if err != nil {
		writeInternal(w, "list companies", err)
		return
	}
	out := make([]companyPayload, 0, len(companies))
	for _, c := range companies {
		out = append(out, toCompanyPayload(c))
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"companies": out})
}

func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	if _, err := rbac.RequireOwner(r.Context()); err != nil {
		writeGuardError(w, err)
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}
	c := &companydomain.Company{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Status:    companydomain.StatusActive,
		CreatedAt: time.Now().UTC(),
	}
	if err := c.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := h.companies.Create(r.Context(), c); err != nil {
		writeInternal(w, "create company", err)
		return
	}
	respond.JSON(w, http.StatusCreated, toCompanyPayload(c))
}

func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	if _, err := rbac.RequireAdmin(r.Context()); err != nil {
		writeGuardError(w, err)
		return
	}
	c, err := h.companies.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeInternal(w, "get company", err)
		return
	}
	if c == nil {
		respond.Error(w, http.StatusNotFound, "company_not_found", "company not found")
		return
	}
	respond.JSON(w, http.StatusOK, toCompanyPayload(c))
}

func (h *Handler) SuspendCompany(w http.ResponseWriter, r *http.Request) {
	if _, err := rbac.RequireOwner(r.Context()); err != nil {
		writeGuardError(w, err)
		return
	}
	id := r.PathValue("id")
	c, err := h.companies.GetByID(r.Context(), id)
	if err != nil {
		writeInternal(w, "suspend company", err)
		return
	}
	if c == nil {
		respond.Error(w, http.StatusNotFound, "company_not_found", "company not found")
		return
	}
	if err := h.companies.UpdateStatus(r.Context(), id, companydomain.StatusSuspended); err != nil {
		writeInternal(w, "suspend company", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "suspended"})
}

func (h *Handler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	if _, err := rbac.RequireAdmin(r.Context()); err != nil {
		writeGuardError(w, err)
		return
	}
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		respond.Error(w, http.StatusBadRequest, "invalid_request", "userId query parameter is required")
		return
	}
	limit, offset := pagination(r)
	logs, err := h.audits.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		writeInternal(w, "list audit logs", err)
		return
	}
	out := make([]auditLogPayload, 0, len(logs))
	for _, a := range logs {
		out = append(out, auditLogPayload{
			ID:        a.ID,
			UserID:    a.UserID,
			Action:    a.Action,
			Resource:  a.Resource,
			Level:     string(a.Level),
			IP:        a.IP,
			Metadata:  a.Metadata,
			CreatedAt: a.CreatedAt,
		})
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"auditLogs": out})
}

func toUserPayload(u *userdomain.User) userPayload {
	return userPayload{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Locale:    u.Locale,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
	}
}

func toCompanyPayload(c *companydomain.Company) companyPayload {
	return companyPayload{
		ID:        c.ID,
		Name:      c.Name,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
	}
}

func pagination(r *http.Request) (limit, offset int32) {
	limit = defaultPageSize
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			if n > maxPageSize {
				n = maxPageSize
			}
			limit = int32(n)
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = int32(n)
		}
	}
	return limit, offset
}

func writeGuardError(w http.ResponseWriter, err error) {
	if errors.Is(err, rbac.ErrPermissionDenied) {
		respond.Error(w, http.StatusForbidden, "forbidden", "insufficient role")
		return
	}
	respond.Error(w, http.StatusUnauthorized, "unauthorized", "authentication required")
}

func writeInternal(w http.ResponseWriter, op string, err error) {
	log.Printf("admin: %s: %v", op, err)
	respond.Error(w, http.StatusInternalServerError, "internal", "internal error")
}
