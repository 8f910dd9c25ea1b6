package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	auditdomain "account-platform/backend/internal/audit/domain"
	companydomain "account-platform/backend/internal/company/domain"
	"account-platform/backend/internal/server/middleware"
	sessiondomain "account-platform/backend/internal/session/domain"
	sessionrepo "account-platform/backend/internal/session/repository"
	userdomain "account-platform/backend/internal/user/domain"
	userrepo "account-platform/backend/internal/user/repository"
)

type memUserRepo struct {
	mu   sync.Mutex
	byID map[string]*userdomain.User
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*userdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id], nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	return nil, nil
}

func (r *memUserRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int32) ([]*userdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*userdomain.User
	for _, u := range r.byID {
		if u.CompanyID == companyID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUserRepo) Create(ctx context.Context, u *userdomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[u.ID] = u
	return nil
}

func (r *memUserRepo) UpdateStatus(ctx context.Context, id string, status userdomain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		u.Status = status
	}
	return nil
}

func (r *memUserRepo) UpdateRole(ctx context.Context, id string, role userdomain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		u.Role = role
	}
	return nil
}

func (r *memUserRepo) WithTx(tx *sql.Tx) userrepo.Repository { return r }

type memCompanyRepo struct {
	mu   sync.Mutex
	byID map[string]*companydomain.Company
}

func (r *memCompanyRepo) GetByID(ctx context.Context, id string) (*companydomain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id], nil
}

func (r *memCompanyRepo) List(ctx context.Context, limit, offset int32) ([]*companydomain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*companydomain.Company
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}

func (r *memCompanyRepo) Create(ctx context.Context, c *companydomain.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[c.ID] = c
	return nil
}

func (r *memCompanyRepo) UpdateStatus(ctx context.Context, id string, status companydomain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.byID[id]; ok {
		c.Status = status
	}
	return nil
}

type memSessionRepo struct {
	mu      sync.Mutex
	revoked []string
}

func (r *memSessionRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*sessiondomain.RefreshSession, error) {
	return nil, nil
}

func (r *memSessionRepo) Create(ctx context.Context, s *sessiondomain.RefreshSession) error {
	return nil
}

func (r *memSessionRepo) RevokeByTokenHash(ctx context.Context, tokenHash string) error { return nil }

func (r *memSessionRepo) RevokeAllByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked = append(r.revoked, userID)
	return nil
}

func (r *memSessionRepo) WithTx(tx *sql.Tx) sessionrepo.Repository { return r }

type memAuditRepo struct {
	mu      sync.Mutex
	entries []*auditdomain.AuditLog
}

func (r *memAuditRepo) ListByUser(ctx context.Context, userID string, limit, offset int32) ([]*auditdomain.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*auditdomain.AuditLog
	for _, a := range r.entries {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAuditRepo) Create(ctx context.Context, a *auditdomain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, a)
	return nil
}

type env struct {
	users     *memUserRepo
	companies *memCompanyRepo
	sessions  *memSessionRepo
	audits    *memAuditRepo
	mux       *http.ServeMux
}

func newEnv() *env {
	e := &env{
		users:     &memUserRepo{byID: map[string]*userdomain.User{}},
		companies: &memCompanyRepo{byID: map[string]*companydomain.Company{}},
		sessions:  &memSessionRepo{},
		audits:    &memAuditRepo{},
	}
	e.mux = http.NewServeMux()
	NewHandler(e.users, e.companies, e.sessions, e.audits).Register(e.mux)
	return e
}

func (e *env) seedUser(id, companyID string, role userdomain.Role, status userdomain.Status) {
	e.users.byID[id] = &userdomain.User{
		ID:        id,
		CompanyID: companyID,
		Email:     id + "@example.com",
		FirstName: "User",
		Locale:    "en",
		Role:      role,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
}

func asRole(r *http.Request, role string) *http.Request {
	ctx := middleware.WithIdentity(r.Context(), middleware.Identity{
		UserID: "caller", Email: "caller@example.com", Role: role, Status: "active",
	})
	return r.WithContext(ctx)
}

func (e *env) do(r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, r)
	return rec
}

func TestListUsers(t *testing.T) {
	e := newEnv()
	e.seedUser("u1", "c1", userdomain.RoleMember, userdomain.StatusActive)
	e.seedUser("u2", "c2", userdomain.RoleMember, userdomain.StatusActive)

	t.Run("requires auth", func(t *testing.T) {
		rec := e.do(httptest.NewRequest(http.MethodGet, "/v1/admin/users?companyId=c1", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("member forbidden", func(t *testing.T) {
		rec := e.do(asRole(httptest.NewRequest(http.MethodGet, "/v1/admin/users?companyId=c1", nil), "member"))
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("missing companyId", func(t *testing.T) {
		rec := e.do(asRole(httptest.NewRequest(http.MethodGet, "/v1/admin/users", nil), "admin"))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("filters by company", func(t *testing.T) {
		rec := e.do(asRole(httptest.NewRequest(http.MethodGet, "/v1/admin/users?companyId=c1", nil), "admin"))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "u1@example.com") || strings.Contains(rec.Body.String(), "u2@example.com") {
			t.Errorf("body = %s", rec.Body.String())
		}
	})
}

func TestGetUser_NotFound(t *testing.T) {
	e := newEnv()
	rec := e.do(asRole(httptest.NewRequest(http.MethodGet, "/v1/admin/users/ghost", nil), "admin"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestSuspendUser_RevokesSessions(t *testing.T) {
	e := newEnv()
	e.seedUser("u1", "c1", userdomain.RoleMember, userdomain.StatusActive)

	rec := e.do(asRole(httptest.NewRequest(http.MethodPost, "/v1/admin/users/u1/suspend", nil), "admin"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if e.users.byID["u1"].Status != userdomain.StatusSuspended {
		t.Error("user should be suspended")
	}
	if len(e.sessions.revoked) != 1 || e.sessions.revoked[0] != "u1" {
		t.Errorf("revoked = %v, want [u1]", e.sessions.revoked)
	}
}

func TestReactivateUser(t *testing.T) {
	e := newEnv()
	e.seedUser("u1", "c1", userdomain.RoleMember, userdomain.StatusSuspended)

	rec := e.do(asRole(httptest.NewRequest(http.MethodPost, "/v1/admin/users/u1/reactivate", nil), "admin"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if e.users.byID["u1"].Status != userdomain.StatusActive {
		t.Error("user should be active")
	}
}

func TestChangeUserRole(t *testing.T) {
	e := newEnv()
	e.seedUser("u1", "c1", userdomain.RoleMember, userdomain.StatusActive)

	t.Run("admin forbidden", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPut, "/v1/admin/users/u1/role", strings.NewReader(`{"role":"admin"}`))
		rec := e.do(asRole(r, "admin"))
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("owner promotes", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPut, "/v1/admin/users/u1/role", strings.NewReader(`{"role":"admin"}`))
		rec := e.do(asRole(r, "owner"))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		if e.users.byID["u1"].Role != userdomain.RoleAdmin {
			t.Errorf("role = %q", e.users.byID["u1"].Role)
		}
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPut, "/v1/admin/users/u1/role", strings.NewReader(`{"role":"root"}`))
		rec := e.do(asRole(r, "owner"))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestCompanies(t *testing.T) {
	e := newEnv()

	t.Run("create requires owner", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/v1/admin/companies", strings.NewReader(`{"name":"Acme"}`))
		rec := e.do(asRole(r, "admin"))
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("owner creates", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/v1/admin/companies", strings.NewReader(`{"name":"Acme"}`))
		rec := e.do(asRole(r, "owner"))
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		if len(e.companies.byID) != 1 {
			t.Fatalf("companies = %d, want 1", len(e.companies.byID))
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/v1/admin/companies", strings.NewReader(`{"name":""}`))
		rec := e.do(asRole(r, "owner"))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("suspend", func(t *testing.T) {
		var id string
		for k := range e.companies.byID {
			id = k
		}
		rec := e.do(asRole(httptest.NewRequest(http.MethodPost, "/v1/admin/companies/"+id+"/suspend", nil), "owner"))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if e.companies.byID[id].Status != companydomain.StatusSuspended {
			t.Error("company should be suspended")
		}
	})

	t.Run("get unknown", func(t *testing.T) {
		rec := e.do(asRole(httptest.NewRequest(http.MethodGet, "/v1/admin/companies/ghost", nil), "admin"))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}

func TestListAuditLogs(t *testing.T) {
	e := newEnv()
	e.audits.entries = []*auditdomain.AuditLog{
		{ID: "a1", UserID: "u1", Action: "login", Resource: "auth", Level: auditdomain.LevelInfo, CreatedAt: time.Now().UTC()},
		{ID: "a2", UserID: "u2", Action: "login", Resource: "auth", Level: auditdomain.LevelInfo, CreatedAt: time.Now().UTC()},
	}

	rec := e.do(asRole(httptest.NewRequest(http.MethodGet, "/v1/admin/audit-logs?userId=u1", nil), "admin"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"a1"`) || strings.Contains(rec.Body.String(), `"a2"`) {
		t.Errorf("body = %s", rec.Body.String())
	}

	rec = e.do(asRole(httptest.NewRequest(http.MethodGet, "/v1/admin/audit-logs", nil), "admin"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing userId status = %d, want 400", rec.Code)
	}
}

func TestPagination(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/admin/users?limit=500&offset=20", nil)
	limit, offset := pagination(r)
	if limit != maxPageSize {
		t.Errorf("limit = %d, want clamped to %d", limit, maxPageSize)
	}
	if offset != 20 {
		t.Errorf("offset = %d", offset)
	}

	r = httptest.NewRequest(http.MethodGet, "/v1/admin/users", nil)
	limit, offset = pagination(r)
	if limit != defaultPageSize || offset != 0 {
		t.Errorf("defaults = %d/%d", limit, offset)
	}
}
