// Package server assembles the HTTP route tree and middleware chain.
package server

import (
	"net/http"

	adminhandler "account-platform/backend/internal/admin/handler"
	auditrepo "account-platform/backend/internal/audit/repository"
	authhandler "account-platform/backend/internal/auth/handler"
	companyrepo "account-platform/backend/internal/company/repository"
	healthhandler "account-platform/backend/internal/health/handler"
	"account-platform/backend/internal/security"
	"account-platform/backend/internal/server/middleware"
	sessionrepo "account-platform/backend/internal/session/repository"
	userhandler "account-platform/backend/internal/user/handler"
	userrepo "account-platform/backend/internal/user/repository"
)

// Deps holds the dependencies for the HTTP route tree.
type Deps struct {
	// Auth is the auth service behind the /v1/auth routes.
	Auth authhandler.AuthFlows
	// Tokens validates access tokens on protected routes.
	Tokens *security.TokenProvider
	// UserRepo backs /v1/me and admin user management.
	UserRepo userrepo.Repository
	// CompanyRepo backs admin company management.
	CompanyRepo companyrepo.Repository
	// SessionRepo lets admin suspension revoke live sessions.
	SessionRepo sessionrepo.Repository
	// AuditRepo backs the audit middleware and the admin audit listing. If
	// nil, protected requests are not audited.
	AuditRepo auditrepo.Repository
	// HealthPinger is used for readiness (e.g. *sql.DB). If nil, the health
	// endpoint skips the DB ping.
	HealthPinger healthhandler.Pinger
	// CookieSecure controls the Secure flag on the refresh cookie.
	CookieSecure bool
}

// auditSkipPaths are audited-subtree paths excluded from audit records.
var auditSkipPaths = map[string]bool{
	"/v1/admin/audit-logs": true,
}

// NewHandler builds the route tree: public auth and health routes, and a
// bearer-protected subtree for /v1/me and /v1/admin with audit logging.
// Request metadata capture wraps everything so the auth flows see device
// info too.
func NewHandler(deps Deps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthhandler.NewHandler(deps.HealthPinger).Check)
	authhandler.NewHandler(deps.Auth, deps.CookieSecure).Register(mux)

	protected := http.NewServeMux()
	userhandler.NewHandler(deps.UserRepo).Register(protected)
	adminhandler.NewHandler(deps.UserRepo, deps.CompanyRepo, deps.SessionRepo, deps.AuditRepo).Register(protected)

	var guarded http.Handler = protected
	if deps.AuditRepo != nil {
		guarded = middleware.Audit(deps.AuditRepo, auditSkipPaths)(guarded)
	}
	guarded = middleware.RequireAuth(deps.Tokens)(guarded)

	mux.Handle("/v1/me", guarded)
	mux.Handle("/v1/admin/", guarded)

	return middleware.RequestMeta(mux)
}
