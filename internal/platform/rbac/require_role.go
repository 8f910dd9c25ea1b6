// Package rbac provides role guards for admin endpoints, resolved from the
// access-token claims in request context. No repository lookup is needed:
// the role travels in the signed token and was current at issuance.
package rbac

import (
	"context"
	"errors"

	"account-platform/backend/internal/server/middleware"
	"account-platform/backend/internal/user/domain"
)

var (
	// ErrUnauthenticated is returned when no identity is present in context.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrPermissionDenied is returned when the caller's role is insufficient.
	ErrPermissionDenied = errors.New("insufficient role")
)

// RequireAdmin ensures the caller is authenticated with role admin or owner.
// Returns the caller identity on success.
func RequireAdmin(ctx context.Context) (middleware.Identity, error) {
	id, ok := middleware.GetIdentity(ctx)
	if !ok || id.UserID == "" {
		return middleware.Identity{}, ErrUnauthenticated
	}
	role := domain.Role(id.Role)
	if role != domain.RoleAdmin && role != domain.RoleOwner {
		return middleware.Identity{}, ErrPermissionDenied
	}
	return id, nil
}

// RequireOwner ensures the caller is authenticated with role owner. Owner is
// required for role changes and company suspension.
func RequireOwner(ctx context.Context) (middleware.Identity, error) {
	id, ok := middleware.GetIdentity(ctx)
	if !ok || id.UserID == "" {
		return middleware.Identity{}, ErrUnauthenticated
	}
	if domain.Role(id.Role) != domain.RoleOwner {
		return middleware.Identity{}, ErrPermissionDenied
	}
	return id, nil
}
