package rbac

import (
	"context"
	"errors"
	"testing"

	"account-platform/backend/internal/server/middleware"
)

func ctxWithRole(role string) context.Context {
	return middleware.WithIdentity(context.Background(), middleware.Identity{
		UserID: "user-1",
		Email:  "jo@example.com",
		Role:   role,
		Status: "active",
	})
}

func TestRequireAdmin(t *testing.T) {
	cases := []struct {
		name    string
		ctx     context.Context
		wantErr error
	}{
		{"owner allowed", ctxWithRole("owner"), nil},
		{"admin allowed", ctxWithRole("admin"), nil},
		{"member denied", ctxWithRole("member"), ErrPermissionDenied},
		{"unknown role denied", ctxWithRole("superuser"), ErrPermissionDenied},
		{"no identity", context.Background(), ErrUnauthenticated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := RequireAdmin(tc.ctx)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("RequireAdmin: %v", err)
				}
				if id.UserID != "user-1" {
					t.Errorf("identity = %+v", id)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestRequireOwner(t *testing.T) {
	if _, err := RequireOwner(ctxWithRole("owner")); err != nil {
		t.Fatalf("owner should pass: %v", err)
	}
	if _, err := RequireOwner(ctxWithRole("admin")); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("admin err = %v, want ErrPermissionDenied", err)
	}
	if _, err := RequireOwner(context.Background()); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("no identity err = %v, want ErrUnauthenticated", err)
	}
}

func TestRequireAdmin_EmptyUserID(t *testing.T) {
	ctx := middleware.WithIdentity(context.Background(), middleware.Identity{Role: "owner"})
	if _, err := RequireAdmin(ctx); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}
}
