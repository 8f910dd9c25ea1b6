package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"account-platform/backend/internal/auth/service"
	tokendomain "account-platform/backend/internal/token/domain"
	userdomain "account-platform/backend/internal/user/domain"
)

// fakeFlows returns canned results and records the inputs it saw.
type fakeFlows struct {
	result     *service.AuthResult
	err        error
	gotRefresh string
	gotEmail   string
	gotToken   string
}

func (f *fakeFlows) Signup(ctx context.Context, in service.SignupInput) (*service.AuthResult, error) {
	f.gotEmail = in.Email
	return f.result, f.err
}

func (f *fakeFlows) VerifyEmail(ctx context.Context, rawToken string, dev service.DeviceInfo) (*service.AuthResult, error) {
	f.gotToken = rawToken
	return f.result, f.err
}

func (f *fakeFlows) Login(ctx context.Context, email, password string, dev service.DeviceInfo) (*service.AuthResult, error) {
	f.gotEmail = email
	return f.result, f.err
}

func (f *fakeFlows) Logout(ctx context.Context, rawRefresh string, dev service.DeviceInfo) error {
	f.gotRefresh = rawRefresh
	return f.err
}

func (f *fakeFlows) Refresh(ctx context.Context, rawRefresh string, dev service.DeviceInfo) (*service.AuthResult, error) {
	f.gotRefresh = rawRefresh
	return f.result, f.err
}

func (f *fakeFlows) RequestPasswordReset(ctx context.Context, email string, dev service.DeviceInfo) error {
	f.gotEmail = email
	return f.err
}

func (f *fakeFlows) ResetPassword(ctx context.Context, rawToken, newPassword string, dev service.DeviceInfo) error {
	f.gotToken = rawToken
	return f.err
}

func (f *fakeFlows) ResendVerification(ctx context.Context, email string, dev service.DeviceInfo) error {
	f.gotEmail = email
	return f.err
}

func okResult() *service.AuthResult {
	return &service.AuthResult{
		User: &userdomain.User{
			ID:        "u1",
			Email:     "jo@example.com",
			FirstName: "Jo",
			Locale:    "en",
			Role:      userdomain.RoleMember,
			Status:    userdomain.StatusNew,
			CreatedAt: time.Now().UTC(),
		},
		AccessToken:     "access-jwt",
		AccessExpiresAt: time.Now().UTC().Add(15 * time.Minute),
		RefreshToken:    "raw-refresh-token",
	}
}

func serve(t *testing.T, flows AuthFlows, r *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	NewHandler(flows, true).Register(mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, r)
	return rec
}

func refreshCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == RefreshCookieName {
			return c
		}
	}
	return nil
}

func TestSignup_Success(t *testing.T) {
	flows := &fakeFlows{result: okResult()}
	body := `{"firstName":"Jo","email":"jo@example.com","password":"Val1d!Pass"}`
	rec := serve(t, flows, httptest.NewRequest(http.MethodPost, "/v1/auth/signup", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data struct {
			User        userPayload `json:"user"`
			AccessToken string      `json:"accessToken"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.User.Email != "jo@example.com" || resp.Data.AccessToken != "access-jwt" {
		t.Errorf("body = %+v", resp.Data)
	}
	if strings.Contains(rec.Body.String(), "raw-refresh-token") {
		t.Error("raw refresh token must not appear in the JSON body")
	}

	c := refreshCookie(t, rec)
	if c == nil {
		t.Fatal("refresh cookie should be set")
	}
	if c.Value != "raw-refresh-token" || !c.HttpOnly || !c.Secure {
		t.Errorf("cookie = %+v", c)
	}
	if c.Path != "/v1/auth" {
		t.Errorf("cookie path = %q", c.Path)
	}
}

func TestSignup_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"duplicate email", service.ErrEmailAlreadyInUse, http.StatusConflict},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"token expired", tokendomain.ErrTokenExpired, http.StatusGone},
		{"token used", tokendomain.ErrTokenAlreadyUsed, http.StatusConflict},
		{"token not found", tokendomain.ErrTokenNotFound, http.StatusNotFound},
		{"kind mismatch", &tokendomain.KindMismatchError{Expected: tokendomain.KindEmailVerification, Actual: tokendomain.KindPasswordReset}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			flows := &fakeFlows{err: tc.err}
			body := `{"firstName":"Jo","email":"jo@example.com","password":"Val1d!Pass"}`
			rec := serve(t, flows, httptest.NewRequest(http.MethodPost, "/v1/auth/signup", strings.NewReader(body)))
			if rec.Code != tc.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantCode)
			}
		})
	}
}

func TestSignup_MalformedBody(t *testing.T) {
	rec := serve(t, &fakeFlows{}, httptest.NewRequest(http.MethodPost, "/v1/auth/signup", strings.NewReader("{not json")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	flows := &fakeFlows{err: service.ErrInvalidCredentials}
	body := `{"email":"jo@example.com","password":"wrong"}`
	rec := serve(t, flows, httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body)))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid_credentials") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRefresh_ReadsCookieAndRotates(t *testing.T) {
	flows := &fakeFlows{result: okResult()}
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/refresh", nil)
	r.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: "old-raw-token"})
	rec := serve(t, flows, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if flows.gotRefresh != "old-raw-token" {
		t.Errorf("service saw refresh token %q", flows.gotRefresh)
	}
	c := refreshCookie(t, rec)
	if c == nil || c.Value != "raw-refresh-token" {
		t.Fatalf("rotated cookie = %+v", c)
	}
}

func TestRefresh_MissingCookie(t *testing.T) {
	flows := &fakeFlows{err: service.ErrMissingRefreshToken}
	rec := serve(t, flows, httptest.NewRequest(http.MethodPost, "/v1/auth/refresh", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if flows.gotRefresh != "" {
		t.Errorf("service should see empty token, got %q", flows.gotRefresh)
	}
	if !strings.Contains(rec.Body.String(), "missing_refresh_token") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	flows := &fakeFlows{}
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	r.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: "raw"})
	rec := serve(t, flows, r)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if flows.gotRefresh != "raw" {
		t.Errorf("service saw %q", flows.gotRefresh)
	}
	c := refreshCookie(t, rec)
	if c == nil || c.MaxAge >= 0 {
		t.Fatalf("cookie should be expired, got %+v", c)
	}
}

func TestVerifyEmail_PassesToken(t *testing.T) {
	flows := &fakeFlows{result: okResult()}
	body := `{"token":"abc123"}`
	rec := serve(t, flows, httptest.NewRequest(http.MethodPost, "/v1/auth/verify-email", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if flows.gotToken != "abc123" {
		t.Errorf("service saw token %q", flows.gotToken)
	}
	if refreshCookie(t, rec) == nil {
		t.Error("verify-email should establish a session cookie")
	}
}

func TestPasswordReset_RequestAlwaysAccepted(t *testing.T) {
	flows := &fakeFlows{}
	body := `{"email":"nobody@example.com"}`
	rec := serve(t, flows, httptest.NewRequest(http.MethodPost, "/v1/auth/password-reset/request", strings.NewReader(body)))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}
	if flows.gotEmail != "nobody@example.com" {
		t.Errorf("service saw %q", flows.gotEmail)
	}
}

func TestPasswordReset_Confirm(t *testing.T) {
	flows := &fakeFlows{}
	body := `{"token":"reset-tok","password":"NewVal1d!Pass"}`
	rec := serve(t, flows, httptest.NewRequest(http.MethodPost, "/v1/auth/password-reset/confirm", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if flows.gotToken != "reset-tok" {
		t.Errorf("service saw token %q", flows.gotToken)
	}
}
