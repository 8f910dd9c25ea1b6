// Package handler exposes the auth flows over HTTP. The refresh token
// travels as an HTTP-only cookie; JSON bodies carry only the user and the
// access token.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"account-platform/backend/internal/auth/service"
	"account-platform/backend/internal/server/middleware"
	"account-platform/backend/internal/server/respond"
	tokendomain "account-platform/backend/internal/token/domain"
	userdomain "account-platform/backend/internal/user/domain"
)

// RefreshCookieName is the cookie holding the raw refresh token.
const RefreshCookieName = "refresh_token"

// AuthFlows is the service surface the handler needs.
type AuthFlows interface {
	Signup(ctx context.Context, in service.SignupInput) (*service.AuthResult, error)
	VerifyEmail(ctx context.Context, rawToken string, dev service.DeviceInfo) (*service.AuthResult, error)
	Login(ctx context.Context, email, password string, dev service.DeviceInfo) (*service.AuthResult, error)
	Logout(ctx context.Context, rawRefresh string, dev service.DeviceInfo) error
	Refresh(ctx context.Context, rawRefresh string, dev service.DeviceInfo) (*service.AuthResult, error)
	RequestPasswordReset(ctx context.Context, email string, dev service.DeviceInfo) error
	ResetPassword(ctx context.Context, rawToken, newPassword string, dev service.DeviceInfo) error
	ResendVerification(ctx context.Context, email string, dev service.DeviceInfo) error
}

// Handler serves the /v1/auth routes.
type Handler struct {
	flows        AuthFlows
	cookieSecure bool
}

// NewHandler returns an auth handler. cookieSecure controls the Secure flag
// on the refresh cookie; disable only for local HTTP development.
func NewHandler(flows AuthFlows, cookieSecure bool) *Handler {
	return &Handler{flows: flows, cookieSecure: cookieSecure}
}

// Register mounts the auth routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/auth/signup", h.Signup)
	mux.HandleFunc("POST /v1/auth/login", h.Login)
	mux.HandleFunc("POST /v1/auth/logout", h.Logout)
	mux.HandleFunc("POST /v1/auth/refresh", h.Refresh)
	mux.HandleFunc("POST /v1/auth/verify-email", h.VerifyEmail)
	mux.HandleFunc("POST /v1/auth/resend-verification", h.ResendVerification)
	mux.HandleFunc("POST /v1/auth/password-reset/request", h.RequestPasswordReset)
	mux.HandleFunc("POST /v1/auth/password-reset/confirm", h.ResetPassword)
}

type signupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Locale    string `json:"locale"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type resetConfirmRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type userPayload struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName,omitempty"`
	Locale    string    `json:"locale"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type sessionPayload struct {
	User            userPayload `json:"user"`
	AccessToken     string      `json:"accessToken"`
	AccessExpiresAt time.Time   `json:"accessExpiresAt"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.flows.Signup(r.Context(), service.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Locale:    req.Locale,
		Device:    deviceFrom(r),
	})
	if err != nil {
		writeFlowError(w, err)
		return
	}
	h.setRefreshCookie(w, res)
	respond.Data(w, http.StatusCreated, toSessionPayload(res))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.flows.Login(r.Context(), req.Email, req.Password, deviceFrom(r))
	if err != nil {
		writeFlowError(w, err)
		return
	}
	h.setRefreshCookie(w, res)
	respond.Data(w, http.StatusOK, toSessionPayload(res))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	raw := refreshFromCookie(r)
	if err := h.flows.Logout(r.Context(), raw, deviceFrom(r)); err != nil {
		writeFlowError(w, err)
		return
	}
	h.clearRefreshCookie(w)
	respond.JSON(w, http.StatusNoContent, nil)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	raw := refreshFromCookie(r)
	res, err := h.flows.Refresh(r.Context(), raw, deviceFrom(r))
	if err != nil {
		writeFlowError(w, err)
		return
	}
	h.setRefreshCookie(w, res)
	respond.Data(w, http.StatusOK, toSessionPayload(res))
}

func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.flows.VerifyEmail(r.Context(), req.Token, deviceFrom(r))
	if err != nil {
		writeFlowError(w, err)
		return
	}
	h.setRefreshCookie(w, res)
	respond.Data(w, http.StatusOK, toSessionPayload(res))
}

func (h *Handler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.flows.ResendVerification(r.Context(), req.Email, deviceFrom(r)); err != nil {
		writeFlowError(w, err)
		return
	}
	respond.JSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

func (h *Handler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.flows.RequestPasswordReset(r.Context(), req.Email, deviceFrom(r)); err != nil {
		writeFlowError(w, err)
		return
	}
	// Same response for known and unknown emails.
	respond.JSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetConfirmRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.flows.ResetPassword(r.Context(), req.Token, req.Password, deviceFrom(r)); err != nil {
		writeFlowError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "password_updated"})
}

func (h *Handler) setRefreshCookie(w http.ResponseWriter, res *service.AuthResult) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    res.RefreshToken,
		Path:     "/v1/auth",
		Expires:  time.Now().UTC().Add(tokendomain.DefaultsFor(tokendomain.KindRefresh).TTL),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *Handler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/v1/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

func refreshFromCookie(r *http.Request) string {
	c, err := r.Cookie(RefreshCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func deviceFrom(r *http.Request) service.DeviceInfo {
	d, _ := middleware.GetDevice(r.Context())
	return service.DeviceInfo{IP: d.IP, UserAgent: d.UserAgent}
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return false
	}
	return true
}

func toSessionPayload(res *service.AuthResult) sessionPayload {
	return sessionPayload{
		User:            toUserPayload(res.User),
		AccessToken:     res.AccessToken,
		AccessExpiresAt: res.AccessExpiresAt,
	}
}

func toUserPayload(u *userdomain.User) userPayload {
	return userPayload{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Locale:    u.Locale,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
	}
}

// writeFlowError maps service and token-domain errors to stable HTTP error
// codes. Unclassified errors surface as 500 without leaking detail.
func writeFlowError(w http.ResponseWriter, err error) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		respond.Error(w, http.StatusBadRequest, "invalid_request", ve.Error())
		return
	}
	switch {
	case errors.Is(err, service.ErrEmailAlreadyInUse):
		respond.Error(w, http.StatusConflict, "email_already_in_use", "email already in use")
	case errors.Is(err, service.ErrInvalidCredentials):
		respond.Error(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
	case errors.Is(err, service.ErrAccountSuspended):
		respond.Error(w, http.StatusForbidden, "account_suspended", "account suspended")
	case errors.Is(err, service.ErrMissingRefreshToken):
		respond.Error(w, http.StatusUnauthorized, "missing_refresh_token", "refresh token required")
	case errors.Is(err, service.ErrRefreshTokenRevoked):
		respond.Error(w, http.StatusUnauthorized, "refresh_token_revoked", "refresh token revoked")
	case errors.Is(err, service.ErrRefreshTokenExpired):
		respond.Error(w, http.StatusUnauthorized, "refresh_token_expired", "refresh token expired")
	case errors.Is(err, service.ErrInvalidRefreshToken):
		respond.Error(w, http.StatusUnauthorized, "invalid_refresh_token", "invalid refresh token")
	case errors.Is(err, tokendomain.ErrTokenNotFound):
		respond.Error(w, http.StatusNotFound, "token_not_found", "token not found")
	case errors.Is(err, tokendomain.ErrTokenAlreadyUsed):
		respond.Error(w, http.StatusConflict, "token_already_used", "token already used")
	case errors.Is(err, tokendomain.ErrTokenDeprecated):
		respond.Error(w, http.StatusConflict, "token_deprecated", "token superseded by a newer one")
	case errors.Is(err, tokendomain.ErrTokenExpired):
		respond.Error(w, http.StatusGone, "token_expired", "token expired")
	case errors.Is(err, tokendomain.ErrTokenTypeMismatch):
		respond.Error(w, http.StatusBadRequest, "token_type_mismatch", "token presented to the wrong flow")
	default:
		log.Printf("auth: flow failed: %v", err)
		respond.Error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
