// Package service implements the account lifecycle flows: signup, email
// verification, login, logout, refresh rotation, and password reset. All
// multi-entity writes run inside a single transaction; email dispatch and
// security-event emission are fire-and-forget.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"account-platform/backend/internal/audit"
	creddomain "account-platform/backend/internal/credential/domain"
	credrepo "account-platform/backend/internal/credential/repository"
	"account-platform/backend/internal/event"
	eventdomain "account-platform/backend/internal/event/domain"
	"account-platform/backend/internal/mailer"
	"account-platform/backend/internal/security"
	sessiondomain "account-platform/backend/internal/session/domain"
	sessionrepo "account-platform/backend/internal/session/repository"
	"account-platform/backend/internal/token"
	tokendomain "account-platform/backend/internal/token/domain"
	tokenrepo "account-platform/backend/internal/token/repository"
	userdomain "account-platform/backend/internal/user/domain"
	userrepo "account-platform/backend/internal/user/repository"
)

// Sentinel errors for the auth flows; the handler maps each to a stable HTTP
// error code. Token validator errors come from the token domain package.
var (
	ErrEmailAlreadyInUse   = errors.New("email already in use")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountSuspended    = errors.New("account suspended")
	ErrMissingRefreshToken = errors.New("missing refresh token")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

// ValidationError marks a request-shape failure the caller can fix, as
// opposed to an infrastructure failure.
type ValidationError struct{ msg string }

func (e *ValidationError) Error() string { return e.msg }

// DeviceInfo is the caller's observed address and client, resolved by the
// boundary layer. Captured at session issuance and compared at refresh.
type DeviceInfo struct {
	IP        string
	UserAgent string
}

// AuthResult is the outcome of a flow that establishes a session. The raw
// refresh token goes to the boundary layer as an HTTP-only cookie, never into
// a JSON body.
type AuthResult struct {
	User            *userdomain.User
	AccessToken     string
	AccessExpiresAt time.Time
	RefreshToken    string
}

// SignupInput carries the signup request fields.
type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Locale    string
	Device    DeviceInfo
}

// TxRunner executes fn inside a transaction, committing on nil return and
// rolling back otherwise. Production wiring adapts db.RunInTx; tests
// substitute a pass-through.
type TxRunner func(ctx context.Context, fn func(tx *sql.Tx) error) error

// AuthService orchestrates the token lifecycle flows over the repositories
// and crypto primitives.
type AuthService struct {
	runTx    TxRunner
	users    userrepo.Repository
	creds    credrepo.Repository
	tokens   tokenrepo.Repository
	sessions sessionrepo.Repository
	hasher   *security.Hasher
	signer   *security.TokenProvider
	mail     mailer.Mailer
	auditor  audit.AuditLogger
	events   event.Emitter
	now      func() time.Time
}

// NewAuthService returns an AuthService with the given dependencies. mail,
// auditor, and events may be nil; the corresponding side effects are skipped.
func NewAuthService(
	runTx TxRunner,
	users userrepo.Repository,
	creds credrepo.Repository,
	tokens tokenrepo.Repository,
	sessions sessionrepo.Repository,
	hasher *security.Hasher,
	signer *security.TokenProvider,
	mail mailer.Mailer,
	auditor audit.AuditLogger,
	events event.Emitter,
) *AuthService {
	return &AuthService{
		runTx:    runTx,
		users:    users,
		creds:    creds,
		tokens:   tokens,
		sessions: sessions,
		hasher:   hasher,
		signer:   signer,
		mail:     mail,
		auditor:  auditor,
		events:   events,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Signup creates the user, local credential, and a pending email-verification
// token in one transaction, dispatches the verification email without
// awaiting it, and issues an access token plus a refresh session.
//
// The duplicate-email pre-check runs outside the transaction; a duplicate
// created in the window before the insert surfaces from the unique constraint
// as an infrastructure error.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.FirstName) == "" {
		return nil, &ValidationError{"first name is required"}
	}
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyInUse
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	verification, err := token.Mint(tokendomain.KindEmailVerification)
	if err != nil {
		return nil, err
	}

	now := s.now()
	u := &userdomain.User{
		ID:        uuid.New().String(),
		Email:     email,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Locale:    in.Locale,
		Role:      userdomain.RoleMember,
		Status:    userdomain.StatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	cred := &creddomain.Credential{
		ID:           uuid.New().String(),
		UserID:       u.ID,
		Provider:     creddomain.ProviderLocal,
		ProviderID:   email,
		PasswordHash: hashed,
		CreatedAt:    now,
	}

	err = s.runTx(ctx, func(tx *sql.Tx) error {
		if err := s.users.WithTx(tx).Create(ctx, u); err != nil {
			return err
		}
		if err := s.creds.WithTx(tx).Create(ctx, cred); err != nil {
			return err
		}
		return s.storePendingToken(ctx, tx, u.ID, verification, now)
	})
	if err != nil {
		return nil, err
	}

	s.sendVerificationMail(u, verification.Value)
	s.emit(ctx, u.ID, "", eventdomain.TypeSignup, in.Device, nil)
	s.audit(ctx, u.ID, "signup", "auth", "")

	return s.establishSession(ctx, u, in.Device)
}

// VerifyEmail consumes an email-verification token and activates the
// account. Token consumption and the status transition commit together;
// a second call with the same token fails with ErrTokenAlreadyUsed.
func (s *AuthService) VerifyEmail(ctx context.Context, rawToken string, dev DeviceInfo) (*AuthResult, error) {
	rec, err := s.tokens.GetByValue(ctx, rawToken)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := tokendomain.Validate(rec, tokendomain.KindEmailVerification, now); err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, rec.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("verify email: user %s not found for token", rec.UserID)
	}

	err = s.runTx(ctx, func(tx *sql.Tx) error {
		if err := s.tokens.WithTx(tx).Consume(ctx, rec.ID, now); err != nil {
			return err
		}
		return s.users.WithTx(tx).UpdateStatus(ctx, u.ID, userdomain.StatusActive)
	})
	if err != nil {
		return nil, err
	}
	u.Status = userdomain.StatusActive
	u.UpdatedAt = now

	s.emit(ctx, u.ID, "", eventdomain.TypeEmailVerified, dev, nil)
	s.audit(ctx, u.ID, "verify_email", "auth", "")

	return s.establishSession(ctx, u, dev)
}

// Login verifies the email/password pair and issues a fresh session. All
// credential failures collapse into ErrInvalidCredentials so callers cannot
// probe which part was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string, dev DeviceInfo) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		s.loginFailed(ctx, audit.SentinelUserID, dev)
		return nil, ErrInvalidCredentials
	}
	if u.Status == userdomain.StatusSuspended {
		s.loginFailed(ctx, u.ID, dev)
		return nil, ErrAccountSuspended
	}
	cred, err := s.creds.GetByUserAndProvider(ctx, u.ID, creddomain.ProviderLocal)
	if err != nil {
		return nil, err
	}
	if cred == nil || cred.PasswordHash == "" {
		s.loginFailed(ctx, u.ID, dev)
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(cred.PasswordHash, password); err != nil {
		s.loginFailed(ctx, u.ID, dev)
		return nil, ErrInvalidCredentials
	}

	s.emit(ctx, u.ID, "", eventdomain.TypeLoginSuccess, dev, nil)
	s.audit(ctx, u.ID, "login", "auth", "")

	return s.establishSession(ctx, u, dev)
}

// Logout revokes the refresh session matching the presented token.
// Idempotent: an absent or unknown token is a no-op.
func (s *AuthService) Logout(ctx context.Context, rawRefresh string, dev DeviceInfo) error {
	if rawRefresh == "" {
		return nil
	}
	hash := security.HashToken(rawRefresh)
	sess, err := s.sessions.GetByTokenHash(ctx, hash)
	if err != nil {
		return err
	}
	if sess == nil {
		return nil
	}
	if err := s.sessions.RevokeByTokenHash(ctx, hash); err != nil {
		return err
	}
	s.emit(ctx, sess.UserID, sess.ID, eventdomain.TypeLogout, dev, nil)
	s.audit(ctx, sess.UserID, "logout", "auth", "")
	return nil
}

// Refresh rotates a refresh session. Classification runs strictly in order:
// missing, unknown, revoked, expired, dangling user. Rotation creates the
// new session before revoking the old one, inside one transaction, so a
// crash between the two steps leaves two valid sessions rather than none.
// The old session is re-read under a row lock inside that transaction, so of
// two concurrent rotations exactly one wins and the other reports the token
// as revoked.
func (s *AuthService) Refresh(ctx context.Context, rawRefresh string, dev DeviceInfo) (*AuthResult, error) {
	if rawRefresh == "" {
		return nil, ErrMissingRefreshToken
	}
	oldHash := security.HashToken(rawRefresh)
	sess, err := s.sessions.GetByTokenHash(ctx, oldHash)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrInvalidRefreshToken
	}
	now := s.now()
	// Revoked before expired: a revoked-but-live token is a reuse signal,
	// not mere staleness.
	if sess.Revoked() {
		return nil, ErrRefreshTokenRevoked
	}
	if sess.Expired(now) {
		return nil, ErrRefreshTokenExpired
	}
	u, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		// A dangling user reference reads the same as an invalid token so
		// deleted accounts are not distinguishable to the caller.
		return nil, ErrInvalidRefreshToken
	}

	s.detectDeviceChange(ctx, sess, dev)

	minted, err := token.MintHashed(tokendomain.KindRefresh)
	if err != nil {
		return nil, err
	}
	next := &sessiondomain.RefreshSession{
		ID:        uuid.New().String(),
		UserID:    u.ID,
		TokenHash: minted.Hash,
		IPAddress: dev.IP,
		UserAgent: dev.UserAgent,
		ExpiresAt: minted.ExpiresAt,
		CreatedAt: now,
	}
	err = s.runTx(ctx, func(tx *sql.Tx) error {
		txSessions := s.sessions.WithTx(tx)
		// Re-read under the row lock. The pre-transaction read ran in
		// auto-commit mode, so a concurrent rotation of the same session may
		// have committed since; only one rotation may win.
		locked, err := txSessions.GetByTokenHash(ctx, oldHash)
		if err != nil {
			return err
		}
		if locked == nil || locked.Revoked() {
			return ErrRefreshTokenRevoked
		}
		if err := txSessions.Create(ctx, next); err != nil {
			return err
		}
		return txSessions.RevokeByTokenHash(ctx, oldHash)
	})
	if err != nil {
		return nil, err
	}

	accessToken, _, accessExp, err := s.signer.IssueAccess(u.ID, u.Email, string(u.Role), string(u.Status))
	if err != nil {
		return nil, err
	}

	s.emit(ctx, u.ID, next.ID, eventdomain.TypeTokenRefreshed, dev, nil)
	s.audit(ctx, u.ID, "refresh", "auth", "")

	return &AuthResult{
		User:            u,
		AccessToken:     accessToken,
		AccessExpiresAt: accessExp,
		RefreshToken:    minted.Raw,
	}, nil
}

// RequestPasswordReset mints a password-reset token for the account and
// emails it. An unknown email returns nil so the endpoint does not leak
// which addresses have accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string, dev DeviceInfo) error {
	email = normalizeEmail(email)
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return nil
	}
	reset, err := token.Mint(tokendomain.KindPasswordReset)
	if err != nil {
		return err
	}
	now := s.now()
	err = s.runTx(ctx, func(tx *sql.Tx) error {
		return s.storePendingToken(ctx, tx, u.ID, reset, now)
	})
	if err != nil {
		return err
	}
	if s.mail != nil {
		name, mail, locale, raw := u.FirstName, u.Email, u.Locale, reset.Value
		mailer.SendAsync(func(ctx context.Context) error {
			return s.mail.SendPasswordReset(ctx, name, mail, raw, locale)
		})
	}
	s.emit(ctx, u.ID, "", eventdomain.TypePasswordResetRequested, dev, nil)
	s.audit(ctx, u.ID, "password_reset_request", "auth", "")
	return nil
}

// ResetPassword consumes a password-reset token, replaces the credential
// hash, and revokes every live refresh session for the user, all in one
// transaction.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword string, dev DeviceInfo) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	rec, err := s.tokens.GetByValue(ctx, rawToken)
	if err != nil {
		return err
	}
	now := s.now()
	if err := tokendomain.Validate(rec, tokendomain.KindPasswordReset, now); err != nil {
		return err
	}
	u, err := s.users.GetByID(ctx, rec.UserID)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("reset password: user %s not found for token", rec.UserID)
	}
	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	err = s.runTx(ctx, func(tx *sql.Tx) error {
		if err := s.tokens.WithTx(tx).Consume(ctx, rec.ID, now); err != nil {
			return err
		}
		if err := s.creds.WithTx(tx).UpdatePassword(ctx, u.ID, creddomain.ProviderLocal, hashed); err != nil {
			return err
		}
		return s.sessions.WithTx(tx).RevokeAllByUser(ctx, u.ID)
	})
	if err != nil {
		return err
	}
	s.emit(ctx, u.ID, "", eventdomain.TypePasswordResetCompleted, dev, nil)
	s.audit(ctx, u.ID, "password_reset_confirm", "auth", "")
	return nil
}

// ResendVerification mints a fresh email-verification token, deprecating the
// prior pending one, and emails it. A no-op for unknown or already-verified
// accounts.
func (s *AuthService) ResendVerification(ctx context.Context, email string, dev DeviceInfo) error {
	email = normalizeEmail(email)
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil || u.Status != userdomain.StatusNew {
		return nil
	}
	verification, err := token.Mint(tokendomain.KindEmailVerification)
	if err != nil {
		return err
	}
	now := s.now()
	err = s.runTx(ctx, func(tx *sql.Tx) error {
		return s.storePendingToken(ctx, tx, u.ID, verification, now)
	})
	if err != nil {
		return err
	}
	s.sendVerificationMail(u, verification.Value)
	s.audit(ctx, u.ID, "resend_verification", "auth", "")
	return nil
}

// establishSession is the shared issuance tail: persist a hashed refresh
// session bound to the device, then sign an access token from the user's
// current claims.
func (s *AuthService) establishSession(ctx context.Context, u *userdomain.User, dev DeviceInfo) (*AuthResult, error) {
	minted, err := token.MintHashed(tokendomain.KindRefresh)
	if err != nil {
		return nil, err
	}
	sess := &sessiondomain.RefreshSession{
		ID:        uuid.New().String(),
		UserID:    u.ID,
		TokenHash: minted.Hash,
		IPAddress: dev.IP,
		UserAgent: dev.UserAgent,
		ExpiresAt: minted.ExpiresAt,
		CreatedAt: s.now(),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	accessToken, _, accessExp, err := s.signer.IssueAccess(u.ID, u.Email, string(u.Role), string(u.Status))
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		User:            u,
		AccessToken:     accessToken,
		AccessExpiresAt: accessExp,
		RefreshToken:    minted.Raw,
	}, nil
}

// storePendingToken deprecates any pending token of the same kind and
// persists the newly minted one, inside the caller's transaction. Only one
// token per kind is ever redeemable.
func (s *AuthService) storePendingToken(ctx context.Context, tx *sql.Tx, userID string, m token.Minted, now time.Time) error {
	txTokens := s.tokens.WithTx(tx)
	if err := txTokens.DeprecatePending(ctx, userID, m.Kind); err != nil {
		return err
	}
	return txTokens.Create(ctx, &tokendomain.Token{
		ID:        uuid.New().String(),
		UserID:    userID,
		Kind:      m.Kind,
		Value:     m.Value,
		Status:    tokendomain.StatusPending,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: now,
	})
}

// detectDeviceChange compares the device observed at issuance with the
// current caller. A mismatch writes exactly one warning-level audit entry
// and one security event; the refresh proceeds regardless, because address
// churn has common legitimate causes.
func (s *AuthService) detectDeviceChange(ctx context.Context, sess *sessiondomain.RefreshSession, dev DeviceInfo) {
	if sess.IPAddress == dev.IP && sess.UserAgent == dev.UserAgent {
		return
	}
	meta, _ := json.Marshal(map[string]string{
		"oldIp":        sess.IPAddress,
		"newIp":        dev.IP,
		"oldUserAgent": sess.UserAgent,
		"newUserAgent": dev.UserAgent,
	})
	if s.auditor != nil {
		s.auditor.Warn(ctx, sess.UserID, "device_change", "session", string(meta))
	}
	s.emit(ctx, sess.UserID, sess.ID, eventdomain.TypeDeviceChange, dev, meta)
}

func (s *AuthService) sendVerificationMail(u *userdomain.User, rawToken string) {
	if s.mail == nil {
		return
	}
	name, mail, locale := u.FirstName, u.Email, u.Locale
	mailer.SendAsync(func(ctx context.Context) error {
		return s.mail.SendVerification(ctx, name, mail, rawToken, locale)
	})
}

func (s *AuthService) loginFailed(ctx context.Context, userID string, dev DeviceInfo) {
	s.emit(ctx, userID, "", eventdomain.TypeLoginFailure, dev, nil)
	s.audit(ctx, userID, "login_failure", "auth", "")
}

func (s *AuthService) emit(ctx context.Context, userID, sessionID, eventType string, dev DeviceInfo, metadata []byte) {
	if s.events == nil {
		return
	}
	event.EmitAsync(s.events, ctx, &eventdomain.Event{
		UserID:    userID,
		SessionID: sessionID,
		EventType: eventType,
		Source:    "auth",
		IP:        dev.IP,
		UserAgent: dev.UserAgent,
		Metadata:  metadata,
		CreatedAt: s.now(),
	})
}

func (s *AuthService) audit(ctx context.Context, userID, action, resource, metadata string) {
	if s.auditor == nil {
		return
	}
	s.auditor.Log(ctx, userID, action, resource, metadata)
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	if email == "" {
		return &ValidationError{"email is required"}
	}
	if !emailPattern.MatchString(email) {
		return &ValidationError{"invalid email format"}
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return &ValidationError{"password must be at least 8 characters"}
	}
	var hasUpper, hasLower, hasNumber bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasNumber = true
		}
	}
	if !hasUpper {
		return &ValidationError{"password must contain at least one uppercase letter"}
	}
	if !hasLower {
		return &ValidationError{"password must contain at least one lowercase letter"}
	}
	if !hasNumber {
		return &ValidationError{"password must contain at least one number"}
	}
	return nil
}
