// Package auth implements the session lifecycle: login, logout and the
// password-reset sub-flows.
//
// A Session is the exclusive owner of the current Identity. The session
// store is a durable mirror that is rehydrated once at construction and
// written back on every change; the request gateway and route guards
// are read-only consumers.
//
// Login and SendResetCode report failure as data so the UI can render
// inline messages. ConfirmReset reports failure as an error the caller
// must handle. The asymmetry is part of the contract.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	rentadmin "github.com/fleetly/rentadmin-go"
	"github.com/fleetly/rentadmin-go/audit"
	"github.com/fleetly/rentadmin-go/gateway"
	"github.com/fleetly/rentadmin-go/metrics"
	"github.com/fleetly/rentadmin-go/token"
)

// API paths for the authentication endpoints.
const (
	loginPath        = "/user/loginAdmin"
	resetRequestPath = "/auth/request-reset"
	resetConfirmPath = "/auth/verify-otp"
	profilePath      = "/user/me"
)

// ErrAnonymous is returned by operations that require an authenticated session.
var ErrAnonymous = errors.New("rentadmin/auth: not authenticated")

// Session owns the current Identity and drives all authentication flows.
type Session struct {
	gw      *gateway.Gateway
	store   rentadmin.SessionStore
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   *audit.Logger

	mu       sync.RWMutex
	identity *rentadmin.Identity

	inflight atomic.Int32
	sf       singleflight.Group
}

// compile-time check
var _ rentadmin.Authenticator = (*Session)(nil)

// Option configures the Session.
type Option func(*Session)

// WithLogger sets a structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithMetrics sets the metrics recorder for login attempts and session state.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// WithAuditLogger sets the audit logger for session lifecycle events.
func WithAuditLogger(a *audit.Logger) Option {
	return func(s *Session) { s.audit = a }
}

// NewSession creates a session bound to the gateway and store. It
// rehydrates a persisted identity from the store (discarding it when
// already expired) and registers itself as the gateway's token source.
func NewSession(gw *gateway.Gateway, store rentadmin.SessionStore, opts ...Option) *Session {
	s := &Session{
		gw:      gw,
		store:   store,
		logger:  slog.Default(),
		metrics: metrics.New(false),
	}
	for _, o := range opts {
		o(s)
	}

	if id, err := store.Load(); err == nil && id != nil {
		if !id.ExpiresAt.IsZero() && time.Now().After(id.ExpiresAt) {
			_ = store.Clear()
		} else {
			s.identity = id
			s.metrics.SetSessionActive(true)
		}
	}

	gw.SetTokenSource(s)
	return s
}

// loginResponse is the raw JSON response of the login endpoint.
type loginResponse struct {
	User    *rentadmin.User `json:"user"`
	Token   string          `json:"token"`
	Message string          `json:"message"`
	Msg     string          `json:"msg"`
}

// Login authenticates with the given credentials. Failures — rejected
// credentials, malformed responses, unreachable server — are reported
// as data; Login itself never fails hard.
func (s *Session) Login(ctx context.Context, creds rentadmin.Credentials) rentadmin.LoginResult {
	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	s.metrics.RecordLoginAttempt()

	var resp loginResponse
	if err := s.gw.Post(ctx, loginPath, creds, &resp); err != nil {
		return s.loginFailed(creds.Email, err)
	}

	if resp.User == nil || resp.Token == "" {
		msg := firstNonEmpty(resp.Message, resp.Msg, "login response missing user or token")
		s.metrics.RecordLoginFailure("malformed_response")
		s.auditLog(audit.Event{Action: audit.ActionLogin, Result: "failure", Email: creds.Email, Details: msg})
		return rentadmin.LoginResult{OK: false, Message: msg}
	}

	// Claims that cannot be read are not fatal: the session proceeds
	// with an unknown expiry and the server keeps enforcing validity.
	var expiresAt time.Time
	if claims, err := token.Decode(resp.Token); err != nil {
		s.logger.Warn("token claims unreadable, proceeding without client-side expiry", "err", err)
	} else {
		expiresAt = token.ExpiryOf(claims)
	}

	id := &rentadmin.Identity{
		UserID:    resp.User.ID,
		Name:      resp.User.Name,
		Email:     resp.User.Email,
		Role:      resp.User.Role,
		Token:     resp.Token,
		ExpiresAt: expiresAt,
	}
	s.setIdentity(id)

	s.auditLog(audit.Event{Action: audit.ActionLogin, Result: "success", UserID: id.UserID, Email: id.Email})
	s.logger.Info("login succeeded", "user_id", id.UserID, "email", id.Email)

	return rentadmin.LoginResult{
		OK:      true,
		Message: firstNonEmpty(resp.Message, resp.Msg, "login successful"),
		User:    resp.User,
	}
}

func (s *Session) loginFailed(email string, err error) rentadmin.LoginResult {
	var msg, reason string
	var apiErr *gateway.APIError
	switch {
	case errors.Is(err, gateway.ErrUnreachable):
		msg, reason = "cannot reach server", "unreachable"
	case errors.As(err, &apiErr):
		msg, reason = apiErr.Message, "rejected"
	default:
		msg, reason = err.Error(), "error"
	}

	s.metrics.RecordLoginFailure(reason)
	s.auditLog(audit.Event{Action: audit.ActionLogin, Result: "failure", Email: email, Error: err.Error()})
	s.logger.Info("login failed", "email", email, "reason", reason)

	return rentadmin.LoginResult{OK: false, Message: msg}
}

// Logout clears the identity and the session store synchronously.
// It never fails; route guards observing the session then send the
// operator back to the login screen.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	userID := ""
	if s.identity != nil {
		userID = s.identity.UserID
	}
	s.identity = nil
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		s.logger.Warn("session store clear failed", "err", err)
	}
	s.metrics.SetSessionActive(false)
	s.auditLog(audit.Event{Action: audit.ActionLogout, Result: "success", UserID: userID})
	s.logger.Info("logged out", "user_id", userID)
}

// resetResponse is the raw JSON response of the reset endpoints.
type resetResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Msg     string `json:"msg"`
}

// SendResetCode requests a one-time reset code for the email.
// Failures are reported as data and never panic or error out.
func (s *Session) SendResetCode(ctx context.Context, email string) rentadmin.ResetResult {
	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	var resp resetResponse
	if err := s.gw.Post(ctx, resetRequestPath, map[string]string{"email": email}, &resp); err != nil {
		msg := "could not request a reset code"
		if errors.Is(err, gateway.ErrUnreachable) {
			msg = "cannot reach server"
		}
		var apiErr *gateway.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			msg = apiErr.Message
		}
		s.auditLog(audit.Event{Action: audit.ActionResetRequest, Result: "failure", Email: email, Error: err.Error()})
		return rentadmin.ResetResult{OK: false, Message: msg}
	}

	msg := firstNonEmpty(resp.Message, resp.Msg, "reset code requested")
	if !resp.Success {
		msg = firstNonEmpty(resp.Message, resp.Msg, "could not request a reset code")
	}
	s.auditLog(audit.Event{Action: audit.ActionResetRequest, Result: resultOf(resp.Success), Email: email})
	return rentadmin.ResetResult{OK: resp.Success, Message: msg}
}

// ConfirmReset submits the one-time code and the new password. Unlike
// Login and SendResetCode, failure is surfaced as an error.
func (s *Session) ConfirmReset(ctx context.Context, email, otp, newPassword string) error {
	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	body := map[string]string{"email": email, "otp": otp, "newPassword": newPassword}
	if err := s.gw.Post(ctx, resetConfirmPath, body, nil); err != nil {
		s.auditLog(audit.Event{Action: audit.ActionResetConfirm, Result: "failure", Email: email, Error: err.Error()})

		var apiErr *gateway.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return fmt.Errorf("rentadmin/auth: %s", apiErr.Message)
		}
		if errors.Is(err, gateway.ErrUnreachable) {
			return fmt.Errorf("rentadmin/auth: cannot reach server: %w", err)
		}
		return fmt.Errorf("rentadmin/auth: reset failed, OTP or email may be invalid: %w", err)
	}

	s.auditLog(audit.Event{Action: audit.ActionResetConfirm, Result: "success", Email: email})
	return nil
}

// profileResponse is the raw JSON response of the profile endpoint.
type profileResponse struct {
	User *rentadmin.User `json:"user"`
}

// Refresh re-fetches the current operator's profile and updates the
// identity's display fields. Concurrent callers are collapsed into a
// single request.
func (s *Session) Refresh(ctx context.Context) (*rentadmin.User, error) {
	if !s.Authenticated() {
		return nil, ErrAnonymous
	}

	v, err, _ := s.sf.Do("profile", func() (interface{}, error) {
		var resp profileResponse
		if err := s.gw.Get(ctx, profilePath, &resp); err != nil {
			return nil, err
		}
		if resp.User == nil {
			return nil, fmt.Errorf("rentadmin/auth: profile response missing user")
		}
		return resp.User, nil
	})
	if err != nil {
		return nil, fmt.Errorf("rentadmin/auth: refresh: %w", err)
	}

	user := v.(*rentadmin.User)
	s.mu.Lock()
	if s.identity != nil {
		s.identity.Name = user.Name
		s.identity.Email = user.Email
		s.identity.Role = user.Role
		cp := *s.identity
		s.mu.Unlock()
		if err := s.store.Save(&cp); err != nil {
			s.logger.Warn("session store save failed", "err", err)
		}
	} else {
		s.mu.Unlock()
	}
	return user, nil
}

// Identity returns a copy of the current identity, or nil when anonymous.
func (s *Session) Identity() *rentadmin.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return nil
	}
	cp := *s.identity
	return &cp
}

// Authenticated reports whether a usable identity is present. An
// identity past its computed expiry no longer counts.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return false
	}
	if !s.identity.ExpiresAt.IsZero() && time.Now().After(s.identity.ExpiresAt) {
		return false
	}
	return true
}

// Token returns the current bearer token for outbound requests, or ""
// when anonymous or past the computed expiry.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return ""
	}
	if !s.identity.ExpiresAt.IsZero() && time.Now().After(s.identity.ExpiresAt) {
		return ""
	}
	return s.identity.Token
}

// Loading reports whether a login/reset call is in flight. Callers
// should disable the triggering action while true to avoid overlapping
// submissions.
func (s *Session) Loading() bool {
	return s.inflight.Load() > 0
}

func (s *Session) setIdentity(id *rentadmin.Identity) {
	s.mu.Lock()
	s.identity = id
	s.mu.Unlock()

	if err := s.store.Save(id); err != nil {
		s.logger.Warn("session store save failed", "err", err)
	}
	s.metrics.SetSessionActive(id != nil)
}

func (s *Session) auditLog(e audit.Event) {
	if s.audit != nil {
		s.audit.Log(e)
	}
}

func resultOf(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
