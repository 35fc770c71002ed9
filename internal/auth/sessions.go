package auth

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/rennsz/fansite/internal/config"
)

// Session data keys
const (
	SessionKeyAuthenticated = "is_authenticated"
	SessionKeyUsername      = "username"
	SessionKeyLoginAt       = "login_at"
)

// SessionManager wraps scs.SessionManager with application-specific methods.
// Sessions live in scs's built-in in-memory store; a restart logs every
// admin out, which is acceptable for a single-admin site.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a configured session manager.
func NewSessionManager(cfg config.Auth) *SessionManager {
	sm := scs.New()

	// Fixed TTL: the session expires a set time after login regardless of
	// activity, so no idle timeout.
	sm.Lifetime = cfg.SessionLifetime
	if sm.Lifetime <= 0 {
		sm.Lifetime = 24 * time.Hour
	}

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}
}

// CreateSession marks the request's session as authenticated for the given
// username. Called after password verification.
func (sm *SessionManager) CreateSession(r *http.Request, username string) error {
	// Renew token to prevent session fixation
	if err := sm.RenewToken(r.Context()); err != nil {
		return err
	}

	sm.Put(r.Context(), SessionKeyAuthenticated, true)
	sm.Put(r.Context(), SessionKeyUsername, username)
	sm.Put(r.Context(), SessionKeyLoginAt, time.Now().Unix())

	return nil
}

// DestroySession removes all session data and invalidates the session.
func (sm *SessionManager) DestroySession(r *http.Request) error {
	return sm.Destroy(r.Context())
}

// IsAuthenticated returns true if the request carries a valid admin session.
func (sm *SessionManager) IsAuthenticated(r *http.Request) bool {
	return sm.GetBool(r.Context(), SessionKeyAuthenticated)
}

// Username returns the logged-in admin's username, or "" when anonymous.
func (sm *SessionManager) Username(r *http.Request) string {
	return sm.GetString(r.Context(), SessionKeyUsername)
}
