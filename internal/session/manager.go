// Package session owns the authentication lifecycle: logging in, logging
// out, and restoring a persisted session at startup. The Manager is the only
// writer of session state; the API client reads tokens from the shared store
// but never stores them itself (outside the refresh path).
package session

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/zeebo/blake3"

	"github.com/authway/adminctl/internal/api"
	"github.com/authway/adminctl/internal/errors"
	"github.com/authway/adminctl/internal/log"
	"github.com/authway/adminctl/internal/store"
)

// State is the authentication state of the session.
type State int

const (
	// Anonymous means no session is loaded; authenticated commands must
	// fail with a not-logged-in error rather than hit the backend.
	Anonymous State = iota
	// Authenticated means tokens plus the cached user and license are
	// loaded and available.
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Manager drives login, logout, and session restore against the backend and
// the encrypted store. It keeps an in-memory mirror of the cached user and
// license so read accessors never touch disk.
type Manager struct {
	client *api.Client
	store  *store.Store
	logger *log.Logger

	mu      sync.RWMutex
	state   State
	user    *api.SessionUser
	license *api.SessionLicense
}

// NewManager creates a session manager over a shared store and API client.
// The returned manager starts anonymous; call Restore to load a persisted
// session.
func NewManager(client *api.Client, st *store.Store, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Manager{
		client: client,
		store:  st,
		logger: logger.With("component", "session"),
		state:  Anonymous,
	}
}

// Login authenticates with the backend and persists the resulting session.
// Persistence is all-or-nothing: if any key fails to write, already written
// keys are rolled back to their prior values and the manager stays in its
// previous state. A failed login never disturbs an existing session.
func (m *Manager) Login(ctx context.Context, email, password string) (*api.SessionUser, error) {
	tokens, err := m.client.Login(ctx, email, password)
	if err != nil {
		return nil, loginError(err)
	}

	userJSON, err := json.Marshal(tokens.User)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSessionPersistFailed, "failed to encode session user", err)
	}
	licenseJSON, err := json.Marshal(tokens.License)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSessionPersistFailed, "failed to encode session license", err)
	}

	if err := m.persist(map[string]string{
		store.KeyAccessToken:  tokens.AccessToken,
		store.KeyRefreshToken: tokens.RefreshToken,
		store.KeyUser:         string(userJSON),
		store.KeyLicense:      string(licenseJSON),
	}); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.state = Authenticated
	m.user = &tokens.User
	m.license = &tokens.License
	m.mu.Unlock()

	m.logger.Debug("session established",
		"user", tokens.User.Email,
		"organization", tokens.User.OrganizationName,
		"token", Fingerprint(tokens.AccessToken))
	return &tokens.User, nil
}

// persist writes every key or none. On a write failure it restores the keys
// already written from the pre-login snapshot.
func (m *Manager) persist(values map[string]string) error {
	snapshot := make(map[string]string, len(values))
	present := make(map[string]bool, len(values))
	for key := range values {
		snapshot[key], present[key] = m.store.Get(key)
	}

	written := make([]string, 0, len(values))
	for key, value := range values {
		if err := m.store.Set(key, value); err != nil {
			for _, w := range written {
				if present[w] {
					_ = m.store.Set(w, snapshot[w])
				} else {
					_ = m.store.Delete(w)
				}
			}
			return errors.Wrap(errors.ErrCodeSessionPersistFailed, "failed to persist session", err).
				WithSuggestion("Check that the state directory is writable")
		}
		written = append(written, key)
	}
	return nil
}

// Logout revokes the refresh token server-side, then clears local state.
// The backend call is best-effort: an unreachable or erroring backend never
// prevents the local session from being cleared.
func (m *Manager) Logout(ctx context.Context) error {
	if m.IsAuthenticated() {
		if err := m.client.Logout(ctx); err != nil {
			m.logger.Debug("server-side logout failed, clearing local session anyway", "error", err)
		}
	}

	if err := m.store.Clear(); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWriteFailed, "failed to clear session store", err)
	}

	m.mu.Lock()
	m.state = Anonymous
	m.user = nil
	m.license = nil
	m.mu.Unlock()
	return nil
}

// Restore loads a persisted session from the store. The session is only
// considered valid when the access token, cached user, and cached license
// are all present and decodable; anything less leaves the manager anonymous.
// Token expiry is not checked here, the first authenticated call settles it.
func (m *Manager) Restore() bool {
	token, ok := m.store.Get(store.KeyAccessToken)
	if !ok || token == "" {
		return false
	}
	userJSON, ok := m.store.Get(store.KeyUser)
	if !ok {
		m.logger.Debug("session restore skipped: cached user missing")
		return false
	}
	licenseJSON, ok := m.store.Get(store.KeyLicense)
	if !ok {
		m.logger.Debug("session restore skipped: cached license missing")
		return false
	}

	var user api.SessionUser
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		m.logger.Debug("session restore skipped: cached user corrupt", "error", err)
		return false
	}
	var license api.SessionLicense
	if err := json.Unmarshal([]byte(licenseJSON), &license); err != nil {
		m.logger.Debug("session restore skipped: cached license corrupt", "error", err)
		return false
	}

	m.mu.Lock()
	m.state = Authenticated
	m.user = &user
	m.license = &license
	m.mu.Unlock()

	m.logger.Debug("session restored", "user", user.Email, "token", Fingerprint(token))
	return true
}

// State returns the current authentication state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// IsAuthenticated reports whether a session is loaded.
func (m *Manager) IsAuthenticated() bool {
	return m.State() == Authenticated
}

// CurrentUser returns the cached user, or nil when anonymous. The returned
// value is a copy.
func (m *Manager) CurrentUser() *api.SessionUser {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	user := *m.user
	return &user
}

// CurrentLicense returns the cached license, or nil when anonymous. The
// returned value is a copy.
func (m *Manager) CurrentLicense() *api.SessionLicense {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.license == nil {
		return nil
	}
	license := *m.license
	return &license
}

// RequireAuth returns a not-logged-in error when anonymous, so commands can
// fail fast without a round trip to the backend.
func (m *Manager) RequireAuth() error {
	if !m.IsAuthenticated() {
		return errors.NewNotLoggedInError()
	}
	return nil
}

// TokenExpiry reads the expiry claim from the stored access token without
// verifying its signature. Only the backend can verify; this is for status
// display.
func (m *Manager) TokenExpiry() (time.Time, bool) {
	token, ok := m.store.Get(store.KeyAccessToken)
	if !ok || token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Fingerprint returns a short stable digest of a token, safe to log and
// display in place of the token itself.
func Fingerprint(token string) string {
	if token == "" {
		return "none"
	}
	sum := blake3.Sum256([]byte(token))
	return hex.EncodeToString(sum[:4])
}

// loginError maps a backend login failure to a user-facing error, keeping
// the backend's detail message when there is one.
func loginError(err error) error {
	if apiErr, ok := api.AsError(err); ok && apiErr.Detail != "" {
		return errors.Wrap(errors.ErrCodeAuthLoginFailed, apiErr.Detail, err).
			WithSuggestion("Check your email and password")
	}
	return errors.Wrap(errors.ErrCodeAuthLoginFailed, "Login failed", err).
		WithSuggestion("Check your email and password").
		WithSuggestion("Verify the backend is reachable with 'adminctl stats health'")
}
