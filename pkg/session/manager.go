package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// DefaultValidateTimeout bounds the remote validation call so a hung auth
// service cannot stall route resolution indefinitely.
const DefaultValidateTimeout = 10 * time.Second

// RedirectFunc performs a full-page navigation out of the application. It is
// the terminal "leave application" effect emitted on logout.
type RedirectFunc func(url string)

// LocationFunc returns the current absolute URL, used as the return
// destination when redirecting to the login page.
type LocationFunc func() string

// Manager owns the session state: the token store and the authenticated-user
// projection. It is the only writer of both.
//
// Invariant: the user projection is non-zero iff the token store holds a
// previously validated token. An unvalidated token write zeroes the user
// until the next Validate succeeds.
type Manager struct {
	cfg      Config
	store    *TokenStore
	client   *http.Client
	logger   *slog.Logger
	redirect RedirectFunc
	location LocationFunc
	tokenTTL time.Duration

	mu   sync.RWMutex
	user User
}

// New creates a session manager. Unless overridden by options, the token
// transport is derived from the configuration and the HTTP client carries
// the default validation timeout.
func New(cfg Config, opts ...Option) (*Manager, error) {
	m := &Manager{
		cfg:      cfg,
		logger:   slog.Default(),
		redirect: func(string) {},
		location: func() string { return "" },
		tokenTTL: DefaultTokenTTL,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		transport, err := NewTransport(cfg)
		if err != nil {
			return nil, err
		}
		m.store = NewTokenStore(transport)
	}
	m.store.logger = m.logger
	m.store.ttl = m.tokenTTL

	if m.client == nil {
		m.client = &http.Client{Timeout: DefaultValidateTimeout}
	}

	return m, nil
}

// Config returns the immutable session configuration.
func (m *Manager) Config() Config {
	return m.cfg
}

// Store exposes the token store to collaborators (guard, interceptors).
func (m *Manager) Store() *TokenStore {
	return m.store
}

// SetToken stores an unvalidated token. The user projection is zeroed until
// the token passes validation.
func (m *Manager) SetToken(token string) {
	m.mu.Lock()
	m.user = User{}
	m.mu.Unlock()

	m.store.Set(token)
}

// validateResponse is the envelope returned by the validation endpoint. The
// protocol-level status inside the body is distinct from the transport
// status code.
type validateResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    *User  `json:"data"`
}

// Validate checks the stored token against the remote auth service and
// maintains the user projection.
//
// No token: returns false without a network call. Transport 401 or a
// well-formed body that is not a success: forced logout. Any other
// transport failure (unreachable, timeout, 5xx): returns false but leaves
// the token intact, since the failure may be transient and unrelated to token
// validity, and a dead auth service must not evict valid sessions.
func (m *Manager) Validate(ctx context.Context) bool {
	token := m.store.Initialize()
	if token == "" {
		m.logger.Debug("session: no token to validate")
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.ValidateURL(), nil)
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := m.client.Do(req)
	if err != nil {
		m.logger.Debug("session: validation call failed", "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		m.logger.Debug("session: token rejected", "status", resp.StatusCode)
		m.Logout()
		return false
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// 5xx and friends are transient: keep the session.
		m.logger.Debug("session: validation unavailable", "status", resp.StatusCode)
		return false
	}

	var body validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Status != http.StatusOK || body.Data == nil {
		m.logger.Warn("session: unexpected validation response", "error", err, "body_status", body.Status)
		m.Logout()
		return false
	}

	user := *body.Data
	if user.DisplayName == "" {
		user.DisplayName = user.Username
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()

	m.logger.Debug("session: token validated", "user", user.Username, "role", user.Role)
	return true
}

// Logout clears the user projection and the token, then emits the
// leave-application redirect to the login page carrying the current
// location as the return destination.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.user = User{}
	m.mu.Unlock()

	m.store.Clear()

	target := m.cfg.LoginURL(m.location())
	m.logger.Debug("session: logged out", "redirect", target)
	m.redirect(target)
}

// User returns the current authenticated-user projection.
func (m *Manager) User() User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// IsAuthenticated reports whether a validated session is present.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.user.IsZero() && m.store.Token() != ""
}

// HasRole reports whether the authenticated user carries the given role.
// Always false when unauthenticated.
func (m *Manager) HasRole(role string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.user.IsZero() && m.user.Role == role
}

// HasAnyRole reports whether the user carries any of the given roles.
func (m *Manager) HasAnyRole(roles ...string) bool {
	for _, role := range roles {
		if m.HasRole(role) {
			return true
		}
	}
	return false
}

// LoginURL builds the external login redirect target for the given current
// location.
func (m *Manager) LoginURL(current string) string {
	return m.cfg.LoginURL(current)
}
