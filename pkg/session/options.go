package session

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures a Manager during construction.
type Option func(*Manager)

// WithHTTPClient sets the client used for the remote validation call.
func WithHTTPClient(client *http.Client) Option {
	return func(m *Manager) {
		if client != nil {
			m.client = client
		}
	}
}

// WithTransport overrides the config-derived token transport.
func WithTransport(transport Transport) Option {
	return func(m *Manager) {
		if transport != nil {
			m.store = NewTokenStore(transport)
		}
	}
}

// WithTokenTTL overrides the fallback lifetime used for opaque tokens.
func WithTokenTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.tokenTTL = ttl
		}
	}
}

// WithLogger sets the logger shared by the manager and its token store.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithRedirect sets the leave-application effect invoked on logout.
func WithRedirect(fn RedirectFunc) Option {
	return func(m *Manager) {
		if fn != nil {
			m.redirect = fn
		}
	}
}

// WithLocation sets the current-location source used to build the login
// return URL.
func WithLocation(fn LocationFunc) Option {
	return func(m *Manager) {
		if fn != nil {
			m.location = fn
		}
	}
}
