package session

import "time"

// TokenKey is the storage key and cookie name carrying the session token.
const TokenKey = "jwt_token"

// Transport defines how the session token is carried between navigations.
// The rest of the system depends only on this capability; the concrete
// variant is selected exactly once, at construction time, from Config.
type Transport interface {
	// Load reads the current token. Returns ErrTokenNotFound when absent.
	Load() (string, error)

	// Store persists the token. The ttl applies to expiring transports
	// (cookies); persistent stores ignore it.
	Store(token string, ttl time.Duration) error

	// Clear removes the token from the transport.
	Clear() error
}

// NewTransport builds the transport variant selected by the configuration:
// a domain-scoped cookie when UseCookieAuth is set, otherwise the local
// persistent store in the user config directory.
func NewTransport(cfg Config) (Transport, error) {
	if cfg.UseCookieAuth {
		return NewCookieTransport(cfg.CookieDomain)
	}

	path, err := DefaultFileStorePath()
	if err != nil {
		return nil, err
	}
	return NewLocalTransport(NewFileStore(path)), nil
}
