package session

import (
	"errors"
	"log/slog"
	"sync"
	"time"
)

// TokenStore owns the in-memory token slot and the transport behind it. It
// is the single writer of the token; every other component reads through it.
//
// None of its operations fail observably: transport errors are swallowed
// and treated as "no token", per the front-end contract.
type TokenStore struct {
	mu        sync.RWMutex
	transport Transport
	token     string
	ttl       time.Duration
	logger    *slog.Logger
}

// NewTokenStore creates a token store over the given transport with the
// default 24h cookie lifetime fallback.
func NewTokenStore(transport Transport) *TokenStore {
	return &TokenStore{
		transport: transport,
		ttl:       DefaultTokenTTL,
		logger:    slog.Default(),
	}
}

// Initialize loads the token from the transport into the in-memory slot and
// returns it. Returns the empty string when no token is stored.
func (s *TokenStore) Initialize() string {
	token, err := s.transport.Load()
	if err != nil {
		if !errors.Is(err, ErrTokenNotFound) {
			s.logger.Debug("session: transport load failed", "error", err)
		}
		token = ""
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return token
}

// Set writes the token to memory and to the transport. The cookie lifetime
// is derived from the token's own exp claim so cookie and JWT expire
// together, falling back to the fixed default for opaque tokens.
func (s *TokenStore) Set(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if err := s.transport.Store(token, tokenTTL(token, s.ttl)); err != nil {
		s.logger.Debug("session: transport store failed", "error", err)
	}
}

// Clear removes the token from memory and from the transport.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if err := s.transport.Clear(); err != nil {
		s.logger.Debug("session: transport clear failed", "error", err)
	}
}

// Token returns the current in-memory token snapshot.
func (s *TokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}
