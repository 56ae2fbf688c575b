package session

import "time"

// Storage is a persistent key-value store backing the local transport: a
// file in the user config directory by default, or the OS keychain.
type Storage interface {
	// Get returns the value for key, or ErrTokenNotFound when absent.
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// LocalTransport carries the token in persistent local storage, the
// transport used when cookies cannot be shared across origins. Entries have
// no expiry; they persist until explicitly cleared.
type LocalTransport struct {
	storage Storage
}

// NewLocalTransport creates a transport over the given storage backend.
func NewLocalTransport(storage Storage) *LocalTransport {
	return &LocalTransport{storage: storage}
}

func (t *LocalTransport) Load() (string, error) {
	return t.storage.Get(TokenKey)
}

func (t *LocalTransport) Store(token string, _ time.Duration) error {
	return t.storage.Set(TokenKey, token)
}

func (t *LocalTransport) Clear() error {
	return t.storage.Delete(TokenKey)
}
