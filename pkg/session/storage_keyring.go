package session

import (
	"errors"

	"github.com/zalando/go-keyring"
)

// KeyringService is the default service name tokens are filed under in the
// OS credential manager.
const KeyringService = "flightkit"

// KeyringStore keeps the token in the OS keychain/credential manager
// instead of a plain file. Opt-in backend for the local transport.
type KeyringStore struct {
	service string
}

// NewKeyringStore creates a keyring-backed store. An empty service name
// falls back to KeyringService.
func NewKeyringStore(service string) *KeyringStore {
	if service == "" {
		service = KeyringService
	}
	return &KeyringStore{service: service}
}

func (s *KeyringStore) Get(key string) (string, error) {
	value, err := keyring.Get(s.service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrTokenNotFound
		}
		return "", errors.Join(ErrStorageUnavailable, err)
	}
	return value, nil
}

func (s *KeyringStore) Set(key, value string) error {
	if err := keyring.Set(s.service, key, value); err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	return nil
}

func (s *KeyringStore) Delete(key string) error {
	if err := keyring.Delete(s.service, key); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return errors.Join(ErrStorageUnavailable, err)
	}
	return nil
}
