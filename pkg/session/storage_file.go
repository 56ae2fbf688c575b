package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists key-value pairs as a JSON file with user-only
// permissions.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed store at the given path. The file and
// its parent directory are created lazily on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultFileStorePath returns the storage file location inside the user
// config directory.
func DefaultFileStorePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Join(ErrStorageUnavailable, err)
	}
	return filepath.Join(dir, "flightkit", "storage.json"), nil
}

func (s *FileStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return "", err
	}

	value, ok := data[key]
	if !ok || value == "" {
		return "", ErrTokenNotFound
	}
	return value, nil
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil && !errors.Is(err, ErrTokenNotFound) {
		return err
	}
	if data == nil {
		data = make(map[string]string)
	}

	data[key] = value
	return s.write(data)
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return nil
		}
		return err
	}

	delete(data, key)
	return s.write(data)
}

func (s *FileStore) read() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrTokenNotFound
		}
		return nil, errors.Join(ErrStorageUnavailable, err)
	}

	data := make(map[string]string)
	if err := json.Unmarshal(raw, &data); err != nil {
		// A corrupt storage file is treated as empty rather than fatal.
		return nil, ErrTokenNotFound
	}
	return data, nil
}

func (s *FileStore) write(data map[string]string) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	return nil
}
