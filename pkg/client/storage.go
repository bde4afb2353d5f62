package client

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// credentialKey is the fixed key the credential is stored under. It is the
// only durable state the client owns.
const credentialKey = "token"

// CredentialStore is the durable storage the session mirrors its credential
// into, so a restarted client can rehydrate its authenticated state.
type CredentialStore interface {
	// Read returns the stored credential, or "" when none is stored.
	Read() (string, error)
	Write(credential string) error
	Clear() error
}

// FileCredentialStore keeps the credential in a file under a state
// directory.
type FileCredentialStore struct {
	dir string
}

// NewFileCredentialStore builds a store rooted at dir, creating it if needed.
func NewFileCredentialStore(dir string) (*FileCredentialStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileCredentialStore{dir: dir}, nil
}

func (s *FileCredentialStore) path() string {
	return filepath.Join(s.dir, credentialKey)
}

func (s *FileCredentialStore) Read() (string, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

func (s *FileCredentialStore) Write(credential string) error {
	return os.WriteFile(s.path(), []byte(credential), 0o600)
}

func (s *FileCredentialStore) Clear() error {
	err := os.Remove(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryCredentialStore is an in-process store, used in tests and by callers
// that do not want credentials on disk.
type MemoryCredentialStore struct {
	mu         sync.Mutex
	credential string
}

func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{}
}

func (s *MemoryCredentialStore) Read() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credential, nil
}

func (s *MemoryCredentialStore) Write(credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = credential
	return nil
}

func (s *MemoryCredentialStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = ""
	return nil
}
