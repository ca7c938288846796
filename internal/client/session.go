package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Session is the client-held authentication state: the bearer token plus the
// identity it was minted for. The JSON field names mirror the server's
// register/login response so a response can be stored as-is.
type Session struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// SessionStore is the only way client code touches persisted session state.
// Load returns (nil, nil) when no session is stored.
type SessionStore interface {
	Load() (*Session, error)
	Save(*Session) error
	Clear() error
}

// FileStore keeps the session as a JSON file, created with owner-only
// permissions since it contains a live token.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultSessionPath returns the per-user location of the session file,
// under the OS config directory.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "authctl", "session.json"), nil
}

func (s *FileStore) Load() (*Session, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (s *FileStore) Save(sess *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// MemoryStore is an in-process SessionStore for tests.
type MemoryStore struct {
	sess *Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (*Session, error) {
	return s.sess, nil
}

func (s *MemoryStore) Save(sess *Session) error {
	s.sess = sess
	return nil
}

func (s *MemoryStore) Clear() error {
	s.sess = nil
	return nil
}
