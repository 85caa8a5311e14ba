// Package session persists the authentication token, user id and role.
// It is the sole source of identity for every other component.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"organizo/internal/service"
)

// Session is the stored identity. Zero fields mean "not logged in".
// No expiry is tracked; an invalid token is only discovered when a
// request fails.
type Session struct {
	Token  string       `json:"token"`
	UserID string       `json:"userId"`
	Role   service.Role `json:"role"`
}

// LoggedIn reports whether both a token and a user id are present.
func (s Session) LoggedIn() bool {
	return s.Token != "" && s.UserID != ""
}

// Store reads and writes the session file. Every read hits the file
// directly; there is no in-memory cache, so concurrent invocations
// observe writes independently.
type Store struct {
	path string
}

// NewStore creates a store for the given session file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the session. A missing file is not an error: it loads as
// the zero session.
func (s *Store) Load() (Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to read session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("invalid session file: %w", err)
	}
	return sess, nil
}

// Save writes the session with mode 0600, creating the parent directory
// if needed.
func (s *Store) Save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Clear removes the session file. Clearing an absent session is a no-op.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Exists reports whether a session file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}
