package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store persists the access token between runs. The token file is the cookie
// analog of the web client: one line, owner-readable only.
type Store struct {
	path string
}

// NewStore returns a store writing to path (usually
// ~/.config/chatto/token).
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the token path inside the given config directory.
func DefaultPath(configDir string) string {
	return filepath.Join(configDir, "token")
}

// Load reads the persisted token. A missing file means logged out and
// returns "", nil.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token with 0600 permissions.
func (s *Store) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Clear removes the persisted token. Clearing an absent file is not an
// error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
