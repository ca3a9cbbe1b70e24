package sessionfile

// Package sessionfile persists the admin session as a single JSON file,
// surviving process restarts of the same client installation.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	domainauth "github.com/opsgate/console/internal/domain/auth"
	"github.com/opsgate/console/internal/ports"
)

// DefaultFileName is the well-known admin session file name, distinct from
// any non-admin session storage the installation may keep.
const DefaultFileName = "admin_session.json"

const fileMode = 0o600

// Store is a file-based session store.
type Store struct {
	path string
}

// NewStore creates a file session store at path, creating parent directories
// as needed.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("session file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create session directory: %w", err)
	}
	return &Store{path: path}, nil
}

// Save writes the session atomically, fully replacing any prior record.
// renameio handles temp file creation, fsync, and the atomic rename.
func (s *Store) Save(_ context.Context, sess domainauth.Session) error {
	if sess.Token == "" {
		return errors.New("session token cannot be empty")
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := renameio.WriteFile(s.path, data, fileMode); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Current reads the persisted session, or ports.ErrNoSession when none exists.
func (s *Store) Current(_ context.Context) (domainauth.Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domainauth.Session{}, ports.ErrNoSession
		}
		return domainauth.Session{}, fmt.Errorf("read session file: %w", err)
	}
	var sess domainauth.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	if sess.Token == "" {
		return domainauth.Session{}, ports.ErrNoSession
	}
	return sess, nil
}

// Clear removes the persisted session. Clearing an absent session is a no-op.
func (s *Store) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

var _ ports.SessionStore = (*Store)(nil)
