// ABOUTME: Durable storage for the authToken and user entries
// ABOUTME: File-backed store in the config directory plus an in-memory store

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileName is the name of the session file inside the config directory
const FileName = "session.json"

// Store persists at most one Session.
// Load returns (nil, nil) when no session is stored.
type Store interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Clear(ctx context.Context) error
}

// record is the on-disk layout; both keys are written and removed together
type record struct {
	AuthToken string `json:"authToken"`
	User      *User  `json:"user"`
}

// FileStore keeps the session in a JSON file
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates a store rooted at the given config directory
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path returns the session file location
func (fs *FileStore) Path() string {
	return filepath.Join(fs.dir, FileName)
}

// Load reads the stored session.
// A missing, unreadable-as-JSON, or half-written record counts as no session.
func (fs *FileStore) Load(ctx context.Context) (*Session, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(fs.Path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, nil
	}
	if rec.AuthToken == "" || rec.User == nil {
		return nil, nil
	}

	return &Session{Token: rec.AuthToken, User: *rec.User}, nil
}

// Save writes token and user in a single atomic rename
func (fs *FileStore) Save(ctx context.Context, s *Session) error {
	if s == nil || s.Token == "" {
		return errors.New("session token is required")
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(fs.dir, 0700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	user := s.User
	data, err := json.MarshalIndent(record{AuthToken: s.Token, User: &user}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	tmp, err := os.CreateTemp(fs.dir, FileName+".*")
	if err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing session: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("writing session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}

	if err := os.Rename(tmpName, fs.Path()); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// Clear removes both entries. Clearing an absent session is not an error.
func (fs *FileStore) Clear(ctx context.Context) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	err := os.Remove(fs.Path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// MemoryStore is a Store that lives only for the process
type MemoryStore struct {
	mu      sync.Mutex
	session *Session
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, nil
	}
	cp := *m.session
	return &cp, nil
}

func (m *MemoryStore) Save(ctx context.Context, s *Session) error {
	if s == nil || s.Token == "" {
		return errors.New("session token is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.session = &cp
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

// TokenSource adapts a Store to the gateway client's token lookup
type TokenSource struct {
	Store Store
}

// Token returns the stored bearer token, or "" when logged out
func (ts TokenSource) Token(ctx context.Context) (string, error) {
	s, err := ts.Store.Load(ctx)
	if err != nil || s == nil {
		return "", err
	}
	return s.Token, nil
}
