package state

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/steviee/lunar-accounts/internal/accounts"
)

// defaultStorePerm matches what the launcher creates the file with.
const defaultStorePerm os.FileMode = 0644

// Store reads and writes the accounts document at a single path.
// It holds no document itself; callers keep the *accounts.Document they
// loaded and pass it back to Persist.
type Store struct {
	path   string
	backup bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithBackup keeps the previous document at <path>.bak on every persist.
func WithBackup(enabled bool) StoreOption {
	return func(s *Store) {
		s.backup = enabled
	}
}

// NewStore creates a Store for the accounts file at path.
func NewStore(path string, opts ...StoreOption) *Store {
	s := &Store{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewStoreFromConfig creates a Store from the store section of cfg.
func NewStoreFromConfig(cfg *Config) *Store {
	return NewStore(cfg.Store.Path, WithBackup(cfg.Store.Backup))
}

// Path returns the accounts file location.
func (s *Store) Path() string {
	return s.path
}

// Ensure creates the accounts file with an empty document if it does not
// exist yet, creating parent directories as needed. An existing file is
// left untouched. It reports whether the file was created.
func (s *Store) Ensure(ctx context.Context) (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to check accounts file: %w", err)
	}

	data, err := encodeDocument(accounts.NewDocument())
	if err != nil {
		return false, err
	}

	if err := AtomicWrite(s.path, data, defaultStorePerm); err != nil {
		return false, fmt.Errorf("failed to create accounts file: %w", err)
	}

	slog.Debug("store created", "path", s.path)
	return true, nil
}

// Load reads and parses the accounts file. Content that is not an
// accounts document yields an *accounts.MalformedStoreError.
func (s *Store) Load(ctx context.Context) (*accounts.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts file: %w", err)
	}

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, &accounts.MalformedStoreError{Path: s.path, Err: fmt.Errorf("document is null")}
	}

	doc := &accounts.Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, &accounts.MalformedStoreError{Path: s.path, Err: err}
	}

	slog.Debug("store loaded", "path", s.path, "accounts", doc.Len())
	return doc, nil
}

// Open ensures the accounts file exists and loads it.
func (s *Store) Open(ctx context.Context) (*accounts.Document, error) {
	if _, err := s.Ensure(ctx); err != nil {
		return nil, err
	}
	return s.Load(ctx)
}

// Persist replaces the accounts file with doc. The existing file mode is
// kept; a new file gets 0644.
func (s *Store) Persist(ctx context.Context, doc *accounts.Document) error {
	if doc == nil {
		return fmt.Errorf("document cannot be nil")
	}

	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	perm := defaultStorePerm
	if info, err := os.Stat(s.path); err == nil {
		perm = info.Mode().Perm()
	}

	write := AtomicWrite
	if s.backup {
		write = AtomicWriteWithBackup
	}

	if err := write(s.path, data, perm); err != nil {
		slog.Error("failed to persist accounts", "path", s.path, "error", err)
		return fmt.Errorf("failed to write accounts file: %w", err)
	}

	slog.Debug("store persisted", "path", s.path, "accounts", doc.Len())
	return nil
}

// Stat returns file information for the accounts file.
func (s *Store) Stat() (os.FileInfo, error) {
	return os.Stat(s.path)
}

func encodeDocument(doc *accounts.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal accounts document: %w", err)
	}
	return data, nil
}
