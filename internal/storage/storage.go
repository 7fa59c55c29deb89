// Package storage provides durable, JSON-serialized named collections,
// one file per key under a data directory. It is the server-side
// counterpart of the browser storage slots the storefront UI persists
// carts and favorites into: whole-value reads and writes, no partial
// updates, and corrupted payloads degrade to an empty collection.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileStore persists one named ordered collection per key.
type FileStore struct {
	dir    string
	logger *slog.Logger
}

// NewFileStore creates a store rooted at dir. The directory is created on
// first save, not here.
func NewFileStore(dir string, logger *slog.Logger) *FileStore {
	return &FileStore{
		dir:    dir,
		logger: logger.With("component", "storage"),
	}
}

// Load reads the raw serialized collection for key.
// A missing slot returns (nil, false); read failures are treated the same
// way, never surfaced to the caller.
func (s *FileStore) Load(key string) ([]byte, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("Failed to read collection, treating as empty", "key", key, "error", err)
		}
		return nil, false
	}
	return data, true
}

// Save replaces the slot's value with data. The write is atomic: a
// temporary file is written and renamed over the slot, so a crash never
// leaves a half-written collection behind.
func (s *FileStore) Save(key string, data []byte) error {
	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write collection %q: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace collection %q: %w", key, err)
	}
	return nil
}

// Clear removes the slot entirely. Distinct from saving an empty
// collection: both leave Load returning empty, but Clear frees the slot.
// Clearing a missing slot is a no-op.
func (s *FileStore) Clear(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to clear collection %q: %w", key, err)
	}
	return nil
}

// path maps a key to its backing file. Key segments (separated by '/')
// become path elements; characters outside a safe set are replaced so an
// arbitrary session ID can never escape the data directory.
func (s *FileStore) path(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = sanitize(seg)
	}
	return filepath.Join(s.dir, filepath.Join(segments...)) + ".json"
}

func sanitize(segment string) string {
	var b strings.Builder
	for _, r := range segment {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	// "." and ".." are path elements, not names; they must never survive
	// into the joined path.
	switch s := b.String(); s {
	case "", ".", "..":
		return "_"
	default:
		return s
	}
}

// Load reads and decodes the collection stored under key.
// Missing slots and corrupted or schema-mismatched payloads both yield an
// empty slice; corruption is swallowed, never fatal to the caller.
// Unknown fields in stored records are ignored, missing ones default.
func Load[T any](s *FileStore, key string) []T {
	data, ok := s.Load(key)
	if !ok {
		return []T{}
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("Corrupted collection payload, treating as empty", "key", key, "error", err)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// Save serializes items and rewrites the slot under key.
func Save[T any](s *FileStore, key string, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to serialize collection %q: %w", key, err)
	}
	return s.Save(key, data)
}
