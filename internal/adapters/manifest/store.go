// Package manifest persists the versioned URL of every stamped asset in a JSON file.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/zerr"
)

// Store maps asset paths to their versioned URLs and is backed by a flat JSON file.
// Entries of an existing file are kept unless they are overwritten.
type Store struct {
	path    string
	mu      sync.RWMutex
	entries map[string]string
}

// NewStore creates a Store backed by the file at path, loading it if it exists.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:    filepath.Clean(path),
		entries: make(map[string]string),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by the user on the command line
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", s.path)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to parse manifest"), "path", s.path)
	}
	return nil
}

// Put records the versioned URL of assetPath in memory. Save writes it out.
func (s *Store) Put(assetPath, versioned string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[assetPath] = versioned
}

// Entries returns a copy of all recorded entries.
func (s *Store) Entries() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.entries)
}

// Save writes all entries to the backing file with sorted keys.
func (s *Store) Save() error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	s.mu.RLock()
	err := enc.Encode(s.entries)
	s.mu.RUnlock()
	if err != nil {
		return zerr.Wrap(err, "failed to marshal manifest")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory for manifest"), "path", s.path)
	}
	//nolint:gosec // Manifests are served next to the assets they describe
	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write manifest"), "path", s.path)
	}
	return nil
}
