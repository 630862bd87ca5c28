package manifest

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
)

// Store owns the current manifest for a process. Load and Reload are
// serialized against each other; readers take an immutable snapshot through
// an atomic pointer swap, so a reload mid-read can never expose a
// half-updated manifest. A reload that fails to parse (or fails the
// meta.requires check) leaves the previous manifest fully active.
type Store struct {
	path        string
	toolVersion string

	mu      sync.Mutex // serializes Load/Reload
	current atomic.Pointer[Manifest]
}

// NewStore creates a store for the manifest file at path. toolVersion is
// checked against the manifest's meta.requires constraint on every load.
func NewStore(path, toolVersion string) *Store {
	return &Store{path: path, toolVersion: toolVersion}
}

// Path returns the manifest file path the store loads from.
func (s *Store) Path() string { return s.path }

// Load reads, schema-validates, and parses the manifest file, then installs
// it as the current snapshot. The schema check runs before structural
// parsing: a document it rejects never reaches Parse, so a typo'd entry
// field fails the load instead of silently changing the entry's meaning.
func (s *Store) Load() (*Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", s.path, err)
	}

	// Malformed YAML surfaces through Parse as a ParseError; the schema
	// check only gates documents that are valid YAML of the wrong shape.
	if res, err := ValidateSchema(data); err == nil && !res.Valid {
		return nil, &SchemaError{Issues: res.Issues}
	}

	m, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := m.CheckRequires(s.toolVersion); err != nil {
		return nil, err
	}

	s.current.Store(m)
	return m, nil
}

// Reload re-parses the manifest file. On success the new manifest replaces
// the current snapshot atomically; on failure the prior snapshot stays
// active and the error is returned.
func (s *Store) Reload() (*Manifest, error) {
	return s.Load()
}

// Current returns the current manifest snapshot. It returns an error until
// the first successful Load.
func (s *Store) Current() (*Manifest, error) {
	m := s.current.Load()
	if m == nil {
		return nil, fmt.Errorf("no manifest loaded from %s", s.path)
	}
	return m, nil
}
