// Package store persists one JSON document per record under a sandboxed
// directory: <root>/<collection>/<id>.json. It is the only persistence layer
// of the system; repositories layer typed access on top of it.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrNotFound is returned when no record exists for the given key.
var ErrNotFound = errors.New("record not found")

type Store struct {
	root string
	mu   sync.RWMutex
}

// Open creates the store root if needed and returns a ready store.
func Open(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store root: %w", err)
	}
	return &Store{root: root}, nil
}

// Root returns the directory the store writes under.
func (s *Store) Root() string {
	return s.root
}

// Write marshals v and writes it as <collection>/<id>.json. The write goes
// through a temp file and rename so readers never see a partial record.
func (s *Store) Write(collection, id string, v interface{}) error {
	if err := validateKey(collection, id); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Join(s.root, collection)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create collection dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(dir, id+".json"))
}

// Read unmarshals the record for id into v. Returns ErrNotFound if the
// record does not exist.
func (s *Store) Read(collection, id string, v interface{}) error {
	if err := validateKey(collection, id); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(filepath.Join(s.root, collection, id+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal(data, v)
}

// List returns the raw JSON of every record in the collection, sorted by id
// for deterministic iteration. A missing collection is an empty list.
func (s *Store) List(collection string) ([][]byte, error) {
	if err := validateKey(collection, "-"); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(filepath.Join(s.root, collection))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	records := make([][]byte, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(s.root, collection, name))
		if err != nil {
			return nil, err
		}
		records = append(records, data)
	}
	return records, nil
}

// Delete removes the record for id. Returns ErrNotFound if it does not exist.
func (s *Store) Delete(collection, id string) error {
	if err := validateKey(collection, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(filepath.Join(s.root, collection, id+".json"))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

// validateKey keeps record keys inside the sandbox; ids come from uuids and
// fixed names, so anything with a separator is a programming error upstream.
func validateKey(collection, id string) error {
	for _, k := range []string{collection, id} {
		if k == "" || strings.ContainsAny(k, "/\\") || strings.Contains(k, "..") {
			return fmt.Errorf("invalid record key %q/%q", collection, id)
		}
	}
	return nil
}
