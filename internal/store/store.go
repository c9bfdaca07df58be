// Package store persists the user and item collections of Showcase Drop as
// flat JSON files on local disk. Both collections are held in memory in
// insertion order and the whole file is rewritten on every mutation.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	usersFile = "users.json"
	itemsFile = "data.json"
)

// Store owns the on-disk representation of both collections. Every
// read-modify-write cycle runs under one mutex, so concurrent mutations are
// serialized and cannot clobber each other's persisted state.
type Store struct {
	dir string

	mu     sync.Mutex
	users  []User
	items  []Item
	lastID int64
}

// Open loads the collections from dir, creating the directory if needed.
// A missing collection file yields an empty collection. A file that is
// present but unparseable fails with ErrCorruptCollection.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	s := &Store{dir: dir}
	if err := loadCollection(s.path(usersFile), &s.users); err != nil {
		return nil, err
	}
	if err := loadCollection(s.path(itemsFile), &s.items); err != nil {
		return nil, err
	}

	for _, u := range s.users {
		if u.ID > s.lastID {
			s.lastID = u.ID
		}
	}
	for _, it := range s.items {
		if it.ID > s.lastID {
			s.lastID = it.ID
		}
	}
	return s, nil
}

// Ping reports whether the backing directory is still accessible.
func (s *Store) Ping() error {
	_, err := os.Stat(s.dir)
	return err
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

func loadCollection(path string, dst any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptCollection, filepath.Base(path), err)
	}
	return nil
}

// saveCollection rewrites the whole collection file, pretty-printed with
// two-space indentation. Callers must hold s.mu.
func saveCollection(path string, src any) error {
	data, err := json.MarshalIndent(src, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// nextID returns the current Unix-millisecond timestamp, bumped past the
// last issued id so ids stay strictly increasing even when two mutations
// land in the same millisecond. Callers must hold s.mu.
func (s *Store) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}
