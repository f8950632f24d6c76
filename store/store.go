// Package store persists each named collection as a single JSON array file
// under the data directory. Collections are loaded wholesale, mutated in
// memory and written back wholesale; a per-collection mutex serializes each
// load-mutate-save cycle so overlapping writers cannot drop each other's
// updates.
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned by id lookups that miss.
var ErrNotFound = errors.New("record not found")

// DefaultCollections are the collections initialized to empty arrays on
// startup so every read endpoint has a file to serve.
var DefaultCollections = []string{
	"users", "organizations", "hackathons", "applications", "projects",
	"sponsors", "analytics", "timeSlots", "countries", "faqs", "comments",
	"messages", "notifications", "compatibility", "affiliateCenter",
	"slider", "charts", "judges", "productActivity", "pricing", "income",
	"payouts", "payoutStatistics", "statementStatistics", "transactions",
}

// Store owns the data directory and the per-collection locks.
type Store struct {
	dataDir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates the data directory if needed and returns a Store over it.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &Store{
		dataDir: dataDir,
		locks:   map[string]*sync.Mutex{},
	}, nil
}

// DataDir returns the directory backing the store.
func (s *Store) DataDir() string {
	return s.dataDir
}

// Lock returns the mutex guarding one collection's load-mutate-save cycle.
func (s *Store) Lock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dataDir, name+".json")
}

// Load reads the named collection into v. A missing file is a valid empty
// collection and leaves v untouched.
func (s *Store) Load(name string, v interface{}) error {
	b, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// Save replaces the named collection, writing to a temp file and renaming so
// a crash mid-write cannot leave a truncated array behind.
func (s *Store) Save(name string, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path(name) + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(name))
}

// InitCollections creates an empty array file for every named collection
// that does not exist yet.
func (s *Store) InitCollections(names ...string) error {
	for _, name := range names {
		if _, err := os.Stat(s.path(name)); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if err := s.Save(name, []interface{}{}); err != nil {
			return err
		}
	}
	return nil
}

// NextID returns 1 for an empty id set, otherwise 1 + the highest id. The
// scheme reuses an id if the current maximum is ever deleted before the next
// insert; nothing in the API deletes records today.
func NextID(ids []int) int {
	next := 1
	for _, id := range ids {
		if id >= next {
			next = id + 1
		}
	}
	return next
}
