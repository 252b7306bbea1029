// Package cache provides time-keyed durable persistence for named
// JSON-serializable payloads. Entries are overwritten wholesale on refresh;
// staleness is judged from the write timestamp at read time.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// TTLs per data class
const (
	// TTLDaily bounds cost records and exchange rates
	TTLDaily = 24 * time.Hour

	// TTLWeekly bounds city lists
	TTLWeekly = 7 * 24 * time.Hour
)

// Store is the cache backend interface
type Store interface {
	// Get retrieves a payload and its write timestamp
	Get(key string) (payload []byte, writtenAt time.Time, ok bool)

	// Put stores a payload, overwriting any previous entry
	Put(key string, payload []byte) error
}

// Fresh returns the payload for a key if the entry is younger than ttl
func Fresh(s Store, key string, ttl time.Duration) ([]byte, bool) {
	payload, writtenAt, ok := s.Get(key)
	if !ok {
		return nil, false
	}
	if time.Since(writtenAt) >= ttl {
		return nil, false
	}
	return payload, true
}

// ReadFresh decodes a fresh entry into T. A malformed payload is treated
// as a miss, never an error.
func ReadFresh[T any](s Store, key string, ttl time.Duration) (T, bool) {
	var value T
	payload, ok := Fresh(s, key, ttl)
	if !ok {
		return value, false
	}
	if err := json.Unmarshal(payload, &value); err != nil {
		return value, false
	}
	return value, true
}

// Write encodes a value and stores it under key
func Write(s Store, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Put(key, payload)
}

// FileStore keeps one <key>.json file per entry under a directory.
// The file mtime is the write timestamp. Concurrent writers race with
// last-write-wins semantics, which is acceptable because entries are
// idempotent recomputations of the same logical value.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at dir
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get reads an entry; any read failure is a miss
func (s *FileStore) Get(key string) ([]byte, time.Time, bool) {
	path := s.path(key)
	info, err := os.Stat(path)
	if err != nil {
		return nil, time.Time{}, false
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, time.Time{}, false
	}
	return payload, info.ModTime(), true
}

// Put writes an entry wholesale
func (s *FileStore) Put(key string, payload []byte) error {
	return os.WriteFile(s.path(key), payload, 0644)
}

// MemoryStore is an in-memory backend (for testing)
type MemoryStore struct {
	entries map[string]memoryEntry
	mu      sync.RWMutex
}

type memoryEntry struct {
	payload   []byte
	writtenAt time.Time
}

// NewMemoryStore creates a memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Get(key string) ([]byte, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key]
	if !ok {
		return nil, time.Time{}, false
	}
	return entry.payload, entry.writtenAt, true
}

func (s *MemoryStore) Put(key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{payload: payload, writtenAt: time.Now()}
	return nil
}

// PutAt stores an entry with an explicit write timestamp, so tests can
// age entries past their freshness window
func (s *MemoryStore) PutAt(key string, payload []byte, writtenAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{payload: payload, writtenAt: writtenAt}
}

// Len returns the number of entries
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// NopStore discards writes and never hits; used when caching is disabled
type NopStore struct{}

func (NopStore) Get(string) ([]byte, time.Time, bool) { return nil, time.Time{}, false }
func (NopStore) Put(string, []byte) error             { return nil }
