// Package cache is a small disk-backed snapshot store. Pollers persist
// their last successful result here so a fresh process can show
// last-known infrastructure state before the first live poll completes.
//
// Each entry is one JSON envelope file named by a hash of the key.
// Writes go through a temp file and rename, so a crash mid-write never
// leaves a torn entry — at worst the previous snapshot survives.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// StoreConfig holds configuration for a Store.
type StoreConfig struct {
	// Dir is the directory where snapshot files live.
	Dir string

	// DefaultTTL bounds how stale a replayed snapshot may be. Entries
	// older than their TTL are treated as missing and removed on access.
	// Zero means entries never expire. Default: 1 hour.
	DefaultTTL time.Duration
}

// envelope is the on-disk JSON structure for one entry.
type envelope struct {
	Key     string          `json:"key"`
	Created int64           `json:"created"` // UnixNano
	TTLNS   int64           `json:"ttl_ns"`  // 0 = no expiry
	Data    json.RawMessage `json:"data"`
}

func (e envelope) expired(now time.Time) bool {
	if e.TTLNS == 0 {
		return false
	}
	return now.UnixNano()-e.Created > e.TTLNS
}

// Store is a disk-backed key-value snapshot store with TTL expiry.
type Store struct {
	cfg StoreConfig

	mu sync.Mutex
}

// NewStore creates a Store, creating the directory if needed.
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.DefaultTTL == 0 {
		cfg.DefaultTTL = time.Hour
	}
	if cfg.DefaultTTL < 0 {
		cfg.DefaultTTL = 0
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create directory %s: %w", cfg.Dir, err)
	}
	return &Store{cfg: cfg}, nil
}

func (s *Store) entryPath(key string) string {
	return filepath.Join(s.cfg.Dir, hashKey(key)+".json")
}

// Get retrieves the raw value for key. Returns (nil, false) if the key is
// missing, expired, or unreadable. Expired entries are removed.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.entryPath(key)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Key != key {
		return nil, false
	}
	if env.expired(time.Now()) {
		_ = os.Remove(path)
		return nil, false
	}
	return env.Data, true
}

// Put stores value under key with the store's default TTL. value must be
// valid JSON; PutTyped handles marshaling for arbitrary types.
func (s *Store) Put(key string, value []byte) error {
	return s.PutWithTTL(key, value, s.cfg.DefaultTTL)
}

// PutWithTTL stores value under key with a custom TTL. A TTL of 0 means
// the entry never expires.
func (s *Store) PutWithTTL(key string, value []byte, ttl time.Duration) error {
	env := envelope{
		Key:     key,
		Created: time.Now().UnixNano(),
		TTLNS:   int64(ttl),
		Data:    json.RawMessage(value),
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("cache: marshal entry %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := atomicWrite(s.entryPath(key), raw, s.cfg.Dir); err != nil {
		return fmt.Errorf("cache: write entry %q: %w", key, err)
	}
	return nil
}

// Delete removes the entry for key. Deleting a missing key is a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.entryPath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cache: delete entry %q: %w", key, err)
	}
	return nil
}

// Has reports whether key exists and has not expired.
func (s *Store) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Prune removes every expired entry and returns how many were dropped.
// Unreadable files are left alone; the next Put overwrites them.
func (s *Store) Prune() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.cfg.Dir)
	if err != nil {
		return 0, fmt.Errorf("cache: read directory: %w", err)
	}

	now := time.Now()
	removed := 0
	for _, de := range entries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.cfg.Dir, de.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			continue
		}
		if env.expired(now) {
			if os.Remove(path) == nil {
				removed++
			}
		}
	}
	return removed, nil
}

// atomicWrite writes data to path via a temp file in dir plus rename.
func atomicWrite(path string, data []byte, dir string) error {
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
