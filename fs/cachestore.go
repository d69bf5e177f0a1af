// Package fs provides file-based storage for the fetch cache.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/parkdir"
)

// Ensure CacheStore implements parkdir.CacheStore at compile time.
var _ parkdir.CacheStore = (*CacheStore)(nil)

// CacheStore keeps the fetch cache in a single JSON file holding one flat
// object of fingerprint to payload.
// Saves go to path.tmp first and are renamed over path, so readers never
// observe a partially written file.
type CacheStore struct {
	path string
}

// NewCacheStore creates a new CacheStore backed by the file at path.
func NewCacheStore(path string) *CacheStore {
	return &CacheStore{path: path}
}

// Path returns the cache file location.
func (s *CacheStore) Path() string {
	return s.path
}

func (s *CacheStore) tempPath() string {
	return s.path + ".tmp"
}

// Load reads the cache file.
func (s *CacheStore) Load(ctx context.Context) (parkdir.Entries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, parkdir.Errorf(parkdir.ENOTFOUND, "cache file %s does not exist", s.path)
	} else if err != nil {
		return nil, err
	}

	var entries parkdir.Entries
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, parkdir.Errorf(parkdir.EINVALID, "cache file %s is corrupt: %v", s.path, err)
	}
	if entries == nil {
		// A file containing "null" decodes to a nil map.
		entries = parkdir.Entries{}
	}
	for k, v := range entries {
		var buf bytes.Buffer
		if err := json.Compact(&buf, v); err != nil {
			return nil, parkdir.Errorf(parkdir.EINVALID, "cache entry %q is corrupt: %v", k, err)
		}
		entries[k] = json.RawMessage(buf.Bytes())
	}
	return entries, nil
}

// Save serializes entries and replaces the cache file.
func (s *CacheStore) Save(ctx context.Context, entries parkdir.Entries) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entries == nil {
		entries = parkdir.Entries{}
	}

	// Payloads are written byte for byte so a reload returns what was fetched.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entries); err != nil {
		return err
	}
	data := buf.Bytes()

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	if err := os.WriteFile(s.tempPath(), data, 0644); err != nil {
		return err
	}
	if err := os.Rename(s.tempPath(), s.path); err != nil {
		_ = os.Remove(s.tempPath())
		return err
	}
	return nil
}
