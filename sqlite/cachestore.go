package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/parkdir"
)

// Compile-time interface verification.
var _ parkdir.CacheStore = (*CacheStore)(nil)

// CacheStore implements parkdir.CacheStore using SQLite.
// Each entry is stored with an xxhash checksum of its payload; a row whose
// checksum no longer matches makes the whole cache invalid.
type CacheStore struct {
	db *DB

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(db *DB) *CacheStore {
	return &CacheStore{db: db, Now: time.Now}
}

// checksum computes the hex xxhash of a payload.
func checksum(payload []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(payload))
}

// Load reads every stored entry.
func (s *CacheStore) Load(ctx context.Context) (parkdir.Entries, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT fingerprint, payload, checksum FROM cache_entries`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make(parkdir.Entries)
	for rows.Next() {
		var fingerprint, payload, sum string
		if err := rows.Scan(&fingerprint, &payload, &sum); err != nil {
			return nil, err
		}
		if checksum([]byte(payload)) != sum {
			return nil, parkdir.Errorf(parkdir.EINVALID, "cache entry %q failed checksum", fingerprint)
		}
		if !json.Valid([]byte(payload)) {
			return nil, parkdir.Errorf(parkdir.EINVALID, "cache entry %q is not valid JSON", fingerprint)
		}
		entries[fingerprint] = json.RawMessage(payload)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, parkdir.Errorf(parkdir.ENOTFOUND, "cache is empty")
	}
	return entries, nil
}

// Save replaces the stored entries in a single transaction. Rows for
// fingerprints that are still present keep their original created_at.
func (s *CacheStore) Save(ctx context.Context, entries parkdir.Entries) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	created := make(map[string]string)
	rows, err := tx.QueryContext(ctx, `SELECT fingerprint, created_at FROM cache_entries`)
	if err != nil {
		return err
	}
	for rows.Next() {
		var fingerprint, createdAt string
		if err := rows.Scan(&fingerprint, &createdAt); err != nil {
			rows.Close()
			return err
		}
		created[fingerprint] = createdAt
	}
	if err := rows.Close(); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cache_entries`); err != nil {
		return err
	}

	now := s.Now().UTC().Format(time.RFC3339)
	for fingerprint, payload := range entries {
		createdAt, ok := created[fingerprint]
		if !ok {
			createdAt = now
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO cache_entries (fingerprint, payload, checksum, created_at)
			VALUES (?, ?, ?, ?)
		`, fingerprint, string(payload), checksum(payload), createdAt); err != nil {
			return fmt.Errorf("failed to store %q: %w", fingerprint, err)
		}
	}

	return tx.Commit()
}

// CachedAt returns when a fingerprint was first stored.
// Returns ENOTFOUND if the fingerprint is not cached.
func (s *CacheStore) CachedAt(ctx context.Context, fingerprint string) (time.Time, error) {
	var createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT created_at FROM cache_entries WHERE fingerprint = ?
	`, fingerprint).Scan(&createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, parkdir.Errorf(parkdir.ENOTFOUND, "fingerprint not cached")
	} else if err != nil {
		return time.Time{}, err
	}

	at, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return time.Time{}, parkdir.Errorf(parkdir.EINVALID, "cache entry %q has invalid created_at %q", fingerprint, createdAt)
	}
	return at, nil
}
