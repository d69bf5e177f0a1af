package parkdir

import (
	"context"
	"encoding/json"
)

// Entries maps a request fingerprint to its raw response payload.
// Page bodies are stored as JSON strings and structured responses as
// JSON values, so the whole mapping serializes as one flat JSON object.
type Entries map[string]json.RawMessage

// Clone returns a shallow copy of the entries.
func (e Entries) Clone() Entries {
	out := make(Entries, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// CacheStore persists the fetch cache. Entries are never expired or
// evicted; Save overwrites the stored mapping as a whole and the last
// save wins.
type CacheStore interface {
	// Load reads the stored mapping.
	// Returns ENOTFOUND if nothing has been stored yet and EINVALID if the
	// stored data cannot be decoded.
	Load(ctx context.Context) (Entries, error)

	// Save replaces the stored mapping with entries.
	Save(ctx context.Context, entries Entries) error
}
