package fs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/parkdir"
	"github.com/fwojciec/parkdir/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Durable Fetch Cache
// The cache survives restarts as one JSON file and degrades to a cold start.

func TestCacheStore_LoadMissingFileReturnsNotFound(t *testing.T) {
	t.Parallel()

	// Given a store pointing at a file that does not exist
	store := fs.NewCacheStore(filepath.Join(t.TempDir(), "cache.json"))

	// When I load
	entries, err := store.Load(context.Background())

	// Then a not-found error is reported and no entries are returned
	require.Error(t, err)
	assert.Equal(t, parkdir.ENOTFOUND, parkdir.ErrorCode(err))
	assert.Nil(t, entries)
}

func TestCacheStore_LoadCorruptFileReturnsInvalid(t *testing.T) {
	t.Parallel()

	// Given a cache file with broken JSON
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"https://www.nps.gov/index.htm": "<ht`), 0644))
	store := fs.NewCacheStore(path)

	// When I load
	_, err := store.Load(context.Background())

	// Then the error is classified as invalid
	require.Error(t, err)
	assert.Equal(t, parkdir.EINVALID, parkdir.ErrorCode(err))
}

func TestCacheStore_SaveThenLoadRoundTrips(t *testing.T) {
	t.Parallel()

	// Given entries with a page body and a structured payload
	store := fs.NewCacheStore(filepath.Join(t.TempDir(), "nested", "cache.json"))
	entries := parkdir.Entries{
		"https://www.nps.gov/index.htm": json.RawMessage(`"<html>index</html>"`),
		"http://www.mapquestapi.com/search/v2/radius?origin=49931": json.RawMessage(`{"resultsCount":1,"searchResults":[{"name":"Cafe"}]}`),
	}

	// When I save and load again
	require.NoError(t, store.Save(context.Background(), entries))
	loaded, err := store.Load(context.Background())

	// Then the same mapping comes back
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	for k, v := range entries {
		assert.JSONEq(t, string(v), string(loaded[k]))
	}

	// And saving the loaded mapping again yields an equal mapping
	require.NoError(t, store.Save(context.Background(), loaded))
	reloaded, err := store.Load(context.Background())
	require.NoError(t, err)
	for k, v := range loaded {
		assert.JSONEq(t, string(v), string(reloaded[k]))
	}
}

func TestCacheStore_SaveWritesFlatJSONObject(t *testing.T) {
	t.Parallel()

	// Given a saved cache
	path := filepath.Join(t.TempDir(), "cache.json")
	store := fs.NewCacheStore(path)
	require.NoError(t, store.Save(context.Background(), parkdir.Entries{
		"https://www.nps.gov/yell/index.htm": json.RawMessage(`"<html>yell</html>"`),
	}))

	// When I read the file directly
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// Then it is one object of fingerprint to value
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "<html>yell</html>", raw["https://www.nps.gov/yell/index.htm"])

	// And no temp file is left behind
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestCacheStore_LastSaveWins(t *testing.T) {
	t.Parallel()

	store := fs.NewCacheStore(filepath.Join(t.TempDir(), "cache.json"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, parkdir.Entries{"a": json.RawMessage(`"1"`)}))
	require.NoError(t, store.Save(ctx, parkdir.Entries{"b": json.RawMessage(`"2"`)}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
	assert.Contains(t, loaded, "b")
}

func TestCacheStore_LoadNullFileReturnsEmptyEntries(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("null"), 0644))

	entries, err := fs.NewCacheStore(path).Load(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestCacheStore_SaveReturnsErrorForUnwritableLocation(t *testing.T) {
	t.Parallel()

	// A regular file cannot act as a parent directory
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	store := fs.NewCacheStore(filepath.Join(blocker, "cache.json"))
	err := store.Save(context.Background(), parkdir.Entries{})

	require.Error(t, err)
}

func TestCacheStore_ReloadPreservesPayloadBytes(t *testing.T) {
	t.Parallel()

	// Given compact payloads containing markup and ampersands
	store := fs.NewCacheStore(filepath.Join(t.TempDir(), "cache.json"))
	ctx := context.Background()
	saved := parkdir.Entries{
		"https://www.nps.gov/index.htm": json.RawMessage(`"<a href=\"/x\">Parks & Trails</a>"`),
		"http://www.mapquestapi.com/search/v2/radius?origin=49630": json.RawMessage(`{"resultsCount":1,"searchResults":[{"name":"Bait & Tackle"}]}`),
	}

	// When they are saved and loaded again
	require.NoError(t, store.Save(ctx, saved))
	loaded, err := store.Load(ctx)
	require.NoError(t, err)

	// Then every payload comes back byte for byte
	for k, v := range saved {
		assert.Equal(t, string(v), string(loaded[k]))
	}
}

func TestCacheStore_LoadCompactsIndentedPayloads(t *testing.T) {
	t.Parallel()

	// Given a cache file written with indentation
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "fp": {
    "resultsCount": 1,
    "options": {
      "radius": 10
    }
  }
}`), 0644))

	// When it is loaded
	entries, err := fs.NewCacheStore(path).Load(context.Background())

	// Then payloads are compact
	require.NoError(t, err)
	assert.Equal(t, `{"resultsCount":1,"options":{"radius":10}}`, string(entries["fp"]))
}
