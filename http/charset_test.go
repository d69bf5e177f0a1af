package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/parkdir"
	"github.com/fwojciec/parkdir/cache"
	parkhttp "github.com/fwojciec/parkdir/http"
	"github.com/fwojciec/parkdir/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_FetchDecodesCharset(t *testing.T) {
	t.Parallel()

	t.Run("decodes a Latin-1 page to UTF-8", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			_, _ = w.Write([]byte("<p>Caf\xe9</p>"))
		}))
		defer server.Close()

		body, err := parkhttp.NewFetcher().Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "<p>Café</p>", body)
	})

	t.Run("uses the charset from a meta tag", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><head><meta charset="iso-8859-1"></head><body>Caf` + "\xe9" + `</body></html>`))
		}))
		defer server.Close()

		body, err := parkhttp.NewFetcher().Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Contains(t, body, "Café")
	})

	t.Run("leaves UTF-8 JSON untouched", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name":"Café Ñandú"}`))
		}))
		defer server.Close()

		body, err := parkhttp.NewFetcher().Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, `{"name":"Café Ñandú"}`, body)
	})

	t.Run("returns an empty body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		body, err := parkhttp.NewFetcher().Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Empty(t, body)
	})

	t.Run("cached Latin-1 page matches the first fetch", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			_, _ = w.Write([]byte("<p>Caf\xe9</p>"))
		}))
		defer server.Close()

		store := &mock.CacheStore{
			SaveFn: func(context.Context, parkdir.Entries) error { return nil },
		}
		gw := cache.NewGateway(store, nil, parkhttp.NewFetcher())
		ctx := context.Background()

		first, err := gw.Fetch(ctx, server.URL)
		require.NoError(t, err)
		second, err := gw.Fetch(ctx, server.URL)
		require.NoError(t, err)

		assert.Equal(t, "<p>Café</p>", first)
		assert.Equal(t, first, second)
		assert.Equal(t, cache.Stats{Hits: 1, Misses: 1, Entries: 1}, gw.Stats())
	})
}
