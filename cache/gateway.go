// Package cache implements the fetch-or-cache gateway that mediates every
// outbound request. A request is identified by its fingerprint; a known
// fingerprint is answered from memory without touching the network, an
// unknown one is fetched, recorded and flushed to the CacheStore before
// the result is returned.
package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/fwojciec/parkdir"
)

var (
	_ parkdir.Fetcher           = (*Gateway)(nil)
	_ parkdir.StructuredFetcher = (*Gateway)(nil)
)

// DecodeFunc converts a structured response body into the JSON payload
// that is cached and returned.
type DecodeFunc func(body string) (json.RawMessage, error)

// DecodeJSON accepts a JSON body as-is, compacted.
// Returns EINVALID if the body is not valid JSON.
func DecodeJSON(body string) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(body)); err != nil {
		return nil, parkdir.Errorf(parkdir.EINVALID, "response is not valid JSON: %v", err)
	}
	return json.RawMessage(buf.Bytes()), nil
}

// Stats reports gateway activity since construction.
type Stats struct {
	Hits    int
	Misses  int
	Entries int
}

// Gateway answers fetches from the cache and writes through on a miss.
// Entries are never re-validated or overwritten once present.
type Gateway struct {
	store     parkdir.CacheStore
	transport parkdir.Fetcher
	decode    DecodeFunc

	mu      sync.Mutex
	entries parkdir.Entries
	hits    int
	misses  int
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithDecoder sets how structured response bodies are decoded.
// Defaults to DecodeJSON.
func WithDecoder(fn DecodeFunc) Option {
	return func(g *Gateway) {
		g.decode = fn
	}
}

// NewGateway creates a gateway over transport, seeded with entries
// (typically the result of store.Load) and flushing to store on every miss.
// A nil entries map starts the gateway cold.
func NewGateway(store parkdir.CacheStore, entries parkdir.Entries, transport parkdir.Fetcher, opts ...Option) *Gateway {
	if entries == nil {
		entries = parkdir.Entries{}
	}
	g := &Gateway{
		store:     store,
		transport: transport,
		entries:   entries,
		decode:    DecodeJSON,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Fetch returns the body of url, using the url itself as the fingerprint.
func (g *Gateway) Fetch(ctx context.Context, url string) (string, error) {
	if payload, ok := g.lookup(url); ok {
		var body string
		if err := json.Unmarshal(payload, &body); err != nil {
			return "", parkdir.Errorf(parkdir.EINVALID, "cached entry for %s is not a page body", url)
		}
		return body, nil
	}

	body, err := g.transport.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	// JSON strings cannot hold invalid UTF-8; return what will be stored.
	body = strings.ToValidUTF8(body, "\uFFFD")

	payload, err := encodeText(body)
	if err != nil {
		return "", err
	}
	if err := g.record(ctx, url, payload); err != nil {
		return "", err
	}
	return body, nil
}

// FetchStructured returns the decoded payload for address and params.
// The fingerprint is params.Fingerprint(address), so a different parameter
// set is a different request.
func (g *Gateway) FetchStructured(ctx context.Context, address string, params parkdir.Params) (json.RawMessage, error) {
	fingerprint := params.Fingerprint(address)
	if payload, ok := g.lookup(fingerprint); ok {
		return payload, nil
	}

	body, err := g.transport.Fetch(ctx, params.URL(address))
	if err != nil {
		return nil, err
	}

	payload, err := g.decode(body)
	if err != nil {
		return nil, err
	}
	if err := g.record(ctx, fingerprint, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Close releases the underlying transport.
func (g *Gateway) Close() error {
	return g.transport.Close()
}

// Stats returns hit and miss counts and the number of cached entries.
func (g *Gateway) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Stats{Hits: g.hits, Misses: g.misses, Entries: len(g.entries)}
}

// Contains reports whether fingerprint is cached.
func (g *Gateway) Contains(fingerprint string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.entries[fingerprint]
	return ok
}

// encodeText stores a page body as a JSON string without escaping markup.
func encodeText(body string) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		return nil, err
	}
	return json.RawMessage(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

func (g *Gateway) lookup(fingerprint string) (json.RawMessage, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	payload, ok := g.entries[fingerprint]
	if ok {
		g.hits++
	} else {
		g.misses++
	}
	return payload, ok
}

// record stores payload under fingerprint and flushes the whole mapping.
// The entry stays in memory even if the flush fails.
func (g *Gateway) record(ctx context.Context, fingerprint string, payload json.RawMessage) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.entries[fingerprint]; !ok {
		g.entries[fingerprint] = payload
	}
	if err := g.store.Save(ctx, g.entries); err != nil {
		return fmt.Errorf("saving cache: %w", err)
	}
	return nil
}
