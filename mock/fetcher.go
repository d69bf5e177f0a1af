package mock

import (
	"context"
	"encoding/json"

	"github.com/fwojciec/parkdir"
)

var _ parkdir.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of parkdir.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ parkdir.StructuredFetcher = (*StructuredFetcher)(nil)

// StructuredFetcher is a mock implementation of parkdir.StructuredFetcher.
type StructuredFetcher struct {
	FetchStructuredFn func(ctx context.Context, address string, params parkdir.Params) (json.RawMessage, error)
}

func (f *StructuredFetcher) FetchStructured(ctx context.Context, address string, params parkdir.Params) (json.RawMessage, error) {
	return f.FetchStructuredFn(ctx, address, params)
}
