package mock

import (
	"context"

	"github.com/fwojciec/parkdir"
)

var _ parkdir.CacheStore = (*CacheStore)(nil)

// CacheStore is a mock implementation of parkdir.CacheStore.
type CacheStore struct {
	LoadFn func(ctx context.Context) (parkdir.Entries, error)
	SaveFn func(ctx context.Context, entries parkdir.Entries) error
}

func (s *CacheStore) Load(ctx context.Context) (parkdir.Entries, error) {
	return s.LoadFn(ctx)
}

func (s *CacheStore) Save(ctx context.Context, entries parkdir.Entries) error {
	return s.SaveFn(ctx, entries)
}
