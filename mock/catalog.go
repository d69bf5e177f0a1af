package mock

import (
	"context"

	"github.com/fwojciec/parkdir"
)

var _ parkdir.Catalog = (*Catalog)(nil)

// Catalog is a mock implementation of parkdir.Catalog.
type Catalog struct {
	BuildDirectoryFn        func(ctx context.Context) (parkdir.Directory, error)
	ExtractDetailFn         func(ctx context.Context, siteURL string) (*parkdir.Site, error)
	ExtractRegionEntitiesFn func(ctx context.Context, regionURL string) ([]*parkdir.Site, error)
}

func (c *Catalog) BuildDirectory(ctx context.Context) (parkdir.Directory, error) {
	return c.BuildDirectoryFn(ctx)
}

func (c *Catalog) ExtractDetail(ctx context.Context, siteURL string) (*parkdir.Site, error) {
	return c.ExtractDetailFn(ctx, siteURL)
}

func (c *Catalog) ExtractRegionEntities(ctx context.Context, regionURL string) ([]*parkdir.Site, error) {
	return c.ExtractRegionEntitiesFn(ctx, regionURL)
}
