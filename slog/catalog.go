package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/parkdir"
)

// Ensure LoggingCatalog implements parkdir.Catalog.
var _ parkdir.Catalog = (*LoggingCatalog)(nil)

// LoggingCatalog wraps a Catalog with debug logging.
type LoggingCatalog struct {
	next   parkdir.Catalog
	logger *slog.Logger
}

// NewLoggingCatalog creates a new LoggingCatalog.
func NewLoggingCatalog(next parkdir.Catalog, logger *slog.Logger) *LoggingCatalog {
	return &LoggingCatalog{next: next, logger: logger}
}

// BuildDirectory delegates to the wrapped catalog and logs the region count.
func (c *LoggingCatalog) BuildDirectory(ctx context.Context) (dir parkdir.Directory, err error) {
	defer func(begin time.Time) {
		logOp(ctx, c.logger, "build directory", begin, err, "count", len(dir))
	}(time.Now())
	return c.next.BuildDirectory(ctx)
}

// ExtractDetail delegates to the wrapped catalog and logs the site name.
func (c *LoggingCatalog) ExtractDetail(ctx context.Context, siteURL string) (site *parkdir.Site, err error) {
	defer func(begin time.Time) {
		var name string
		if site != nil {
			name = site.Name
		}
		logOp(ctx, c.logger, "extract detail", begin, err, "url", siteURL, "name", name)
	}(time.Now())
	return c.next.ExtractDetail(ctx, siteURL)
}

// ExtractRegionEntities delegates to the wrapped catalog and logs the site count.
func (c *LoggingCatalog) ExtractRegionEntities(ctx context.Context, regionURL string) (sites []*parkdir.Site, err error) {
	defer func(begin time.Time) {
		logOp(ctx, c.logger, "extract region", begin, err, "url", regionURL, "count", len(sites))
	}(time.Now())
	return c.next.ExtractRegionEntities(ctx, regionURL)
}
