package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/parkdir"
)

// Ensure LoggingNearbyService implements parkdir.NearbyService.
var _ parkdir.NearbyService = (*LoggingNearbyService)(nil)

// LoggingNearbyService wraps a NearbyService with debug logging.
type LoggingNearbyService struct {
	next   parkdir.NearbyService
	logger *slog.Logger
}

// NewLoggingNearbyService creates a new LoggingNearbyService.
func NewLoggingNearbyService(next parkdir.NearbyService, logger *slog.Logger) *LoggingNearbyService {
	return &LoggingNearbyService{next: next, logger: logger}
}

// FindNearby delegates to the wrapped service and logs the result count.
func (s *LoggingNearbyService) FindNearby(ctx context.Context, site *parkdir.Site) (search *parkdir.NearbySearch, err error) {
	defer func(begin time.Time) {
		var postal string
		if site != nil {
			postal = site.PostalCode
		}
		var count int
		if search != nil {
			count = len(search.Results)
		}
		logOp(ctx, s.logger, "find nearby", begin, err, "origin", postal, "count", count)
	}(time.Now())
	return s.next.FindNearby(ctx, site)
}
