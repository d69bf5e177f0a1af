package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/parkdir"
)

// Ensure LoggingCacheStore implements parkdir.CacheStore.
var _ parkdir.CacheStore = (*LoggingCacheStore)(nil)

// LoggingCacheStore wraps a CacheStore with debug logging.
type LoggingCacheStore struct {
	next   parkdir.CacheStore
	logger *slog.Logger
}

// NewLoggingCacheStore creates a new LoggingCacheStore.
func NewLoggingCacheStore(next parkdir.CacheStore, logger *slog.Logger) *LoggingCacheStore {
	return &LoggingCacheStore{next: next, logger: logger}
}

// Load delegates to the wrapped store and logs the entry count.
func (s *LoggingCacheStore) Load(ctx context.Context) (entries parkdir.Entries, err error) {
	defer func(begin time.Time) {
		logOp(ctx, s.logger, "cache load", begin, err, "entries", len(entries))
	}(time.Now())
	return s.next.Load(ctx)
}

// Save delegates to the wrapped store and logs the entry count.
func (s *LoggingCacheStore) Save(ctx context.Context, entries parkdir.Entries) (err error) {
	defer func(begin time.Time) {
		logOp(ctx, s.logger, "cache save", begin, err, "entries", len(entries))
	}(time.Now())
	return s.next.Save(ctx, entries)
}
