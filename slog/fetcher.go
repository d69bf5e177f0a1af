package slog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/fwojciec/parkdir"
)

// Ensure LoggingFetcher implements parkdir.Fetcher.
var _ parkdir.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   parkdir.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next parkdir.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the request.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (body string, err error) {
	defer func(begin time.Time) {
		logOp(ctx, f.logger, "fetch", begin, err, "url", url, "bytes", len(body))
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingStructuredFetcher implements parkdir.StructuredFetcher.
var _ parkdir.StructuredFetcher = (*LoggingStructuredFetcher)(nil)

// LoggingStructuredFetcher wraps a StructuredFetcher with debug logging.
// Only the fingerprint is logged so secret parameters stay out of logs.
type LoggingStructuredFetcher struct {
	next   parkdir.StructuredFetcher
	logger *slog.Logger
}

// NewLoggingStructuredFetcher creates a new LoggingStructuredFetcher.
func NewLoggingStructuredFetcher(next parkdir.StructuredFetcher, logger *slog.Logger) *LoggingStructuredFetcher {
	return &LoggingStructuredFetcher{next: next, logger: logger}
}

// FetchStructured delegates to the wrapped fetcher and logs the request.
func (f *LoggingStructuredFetcher) FetchStructured(ctx context.Context, address string, params parkdir.Params) (payload json.RawMessage, err error) {
	defer func(begin time.Time) {
		logOp(ctx, f.logger, "fetch structured", begin, err,
			"fingerprint", params.Fingerprint(address),
			"bytes", len(payload),
		)
	}(time.Now())
	return f.next.FetchStructured(ctx, address, params)
}
