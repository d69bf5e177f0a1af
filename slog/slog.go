// Package slog provides logging decorators for the parkdir interfaces.
// Each decorator delegates to the wrapped implementation and records the
// operation at debug level.
package slog

import (
	"context"
	"log/slog"
	"time"
)

// logOp records a completed operation with its duration and error.
func logOp(ctx context.Context, logger *slog.Logger, msg string, begin time.Time, err error, attrs ...any) {
	attrs = append(attrs, "duration", time.Since(begin))
	if err != nil {
		attrs = append(attrs, "err", err)
	}
	logger.DebugContext(ctx, msg, attrs...)
}
