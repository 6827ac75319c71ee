// Package slog provides logging decorators for cdpsupport services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cdpsupport"
)

// Ensure LoggingFetcher implements cdpsupport.Fetcher.
var _ cdpsupport.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   cdpsupport.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next cdpsupport.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
// Successful fetches are logged at debug level, failures at warn level
// with their error code.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		if err != nil {
			f.logger.WarnContext(ctx, "fetch failed",
				"url", url,
				"code", cdpsupport.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		f.logger.DebugContext(ctx, "fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
