package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/kmisiak/phscrape"
)

// Ensure LoggingFetcher implements phscrape.PageFetcher.
var _ phscrape.PageFetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a PageFetcher with debug logging.
type LoggingFetcher struct {
	next   phscrape.PageFetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next phscrape.PageFetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Open delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Open(ctx context.Context, url string) (page phscrape.Page, err error) {
	defer func(begin time.Time) {
		f.logger.Info("page open",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Open(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
