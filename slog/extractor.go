// Package slog provides logging decorators for phscrape services using
// log/slog. Core packages stay logger-free; decorators are layered on at
// wiring time.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/kmisiak/phscrape"
)

// Ensure LoggingExtractor implements phscrape.PostExtractor.
var _ phscrape.PostExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a PostExtractor and logs each extracted record's
// page URL and title.
type LoggingExtractor struct {
	next   phscrape.PostExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next phscrape.PostExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractPost delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) ExtractPost(ctx context.Context, page phscrape.Page) (*phscrape.Post, error) {
	begin := time.Now()
	post, err := e.next.ExtractPost(ctx, page)
	if err != nil {
		e.logger.Error("post extraction failed",
			"url", page.URL(),
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}

	e.logger.Info("post extracted",
		"url", post.PHURL,
		"title", post.Title,
		"duration", time.Since(begin),
	)
	return post, nil
}
