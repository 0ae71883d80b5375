package crawl

import (
	"context"
	"time"

	"github.com/kmisiak/phscrape"
)

// OpenFunc is the signature for a page-open function.
type OpenFunc func(ctx context.Context, url string) (phscrape.Page, error)

// DefaultRetryDelays returns the backoff delays for open retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// OpenWithRetryDelays attempts to open a URL, retrying after each delay in
// delays (N delays means N+1 total attempts). Retry policy lives here, with
// the crawl driver; extractors and fetchers never retry on their own.
func OpenWithRetryDelays(ctx context.Context, url string, open OpenFunc, delays []time.Duration) (phscrape.Page, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		page, err := open(ctx, url)
		if err == nil {
			return page, nil
		}
		lastErr = err

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		// Check context before sleeping
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		// Wait before next attempt
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
