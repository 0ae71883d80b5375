package phscrape

import "context"

// PostExtractor extracts a Post from a page handle.
type PostExtractor interface {
	// ExtractPost reads post fields from the page using ordered fallback
	// selectors. A missing field degrades to an empty value; only a failure
	// of the page-access capability itself returns an error, which the
	// crawl driver handles (the extractor performs no retries).
	ExtractPost(ctx context.Context, page Page) (*Post, error)
}
