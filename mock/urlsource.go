package mock

import (
	"context"

	"github.com/kmisiak/phscrape"
)

var _ phscrape.URLSource = (*URLSource)(nil)

// URLSource is a mock implementation of phscrape.URLSource.
type URLSource struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *phscrape.URLFilter) ([]string, error)
}

func (s *URLSource) DiscoverURLs(ctx context.Context, baseURL string, filter *phscrape.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
