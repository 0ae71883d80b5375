package mock

import (
	"context"

	"github.com/kmisiak/phscrape"
)

var _ phscrape.PostExtractor = (*PostExtractor)(nil)

// PostExtractor is a mock implementation of phscrape.PostExtractor.
type PostExtractor struct {
	ExtractPostFn func(ctx context.Context, page phscrape.Page) (*phscrape.Post, error)
}

func (e *PostExtractor) ExtractPost(ctx context.Context, page phscrape.Page) (*phscrape.Post, error) {
	return e.ExtractPostFn(ctx, page)
}
