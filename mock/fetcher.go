package mock

import (
	"context"

	"github.com/kmisiak/phscrape"
)

var _ phscrape.PageFetcher = (*PageFetcher)(nil)

// PageFetcher is a mock implementation of phscrape.PageFetcher.
type PageFetcher struct {
	OpenFn  func(ctx context.Context, url string) (phscrape.Page, error)
	CloseFn func() error
}

func (f *PageFetcher) Open(ctx context.Context, url string) (phscrape.Page, error) {
	return f.OpenFn(ctx, url)
}

func (f *PageFetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
