package rod

import (
	"context"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/kmisiak/phscrape"
)

// Ensure Fetcher implements phscrape.PageFetcher at compile time.
var _ phscrape.PageFetcher = (*Fetcher)(nil)

// Fetcher opens pages in a headless Chrome browser and returns live page
// handles for field extraction. Fetcher is safe for concurrent use by
// multiple goroutines.
type Fetcher struct {
	manager        *BrowserManager
	elementTimeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithElementTimeout bounds each per-element lookup on opened pages.
// Defaults to DefaultElementTimeout if not specified.
func WithElementTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.elementTimeout = d
	}
}

// NewFetcher launches a headless Chrome browser (finding or downloading
// Chrome as needed). Close must be called when the Fetcher is no longer
// needed.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		elementTimeout: DefaultElementTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Open navigates a new tab to the URL, waits for the page to load, and
// returns the live page handle. The caller must Close the returned page.
func (f *Fetcher) Open(ctx context.Context, url string) (phscrape.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}

	// Scope all subsequent operations to the caller's context.
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		_ = page.Close()
		return nil, err
	}

	if err := page.WaitLoad(); err != nil {
		_ = page.Close()
		return nil, err
	}

	f.manager.IncrementPageCount()

	return &Page{url: url, page: page, timeout: f.elementTimeout}, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
