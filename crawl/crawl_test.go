package crawl_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/kmisiak/phscrape"
	"github.com/kmisiak/phscrape/crawl"
	"github.com/kmisiak/phscrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPage returns a mock page serving a fixed URL and HTML body.
func stubPage(url, html string) *mock.Page {
	return &mock.Page{
		URLFn:  func() string { return url },
		HTMLFn: func() (string, error) { return html, nil },
	}
}

// stubFetcher serves stub pages and records the URLs it was asked to open.
type stubFetcher struct {
	mu     sync.Mutex
	opened []string
}

func (f *stubFetcher) fetcher() *mock.PageFetcher {
	return &mock.PageFetcher{
		OpenFn: func(ctx context.Context, url string) (phscrape.Page, error) {
			f.mu.Lock()
			f.opened = append(f.opened, url)
			f.mu.Unlock()
			return stubPage(url, "<html></html>"), nil
		},
	}
}

// slugExtractor builds a minimal post from the page URL.
func slugExtractor() *mock.PostExtractor {
	return &mock.PostExtractor{
		ExtractPostFn: func(ctx context.Context, page phscrape.Page) (*phscrape.Post, error) {
			return &phscrape.Post{
				PHURL: page.URL(),
				Slug:  phscrape.Slug(page.URL()),
			}, nil
		},
	}
}

func TestCrawler_Run(t *testing.T) {
	t.Parallel()

	t.Run("extracts posts discovered from a listing", func(t *testing.T) {
		t.Parallel()

		fetcher := &stubFetcher{}
		links := &mock.LinkExtractor{
			ExtractLinksFn: func(html, baseURL string) ([]phscrape.DiscoveredLink, error) {
				if baseURL != "https://example.com/" {
					return nil, nil
				}
				return []phscrape.DiscoveredLink{
					{URL: "https://example.com/posts/app-one", Priority: phscrape.PriorityPost, Source: "listing"},
					{URL: "https://example.com/posts/app-two", Priority: phscrape.PriorityPost, Source: "listing"},
				}, nil
			},
		}
		sink := &mock.PostSink{}

		crawler := &crawl.Crawler{
			Fetcher:     fetcher.fetcher(),
			Extractor:   slugExtractor(),
			Links:       links,
			Sink:        sink,
			Concurrency: 1,
			RetryDelays: []time.Duration{},
		}

		result, err := crawler.Run(context.Background(), []string{"https://example.com/"}, nil)
		require.NoError(t, err)

		assert.Equal(t, 3, result.Requests)
		assert.Equal(t, 2, result.Posts)
		assert.Equal(t, 0, result.Failed)

		posts := sink.Emitted()
		require.Len(t, posts, 2)
		slugs := []string{posts[0].Slug, posts[1].Slug}
		assert.ElementsMatch(t, []string{"app-one", "app-two"}, slugs)
	})

	t.Run("extracts a post seeded directly", func(t *testing.T) {
		t.Parallel()

		fetcher := &stubFetcher{}
		links := &mock.LinkExtractor{
			ExtractLinksFn: func(html, baseURL string) ([]phscrape.DiscoveredLink, error) {
				return nil, nil
			},
		}
		sink := &mock.PostSink{}

		crawler := &crawl.Crawler{
			Fetcher:     fetcher.fetcher(),
			Extractor:   slugExtractor(),
			Links:       links,
			Sink:        sink,
			RetryDelays: []time.Duration{},
		}

		result, err := crawler.Run(context.Background(), []string{"https://example.com/posts/my-app"}, nil)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Requests)
		assert.Equal(t, 1, result.Posts)
		require.Len(t, sink.Emitted(), 1)
		assert.Equal(t, "my-app", sink.Emitted()[0].Slug)
	})

	t.Run("respects the request budget", func(t *testing.T) {
		t.Parallel()

		fetcher := &stubFetcher{}
		// Every page links to further listing pages so the frontier never
		// drains on its own.
		n := 0
		var mu sync.Mutex
		links := &mock.LinkExtractor{
			ExtractLinksFn: func(html, baseURL string) ([]phscrape.DiscoveredLink, error) {
				mu.Lock()
				defer mu.Unlock()
				n++
				return []phscrape.DiscoveredLink{
					{URL: "https://example.com/topics/" + string(rune('a'+n)), Priority: phscrape.PriorityListing, Source: "listing"},
				}, nil
			},
		}
		sink := &mock.PostSink{}

		crawler := &crawl.Crawler{
			Fetcher:     fetcher.fetcher(),
			Extractor:   slugExtractor(),
			Links:       links,
			Sink:        sink,
			Concurrency: 1,
			MaxRequests: 3,
			RetryDelays: []time.Duration{},
		}

		result, err := crawler.Run(context.Background(), []string{"https://example.com/"}, nil)
		require.NoError(t, err)
		assert.Equal(t, 3, result.Requests)
	})

	t.Run("counts pages that fail to open", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.PageFetcher{
			OpenFn: func(ctx context.Context, url string) (phscrape.Page, error) {
				return nil, phscrape.Errorf(phscrape.EUNAVAILABLE, "connection refused")
			},
		}
		sink := &mock.PostSink{}

		crawler := &crawl.Crawler{
			Fetcher:     fetcher,
			Extractor:   slugExtractor(),
			Sink:        sink,
			RetryDelays: []time.Duration{},
		}

		result, err := crawler.Run(context.Background(), []string{"https://example.com/posts/my-app"}, nil)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Requests)
		assert.Equal(t, 0, result.Posts)
		assert.Equal(t, 1, result.Failed)
		assert.Empty(t, sink.Emitted())
	})

	t.Run("reports progress events", func(t *testing.T) {
		t.Parallel()

		fetcher := &stubFetcher{}
		links := &mock.LinkExtractor{
			ExtractLinksFn: func(html, baseURL string) ([]phscrape.DiscoveredLink, error) {
				return nil, nil
			},
		}
		sink := &mock.PostSink{}

		crawler := &crawl.Crawler{
			Fetcher:     fetcher.fetcher(),
			Extractor:   slugExtractor(),
			Links:       links,
			Sink:        sink,
			Concurrency: 1,
			RetryDelays: []time.Duration{},
		}

		var events []crawl.ProgressEvent
		_, err := crawler.Run(context.Background(), []string{"https://example.com/posts/my-app"}, func(e crawl.ProgressEvent) {
			events = append(events, e)
		})
		require.NoError(t, err)

		require.Len(t, events, 3)
		assert.Equal(t, crawl.ProgressStarted, events[0].Type)
		assert.Equal(t, crawl.ProgressExtracted, events[1].Type)
		assert.Equal(t, "https://example.com/posts/my-app", events[1].URL)
		require.NotNil(t, events[1].Post)
		assert.Equal(t, crawl.ProgressFinished, events[2].Type)
	})

	t.Run("does not start new work after cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		fetcher := &stubFetcher{}
		crawler := &crawl.Crawler{
			Fetcher:     fetcher.fetcher(),
			Extractor:   slugExtractor(),
			Sink:        &mock.PostSink{},
			RetryDelays: []time.Duration{},
		}

		result, err := crawler.Run(ctx, []string{"https://example.com/posts/my-app"}, nil)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, result.Requests)
	})
}
