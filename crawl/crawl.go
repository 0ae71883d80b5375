// Package crawl provides scraping-run orchestration. It dispatches page
// fetches up to a concurrency bound, classifies each visited URL, runs field
// extraction on post pages, forwards records to the sink, and enqueues newly
// discovered links until the request budget is exhausted or the frontier
// drains.
package crawl

import (
	"context"
	"net/url"
	"time"

	"github.com/kmisiak/phscrape"
)

// Frontier configuration.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
)

// DefaultConcurrency bounds simultaneous page-processing tasks when the
// caller does not configure a limit.
const DefaultConcurrency = 4

// Crawler orchestrates a scraping run. All collaborator fields must be safe
// for concurrent use; the crawler itself holds no shared mutable extraction
// state across pages.
type Crawler struct {
	Fetcher   phscrape.PageFetcher
	Extractor phscrape.PostExtractor
	Links     phscrape.LinkExtractor
	Sink      phscrape.PostSink
	Limiter   phscrape.DomainLimiter

	// Concurrency bounds simultaneous page-processing tasks.
	// Defaults to DefaultConcurrency.
	Concurrency int

	// MaxRequests is a hard cap on total page fetches for the run.
	// Zero means no cap.
	MaxRequests int

	// RetryDelays configures fetch retry backoff. Defaults to
	// DefaultRetryDelays.
	RetryDelays []time.Duration
}

// Result holds the outcome of a crawl run.
type Result struct {
	Requests int
	Posts    int
	Failed   int
}

// ProgressEvent reports progress during a crawl run.
type ProgressEvent struct {
	Type  ProgressType
	URL   string
	Post  *phscrape.Post
	Error error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressVisited
	ProgressExtracted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single URL.
type pageResult struct {
	url   string
	post  *phscrape.Post
	links []phscrape.DiscoveredLink
	err   error
}

// Run crawls from the start URLs until the frontier drains or the request
// budget is spent. In-flight page tasks always complete (or time out) before
// Run returns, so cancellation never leaves a record partially written.
func (c *Crawler) Run(ctx context.Context, startURLs []string, progress ProgressFunc) (*Result, error) {
	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	for _, raw := range startURLs {
		priority := phscrape.PriorityListing
		if phscrape.IsPostURL(raw) {
			priority = phscrape.PriorityPost
		}
		frontier.Push(phscrape.DiscoveredLink{
			URL:      raw,
			Priority: priority,
			Source:   "seed",
		})
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted})
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var result Result
	results := make(chan pageResult)
	inflight := 0

	for {
		// Dispatch while capacity, budget, and queued work remain. After
		// cancellation no new work starts; in-flight tasks drain below.
		for inflight < concurrency && ctx.Err() == nil {
			if c.MaxRequests > 0 && result.Requests >= c.MaxRequests {
				break
			}
			link, ok := frontier.Pop()
			if !ok {
				break
			}
			result.Requests++
			inflight++
			go func(link phscrape.DiscoveredLink) {
				results <- c.processPage(ctx, link)
			}(link)
		}

		if inflight == 0 {
			break
		}

		r := <-results
		inflight--

		if r.err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, URL: r.url, Error: r.err})
			}
			continue
		}

		for _, link := range r.links {
			frontier.Push(link)
		}

		if r.post != nil {
			result.Posts++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressExtracted, URL: r.url, Post: r.post})
			}
		} else if progress != nil {
			progress(ProgressEvent{Type: ProgressVisited, URL: r.url})
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished})
	}

	return &result, ctx.Err()
}

// processPage fetches one page, extracts links, and on post pages extracts
// and emits a record.
func (c *Crawler) processPage(ctx context.Context, link phscrape.DiscoveredLink) pageResult {
	r := pageResult{url: link.URL}

	if c.Limiter != nil {
		u, err := url.Parse(link.URL)
		if err != nil {
			r.err = phscrape.Errorf(phscrape.EINVALID, "invalid URL %q: %v", link.URL, err)
			return r
		}
		if err := c.Limiter.Wait(ctx, u.Host); err != nil {
			r.err = err
			return r
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	page, err := OpenWithRetryDelays(ctx, link.URL, c.Fetcher.Open, delays)
	if err != nil {
		r.err = err
		return r
	}
	defer page.Close()

	// Link discovery happens on every page; a failure here only costs
	// discovery, not the record.
	if c.Links != nil {
		if html, err := page.HTML(); err == nil {
			if links, err := c.Links.ExtractLinks(html, link.URL); err == nil {
				r.links = links
			}
		}
	}

	if !phscrape.IsPostURL(link.URL) {
		return r
	}

	post, err := c.Extractor.ExtractPost(ctx, page)
	if err != nil {
		r.err = err
		return r
	}

	if err := c.Sink.EmitPost(ctx, post); err != nil {
		r.err = err
		return r
	}

	r.post = post
	return r
}
