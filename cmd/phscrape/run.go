package main

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/kmisiak/phscrape"
	"github.com/kmisiak/phscrape/crawl"
)

// config resolves the run configuration: values from --config (if given)
// with command-line flags layered on top.
func (c *RunCmd) config() (*phscrape.Config, error) {
	cfg := &phscrape.Config{}

	if c.Config != "" {
		data, err := os.ReadFile(c.Config)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", c.Config, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %q: %w", c.Config, err)
		}
	}

	if len(c.URLs) > 0 {
		cfg.StartURLs = c.URLs
	}
	if c.MaxRequests > 0 {
		cfg.MaxRequestsPerCrawl = c.MaxRequests
	}
	if c.Browser {
		cfg.UseBrowser = true
	}
	if c.PHToken != "" {
		cfg.ProductHuntAPIToken = c.PHToken
	}

	return cfg, nil
}

// postPathFilter matches post page URLs during sitemap seeding.
var postPathFilter = &phscrape.URLFilter{
	Include: []*regexp.Regexp{regexp.MustCompile(`/posts/`)},
}

// discoverSeeds asks each start URL's site for sitemap-advertised post URLs.
func (c *RunCmd) discoverSeeds(deps *Dependencies, startURLs []string) ([]string, error) {
	var seeds []string
	for _, base := range startURLs {
		urls, err := deps.Source.DiscoverURLs(deps.Ctx, base, postPathFilter)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, urls...)
	}
	return seeds, nil
}

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	cfg := deps.Config

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", phscrape.ErrorMessage(err))
		return err
	}

	deps.Crawler.MaxRequests = cfg.MaxRequestsPerCrawl

	startURLs := cfg.StartURLs
	if c.Discover {
		seeds, err := c.discoverSeeds(deps, startURLs)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", phscrape.ErrorMessage(err))
			return err
		}
		startURLs = append(startURLs, seeds...)
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressExtracted:
			fmt.Fprintf(deps.Stdout, "  %s  %q\n", event.URL, event.Post.Title)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	result, err := deps.Crawler.Run(deps.Ctx, startURLs, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Visited %d pages, extracted %d posts (%d failed)\n",
		result.Requests, result.Posts, result.Failed)

	return nil
}
