package main

import (
	"fmt"
	"regexp"

	"github.com/kmisiak/phscrape"
)

// Run executes the preview command.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	// Compile filters to URLFilter (validates regex patterns early)
	var urlFilter *phscrape.URLFilter
	if len(c.Filter) > 0 {
		urlFilter = &phscrape.URLFilter{}
		for _, pattern := range c.Filter {
			re, err := regexp.Compile(pattern)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: invalid filter pattern %q: %v\n", pattern, err)
				return err
			}
			urlFilter.Include = append(urlFilter.Include, re)
		}
	}

	urls, err := deps.Source.DiscoverURLs(deps.Ctx, c.URL, urlFilter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", phscrape.ErrorMessage(err))
		return err
	}

	count := 0
	for _, u := range urls {
		if c.PostsOnly && !phscrape.IsPostURL(u) {
			continue
		}
		fmt.Fprintln(deps.Stdout, u)
		count++
	}

	if count == 0 {
		fmt.Fprintln(deps.Stderr, "No URLs discovered. The site may not publish a sitemap.")
	}

	return nil
}
