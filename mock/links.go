package mock

import "github.com/kmisiak/phscrape"

var _ phscrape.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of phscrape.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]phscrape.DiscoveredLink, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]phscrape.DiscoveredLink, error) {
	return e.ExtractLinksFn(html, baseURL)
}
