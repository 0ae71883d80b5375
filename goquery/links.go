package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kmisiak/phscrape"
)

// Ensure PostLinkExtractor implements phscrape.LinkExtractor at compile time.
var _ phscrape.LinkExtractor = (*PostLinkExtractor)(nil)

// PostLinkExtractor discovers same-site links on a crawled page.
// Post-detail links (path containing /posts/) are returned with post
// priority so the crawl budget is spent on extractable pages; every other
// same-site link gets listing priority for further discovery.
type PostLinkExtractor struct{}

// NewPostLinkExtractor creates a new PostLinkExtractor.
func NewPostLinkExtractor() *PostLinkExtractor {
	return &PostLinkExtractor{}
}

// ExtractLinks parses HTML and returns discovered links with priority.
// Links are deduplicated by normalized URL, keeping the highest priority
// version. External links (different host than baseURL) are dropped.
func (s *PostLinkExtractor) ExtractLinks(html string, baseURL string) ([]phscrape.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, phscrape.Errorf(phscrape.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, phscrape.Errorf(phscrape.EINVALID, "failed to parse HTML: %v", err)
	}

	// Track seen URLs with their index in the result slice for O(1) updates
	seen := make(map[string]int)
	var links []phscrape.DiscoveredLink

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		// Skip non-HTTP links (javascript:, mailto:, etc.)
		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		// Filter external links (exact host match, subdomains are filtered)
		if !isSameHost(base, resolved) {
			return
		}

		priority := phscrape.PriorityListing
		source := "listing"
		if phscrape.IsPostURL(resolved) {
			priority = phscrape.PriorityPost
			source = "post"
		}

		link := phscrape.DiscoveredLink{
			URL:      resolved,
			Priority: priority,
			Text:     strings.TrimSpace(sel.Text()),
			Source:   source,
		}

		if idx, ok := seen[resolved]; ok {
			// Update if this has higher priority
			if priority > links[idx].Priority {
				links[idx] = link
			}
		} else {
			// First occurrence - add to slice and track index
			seen[resolved] = len(links)
			links = append(links, link)
		}
	})

	return links, nil
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed or if the resolved URL
// is self-referential (same as base URL after stripping fragment).
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := phscrape.NormalizeURL(base.ResolveReference(ref).String())

	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if resolved == baseNoFragment.String() {
		return ""
	}
	return resolved
}

// isSameHost checks if the resolved URL has the same host as the base URL.
// This uses exact host matching - subdomains are considered different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
