package phscrape

import (
	"net/url"
	"strings"
)

// postPathSegment marks a post-detail page in a URL path.
const postPathSegment = "/posts/"

// IsPostURL reports whether the URL addresses a post-detail page.
// A URL is a post page if and only if its path contains the /posts/ segment;
// every other reachable page is a listing used only for link discovery.
func IsPostURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		// Unparseable URLs fall back to a substring check.
		return strings.Contains(rawURL, postPathSegment)
	}
	return strings.Contains(u.Path, postPathSegment)
}

// NormalizeURL returns the canonical form of a URL: parsed, fragment
// stripped, and re-serialized. If the URL cannot be parsed the input is
// returned unchanged. NormalizeURL is idempotent.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	return u.String()
}

// Slug returns the path segment that identifies a post: the first segment
// after /posts/ up to the next slash. Returns "" if the URL does not match
// the post pattern.
func Slug(rawURL string) string {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		path = u.Path
	}
	idx := strings.Index(path, postPathSegment)
	if idx == -1 {
		return ""
	}
	slug := path[idx+len(postPathSegment):]
	if end := strings.IndexByte(slug, '/'); end != -1 {
		slug = slug[:end]
	}
	return slug
}
