// Package extract implements post field extraction over the phscrape.Page
// capability set. Each field is read through an ordered chain of selector
// strategies: the first non-empty result wins, and a field whose chain is
// exhausted degrades to an empty string rather than failing the record.
// The chains absorb markup drift on the target site, which renames classes
// and restructures pages frequently.
package extract

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/kmisiak/phscrape"
)

// Ensure Extractor implements phscrape.PostExtractor at compile time.
var _ phscrape.PostExtractor = (*Extractor)(nil)

// Extractor extracts post records using fallback selector chains.
// It works identically over static DOM snapshots and live browser pages.
// Extractor holds no mutable state across pages and is safe for concurrent
// use by multiple page-processing goroutines.
type Extractor struct {
	// Now returns the extraction timestamp. Defaults to time.Now.
	Now func() time.Time
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractPost reads post fields from the page. A missing field yields an
// empty value; only a failure of the page-access capability itself (e.g., a
// crashed browser tab) returns an error, reported as EUNAVAILABLE so the
// crawl driver can apply its retry policy.
func (e *Extractor) ExtractPost(ctx context.Context, p phscrape.Page) (*phscrape.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	phURL := phscrape.NormalizeURL(p.URL())

	// The title read doubles as a health probe: static snapshots never fail
	// it, and a live page that cannot report its title has lost the
	// underlying target.
	pageTitle, err := p.Title()
	if err != nil {
		return nil, phscrape.Errorf(phscrape.EUNAVAILABLE, "page access failed for %s: %v", phURL, err)
	}

	post := &phscrape.Post{
		Title: firstNonEmpty(p,
			text("h1"),
			attr(`meta[property="og:title"]`, "content"),
			constant(pageTitle),
		),
		Tagline: firstNonEmpty(p,
			text("h1 + h2"),
			text(`[class*="tagline"]`),
			attr(`meta[name="description"]`, "content"),
			attr(`meta[property="og:description"]`, "content"),
		),
		Votes: firstNonEmpty(p,
			digits(text(`button[data-test="vote-button"]`)),
			digits(text(`[data-test="vote-button"]`)),
			digits(text(`[class*="voteButton"]`)),
			digits(text(`[class*="vote-count"]`)),
		),
		Comments: firstNonEmpty(p,
			digits(text(`a[href$="#comments"]`)),
			digits(text(`[data-test="comments-link"]`)),
			digits(text(`[class*="comment-count"]`)),
		),
		Makers: collectUnique(p,
			`[data-test="maker-card"] a`,
			`[class*="maker"] a`,
			`a[href^="/@"]`,
		),
		Topics: collectUnique(p,
			`a[href^="/topics/"]`,
			`[data-test="topic-chip"]`,
			`[class*="topic"] a`,
		),
		PHURL: phURL,
		Slug:  phscrape.Slug(p.URL()),
		PostedAt: firstNonEmpty(p,
			attr("time", "datetime"),
			text("time"),
		),
		ExtractedAt: e.now().UTC(),
	}

	post.ProductURL = resolveProductURL(firstNonEmpty(p,
		attr(`[data-test="visit-site-button"]`, "href"),
		attr(`a[rel*="nofollow"][target="_blank"]`, "href"),
		attr(`a[data-test="website-link"]`, "href"),
	), phURL)

	return post, nil
}

func (e *Extractor) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// resolveProductURL resolves the external product link against the post's
// own URL. Returns "" if there is no link or the href cannot be parsed.
func resolveProductURL(href, phURL string) string {
	if href == "" {
		return ""
	}
	base, err := url.Parse(phURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// strategy reads one candidate value for a field from a page.
// A lookup error or an empty result both mean "try the next strategy".
type strategy func(p phscrape.Page) (string, error)

// firstNonEmpty applies strategies in order and returns the first non-empty
// result. Lookup errors are treated as not-found, never propagated; an
// exhausted chain yields "".
func firstNonEmpty(p phscrape.Page, strategies ...strategy) string {
	for _, s := range strategies {
		v, err := s(p)
		if err != nil {
			continue
		}
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// text reads the trimmed text of the first element matching the selector.
func text(selector string) strategy {
	return func(p phscrape.Page) (string, error) {
		return p.Text(selector)
	}
}

// attr reads the named attribute of the first element matching the selector.
func attr(selector, name string) strategy {
	return func(p phscrape.Page) (string, error) {
		return p.Attr(selector, name)
	}
}

// constant returns a fixed value, used as the terminal fallback of a chain.
func constant(v string) strategy {
	return func(phscrape.Page) (string, error) {
		return v, nil
	}
}

// digits strips every non-digit character from the wrapped strategy's result,
// turning "128 upvotes" into "128".
func digits(s strategy) strategy {
	return func(p phscrape.Page) (string, error) {
		v, err := s(p)
		if err != nil {
			return "", err
		}
		return stripNonDigits(v), nil
	}
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// collectUnique gathers the text of every element matching any of the
// selectors, deduplicated while preserving discovery order. The dedup set is
// scoped to this call: no extraction state crosses page boundaries.
func collectUnique(p phscrape.Page, selectors ...string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, selector := range selectors {
		values, err := p.TextAll(selector)
		if err != nil {
			continue
		}
		for _, v := range values {
			v = strings.TrimSpace(v)
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
