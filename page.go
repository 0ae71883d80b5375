package phscrape

import "context"

// Page is the capability set the field extractor needs from a fetched page.
// It is satisfied either by a static parsed-DOM snapshot (goquery) or by a
// live browser page (rod). Lookups that match nothing return ENOTFOUND so
// callers can treat absence as an expected condition rather than a failure.
type Page interface {
	// URL returns the address the page was fetched from.
	URL() string

	// Title returns the document title.
	Title() (string, error)

	// HTML returns the full page markup, used for link discovery.
	HTML() (string, error)

	// Text returns the trimmed text content of the first element matching
	// the CSS selector. Returns ENOTFOUND if nothing matches.
	Text(selector string) (string, error)

	// Attr returns the value of the named attribute on the first element
	// matching the CSS selector. Returns ENOTFOUND if nothing matches or
	// the attribute is absent.
	Attr(selector, name string) (string, error)

	// TextAll returns the trimmed text of every element matching the CSS
	// selector, in document order. An empty slice means no matches.
	TextAll(selector string) ([]string, error)

	// AttrAll returns the named attribute of every element matching the
	// CSS selector, in document order, skipping elements without the
	// attribute.
	AttrAll(selector, name string) ([]string, error)

	// Close releases page resources. Static snapshots treat this as a
	// no-op; browser pages close the underlying tab.
	Close() error
}

// PageFetcher opens pages for processing.
// Implementations hide HTTP vs browser selection.
type PageFetcher interface {
	// Open navigates to the URL and returns a handle for field extraction.
	// The context controls timeout and cancellation.
	Open(ctx context.Context, url string) (Page, error)

	// Close releases fetcher resources (e.g., a running browser).
	// Must be called when the PageFetcher is no longer needed.
	Close() error
}
