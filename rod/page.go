package rod

import (
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/kmisiak/phscrape"
)

// DefaultElementTimeout bounds each per-element lookup. A selector that does
// not resolve within this window degrades to "not found" instead of stalling
// the whole extraction.
const DefaultElementTimeout = 2 * time.Second

// Ensure Page implements phscrape.Page at compile time.
var _ phscrape.Page = (*Page)(nil)

// Page adapts a live browser tab to the phscrape.Page capability set.
// Every lookup is bounded by the element timeout.
type Page struct {
	url     string
	page    *rod.Page
	timeout time.Duration
}

// URL returns the address the page was navigated to.
func (p *Page) URL() string {
	return p.url
}

// Title returns the document title. A failure here means the tab itself is
// gone, which callers treat as a whole-page access failure.
func (p *Page) Title() (string, error) {
	info, err := p.page.Timeout(p.timeout).Info()
	if err != nil {
		return "", phscrape.Errorf(phscrape.EUNAVAILABLE, "page info unavailable: %v", err)
	}
	return strings.TrimSpace(info.Title), nil
}

// HTML returns the rendered page markup.
func (p *Page) HTML() (string, error) {
	html, err := p.page.Timeout(p.timeout).HTML()
	if err != nil {
		return "", phscrape.Errorf(phscrape.EUNAVAILABLE, "page markup unavailable: %v", err)
	}
	return html, nil
}

// Text returns the trimmed text of the first element matching the selector,
// waiting up to the element timeout for it to appear.
func (p *Page) Text(selector string) (string, error) {
	el, err := p.page.Timeout(p.timeout).Element(selector)
	if err != nil {
		return "", phscrape.Errorf(phscrape.ENOTFOUND, "no element matches %q: %v", selector, err)
	}
	text, err := el.Timeout(p.timeout).Text()
	if err != nil {
		return "", phscrape.Errorf(phscrape.ENOTFOUND, "text unavailable for %q: %v", selector, err)
	}
	return strings.TrimSpace(text), nil
}

// Attr returns the named attribute of the first element matching the
// selector, waiting up to the element timeout for it to appear.
func (p *Page) Attr(selector, name string) (string, error) {
	el, err := p.page.Timeout(p.timeout).Element(selector)
	if err != nil {
		return "", phscrape.Errorf(phscrape.ENOTFOUND, "no element matches %q: %v", selector, err)
	}
	val, err := el.Timeout(p.timeout).Attribute(name)
	if err != nil {
		return "", phscrape.Errorf(phscrape.ENOTFOUND, "attribute %q unavailable for %q: %v", name, selector, err)
	}
	if val == nil {
		return "", phscrape.Errorf(phscrape.ENOTFOUND, "attribute %q absent on %q", name, selector)
	}
	return *val, nil
}

// TextAll returns the trimmed text of every element currently matching the
// selector. Unlike Text it does not wait for elements to appear.
func (p *Page) TextAll(selector string) ([]string, error) {
	els, err := p.page.Timeout(p.timeout).Elements(selector)
	if err != nil {
		return nil, phscrape.Errorf(phscrape.ENOTFOUND, "query failed for %q: %v", selector, err)
	}
	var out []string
	for _, el := range els {
		text, err := el.Timeout(p.timeout).Text()
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			out = append(out, text)
		}
	}
	return out, nil
}

// AttrAll returns the named attribute of every element currently matching
// the selector, skipping elements without the attribute.
func (p *Page) AttrAll(selector, name string) ([]string, error) {
	els, err := p.page.Timeout(p.timeout).Elements(selector)
	if err != nil {
		return nil, phscrape.Errorf(phscrape.ENOTFOUND, "query failed for %q: %v", selector, err)
	}
	var out []string
	for _, el := range els {
		val, err := el.Timeout(p.timeout).Attribute(name)
		if err != nil || val == nil || *val == "" {
			continue
		}
		out = append(out, *val)
	}
	return out, nil
}

// Close closes the underlying browser tab.
func (p *Page) Close() error {
	return p.page.Close()
}
