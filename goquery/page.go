// Package goquery provides a static parsed-DOM implementation of
// phscrape.Page backed by the goquery library. It does not execute
// JavaScript; use the rod package for pages that render client-side.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kmisiak/phscrape"
)

// Ensure Page implements phscrape.Page at compile time.
var _ phscrape.Page = (*Page)(nil)

// Page is an immutable DOM snapshot satisfying phscrape.Page.
// It is safe for concurrent reads.
type Page struct {
	url string
	doc *goquery.Document
}

// NewPage parses HTML into a static page snapshot. The url is the address
// the markup was fetched from and is used to resolve relative links.
func NewPage(html, url string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, phscrape.Errorf(phscrape.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Page{url: url, doc: doc}, nil
}

// URL returns the address the page was fetched from.
func (p *Page) URL() string {
	return p.url
}

// Title returns the document title.
func (p *Page) Title() (string, error) {
	return strings.TrimSpace(p.doc.Find("title").First().Text()), nil
}

// HTML returns the full page markup.
func (p *Page) HTML() (string, error) {
	html, err := p.doc.Html()
	if err != nil {
		return "", phscrape.Errorf(phscrape.EINTERNAL, "failed to serialize page: %v", err)
	}
	return html, nil
}

// Text returns the trimmed text of the first element matching the selector.
func (p *Page) Text(selector string) (string, error) {
	sel := p.doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", phscrape.Errorf(phscrape.ENOTFOUND, "no element matches %q", selector)
	}
	return strings.TrimSpace(sel.Text()), nil
}

// Attr returns the named attribute of the first element matching the selector.
func (p *Page) Attr(selector, name string) (string, error) {
	sel := p.doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", phscrape.Errorf(phscrape.ENOTFOUND, "no element matches %q", selector)
	}
	val, ok := sel.Attr(name)
	if !ok {
		return "", phscrape.Errorf(phscrape.ENOTFOUND, "attribute %q absent on %q", name, selector)
	}
	return val, nil
}

// TextAll returns the trimmed text of every element matching the selector,
// in document order. Elements with empty text are skipped.
func (p *Page) TextAll(selector string) ([]string, error) {
	var out []string
	p.doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			out = append(out, text)
		}
	})
	return out, nil
}

// AttrAll returns the named attribute of every element matching the selector,
// in document order, skipping elements without the attribute.
func (p *Page) AttrAll(selector, name string) ([]string, error) {
	var out []string
	p.doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		if val, ok := sel.Attr(name); ok && val != "" {
			out = append(out, val)
		}
	})
	return out, nil
}

// Close is a no-op for static snapshots.
func (p *Page) Close() error {
	return nil
}
