// Package mock provides hand-written mock implementations of the phscrape
// domain interfaces for use in tests.
package mock

import "github.com/kmisiak/phscrape"

var _ phscrape.Page = (*Page)(nil)

// Page is a mock implementation of phscrape.Page.
type Page struct {
	URLFn     func() string
	TitleFn   func() (string, error)
	HTMLFn    func() (string, error)
	TextFn    func(selector string) (string, error)
	AttrFn    func(selector, name string) (string, error)
	TextAllFn func(selector string) ([]string, error)
	AttrAllFn func(selector, name string) ([]string, error)
	CloseFn   func() error
}

func (p *Page) URL() string {
	return p.URLFn()
}

func (p *Page) Title() (string, error) {
	return p.TitleFn()
}

func (p *Page) HTML() (string, error) {
	return p.HTMLFn()
}

func (p *Page) Text(selector string) (string, error) {
	return p.TextFn(selector)
}

func (p *Page) Attr(selector, name string) (string, error) {
	return p.AttrFn(selector, name)
}

func (p *Page) TextAll(selector string) ([]string, error) {
	return p.TextAllFn(selector)
}

func (p *Page) AttrAll(selector, name string) ([]string, error) {
	return p.AttrAllFn(selector, name)
}

func (p *Page) Close() error {
	if p.CloseFn == nil {
		return nil
	}
	return p.CloseFn()
}
