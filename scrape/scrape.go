// Package scrape ties fetching and extraction together.
// It fetches a page once and serves content and links from the same
// parsed document, and turns every failure into a placeholder value.
package scrape

import (
	"context"
	"fmt"

	"github.com/fwojciec/pagetext"
)

// Scraper fetches pages and extracts their content and links.
type Scraper struct {
	Fetcher pagetext.Fetcher
	Content pagetext.ContentExtractor
	Links   pagetext.LinkExtractor
}

// Open fetches url once and returns a Page holding the parsed document.
// It never fails; a fetch failure is recorded on the Page.
func (s *Scraper) Open(ctx context.Context, url string) *Page {
	doc, err := s.fetch(ctx, url)
	return &Page{
		url:     url,
		doc:     doc,
		err:     err,
		content: s.Content,
		links:   s.Links,
	}
}

// FetchContent fetches url and returns its truncated text content.
// On failure it returns a bracketed placeholder naming the failure.
func (s *Scraper) FetchContent(ctx context.Context, url string, maxLength int) (content string) {
	doc, err := s.fetch(ctx, url)
	if err != nil {
		return pagetext.Placeholder(url, err)
	}
	defer func() {
		if r := recover(); r != nil {
			content = pagetext.Placeholder(url, recovered(r))
		}
	}()
	return s.Content.ExtractContent(doc, maxLength)
}

// FetchLinks fetches url and returns the absolute URLs it links to.
// On failure it returns an empty slice.
func (s *Scraper) FetchLinks(ctx context.Context, url string) (links []string) {
	doc, err := s.fetch(ctx, url)
	if err != nil {
		return []string{}
	}
	defer func() {
		if r := recover(); r != nil {
			links = []string{}
		}
	}()
	return s.Links.ExtractLinks(doc, url)
}

// fetch calls the Fetcher, converting a panic into an EINTERNAL error.
func (s *Scraper) fetch(ctx context.Context, url string) (doc *pagetext.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, recovered(r)
		}
	}()
	doc, err = s.Fetcher.Fetch(ctx, url)
	if err == nil && doc == nil {
		return nil, pagetext.Errorf(pagetext.EINTERNAL, "fetcher returned no document")
	}
	return doc, err
}

func recovered(r any) error {
	if err, ok := r.(error); ok {
		return &pagetext.Error{Code: pagetext.EINTERNAL, Message: "unexpected panic", Err: err}
	}
	return pagetext.Errorf(pagetext.EINTERNAL, "unexpected panic: %v", r)
}

// Page is the result of fetching one URL. Content and Links may be called
// any number of times in any order; both read the same unmodified document.
type Page struct {
	url     string
	doc     *pagetext.Document
	err     error
	content pagetext.ContentExtractor
	links   pagetext.LinkExtractor
}

// URL returns the address the page was fetched from.
func (p *Page) URL() string { return p.url }

// Err returns the fetch failure, or nil.
func (p *Page) Err() error { return p.err }

// Document returns the parsed document, or nil when the fetch failed.
func (p *Page) Document() *pagetext.Document { return p.doc }

// Content returns the page text cut to maxLength characters.
// A failed page yields "[Error: Could not fetch <url>]".
func (p *Page) Content(maxLength int) (content string) {
	if p.err != nil {
		return fmt.Sprintf("[Error: Could not fetch %s]", p.url)
	}
	defer func() {
		if r := recover(); r != nil {
			content = pagetext.Placeholder(p.url, recovered(r))
		}
	}()
	return p.content.ExtractContent(p.doc, maxLength)
}

// Links returns the absolute outbound links of the page.
// A failed page yields an empty slice.
func (p *Page) Links() (links []string) {
	if p.err != nil {
		return []string{}
	}
	defer func() {
		if r := recover(); r != nil {
			links = []string{}
		}
	}()
	return p.links.ExtractLinks(p.doc, p.url)
}
