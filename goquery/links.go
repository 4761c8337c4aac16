package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagetext"
)

// Ensure LinkExtractor implements pagetext.LinkExtractor at compile time.
var _ pagetext.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor collects anchor hrefs as absolute URLs.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks resolves the href of every <a> element against baseURL.
// Links keep document order and duplicates. Anchors without an href or with
// a blank href are skipped. An href that cannot be parsed, such as one with
// a malformed percent-escape, is joined to the base as written.
// An unparseable baseURL yields no links.
func (e *LinkExtractor) ExtractLinks(doc *pagetext.Document, baseURL string) []string {
	links := []string{}
	if doc == nil || doc.Root == nil {
		return links
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return links
	}

	goquery.NewDocumentFromNode(doc.Root).Find("a").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		href = strings.TrimSpace(href)
		if !exists || href == "" {
			return
		}

		links = append(links, resolveURL(base, href))
	})

	return links
}

// resolveURL resolves a relative URL against a base URL.
// An href that does not parse is joined to the base textually.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return joinRaw(base, href)
	}
	return base.ResolveReference(ref).String()
}

// joinRaw joins href to base without parsing it, keeping href unescaped.
func joinRaw(base *url.URL, href string) string {
	origin := base.Scheme + "://" + base.Host
	switch {
	case hasScheme(href):
		return href
	case strings.HasPrefix(href, "//"):
		return base.Scheme + ":" + href
	case strings.HasPrefix(href, "/"):
		return origin + href
	case strings.HasPrefix(href, "?"):
		return origin + base.EscapedPath() + href
	case strings.HasPrefix(href, "#"):
		u := *base
		u.Fragment, u.RawFragment = "", ""
		return u.String() + href
	}
	dir := base.EscapedPath()
	if i := strings.LastIndex(dir, "/"); i >= 0 {
		dir = dir[:i+1]
	} else {
		dir = "/"
	}
	return origin + dir + href
}

// hasScheme reports whether href starts with a URL scheme such as "http:".
func hasScheme(href string) bool {
	for i, c := range href {
		switch {
		case c == ':':
			return i > 0
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return false
}
