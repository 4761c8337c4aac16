// Package goquery implements pagetext.ContentExtractor and
// pagetext.LinkExtractor on top of github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagetext"
	"golang.org/x/net/html"
)

// removedSelector matches elements that never contribute visible text.
const removedSelector = "script, style, img, input"

// Ensure ContentExtractor implements pagetext.ContentExtractor at compile time.
var _ pagetext.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor renders a page as its title followed by the visible text
// of its body.
type ContentExtractor struct {
	converter pagetext.Converter
}

// ContentOption configures a ContentExtractor.
type ContentOption func(*ContentExtractor)

// WithConverter renders the cleaned body HTML through c instead of joining
// its text nodes. Plain text is used if conversion fails.
func WithConverter(c pagetext.Converter) ContentOption {
	return func(e *ContentExtractor) {
		e.converter = c
	}
}

// NewContentExtractor creates a new ContentExtractor.
func NewContentExtractor(opts ...ContentOption) *ContentExtractor {
	e := &ContentExtractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractContent returns "<title>\n\n<body text>" cut to maxLength characters.
//
// Body text is gathered from a deep copy of <body> with script, style, img
// and input elements removed, so the document itself is left untouched.
// Each text node is trimmed, empty ones are dropped, and the rest are joined
// with newlines.
func (e *ContentExtractor) ExtractContent(doc *pagetext.Document, maxLength int) string {
	if maxLength <= 0 {
		maxLength = pagetext.DefaultMaxLength
	}

	title := pagetext.NoTitle
	var text string
	if doc != nil && doc.Root != nil {
		d := goquery.NewDocumentFromNode(doc.Root)
		if t := d.Find("title").First(); t.Length() > 0 {
			title = t.Text()
		}
		if body := d.Find("body").First(); body.Length() > 0 {
			text = e.render(cleanBody(body))
		}
	}

	return pagetext.Truncate(title+"\n\n"+text, maxLength)
}

func (e *ContentExtractor) render(body *goquery.Selection) string {
	if e.converter != nil {
		if inner, err := body.Html(); err == nil {
			if out, err := e.converter.Convert(inner); err == nil {
				return strings.TrimSpace(out)
			}
		}
	}
	return visibleText(body.Nodes[0])
}

// cleanBody returns a detached deep copy of body without the elements
// matched by removedSelector.
func cleanBody(body *goquery.Selection) *goquery.Selection {
	clone := body.Clone()
	clone.Find(removedSelector).Remove()
	return clone
}

// visibleText joins the trimmed, non-empty text nodes under n in document order.
func visibleText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				parts = append(parts, s)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, "\n")
}
