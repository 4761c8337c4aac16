package pagetext

import "golang.org/x/net/html"

// Document is a parsed HTML page.
//
// Extractors treat a Document as read-only, so content and link extraction
// against the same Document always observe the same tree.
type Document struct {
	// URL is the address the page was requested from.
	URL string

	// Root is the document node of the parsed tree.
	Root *html.Node
}
