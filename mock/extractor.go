package mock

import "github.com/fwojciec/pagetext"

var (
	_ pagetext.ContentExtractor = (*ContentExtractor)(nil)
	_ pagetext.LinkExtractor    = (*LinkExtractor)(nil)
)

// ContentExtractor is a mock implementation of pagetext.ContentExtractor.
type ContentExtractor struct {
	ExtractContentFn func(doc *pagetext.Document, maxLength int) string
}

func (e *ContentExtractor) ExtractContent(doc *pagetext.Document, maxLength int) string {
	return e.ExtractContentFn(doc, maxLength)
}

// LinkExtractor is a mock implementation of pagetext.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(doc *pagetext.Document, baseURL string) []string
}

func (e *LinkExtractor) ExtractLinks(doc *pagetext.Document, baseURL string) []string {
	return e.ExtractLinksFn(doc, baseURL)
}
