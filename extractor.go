package pagetext

// DefaultMaxLength is the content length used when a caller passes a
// non-positive maximum.
const DefaultMaxLength = 2000

// NoTitle replaces the title of pages without a <title> element.
const NoTitle = "No title found"

// ContentExtractor renders the visible content of a page as text.
type ContentExtractor interface {
	// ExtractContent returns the page title, a blank line and the visible
	// body text, cut to at most maxLength characters.
	// A non-positive maxLength means DefaultMaxLength.
	// The document is not modified.
	ExtractContent(doc *Document, maxLength int) string
}

// LinkExtractor collects the outbound links of a page.
type LinkExtractor interface {
	// ExtractLinks returns the href of every anchor in document order,
	// resolved against baseURL. Anchors without an href are skipped.
	// Duplicates and non-HTTP schemes are kept.
	ExtractLinks(doc *Document, baseURL string) []string
}

// Truncate cuts s to at most n characters.
// The cut is a plain prefix and may fall mid-word or mid-line.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
