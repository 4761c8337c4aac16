package pagetext

// Converter converts HTML to another text representation, such as Markdown.
type Converter interface {
	// Convert transforms an HTML fragment.
	// Returns an EINVALID error for blank input.
	Convert(html string) (string, error)
}
