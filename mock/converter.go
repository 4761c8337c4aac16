package mock

import "github.com/fwojciec/pagetext"

var _ pagetext.Converter = (*Converter)(nil)

// Converter is a mock implementation of pagetext.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
