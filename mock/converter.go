package mock

import "github.com/fwojciec/brandscan"

var _ brandscan.Converter = (*Converter)(nil)

// Converter is a mock implementation of brandscan.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
