package mock

import "github.com/fwojciec/brandscan"

var _ brandscan.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of brandscan.TextExtractor.
type TextExtractor struct {
	ExtractFn func(html string) (*brandscan.ExtractResult, error)
}

func (e *TextExtractor) Extract(html string) (*brandscan.ExtractResult, error) {
	return e.ExtractFn(html)
}
