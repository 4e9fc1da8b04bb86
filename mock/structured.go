package mock

import "github.com/fwojciec/brandscan"

var _ brandscan.StructuredParser = (*StructuredParser)(nil)

// StructuredParser is a mock implementation of brandscan.StructuredParser.
type StructuredParser struct {
	ParseFn func(html string) (*brandscan.StructuredData, error)
}

func (p *StructuredParser) Parse(html string) (*brandscan.StructuredData, error) {
	return p.ParseFn(html)
}
