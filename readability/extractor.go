package readability

import (
	"strings"

	"github.com/fwojciec/brandscan"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements brandscan.TextExtractor at compile time.
var _ brandscan.TextExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
// The scrape text chain tries it when trafilatura comes back empty,
// which happens on sparse policy pages with little body text.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*brandscan.ExtractResult, error) {
	if rawHTML == "" {
		return nil, brandscan.Errorf(brandscan.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &brandscan.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
		ContentText: article.TextContent,
	}, nil
}
