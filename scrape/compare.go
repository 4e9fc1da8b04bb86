package scrape

import "github.com/fwojciec/brandscan"

// ContentDiffers compares content extracted from plain-HTTP markup vs
// browser-rendered markup. Returns true if the rendered content is
// significantly longer (>50%), suggesting the storefront hydrates
// meaningful content with JavaScript. Also returns true on extraction
// errors (assumes rendering needed).
func ContentDiffers(httpHTML, renderedHTML string, extractor brandscan.TextExtractor) bool {
	httpResult, err := extractor.Extract(httpHTML)
	if err != nil {
		return true // Assume rendering needed on error
	}

	renderedResult, err := extractor.Extract(renderedHTML)
	if err != nil {
		return true // Assume rendering needed on error
	}

	httpLen := len(httpResult.ContentHTML)
	renderedLen := len(renderedResult.ContentHTML)

	// Handle empty HTTP content
	if httpLen == 0 && renderedLen > 0 {
		return true
	}

	// Check if rendered content is >50% longer
	threshold := float64(httpLen) * 1.5
	return float64(renderedLen) > threshold
}
