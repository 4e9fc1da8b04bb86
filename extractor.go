package brandscan

// ExtractResult holds the main content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string

	// ContentText is the main content as plain text, suitable for
	// policy and about bodies.
	ContentText string
}

// TextExtractor extracts main content from HTML pages, removing
// boilerplate. Policy and about text extraction runs a chain of
// implementations and takes the first non-empty result.
type TextExtractor interface {
	// Extract processes raw HTML and returns the main content.
	// The title comes from page metadata (meta tags, JSON+LD, etc.).
	Extract(html string) (*ExtractResult, error)
}
