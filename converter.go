package brandscan

// Converter converts HTML to Markdown. The page archive runs extracted
// policy and about content through a Converter before writing it out.
type Converter interface {
	// Convert transforms clean HTML (e.g., from a TextExtractor) into
	// Markdown.
	Convert(html string) (string, error)
}
