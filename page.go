package brandscan

import "context"

// Page is one fetched storefront page: the URL requested (after base
// resolution), the body, and the 2xx status it returned.
type Page struct {
	URL        string
	Body       string
	StatusCode int
}

// ScrapeProgress reports progress while a storefront is scraped.
type ScrapeProgress struct {
	Stage string // "catalog", "policies", "faqs", "pages"
	URL   string
	Error error
}

// ScrapeProgressFunc is called as scrape stages advance. May be nil.
type ScrapeProgressFunc func(ScrapeProgress)

// ArchivedPage is a page prepared for the on-disk archive: extracted
// title and Markdown content rather than raw HTML.
type ArchivedPage struct {
	URL     string
	Title   string
	Content string // Markdown
}

// PageArchive persists archived pages with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type PageArchive interface {
	Save(ctx context.Context, page *ArchivedPage) error
	Commit() error
	Abort() error
}
