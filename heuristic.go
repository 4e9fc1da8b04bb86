package brandscan

// DOM heuristic extractors. Each one scans parsed markup for a single
// field and reports absence as an empty result, never as an error;
// errors are reserved for markup that cannot be parsed at all. They are
// the fallback tier behind the structured-data locator.

// HeroExtractor finds products featured on a landing page by scanning
// known card and grid markup patterns. Document order is the hero
// ranking. Relative links are resolved against baseURL.
type HeroExtractor interface {
	ExtractHeroProducts(html, baseURL string) ([]HeroProduct, error)
}

// HeroSelector is a HeroExtractor tuned to one platform's card markup.
type HeroSelector interface {
	HeroExtractor

	// Name returns the selector's identifier (e.g., "shopify", "generic").
	Name() string
}

// HeroSelectorRegistry manages platform-specific hero selectors.
type HeroSelectorRegistry interface {
	// Get returns the selector for a specific platform.
	// Returns nil if no selector is registered for the platform.
	Get(platform Platform) HeroSelector

	// GetForHTML detects the platform from HTML and returns the
	// appropriate selector. Falls back to a generic selector if the
	// platform is unknown.
	GetForHTML(html string) HeroSelector

	// Register adds a selector for a platform.
	Register(platform Platform, selector HeroSelector)

	// List returns all registered platforms.
	List() []Platform
}

// FAQExtractor pairs heading-like elements with the text blocks that
// follow them.
type FAQExtractor interface {
	ExtractFAQs(html string) ([]FAQ, error)
}

// AboutExtractor pulls a short brand description from an about page or,
// failing that, from meta description tags.
type AboutExtractor interface {
	ExtractAbout(html string) (string, error)
}

// BrandNameExtractor derives the brand's display name from page chrome:
// og:site_name, the title tag, or logo alt text.
type BrandNameExtractor interface {
	ExtractBrandName(html string) (string, error)
}

// LinkExtractor lifts every anchor from a page in document order, with
// hrefs resolved against baseURL. Anchors without an href or with a
// non-navigational scheme (mailto, javascript) are skipped.
type LinkExtractor interface {
	ExtractLinks(html, baseURL string) ([]Link, error)
}

// ContactSet holds the raw contact signals scanned from one page, in
// encounter order and not yet deduplicated.
type ContactSet struct {
	Emails  []string
	Phones  []string
	Socials []SocialLink
}

// ContactScanner finds emails and phone numbers in a page's visible
// text and social profile links in its anchors.
type ContactScanner interface {
	ScanContacts(html string) (*ContactSet, error)
}
