package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/brandscan"
)

// Ensure HeroExtractor implements brandscan.HeroSelector.
var _ brandscan.HeroSelector = (*HeroExtractor)(nil)

// HeroExtractor finds featured products on a landing page by scanning
// for product link anchors, whatever theme the storefront runs. It is
// the registry fallback when the platform is unknown, and the last
// resort for pages without Product-typed JSON-LD.
type HeroExtractor struct{}

// NewHeroExtractor creates a new HeroExtractor.
func NewHeroExtractor() *HeroExtractor {
	return &HeroExtractor{}
}

// Name returns the selector's identifier.
func (e *HeroExtractor) Name() string {
	return "generic"
}

// ExtractHeroProducts returns title+link pairs for every product card
// anchor on the page, in document order. Document order is the hero
// ranking; deduplication is left to the caller.
func (e *HeroExtractor) ExtractHeroProducts(html, baseURL string) ([]brandscan.HeroProduct, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, brandscan.Errorf(brandscan.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, brandscan.Errorf(brandscan.EINVALID, "failed to parse HTML: %v", err)
	}

	var heroes []brandscan.HeroProduct
	doc.Find(`a[href*="/products/"]`).Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}

		title := strings.TrimSpace(sel.AttrOr("title", ""))
		if title == "" {
			title = cleanText(sel.Text())
		}
		if title == "" {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		heroes = append(heroes, brandscan.HeroProduct{
			Title: truncateRunes(title, brandscan.MaxHeroTitleLen),
			URL:   resolved,
		})
	})

	return heroes, nil
}
