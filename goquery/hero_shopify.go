package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/brandscan"
)

var _ brandscan.HeroSelector = (*ShopifySelector)(nil)

// ShopifySelector extracts hero products from Shopify storefronts.
// Validated against the Dawn theme family and older sectioned themes.
//
// It targets Shopify-specific card markup:
// - .card__heading a for Dawn-style product cards
// - .product-card a and .product-item a for legacy themes
// - .grid__item product links for sectioned grids
type ShopifySelector struct{}

// NewShopifySelector creates a new ShopifySelector.
func NewShopifySelector() *ShopifySelector {
	return &ShopifySelector{}
}

// Name returns the selector's identifier.
func (s *ShopifySelector) Name() string {
	return "shopify"
}

// ExtractHeroProducts returns title+link pairs from the page's product
// cards in document order. When no card markup matches, it falls back
// to scanning plain product link anchors so custom themes still yield
// heroes.
func (s *ShopifySelector) ExtractHeroProducts(html, baseURL string) ([]brandscan.HeroProduct, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, brandscan.Errorf(brandscan.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, brandscan.Errorf(brandscan.EINVALID, "failed to parse HTML: %v", err)
	}

	// Theme card selectors overlap (Dawn nests .card__heading inside
	// .grid__item), so track seen URLs across passes.
	selectors := []string{
		`.card__heading a[href*="/products/"]`,
		`.product-card a[href*="/products/"]`,
		`.product-item a[href*="/products/"]`,
		`.grid__item a[href*="/products/"]`,
	}

	var heroes []brandscan.HeroProduct
	seen := make(map[string]bool)
	collect := func(_ int, sel *goquery.Selection) {
		hero, ok := heroFromAnchor(base, sel)
		if !ok || seen[hero.URL] {
			return
		}
		seen[hero.URL] = true
		heroes = append(heroes, hero)
	}

	for _, selector := range selectors {
		doc.Find(selector).Each(collect)
	}

	if len(heroes) == 0 {
		doc.Find(`a[href*="/products/"]`).Each(collect)
	}

	return heroes, nil
}

// heroFromAnchor builds a HeroProduct from a product link anchor. The
// title comes from the title attribute or the anchor text; anchors
// without either are skipped.
func heroFromAnchor(base *url.URL, sel *goquery.Selection) (brandscan.HeroProduct, bool) {
	href, _ := sel.Attr("href")
	if href == "" || isNonHTTPLink(href) {
		return brandscan.HeroProduct{}, false
	}

	title := strings.TrimSpace(sel.AttrOr("title", ""))
	if title == "" {
		title = cleanText(sel.Text())
	}
	if title == "" {
		return brandscan.HeroProduct{}, false
	}

	resolved := resolveURL(base, href)
	if resolved == "" {
		return brandscan.HeroProduct{}, false
	}

	return brandscan.HeroProduct{
		Title: truncateRunes(title, brandscan.MaxHeroTitleLen),
		URL:   resolved,
	}, true
}
