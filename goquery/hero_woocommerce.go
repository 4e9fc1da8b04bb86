package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/brandscan"
)

var _ brandscan.HeroSelector = (*WooCommerceSelector)(nil)

// WooCommerceSelector extracts hero products from WooCommerce
// storefronts. WooCommerce renders product loops as ul.products lists
// with stable class names, so the card structure is more uniform than
// Shopify's theme-dependent markup.
type WooCommerceSelector struct{}

// NewWooCommerceSelector creates a new WooCommerceSelector.
func NewWooCommerceSelector() *WooCommerceSelector {
	return &WooCommerceSelector{}
}

// Name returns the selector's identifier.
func (s *WooCommerceSelector) Name() string {
	return "woocommerce"
}

// ExtractHeroProducts returns title+link pairs from the page's product
// loops in document order. The loop title element is preferred over
// anchor text because WooCommerce anchors often wrap the whole card,
// price included.
func (s *WooCommerceSelector) ExtractHeroProducts(html, baseURL string) ([]brandscan.HeroProduct, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, brandscan.Errorf(brandscan.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, brandscan.Errorf(brandscan.EINVALID, "failed to parse HTML: %v", err)
	}

	var heroes []brandscan.HeroProduct
	doc.Find("ul.products li.product").Each(func(_ int, card *goquery.Selection) {
		anchor := card.Find("a.woocommerce-LoopProduct-link").First()
		if anchor.Length() == 0 {
			anchor = card.Find("a[href]").First()
		}

		href, _ := anchor.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}

		title := cleanText(card.Find(".woocommerce-loop-product__title").First().Text())
		if title == "" {
			title = cleanText(anchor.Text())
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

	if len(heroes) == 0 {
		doc.Find(`a[href*="/product/"], a[href*="/products/"]`).Each(func(_ int, sel *goquery.Selection) {
			if hero, ok := heroFromAnchor(base, sel); ok {
				heroes = append(heroes, hero)
			}
		})
	}

	return heroes, nil
}
