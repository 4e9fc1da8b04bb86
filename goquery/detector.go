package goquery

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/brandscan"
)

// Ensure Detector implements brandscan.Prober.
var _ brandscan.Prober = (*Detector)(nil)

// Detector identifies e-commerce platforms from HTML content. It checks
// meta generator tags, platform CDN hosts, and structural markers that
// are unique to each platform.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// platformRendering records whether a platform serves complete markup
// over plain HTTP or hydrates the storefront client-side.
var platformRendering = map[brandscan.Platform]struct {
	requiresJS  bool
	renderDelay time.Duration
}{
	brandscan.PlatformShopify:     {requiresJS: false},
	brandscan.PlatformWooCommerce: {requiresJS: false},
	brandscan.PlatformBigCommerce: {requiresJS: false},
	brandscan.PlatformMagento:     {requiresJS: false},
	brandscan.PlatformSquarespace: {requiresJS: true, renderDelay: 1 * time.Second},
	brandscan.PlatformWix:         {requiresJS: true, renderDelay: 2 * time.Second},
}

// RequiresJS indicates whether a platform needs JavaScript rendering.
// Unknown platforms return (false, false).
func (d *Detector) RequiresJS(platform brandscan.Platform) (requires bool, known bool) {
	r, ok := platformRendering[platform]
	if !ok {
		return false, false
	}
	return r.requiresJS, true
}

// RenderDelay returns the recommended post-load delay for a platform.
// Returns 0 for platforms that serve complete markup.
func (d *Detector) RenderDelay(platform brandscan.Platform) time.Duration {
	return platformRendering[platform].renderDelay
}

// Detect analyzes HTML and returns the identified platform.
// Returns PlatformUnknown if the platform cannot be determined.
func (d *Detector) Detect(html string) brandscan.Platform {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return brandscan.PlatformUnknown
	}

	// Meta generator tags are the most reliable signal when present.
	if platform := d.detectFromMetaGenerator(doc); platform != brandscan.PlatformUnknown {
		return platform
	}

	lower := strings.ToLower(html)

	// Shopify storefronts load assets from the Shopify CDN and expose a
	// window.Shopify object.
	if strings.Contains(lower, "cdn.shopify.com") ||
		strings.Contains(lower, "shopify.theme") ||
		d.hasSelector(doc, `link[href*="cdn.shopify.com"]`) ||
		d.hasSelector(doc, `script[src*="cdn.shopify.com"]`) {
		return brandscan.PlatformShopify
	}

	// WooCommerce marks the body and ships its plugin assets under
	// wp-content.
	if d.hasSelector(doc, "body.woocommerce") ||
		d.hasSelector(doc, `link[href*="wp-content/plugins/woocommerce"]`) ||
		strings.Contains(lower, "wp-content/plugins/woocommerce") {
		return brandscan.PlatformWooCommerce
	}

	if strings.Contains(lower, "cdn11.bigcommerce.com") {
		return brandscan.PlatformBigCommerce
	}

	if strings.Contains(lower, "mage/requirejs") ||
		strings.Contains(lower, "magento_theme") ||
		d.hasSelector(doc, `script[src*="/static/version"]`) && strings.Contains(lower, "magento") {
		return brandscan.PlatformMagento
	}

	if strings.Contains(lower, "static1.squarespace.com") {
		return brandscan.PlatformSquarespace
	}

	if strings.Contains(lower, "static.parastorage.com") ||
		strings.Contains(lower, "wix.com") {
		return brandscan.PlatformWix
	}

	return brandscan.PlatformUnknown
}

// detectFromMetaGenerator checks the meta generator tag for platform
// identification.
func (d *Detector) detectFromMetaGenerator(doc *goquery.Document) brandscan.Platform {
	generator := ""
	doc.Find(`meta[name="generator"]`).Each(func(_ int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists {
			generator = strings.ToLower(content)
		}
	})

	if generator == "" {
		return brandscan.PlatformUnknown
	}

	switch {
	case strings.Contains(generator, "shopify"):
		return brandscan.PlatformShopify
	case strings.Contains(generator, "woocommerce"):
		return brandscan.PlatformWooCommerce
	case strings.Contains(generator, "bigcommerce"):
		return brandscan.PlatformBigCommerce
	case strings.Contains(generator, "magento"):
		return brandscan.PlatformMagento
	case strings.Contains(generator, "squarespace"):
		return brandscan.PlatformSquarespace
	case strings.Contains(generator, "wix"):
		return brandscan.PlatformWix
	}

	return brandscan.PlatformUnknown
}

// hasSelector returns true if the document contains at least one
// element matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
