package brandscan

import "time"

// Platform identifies the e-commerce platform a storefront runs on.
type Platform string

// Recognized storefront platforms.
const (
	PlatformUnknown     Platform = ""
	PlatformShopify     Platform = "shopify"
	PlatformWooCommerce Platform = "woocommerce"
	PlatformBigCommerce Platform = "bigcommerce"
	PlatformMagento     Platform = "magento"
	PlatformSquarespace Platform = "squarespace"
	PlatformWix         Platform = "wix"
)

// PlatformDetector identifies storefront platforms from HTML.
type PlatformDetector interface {
	// Detect analyzes HTML and returns the identified platform.
	// Returns PlatformUnknown if the platform cannot be determined.
	Detect(html string) Platform
}

// Prober identifies storefront platforms and determines their rendering
// requirements, so the scraper can pick a plain HTTP fetcher over a
// headless browser when a site serves complete markup.
type Prober interface {
	PlatformDetector

	// RequiresJS indicates whether a platform needs JavaScript rendering
	// to produce its storefront markup. Returns (requires, known) where
	// known is false for unrecognized platforms.
	RequiresJS(platform Platform) (requires bool, known bool)

	// RenderDelay returns the recommended delay after page load for a
	// platform. Builder platforms hydrate content asynchronously and
	// need extra time; platforms that serve complete markup return 0.
	RenderDelay(platform Platform) time.Duration
}
