package goquery

import "github.com/fwojciec/brandscan"

var _ brandscan.HeroSelectorRegistry = (*Registry)(nil)

// Registry manages platform-specific hero selectors and auto-detects
// platforms from HTML content. It uses a PlatformDetector to identify
// the storefront platform and returns the appropriate selector, falling
// back to a generic selector when the platform is unknown or no
// specific selector is registered.
type Registry struct {
	detector  brandscan.PlatformDetector
	fallback  brandscan.HeroSelector
	selectors map[brandscan.Platform]brandscan.HeroSelector
}

// NewRegistry creates a new Registry with the given detector and fallback selector.
// The fallback selector is used when GetForHTML cannot find a specific selector
// for the detected platform.
func NewRegistry(detector brandscan.PlatformDetector, fallback brandscan.HeroSelector) *Registry {
	return &Registry{
		detector:  detector,
		fallback:  fallback,
		selectors: make(map[brandscan.Platform]brandscan.HeroSelector),
	}
}

// Get returns the selector for a specific platform.
// Returns nil if no selector is registered for the platform.
func (r *Registry) Get(platform brandscan.Platform) brandscan.HeroSelector {
	return r.selectors[platform]
}

// GetForHTML detects the platform from HTML and returns the appropriate selector.
// Falls back to the fallback selector if the platform is unknown or no selector
// is registered for the detected platform.
func (r *Registry) GetForHTML(html string) brandscan.HeroSelector {
	platform := r.detector.Detect(html)
	if selector, ok := r.selectors[platform]; ok {
		return selector
	}
	return r.fallback
}

// Register adds a selector for a platform.
// If a selector is already registered for the platform, it is replaced.
func (r *Registry) Register(platform brandscan.Platform, selector brandscan.HeroSelector) {
	r.selectors[platform] = selector
}

// List returns all registered platforms.
func (r *Registry) List() []brandscan.Platform {
	platforms := make([]brandscan.Platform, 0, len(r.selectors))
	for p := range r.selectors {
		platforms = append(platforms, p)
	}
	return platforms
}
