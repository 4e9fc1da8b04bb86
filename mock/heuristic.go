package mock

import "github.com/fwojciec/brandscan"

// Compile-time interface verification.
var (
	_ brandscan.HeroExtractor        = (*HeroExtractor)(nil)
	_ brandscan.HeroSelector         = (*HeroSelector)(nil)
	_ brandscan.HeroSelectorRegistry = (*HeroSelectorRegistry)(nil)
	_ brandscan.FAQExtractor         = (*FAQExtractor)(nil)
	_ brandscan.AboutExtractor       = (*AboutExtractor)(nil)
	_ brandscan.BrandNameExtractor   = (*BrandNameExtractor)(nil)
	_ brandscan.LinkExtractor        = (*LinkExtractor)(nil)
	_ brandscan.ContactScanner       = (*ContactScanner)(nil)
)

// HeroExtractor is a mock implementation of brandscan.HeroExtractor.
type HeroExtractor struct {
	ExtractHeroProductsFn func(html, baseURL string) ([]brandscan.HeroProduct, error)
}

func (e *HeroExtractor) ExtractHeroProducts(html, baseURL string) ([]brandscan.HeroProduct, error) {
	return e.ExtractHeroProductsFn(html, baseURL)
}

// HeroSelector is a mock implementation of brandscan.HeroSelector.
type HeroSelector struct {
	ExtractHeroProductsFn func(html, baseURL string) ([]brandscan.HeroProduct, error)
	NameFn                func() string
}

func (s *HeroSelector) ExtractHeroProducts(html, baseURL string) ([]brandscan.HeroProduct, error) {
	return s.ExtractHeroProductsFn(html, baseURL)
}

func (s *HeroSelector) Name() string {
	return s.NameFn()
}

// HeroSelectorRegistry is a mock implementation of brandscan.HeroSelectorRegistry.
type HeroSelectorRegistry struct {
	GetFn        func(platform brandscan.Platform) brandscan.HeroSelector
	GetForHTMLFn func(html string) brandscan.HeroSelector
	RegisterFn   func(platform brandscan.Platform, selector brandscan.HeroSelector)
	ListFn       func() []brandscan.Platform
}

func (r *HeroSelectorRegistry) Get(platform brandscan.Platform) brandscan.HeroSelector {
	return r.GetFn(platform)
}

func (r *HeroSelectorRegistry) GetForHTML(html string) brandscan.HeroSelector {
	return r.GetForHTMLFn(html)
}

func (r *HeroSelectorRegistry) Register(platform brandscan.Platform, selector brandscan.HeroSelector) {
	r.RegisterFn(platform, selector)
}

func (r *HeroSelectorRegistry) List() []brandscan.Platform {
	return r.ListFn()
}

// FAQExtractor is a mock implementation of brandscan.FAQExtractor.
type FAQExtractor struct {
	ExtractFAQsFn func(html string) ([]brandscan.FAQ, error)
}

func (e *FAQExtractor) ExtractFAQs(html string) ([]brandscan.FAQ, error) {
	return e.ExtractFAQsFn(html)
}

// AboutExtractor is a mock implementation of brandscan.AboutExtractor.
type AboutExtractor struct {
	ExtractAboutFn func(html string) (string, error)
}

func (e *AboutExtractor) ExtractAbout(html string) (string, error) {
	return e.ExtractAboutFn(html)
}

// BrandNameExtractor is a mock implementation of brandscan.BrandNameExtractor.
type BrandNameExtractor struct {
	ExtractBrandNameFn func(html string) (string, error)
}

func (e *BrandNameExtractor) ExtractBrandName(html string) (string, error) {
	return e.ExtractBrandNameFn(html)
}

// LinkExtractor is a mock implementation of brandscan.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html, baseURL string) ([]brandscan.Link, error)
}

func (e *LinkExtractor) ExtractLinks(html, baseURL string) ([]brandscan.Link, error) {
	return e.ExtractLinksFn(html, baseURL)
}

// ContactScanner is a mock implementation of brandscan.ContactScanner.
type ContactScanner struct {
	ScanContactsFn func(html string) (*brandscan.ContactSet, error)
}

func (s *ContactScanner) ScanContacts(html string) (*brandscan.ContactSet, error) {
	return s.ScanContactsFn(html)
}
