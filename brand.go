package brandscan

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// Extraction caps. Free-text fields scraped from arbitrary storefronts
// are truncated so a single pathological page cannot bloat the record.
const (
	MaxBrandNameLen = 128
	MaxHeroTitleLen = 256
	MaxAboutTextLen = 4000
	MaxFAQAnswerLen = 2000
	MinFAQQuestion  = 5
	MaxFAQQuestion  = 200
	MinFAQAnswer    = 5
)

// BrandContext is the normalized record extracted from a single
// storefront. Its JSON shape is the external contract of the scraper:
// optional scalars are pointers so they serialize as null, and every
// slice and map is non-nil so absence serializes as [] or {}.
type BrandContext struct {
	BrandName      *string                   `json:"brand_name"`
	BaseURL        string                    `json:"base_url"`
	Products       []Product                 `json:"products"`
	HeroProducts   []HeroProduct             `json:"hero_products"`
	Policies       []Policy                  `json:"policies"`
	FAQs           []FAQ                     `json:"faqs"`
	SocialHandles  map[SocialPlatform]string `json:"social_handles"`
	ContactEmails  []string                  `json:"contact_emails"`
	ContactPhones  []string                  `json:"contact_phones"`
	AboutText      *string                   `json:"about_text"`
	ImportantLinks map[LinkCategory]string   `json:"important_links"`
}

// NewBrandContext returns a BrandContext for baseURL with all collection
// fields initialized, so an empty extraction still serializes to the
// full shape.
func NewBrandContext(baseURL string) *BrandContext {
	return &BrandContext{
		BaseURL:        baseURL,
		Products:       []Product{},
		HeroProducts:   []HeroProduct{},
		Policies:       []Policy{},
		FAQs:           []FAQ{},
		SocialHandles:  map[SocialPlatform]string{},
		ContactEmails:  []string{},
		ContactPhones:  []string{},
		ImportantLinks: map[LinkCategory]string{},
	}
}

// Validate returns an error if the brand context contains invalid fields.
// This only performs basic validation.
func (c *BrandContext) Validate() error {
	if c.BaseURL == "" {
		return Errorf(EINVALID, "Brand context base URL is required.")
	}
	return nil
}

// Product is a single catalog entry discovered through the storefront's
// product listing endpoint.
type Product struct {
	Title  string `json:"title"`
	Handle string `json:"handle"`
	URL    string `json:"url"`
}

// HeroProduct is a product surfaced on the landing page itself, found in
// structured data or, failing that, by DOM heuristics.
type HeroProduct struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// FAQ is a single question/answer pair. Question text is kept verbatim;
// deduplication compares normalized forms (see NormalizeQuestion).
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// NormalizeQuestion lowercases q and collapses runs of whitespace to a
// single space. FAQ deduplication is keyed on the result.
func NormalizeQuestion(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}

// NormalizeBaseURL canonicalizes a user-supplied storefront URL to
// scheme://host. A missing scheme defaults to https, the host is
// lowercased, and any path, query, or fragment is dropped. Returns an
// EINVALID error if the URL cannot be parsed or has no host.
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", Errorf(EINVALID, "Base URL is required.")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", Errorf(EINVALID, "Invalid base URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", Errorf(EINVALID, "Base URL scheme must be http or https, got %q.", u.Scheme)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "Base URL has no host.")
	}

	return u.Scheme + "://" + strings.ToLower(u.Host), nil
}

// Brand represents a persisted brand context row keyed by base URL.
// Saving the same base URL again replaces the stored context.
type Brand struct {
	ID      string `json:"id"`
	BaseURL string `json:"baseUrl"`
	Name    string `json:"name"`

	// Fingerprint of the serialized context, used to detect whether a
	// re-scrape actually changed anything.
	ContextHash string `json:"contextHash"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Context is the full extracted record. Populated on reads that
	// request it; list operations may leave it nil.
	Context *BrandContext `json:"context,omitempty"`
}

// BrandScraper extracts a BrandContext from a live storefront.
// websiteURL may omit the scheme; it is normalized before use. The only
// fatal condition is an unreachable landing page, reported with code
// EUNAVAILABLE; every other failure degrades to an absent field.
type BrandScraper interface {
	ScrapeBrand(ctx context.Context, websiteURL string) (*BrandContext, error)
}

// BrandService represents a service for managing persisted brand
// contexts.
type BrandService interface {
	// SaveBrandContext upserts the context keyed by its base URL and
	// returns the stored brand. Child rows (products, policies, FAQs)
	// are replaced wholesale on update.
	SaveBrandContext(ctx context.Context, bcx *BrandContext) (*Brand, error)

	// FindBrandByID returns a brand by ID, including its full context.
	// Returns ENOTFOUND if the brand does not exist.
	FindBrandByID(ctx context.Context, id string) (*Brand, error)

	// FindBrandByBaseURL returns a brand by normalized base URL,
	// including its full context. Returns ENOTFOUND if no brand has
	// been stored for that URL.
	FindBrandByBaseURL(ctx context.Context, baseURL string) (*Brand, error)

	// FindBrands returns a list of brands matching the filter.
	FindBrands(ctx context.Context, filter BrandFilter) ([]*Brand, int, error)

	// DeleteBrand removes a brand and its child rows. Returns ENOTFOUND
	// if the brand does not exist.
	DeleteBrand(ctx context.Context, id string) error
}

// BrandFilter represents a filter used by FindBrands().
type BrandFilter struct {
	ID      *string `json:"id"`
	BaseURL *string `json:"baseUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
