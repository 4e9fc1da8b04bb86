package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/brandscan"
)

// Ensure BrandNameExtractor implements brandscan.BrandNameExtractor.
var _ brandscan.BrandNameExtractor = (*BrandNameExtractor)(nil)

// BrandNameExtractor derives the brand's display name from page chrome.
// The title tag usually carries the storefront name before a separator,
// so it is tried first, then og:site_name, then the header logo's alt
// text.
type BrandNameExtractor struct{}

// NewBrandNameExtractor creates a new BrandNameExtractor.
func NewBrandNameExtractor() *BrandNameExtractor {
	return &BrandNameExtractor{}
}

// ExtractBrandName returns the brand name found in html, capped at
// brandscan.MaxBrandNameLen, or "" when nothing usable is present.
func (e *BrandNameExtractor) ExtractBrandName(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", brandscan.Errorf(brandscan.EINVALID, "failed to parse HTML: %v", err)
	}

	if t := cleanText(doc.Find("title").First().Text()); t != "" {
		name := strings.TrimSpace(strings.SplitN(t, "|", 2)[0])
		if name != "" {
			return truncateRunes(name, brandscan.MaxBrandNameLen), nil
		}
	}

	if content, ok := doc.Find(`meta[property="og:site_name"]`).First().Attr("content"); ok {
		if name := cleanText(content); name != "" {
			return truncateRunes(name, brandscan.MaxBrandNameLen), nil
		}
	}

	if alt, ok := doc.Find("header img[alt]").First().Attr("alt"); ok {
		if name := cleanText(alt); name != "" {
			return truncateRunes(name, brandscan.MaxBrandNameLen), nil
		}
	}

	return "", nil
}
