package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/brandscan"
)

// Ensure LinkExtractor implements brandscan.LinkExtractor.
var _ brandscan.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor lifts every anchor from a page in document order.
// External links are kept: social profiles and hosted policy pages
// legitimately live off-site.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks returns the page's anchors with hrefs resolved against
// baseURL. Anchors without an href and non-navigational schemes
// (mailto, javascript) are skipped.
func (e *LinkExtractor) ExtractLinks(html, baseURL string) ([]brandscan.Link, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, brandscan.Errorf(brandscan.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, brandscan.Errorf(brandscan.EINVALID, "failed to parse HTML: %v", err)
	}

	var links []brandscan.Link
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		links = append(links, brandscan.Link{
			URL:  resolved,
			Text: cleanText(sel.Text()),
		})
	})

	return links, nil
}
