package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/brandscan"
)

// Ensure AboutExtractor implements brandscan.AboutExtractor.
var _ brandscan.AboutExtractor = (*AboutExtractor)(nil)

// AboutExtractor pulls a brand description from an about page: the
// longest paragraph on the page, or a meta description when the page
// has no paragraphs.
type AboutExtractor struct{}

// NewAboutExtractor creates a new AboutExtractor.
func NewAboutExtractor() *AboutExtractor {
	return &AboutExtractor{}
}

// ExtractAbout returns the about text found in html, capped at
// brandscan.MaxAboutTextLen. An empty result means no usable text was
// found, not an error.
func (e *AboutExtractor) ExtractAbout(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", brandscan.Errorf(brandscan.EINVALID, "failed to parse HTML: %v", err)
	}

	var longest string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if t := cleanText(sel.Text()); utf8.RuneCountInString(t) > utf8.RuneCountInString(longest) {
			longest = t
		}
	})

	if longest == "" {
		longest = metaDescription(doc)
	}

	return truncateRunes(longest, brandscan.MaxAboutTextLen), nil
}

func metaDescription(doc *goquery.Document) string {
	for _, sel := range []string{`meta[name="description"]`, `meta[property="og:description"]`} {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if t := cleanText(content); t != "" {
				return t
			}
		}
	}
	return ""
}
