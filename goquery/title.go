package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Title returns the page's <title> text with whitespace collapsed, or
// "" when the markup has none. Unlike ExtractBrandName it keeps the
// full title, separators included, which is what the page archive
// records.
func Title(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return cleanText(doc.Find("title").First().Text())
}
