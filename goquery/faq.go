package goquery

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/brandscan"
)

// faqQuestionSelectors lists the markup patterns storefront themes use
// for FAQ entries: disclosure widgets, accordion titles, and plain
// heading pairs.
const faqQuestionSelectors = "details summary, .faq-item h3, .faq h3, .accordion__title, h3, h4"

// faqQuestionRE keeps only heading text that reads like a question.
var faqQuestionRE = regexp.MustCompile(`(?i)\?$|\b(how|what|when|where|do|does|is|can|why)\b`)

// Ensure FAQExtractor implements brandscan.FAQExtractor.
var _ brandscan.FAQExtractor = (*FAQExtractor)(nil)

// FAQExtractor pairs heading-like elements with the text block that
// follows them. It is the fallback for pages without FAQPage JSON-LD.
type FAQExtractor struct{}

// NewFAQExtractor creates a new FAQExtractor.
func NewFAQExtractor() *FAQExtractor {
	return &FAQExtractor{}
}

// ExtractFAQs scans html for question/answer pairs in document order.
// Pairs are deduplicated by lowercased question text, first seen wins.
func (e *FAQExtractor) ExtractFAQs(html string) ([]brandscan.FAQ, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, brandscan.Errorf(brandscan.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var faqs []brandscan.FAQ
	doc.Find(faqQuestionSelectors).Each(func(_ int, sel *goquery.Selection) {
		q := cleanText(sel.Text())
		if n := utf8.RuneCountInString(q); n < brandscan.MinFAQQuestion || n > brandscan.MaxFAQQuestion {
			return
		}
		if !faqQuestionRE.MatchString(q) {
			return
		}

		ans := sel.NextAllFiltered("div, p, section").First()
		if ans.Length() == 0 {
			return
		}
		a := cleanText(ans.Text())
		if utf8.RuneCountInString(a) < brandscan.MinFAQAnswer {
			return
		}

		key := strings.ToLower(q)
		if seen[key] {
			return
		}
		seen[key] = true

		faqs = append(faqs, brandscan.FAQ{
			Question: q,
			Answer:   truncateRunes(a, brandscan.MaxFAQAnswerLen),
		})
	})

	return faqs, nil
}
