package scrape

import (
	"context"

	"github.com/fwojciec/brandscan"
)

// faqPagePaths are the canonical FAQ page locations, probed in fixed
// order on every scrape.
var faqPagePaths = []string{
	"/pages/faq",
	"/pages/faqs",
	"/faq",
	"/faqs",
	"/pages/help",
	"/pages/support",
}

// collectFAQs gathers question/answer pairs from the canonical FAQ pages
// and the classified FAQ links, falling back to the landing page when no
// candidate yields anything. Both sources contribute per page; structured
// FAQPage records from all pages sort ahead of DOM-heuristic pairs, and a
// DOM pair whose question duplicates a structured one is dropped.
func (s *Scraper) collectFAQs(ctx context.Context, pages *pageSet, baseURL string, fallbacks []string, landing *brandscan.Page) []brandscan.FAQ {
	candidates := make([]string, 0, len(faqPagePaths)+len(fallbacks))
	for _, path := range faqPagePaths {
		candidates = append(candidates, baseURL+path)
	}
	candidates = append(candidates, fallbacks...)

	var structured, dom []brandscan.FAQ
	for _, u := range candidates {
		page, err := pages.get(ctx, u)
		if err != nil {
			s.progress(brandscan.ScrapeProgress{Stage: "faqs", URL: u, Error: err})
			continue
		}
		s.progress(brandscan.ScrapeProgress{Stage: "faqs", URL: u})

		st, dm := s.faqsFromPage(page)
		structured = append(structured, st...)
		dom = append(dom, dm...)
	}

	// Landing page as last resort.
	if len(structured) == 0 && len(dom) == 0 && landing != nil {
		structured, dom = s.faqsFromPage(landing)
	}

	return mergeFAQs(structured, dom)
}

// faqsFromPage extracts FAQs from one page: JSON-LD FAQPage records and
// DOM-heuristic pairs, each source failing independently.
func (s *Scraper) faqsFromPage(page *brandscan.Page) (structured, dom []brandscan.FAQ) {
	if data, err := s.Parser.Parse(page.Body); err == nil {
		structured = data.FAQs
	}
	if pairs, err := s.FAQs.ExtractFAQs(page.Body); err == nil {
		dom = pairs
	}
	return structured, dom
}

// mergeFAQs concatenates structured-data results ahead of DOM results
// and drops duplicate questions, comparing normalized question text and
// keeping the first occurrence.
func mergeFAQs(structured, dom []brandscan.FAQ) []brandscan.FAQ {
	merged := []brandscan.FAQ{}
	seen := make(map[string]bool)
	for _, group := range [][]brandscan.FAQ{structured, dom} {
		for _, f := range group {
			key := brandscan.NormalizeQuestion(f.Question)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, f)
		}
	}
	return merged
}
