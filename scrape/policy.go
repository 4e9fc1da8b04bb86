package scrape

import (
	"context"

	"github.com/fwojciec/brandscan"
)

// resolvePolicy finds the page for one policy kind. Canonical paths are
// probed in table order and the first 2xx wins regardless of content
// quality; the classified links for the kind's category are tried only
// after every canonical path failed. Returns nil when nothing resolves,
// which leaves the kind absent rather than failing the scrape.
func (s *Scraper) resolvePolicy(ctx context.Context, pages *pageSet, baseURL string, kind brandscan.PolicyKind, fallbacks []string) *brandscan.Policy {
	candidates := make([]string, 0, 4+len(fallbacks))
	for _, path := range brandscan.CanonicalPolicyPaths(kind) {
		candidates = append(candidates, baseURL+path)
	}
	candidates = append(candidates, fallbacks...)

	for _, u := range candidates {
		page, err := pages.get(ctx, u)
		if err != nil {
			s.progress(brandscan.ScrapeProgress{Stage: "policies", URL: u, Error: err})
			continue
		}
		s.progress(brandscan.ScrapeProgress{Stage: "policies", URL: u})

		// Empty content keeps the entry; the URL alone is useful.
		return &brandscan.Policy{
			Kind:    kind,
			URL:     page.URL,
			Content: s.extractText(page.Body, brandscan.MaxPolicyContentLen),
		}
	}
	return nil
}
