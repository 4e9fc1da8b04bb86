package scrape

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/brandscan"
)

const (
	// catalogPageSize is the platform's documented maximum page size.
	catalogPageSize = 250

	// DefaultMaxCatalogPages bounds pagination so a misbehaving
	// storefront cannot keep the scraper paging forever.
	DefaultMaxCatalogPages = 20
)

// catalogPage mirrors the product listing endpoint's JSON body.
type catalogPage struct {
	Products []catalogProduct `json:"products"`
}

type catalogProduct struct {
	Title  string `json:"title"`
	Handle string `json:"handle"`
}

// collectProducts pages through {base}/products.json in request order
// until a page comes back empty, the page cap is reached, or a request
// fails. Partial results survive a mid-pagination failure. Entries
// without a handle are skipped and duplicate handles keep their first
// occurrence.
func (s *Scraper) collectProducts(ctx context.Context, baseURL string) []brandscan.Product {
	maxPages := s.MaxCatalogPages
	if maxPages <= 0 {
		maxPages = DefaultMaxCatalogPages
	}

	products := []brandscan.Product{}
	seen := make(map[string]bool)

	for page := 1; page <= maxPages; page++ {
		pageURL := fmt.Sprintf("%s/products.json?limit=%d&page=%d", baseURL, catalogPageSize, page)

		res, err := s.fetchWithRetry(ctx, pageURL)
		if err != nil {
			s.progress(brandscan.ScrapeProgress{Stage: "catalog", URL: pageURL, Error: err})
			break
		}
		s.progress(brandscan.ScrapeProgress{Stage: "catalog", URL: pageURL})

		var body catalogPage
		if err := json.Unmarshal([]byte(res.Body), &body); err != nil {
			break
		}
		if len(body.Products) == 0 {
			break
		}

		for _, p := range body.Products {
			if p.Handle == "" || seen[p.Handle] {
				continue
			}
			seen[p.Handle] = true
			products = append(products, brandscan.Product{
				Title:  p.Title,
				Handle: p.Handle,
				URL:    baseURL + "/products/" + p.Handle,
			})
		}
	}

	return products
}
