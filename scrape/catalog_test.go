package scrape_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/brandscan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// catalogJSON builds a products.json body with n sequential entries
// starting at start.
func catalogJSON(start, n int) string {
	var sb strings.Builder
	sb.WriteString(`{"products":[`)
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `{"title":"Product %d","handle":"product-%d"}`, start+i, start+i)
	}
	sb.WriteString("]}")
	return sb.String()
}

func catalogURL(base string, page int) string {
	return fmt.Sprintf("%s/products.json?limit=250&page=%d", base, page)
}

func TestScraper_ScrapeBrand_Catalog(t *testing.T) {
	t.Parallel()

	t.Run("pages until an empty page and collects every product", func(t *testing.T) {
		t.Parallel()

		base := "https://acme.com"
		s := stubScraper(map[string]string{
			base:                "<html></html>",
			catalogURL(base, 1): catalogJSON(0, 250),
			catalogURL(base, 2): catalogJSON(250, 250),
			catalogURL(base, 3): `{"products":[]}`,
		})

		bcx, err := s.ScrapeBrand(context.Background(), base)

		require.NoError(t, err)
		require.Len(t, bcx.Products, 500)
		assert.Equal(t, brandscan.Product{
			Title:  "Product 0",
			Handle: "product-0",
			URL:    base + "/products/product-0",
		}, bcx.Products[0])
		assert.Equal(t, "product-499", bcx.Products[499].Handle)

		handles := make(map[string]bool)
		for _, p := range bcx.Products {
			handles[p.Handle] = true
		}
		assert.Len(t, handles, 500, "every handle should be unique")
	})

	t.Run("stops at the page cap", func(t *testing.T) {
		t.Parallel()

		base := "https://acme.com"
		s := stubScraper(map[string]string{
			base:                "<html></html>",
			catalogURL(base, 1): catalogJSON(0, 2),
			catalogURL(base, 2): catalogJSON(2, 2),
			catalogURL(base, 3): catalogJSON(4, 2),
		})
		s.MaxCatalogPages = 2

		bcx, err := s.ScrapeBrand(context.Background(), base)

		require.NoError(t, err)
		assert.Len(t, bcx.Products, 4)
	})

	t.Run("keeps partial results when a page fails", func(t *testing.T) {
		t.Parallel()

		base := "https://acme.com"
		s := stubScraper(map[string]string{
			base:                "<html></html>",
			catalogURL(base, 1): catalogJSON(0, 2),
			// page 2 404s
		})

		bcx, err := s.ScrapeBrand(context.Background(), base)

		require.NoError(t, err)
		assert.Len(t, bcx.Products, 2)
	})

	t.Run("skips entries without a handle and dedupes repeats", func(t *testing.T) {
		t.Parallel()

		base := "https://acme.com"
		s := stubScraper(map[string]string{
			base:                "<html></html>",
			catalogURL(base, 1): `{"products":[{"title":"A","handle":"a"},{"title":"No Handle","handle":""},{"title":"A again","handle":"a"}]}`,
			catalogURL(base, 2): `{"products":[]}`,
		})

		bcx, err := s.ScrapeBrand(context.Background(), base)

		require.NoError(t, err)
		require.Len(t, bcx.Products, 1)
		assert.Equal(t, "A", bcx.Products[0].Title)
	})

	t.Run("stops on a malformed listing body", func(t *testing.T) {
		t.Parallel()

		base := "https://acme.com"
		s := stubScraper(map[string]string{
			base:                "<html></html>",
			catalogURL(base, 1): `<html>not json</html>`,
		})

		bcx, err := s.ScrapeBrand(context.Background(), base)

		require.NoError(t, err)
		assert.Empty(t, bcx.Products)
	})
}
