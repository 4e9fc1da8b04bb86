package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/brandscan"
	"github.com/fwojciec/brandscan/mock"
	brandslog "github.com/fwojciec/brandscan/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingBrandService_SaveBrandContext(t *testing.T) {
	t.Parallel()

	t.Run("logs save with field counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.BrandService{
			SaveBrandContextFn: func(ctx context.Context, bcx *brandscan.BrandContext) (*brandscan.Brand, error) {
				return &brandscan.Brand{ID: "brand-1", BaseURL: bcx.BaseURL}, nil
			},
		}

		bcx := brandscan.NewBrandContext("https://acme.com")
		bcx.Products = []brandscan.Product{{Handle: "a"}, {Handle: "b"}}

		svc := brandslog.NewLoggingBrandService(inner, logger)
		brand, err := svc.SaveBrandContext(context.Background(), bcx)

		require.NoError(t, err)
		assert.Equal(t, "brand-1", brand.ID)
		output := buf.String()
		assert.Contains(t, output, "save brand context")
		assert.Contains(t, output, "baseURL=https://acme.com")
		assert.Contains(t, output, "id=brand-1")
		assert.Contains(t, output, "products=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.BrandService{
			SaveBrandContextFn: func(ctx context.Context, bcx *brandscan.BrandContext) (*brandscan.Brand, error) {
				return nil, brandscan.Errorf(brandscan.EINTERNAL, "db locked")
			},
		}

		svc := brandslog.NewLoggingBrandService(inner, logger)
		_, err := svc.SaveBrandContext(context.Background(), brandscan.NewBrandContext("https://acme.com"))

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=")
	})
}

func TestLoggingBrandService_DeleteBrand(t *testing.T) {
	t.Parallel()

	t.Run("logs deletion", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.BrandService{
			DeleteBrandFn: func(ctx context.Context, id string) error { return nil },
		}

		svc := brandslog.NewLoggingBrandService(inner, logger)
		err := svc.DeleteBrand(context.Background(), "brand-1")

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "delete brand")
		assert.Contains(t, output, "id=brand-1")
	})
}

func TestLoggingBrandService_Lookups(t *testing.T) {
	t.Parallel()

	t.Run("delegate without logging", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		want := &brandscan.Brand{ID: "brand-1"}
		inner := &mock.BrandService{
			FindBrandByIDFn: func(ctx context.Context, id string) (*brandscan.Brand, error) {
				return want, nil
			},
			FindBrandByBaseURLFn: func(ctx context.Context, baseURL string) (*brandscan.Brand, error) {
				return want, nil
			},
			FindBrandsFn: func(ctx context.Context, filter brandscan.BrandFilter) ([]*brandscan.Brand, int, error) {
				return []*brandscan.Brand{want}, 1, nil
			},
		}

		svc := brandslog.NewLoggingBrandService(inner, logger)

		byID, err := svc.FindBrandByID(context.Background(), "brand-1")
		require.NoError(t, err)
		assert.Equal(t, want, byID)

		byURL, err := svc.FindBrandByBaseURL(context.Background(), "https://acme.com")
		require.NoError(t, err)
		assert.Equal(t, want, byURL)

		brands, n, err := svc.FindBrands(context.Background(), brandscan.BrandFilter{})
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Len(t, brands, 1)

		assert.Empty(t, buf.String(), "lookups should not log")
	})
}

func TestLoggingBrandScraper_ScrapeBrand(t *testing.T) {
	t.Parallel()

	t.Run("logs scrape with extracted field counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.BrandScraper{
			ScrapeBrandFn: func(ctx context.Context, websiteURL string) (*brandscan.BrandContext, error) {
				bcx := brandscan.NewBrandContext("https://acme.com")
				bcx.HeroProducts = []brandscan.HeroProduct{{Title: "Red Shoe"}}
				return bcx, nil
			},
		}

		scraper := brandslog.NewLoggingBrandScraper(inner, logger)
		bcx, err := scraper.ScrapeBrand(context.Background(), "acme.com")

		require.NoError(t, err)
		require.NotNil(t, bcx)
		output := buf.String()
		assert.Contains(t, output, "scrape brand")
		assert.Contains(t, output, "url=acme.com")
		assert.Contains(t, output, "heroes=1")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error when the scrape fails", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.BrandScraper{
			ScrapeBrandFn: func(ctx context.Context, websiteURL string) (*brandscan.BrandContext, error) {
				return nil, brandscan.Errorf(brandscan.EUNAVAILABLE, "unreachable")
			},
		}

		scraper := brandslog.NewLoggingBrandScraper(inner, logger)
		_, err := scraper.ScrapeBrand(context.Background(), "acme.com")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=")
	})
}
