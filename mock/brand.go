package mock

import (
	"context"

	"github.com/fwojciec/brandscan"
)

// Compile-time interface verification.
var (
	_ brandscan.BrandService = (*BrandService)(nil)
	_ brandscan.BrandScraper = (*BrandScraper)(nil)
)

// BrandService is a mock implementation of brandscan.BrandService.
type BrandService struct {
	SaveBrandContextFn   func(ctx context.Context, bcx *brandscan.BrandContext) (*brandscan.Brand, error)
	FindBrandByIDFn      func(ctx context.Context, id string) (*brandscan.Brand, error)
	FindBrandByBaseURLFn func(ctx context.Context, baseURL string) (*brandscan.Brand, error)
	FindBrandsFn         func(ctx context.Context, filter brandscan.BrandFilter) ([]*brandscan.Brand, int, error)
	DeleteBrandFn        func(ctx context.Context, id string) error
}

func (s *BrandService) SaveBrandContext(ctx context.Context, bcx *brandscan.BrandContext) (*brandscan.Brand, error) {
	return s.SaveBrandContextFn(ctx, bcx)
}

func (s *BrandService) FindBrandByID(ctx context.Context, id string) (*brandscan.Brand, error) {
	return s.FindBrandByIDFn(ctx, id)
}

func (s *BrandService) FindBrandByBaseURL(ctx context.Context, baseURL string) (*brandscan.Brand, error) {
	return s.FindBrandByBaseURLFn(ctx, baseURL)
}

func (s *BrandService) FindBrands(ctx context.Context, filter brandscan.BrandFilter) ([]*brandscan.Brand, int, error) {
	return s.FindBrandsFn(ctx, filter)
}

func (s *BrandService) DeleteBrand(ctx context.Context, id string) error {
	return s.DeleteBrandFn(ctx, id)
}

// BrandScraper is a mock implementation of brandscan.BrandScraper.
type BrandScraper struct {
	ScrapeBrandFn func(ctx context.Context, websiteURL string) (*brandscan.BrandContext, error)
}

func (s *BrandScraper) ScrapeBrand(ctx context.Context, websiteURL string) (*brandscan.BrandContext, error) {
	return s.ScrapeBrandFn(ctx, websiteURL)
}
