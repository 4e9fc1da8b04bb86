package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/brandscan"
)

// Compile-time interface verification.
var (
	_ brandscan.BrandService = (*LoggingBrandService)(nil)
	_ brandscan.BrandScraper = (*LoggingBrandScraper)(nil)
)

// LoggingBrandService wraps a BrandService, logging the mutating
// operations. Lookups delegate silently.
type LoggingBrandService struct {
	next   brandscan.BrandService
	logger *slog.Logger
}

// NewLoggingBrandService creates a new LoggingBrandService.
func NewLoggingBrandService(next brandscan.BrandService, logger *slog.Logger) *LoggingBrandService {
	return &LoggingBrandService{next: next, logger: logger}
}

// SaveBrandContext delegates to the wrapped service and logs the save.
func (s *LoggingBrandService) SaveBrandContext(ctx context.Context, bcx *brandscan.BrandContext) (brand *brandscan.Brand, err error) {
	defer func(begin time.Time) {
		var id string
		if brand != nil {
			id = brand.ID
		}
		s.logger.Info("save brand context",
			"baseURL", bcx.BaseURL,
			"id", id,
			"products", len(bcx.Products),
			"policies", len(bcx.Policies),
			"faqs", len(bcx.FAQs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveBrandContext(ctx, bcx)
}

// FindBrandByID delegates to the wrapped service.
func (s *LoggingBrandService) FindBrandByID(ctx context.Context, id string) (*brandscan.Brand, error) {
	return s.next.FindBrandByID(ctx, id)
}

// FindBrandByBaseURL delegates to the wrapped service.
func (s *LoggingBrandService) FindBrandByBaseURL(ctx context.Context, baseURL string) (*brandscan.Brand, error) {
	return s.next.FindBrandByBaseURL(ctx, baseURL)
}

// FindBrands delegates to the wrapped service.
func (s *LoggingBrandService) FindBrands(ctx context.Context, filter brandscan.BrandFilter) ([]*brandscan.Brand, int, error) {
	return s.next.FindBrands(ctx, filter)
}

// DeleteBrand delegates to the wrapped service and logs the deletion.
func (s *LoggingBrandService) DeleteBrand(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete brand",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteBrand(ctx, id)
}

// LoggingBrandScraper wraps a BrandScraper with per-scrape logging.
type LoggingBrandScraper struct {
	next   brandscan.BrandScraper
	logger *slog.Logger
}

// NewLoggingBrandScraper creates a new LoggingBrandScraper.
func NewLoggingBrandScraper(next brandscan.BrandScraper, logger *slog.Logger) *LoggingBrandScraper {
	return &LoggingBrandScraper{next: next, logger: logger}
}

// ScrapeBrand delegates to the wrapped scraper and logs the field counts
// of the extracted context.
func (s *LoggingBrandScraper) ScrapeBrand(ctx context.Context, websiteURL string) (bcx *brandscan.BrandContext, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", websiteURL,
			"duration", time.Since(begin),
			"err", err,
		}
		if bcx != nil {
			attrs = append(attrs,
				"products", len(bcx.Products),
				"heroes", len(bcx.HeroProducts),
				"policies", len(bcx.Policies),
				"faqs", len(bcx.FAQs),
			)
		}
		s.logger.Info("scrape brand", attrs...)
	}(time.Now())
	return s.next.ScrapeBrand(ctx, websiteURL)
}
