package mock

import (
	"context"

	"github.com/fwojciec/brandscan"
)

var _ brandscan.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of brandscan.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *brandscan.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *brandscan.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
