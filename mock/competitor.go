package mock

import (
	"context"

	"github.com/fwojciec/brandscan"
)

var _ brandscan.CompetitorService = (*CompetitorService)(nil)

// CompetitorService is a mock implementation of brandscan.CompetitorService.
type CompetitorService struct {
	FindCompetitorsFn func(ctx context.Context, websiteURL string, limit int) ([]string, error)
}

func (s *CompetitorService) FindCompetitors(ctx context.Context, websiteURL string, limit int) ([]string, error) {
	return s.FindCompetitorsFn(ctx, websiteURL, limit)
}
