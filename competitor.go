package brandscan

import "context"

// CompetitorService finds storefronts that compete with a given site.
// Implementations query an external search API; results are candidate
// URLs, not scraped brands.
type CompetitorService interface {
	FindCompetitors(ctx context.Context, websiteURL string, limit int) ([]string, error)
}
