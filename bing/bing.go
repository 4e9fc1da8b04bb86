// Package bing implements competitor discovery with the Bing Web Search
// API.
package bing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/brandscan"
)

// DefaultEndpoint is the Bing Web Search v7 endpoint.
const DefaultEndpoint = "https://api.bing.microsoft.com/v7.0/search"

// DefaultTimeout bounds each search request.
const DefaultTimeout = 12 * time.Second

// DefaultLimit is the number of competitor URLs returned when the
// caller doesn't ask for a specific count.
const DefaultLimit = 5

// Ensure CompetitorService implements brandscan.CompetitorService.
var _ brandscan.CompetitorService = (*CompetitorService)(nil)

// CompetitorService finds competing storefronts with Bing Web Search.
// The service is key-gated: without an API key every lookup returns an
// empty result rather than an error, so callers can wire it
// unconditionally.
type CompetitorService struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// Option configures a CompetitorService.
type Option func(*CompetitorService)

// WithEndpoint overrides the search endpoint. Tests point this at a
// local server.
func WithEndpoint(endpoint string) Option {
	return func(s *CompetitorService) {
		s.endpoint = endpoint
	}
}

// WithHTTPClient overrides the HTTP client used for search requests.
func WithHTTPClient(client *http.Client) Option {
	return func(s *CompetitorService) {
		s.client = client
	}
}

// NewCompetitorService creates a service authenticating with apiKey.
// An empty key disables searches.
func NewCompetitorService(apiKey string, opts ...Option) *CompetitorService {
	s := &CompetitorService{
		apiKey:   apiKey,
		endpoint: DefaultEndpoint,
		client:   &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// searchResponse is the subset of the Bing response we read.
type searchResponse struct {
	WebPages struct {
		Value []struct {
			URL string `json:"url"`
		} `json:"value"`
	} `json:"webPages"`
}

// FindCompetitors searches for brands similar to websiteURL, scoped to
// the Shopify domains where comparable storefronts live. Returns at
// most limit result URLs (DefaultLimit when limit is not positive).
func (s *CompetitorService) FindCompetitors(ctx context.Context, websiteURL string, limit int) ([]string, error) {
	if s.apiKey == "" {
		return []string{}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	domain, err := searchDomain(websiteURL)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("q", fmt.Sprintf("similar brands to %s site:shopify.com OR site:myshopify.com", domain))
	q.Set("count", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, brandscan.Errorf(brandscan.EUNAVAILABLE, "Bing search returned status %d.", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := []string{}
	for _, page := range payload.WebPages.Value {
		if page.URL == "" {
			continue
		}
		results = append(results, page.URL)
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

// searchDomain reduces a storefront URL to the bare domain used in the
// search query.
func searchDomain(websiteURL string) (string, error) {
	base, err := brandscan.NormalizeBaseURL(websiteURL)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	host := strings.TrimPrefix(u.Host, "www.")
	if h, _, found := strings.Cut(host, ":"); found {
		host = h
	}
	return host, nil
}
