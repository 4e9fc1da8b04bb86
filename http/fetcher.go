// Package http provides HTTP-based implementations of brandscan.Fetcher
// and brandscan.SitemapService for storefronts that don't require
// JavaScript rendering.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/brandscan"
)

// DefaultFetchTimeout bounds each individual request attempt.
const DefaultFetchTimeout = 15 * time.Second

// DefaultUserAgent identifies the scraper to target sites.
const DefaultUserAgent = "Mozilla/5.0 (compatible; brandscan/1.0)"

// DefaultMaxRedirects caps redirect chains before a fetch fails with
// brandscan.FetchTooManyRedirects.
const DefaultMaxRedirects = 10

var errTooManyRedirects = errors.New("stopped after too many redirects")

// Ensure Fetcher implements brandscan.Fetcher at compile time.
var _ brandscan.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages over plain HTTP. One Fetcher holds one
// connection pool; share a single instance across all requests of a
// scrape and Close it when the scrape ends.
type Fetcher struct {
	client       *http.Client
	timeout      time.Duration
	userAgent    string
	maxRedirects int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for each request attempt.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxRedirects sets the redirect chain cap.
func WithMaxRedirects(n int) Option {
	return func(f *Fetcher) {
		f.maxRedirects = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		userAgent:    DefaultUserAgent,
		maxRedirects: DefaultMaxRedirects,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= f.maxRedirects {
				return errTooManyRedirects
			}
			return nil
		},
	}

	return f
}

// Fetch retrieves the page at url. Any 2xx response succeeds; every
// failure is reported as a *brandscan.FetchError so callers can decide
// whether to retry.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*brandscan.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &brandscan.FetchError{URL: url, Reason: brandscan.FetchConnection, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classifyFetchErr(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &brandscan.FetchError{
			URL:        url,
			Reason:     brandscan.FetchHTTPStatus,
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyFetchErr(url, err)
	}

	return &brandscan.FetchResult{Body: string(body), StatusCode: resp.StatusCode}, nil
}

// Close releases idle connections held by the pool.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

// classifyFetchErr turns transport errors into typed fetch failures.
func classifyFetchErr(url string, err error) *brandscan.FetchError {
	reason := brandscan.FetchConnection
	switch {
	case errors.Is(err, errTooManyRedirects):
		reason = brandscan.FetchTooManyRedirects
	case errors.Is(err, context.DeadlineExceeded), isTimeout(err):
		reason = brandscan.FetchTimeout
	}
	return &brandscan.FetchError{URL: url, Reason: reason, Err: err}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
