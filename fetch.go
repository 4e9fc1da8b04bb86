package brandscan

import (
	"context"
	"errors"
	"fmt"
)

// FetchResult contains the outcome of a successful page fetch. Body is
// the decoded response body; StatusCode is always in the 2xx range
// because non-2xx responses surface as a *FetchError instead.
type FetchResult struct {
	Body       string
	StatusCode int
}

// Fetcher retrieves web pages. Implementations are safe for concurrent
// use and share one connection pool per instance; Close releases it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// FetchReason classifies why a fetch failed.
type FetchReason string

const (
	FetchTimeout          FetchReason = "timeout"
	FetchConnection       FetchReason = "connection"
	FetchHTTPStatus       FetchReason = "http_status"
	FetchTooManyRedirects FetchReason = "too_many_redirects"
)

// FetchError is a typed fetch failure. StatusCode is set only for
// FetchHTTPStatus.
type FetchError struct {
	URL        string
	Reason     FetchReason
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Reason == FetchHTTPStatus {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Reason)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Retryable reports whether a fetch failure is worth retrying: timeouts,
// connection errors, 5xx responses, and 429 rate limiting. Other 4xx
// statuses, redirect loops, and non-fetch errors fail immediately.
func Retryable(err error) bool {
	var fe *FetchError
	if !errors.As(err, &fe) {
		return false
	}
	switch fe.Reason {
	case FetchTimeout, FetchConnection:
		return true
	case FetchHTTPStatus:
		return fe.StatusCode >= 500 || fe.StatusCode == 429
	}
	return false
}
