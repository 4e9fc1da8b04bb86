package mock

import (
	"context"

	"github.com/fwojciec/brandscan"
)

// Compile-time interface verification.
var (
	_ brandscan.Fetcher       = (*Fetcher)(nil)
	_ brandscan.DomainLimiter = (*DomainLimiter)(nil)
)

// Fetcher is a mock implementation of brandscan.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*brandscan.FetchResult, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*brandscan.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

// DomainLimiter is a mock implementation of brandscan.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
