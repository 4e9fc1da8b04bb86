package scrape

import (
	"context"
	"sync"

	"github.com/fwojciec/brandscan"
	"golang.org/x/sync/singleflight"
)

// pageSet fetches each page at most once per scrape and caches the
// outcome, success or failure. Candidate URLs overlap across stages (a
// canonical FAQ slug may also arrive as a classified link), so every
// page fetch goes through here.
type pageSet struct {
	fetch func(ctx context.Context, url string) (*brandscan.Page, error)

	group singleflight.Group
	mu    sync.Mutex
	pages map[string]*pageResult
}

type pageResult struct {
	page *brandscan.Page
	err  error
}

func newPageSet(fetch func(ctx context.Context, url string) (*brandscan.Page, error)) *pageSet {
	return &pageSet{
		fetch: fetch,
		pages: make(map[string]*pageResult),
	}
}

// get returns the page for url, fetching it on first use. Concurrent
// callers for the same URL share a single fetch, and failed fetches are
// cached so a URL is never retried across stages.
func (s *pageSet) get(ctx context.Context, url string) (*brandscan.Page, error) {
	s.mu.Lock()
	if r, ok := s.pages[url]; ok {
		s.mu.Unlock()
		return r.page, r.err
	}
	s.mu.Unlock()

	v, err, _ := s.group.Do(url, func() (any, error) {
		page, err := s.fetch(ctx, url)
		s.mu.Lock()
		s.pages[url] = &pageResult{page: page, err: err}
		s.mu.Unlock()
		return page, err
	})
	if err != nil {
		return nil, err
	}
	return v.(*brandscan.Page), nil
}

// cached returns the page for url if this scrape fetched it
// successfully. It never triggers a fetch; call it only after the fetch
// stages have finished.
func (s *pageSet) cached(url string) (*brandscan.Page, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.pages[url]
	if !ok || r.err != nil {
		return nil, false
	}
	return r.page, true
}
