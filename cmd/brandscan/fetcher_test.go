package main_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/brandscan"
	main "github.com/fwojciec/brandscan/cmd/brandscan"
	"github.com/fwojciec/brandscan/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Selecting the right transport for a storefront
//
// Server-rendered platforms like Shopify serve complete markup over
// plain HTTP; builder platforms like Wix assemble the page client-side
// and need a browser. SelectFetcher probes the landing page, detects
// the platform, and returns the fetcher a scrape should use.

// delayFetcher is a rendered-fetcher double that records the render
// delay configured during selection.
type delayFetcher struct {
	mock.Fetcher
	delay time.Duration
}

func (f *delayFetcher) SetRenderDelay(d time.Duration) { f.delay = d }

func TestSelectFetcher(t *testing.T) {
	t.Parallel()

	landingHTML := "<html><body><p>storefront</p></body></html>"

	t.Run("returns the plain fetcher when no rendered fetcher exists", func(t *testing.T) {
		t.Parallel()

		fetchCalled := false
		plain := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (*brandscan.FetchResult, error) {
				fetchCalled = true
				return &brandscan.FetchResult{Body: landingHTML, StatusCode: 200}, nil
			},
		}

		result := main.SelectFetcher(context.Background(), "https://acme.com", plain, nil, nil, nil)

		assert.Same(t, plain, result)
		assert.False(t, fetchCalled, "selection without a rendered fetcher needs no probe fetch")
	})

	t.Run("returns the plain fetcher for server-rendered platforms", func(t *testing.T) {
		t.Parallel()

		plain := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (*brandscan.FetchResult, error) {
				return &brandscan.FetchResult{Body: landingHTML, StatusCode: 200}, nil
			},
		}
		rendered := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (*brandscan.FetchResult, error) {
				t.Error("rendered fetcher should not be used for a known server-rendered platform")
				return nil, nil
			},
		}

		prober := &mock.Prober{
			DetectFn:      func(_ string) brandscan.Platform { return brandscan.PlatformShopify },
			RequiresJSFn:  func(_ brandscan.Platform) (bool, bool) { return false, true },
			RenderDelayFn: func(_ brandscan.Platform) time.Duration { return 0 },
		}

		result := main.SelectFetcher(context.Background(), "https://acme.com", plain, rendered, prober, nil)

		assert.Same(t, plain, result)
	})

	t.Run("returns the rendered fetcher with the platform's delay for client-rendered platforms", func(t *testing.T) {
		t.Parallel()

		plain := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (*brandscan.FetchResult, error) {
				return &brandscan.FetchResult{Body: landingHTML, StatusCode: 200}, nil
			},
		}
		rendered := &delayFetcher{}

		prober := &mock.Prober{
			DetectFn:      func(_ string) brandscan.Platform { return brandscan.PlatformWix },
			RequiresJSFn:  func(_ brandscan.Platform) (bool, bool) { return true, true },
			RenderDelayFn: func(_ brandscan.Platform) time.Duration { return 2 * time.Second },
		}

		result := main.SelectFetcher(context.Background(), "https://acme.com", plain, rendered, prober, nil)

		assert.Same(t, rendered, result)
		assert.Equal(t, 2*time.Second, rendered.delay)
	})

	t.Run("compares renditions for unknown platforms", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.TextExtractor{
			ExtractFn: func(html string) (*brandscan.ExtractResult, error) {
				if strings.Contains(html, "hydrated") {
					return &brandscan.ExtractResult{ContentHTML: strings.Repeat("<p>hydrated</p>", 20)}, nil
				}
				return &brandscan.ExtractResult{ContentHTML: "<p>storefront</p>"}, nil
			},
		}

		unknownProber := &mock.Prober{
			DetectFn:      func(_ string) brandscan.Platform { return brandscan.PlatformUnknown },
			RequiresJSFn:  func(_ brandscan.Platform) (bool, bool) { return false, false },
			RenderDelayFn: func(_ brandscan.Platform) time.Duration { return 0 },
		}

		plain := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (*brandscan.FetchResult, error) {
				return &brandscan.FetchResult{Body: landingHTML, StatusCode: 200}, nil
			},
		}

		t.Run("rendered wins when it hydrates more content", func(t *testing.T) {
			t.Parallel()

			rendered := &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (*brandscan.FetchResult, error) {
					return &brandscan.FetchResult{Body: "<html><body>hydrated</body></html>", StatusCode: 200}, nil
				},
			}

			result := main.SelectFetcher(context.Background(), "https://acme.com", plain, rendered, unknownProber, extractor)

			assert.Same(t, rendered, result)
		})

		t.Run("plain wins when the renditions match", func(t *testing.T) {
			t.Parallel()

			rendered := &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (*brandscan.FetchResult, error) {
					return &brandscan.FetchResult{Body: landingHTML, StatusCode: 200}, nil
				},
			}

			result := main.SelectFetcher(context.Background(), "https://acme.com", plain, rendered, unknownProber, extractor)

			assert.Same(t, plain, result)
		})

		t.Run("plain wins when rendering fails", func(t *testing.T) {
			t.Parallel()

			rendered := &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (*brandscan.FetchResult, error) {
					return nil, &brandscan.FetchError{URL: url, Reason: brandscan.FetchTimeout}
				},
			}

			result := main.SelectFetcher(context.Background(), "https://acme.com", plain, rendered, unknownProber, extractor)

			assert.Same(t, plain, result)
		})
	})

	t.Run("falls back to the rendered fetcher when plain HTTP fails", func(t *testing.T) {
		t.Parallel()

		plain := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*brandscan.FetchResult, error) {
				return nil, &brandscan.FetchError{URL: url, Reason: brandscan.FetchConnection}
			},
		}
		rendered := &mock.Fetcher{}

		result := main.SelectFetcher(context.Background(), "https://acme.com", plain, rendered, nil, nil)

		assert.Same(t, rendered, result)
	})
}

func TestArchivingFetcher(t *testing.T) {
	t.Parallel()

	pageHTML := `<html><head><title>About Acme</title></head><body><p>Our story.</p></body></html>`

	t.Run("archives fetched pages as markdown", func(t *testing.T) {
		t.Parallel()

		next := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (*brandscan.FetchResult, error) {
				return &brandscan.FetchResult{Body: pageHTML, StatusCode: 200}, nil
			},
		}
		converter := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				assert.Equal(t, pageHTML, html)
				return "Our story.", nil
			},
		}

		var saved *brandscan.ArchivedPage
		archive := &mock.PageArchive{
			SaveFn: func(_ context.Context, page *brandscan.ArchivedPage) error {
				saved = page
				return nil
			},
		}

		f := main.NewArchivingFetcher(next, archive, converter, nil)

		res, err := f.Fetch(context.Background(), "https://acme.com/pages/about")

		require.NoError(t, err)
		assert.Equal(t, pageHTML, res.Body)
		assert.Equal(t, 200, res.StatusCode)
		require.NotNil(t, saved)
		assert.Equal(t, "https://acme.com/pages/about", saved.URL)
		assert.Equal(t, "About Acme", saved.Title)
		assert.Equal(t, "Our story.", saved.Content)
	})

	t.Run("skips catalog endpoints", func(t *testing.T) {
		t.Parallel()

		next := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (*brandscan.FetchResult, error) {
				return &brandscan.FetchResult{Body: `{"products":[]}`, StatusCode: 200}, nil
			},
		}

		saveCalled := false
		archive := &mock.PageArchive{
			SaveFn: func(_ context.Context, _ *brandscan.ArchivedPage) error {
				saveCalled = true
				return nil
			},
		}

		f := main.NewArchivingFetcher(next, archive, &mock.Converter{}, nil)

		res, err := f.Fetch(context.Background(), "https://acme.com/products.json?limit=250&page=1")

		require.NoError(t, err)
		assert.Equal(t, `{"products":[]}`, res.Body)
		assert.False(t, saveCalled)
	})

	t.Run("propagates fetch errors without archiving", func(t *testing.T) {
		t.Parallel()

		next := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*brandscan.FetchResult, error) {
				return nil, &brandscan.FetchError{URL: url, Reason: brandscan.FetchHTTPStatus, StatusCode: 404}
			},
		}

		saveCalled := false
		archive := &mock.PageArchive{
			SaveFn: func(_ context.Context, _ *brandscan.ArchivedPage) error {
				saveCalled = true
				return nil
			},
		}

		f := main.NewArchivingFetcher(next, archive, &mock.Converter{}, nil)

		_, err := f.Fetch(context.Background(), "https://acme.com/pages/missing")

		require.Error(t, err)
		assert.False(t, saveCalled)
	})

	t.Run("reports save failures but keeps the fetch result", func(t *testing.T) {
		t.Parallel()

		next := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (*brandscan.FetchResult, error) {
				return &brandscan.FetchResult{Body: pageHTML, StatusCode: 200}, nil
			},
		}
		converter := &mock.Converter{
			ConvertFn: func(_ string) (string, error) { return "Our story.", nil },
		}
		archive := &mock.PageArchive{
			SaveFn: func(_ context.Context, _ *brandscan.ArchivedPage) error {
				return brandscan.Errorf(brandscan.EINTERNAL, "disk full")
			},
		}

		var reportedURL string
		var reportedErr error
		f := main.NewArchivingFetcher(next, archive, converter, func(url string, err error) {
			reportedURL = url
			reportedErr = err
		})

		res, err := f.Fetch(context.Background(), "https://acme.com/pages/about")

		require.NoError(t, err)
		assert.Equal(t, pageHTML, res.Body)
		assert.Equal(t, "https://acme.com/pages/about", reportedURL)
		require.Error(t, reportedErr)
	})

	t.Run("reports conversion failures and skips the save", func(t *testing.T) {
		t.Parallel()

		next := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (*brandscan.FetchResult, error) {
				return &brandscan.FetchResult{Body: pageHTML, StatusCode: 200}, nil
			},
		}
		converter := &mock.Converter{
			ConvertFn: func(_ string) (string, error) {
				return "", brandscan.Errorf(brandscan.EINTERNAL, "conversion failed")
			},
		}

		saveCalled := false
		archive := &mock.PageArchive{
			SaveFn: func(_ context.Context, _ *brandscan.ArchivedPage) error {
				saveCalled = true
				return nil
			},
		}

		reported := false
		f := main.NewArchivingFetcher(next, archive, converter, func(_ string, _ error) { reported = true })

		res, err := f.Fetch(context.Background(), "https://acme.com/pages/about")

		require.NoError(t, err)
		assert.Equal(t, pageHTML, res.Body)
		assert.True(t, reported)
		assert.False(t, saveCalled)
	})

	t.Run("Close closes the wrapped fetcher", func(t *testing.T) {
		t.Parallel()

		closed := false
		next := &mock.Fetcher{
			CloseFn: func() error { closed = true; return nil },
		}

		f := main.NewArchivingFetcher(next, &mock.PageArchive{}, &mock.Converter{}, nil)

		require.NoError(t, f.Close())
		assert.True(t, closed)
	})
}
