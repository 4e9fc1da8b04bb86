package main

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/brandscan"
	"github.com/fwojciec/brandscan/goquery"
	"github.com/fwojciec/brandscan/scrape"
)

// Ensure ArchivingFetcher implements brandscan.Fetcher at compile time.
var _ brandscan.Fetcher = (*ArchivingFetcher)(nil)

// RenderDelayConfigurer can configure a render delay.
// The Rod fetcher implements this interface.
type RenderDelayConfigurer interface {
	SetRenderDelay(d time.Duration)
}

// SelectFetcher probes the storefront to pick the transport for a
// scrape. It fetches the landing page over plain HTTP, detects the
// platform, and decides whether browser rendering is needed.
//
// Decision flow:
//   - No rendered fetcher available (--no-js) → plain HTTP
//   - Known client-rendered platform (Wix, Squarespace) → rendered,
//     with the platform's settle delay
//   - Known server-rendered platform (Shopify, WooCommerce, ...) → plain HTTP
//   - Unknown platform → fetch both renditions and compare content
//   - Plain fetch fails → rendered (best effort)
//
// Always returns a usable fetcher; never fails.
func SelectFetcher(
	ctx context.Context,
	baseURL string,
	plain, rendered brandscan.Fetcher,
	prober brandscan.Prober,
	extractor brandscan.TextExtractor,
) brandscan.Fetcher {
	if rendered == nil {
		return plain
	}

	plainRes, err := plain.Fetch(ctx, baseURL)
	if err != nil {
		// Plain HTTP failed, fall back to the browser
		return rendered
	}

	// Detect the platform
	platform := prober.Detect(plainRes.Body)

	// Configure render delay for the detected platform
	if delay := prober.RenderDelay(platform); delay > 0 {
		if configurer, ok := rendered.(RenderDelayConfigurer); ok {
			configurer.SetRenderDelay(delay)
		}
	}

	// Check if the platform requires JavaScript
	requiresJS, known := prober.RequiresJS(platform)

	if known {
		if requiresJS {
			return rendered
		}
		return plain
	}

	// Unknown platform: render the page and compare content
	renderedRes, err := rendered.Fetch(ctx, baseURL)
	if err != nil {
		// Rendering failed, use plain HTTP (best effort)
		return plain
	}

	if scrape.ContentDiffers(plainRes.Body, renderedRes.Body, extractor) {
		return rendered
	}

	return plain
}

// ArchivingFetcher decorates a Fetcher, converting every fetched HTML
// page to markdown and saving it to a PageArchive as a side effect.
// Archive failures are reported but never fail the fetch; the scrape
// result matters more than its paper trail.
type ArchivingFetcher struct {
	next      brandscan.Fetcher
	archive   brandscan.PageArchive
	converter brandscan.Converter
	report    func(url string, err error)
}

func NewArchivingFetcher(next brandscan.Fetcher, archive brandscan.PageArchive, converter brandscan.Converter, report func(url string, err error)) *ArchivingFetcher {
	return &ArchivingFetcher{
		next:      next,
		archive:   archive,
		converter: converter,
		report:    report,
	}
}

// Fetch delegates to the wrapped fetcher and archives successful pages.
// Catalog JSON responses are skipped; they are data, not pages.
func (f *ArchivingFetcher) Fetch(ctx context.Context, rawURL string) (*brandscan.FetchResult, error) {
	res, err := f.next.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if isCatalogURL(rawURL) {
		return res, nil
	}

	content, err := f.converter.Convert(res.Body)
	if err != nil {
		f.reportErr(rawURL, err)
		return res, nil
	}

	page := &brandscan.ArchivedPage{
		URL:     rawURL,
		Title:   goquery.Title(res.Body),
		Content: content,
	}
	if err := f.archive.Save(ctx, page); err != nil {
		f.reportErr(rawURL, err)
	}

	return res, nil
}

// Close delegates to the wrapped fetcher.
func (f *ArchivingFetcher) Close() error {
	return f.next.Close()
}

func (f *ArchivingFetcher) reportErr(url string, err error) {
	if f.report != nil {
		f.report(url, err)
	}
}

// isCatalogURL reports whether the URL is a products.json catalog page.
func isCatalogURL(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasSuffix(parsed.Path, "/products.json")
}
