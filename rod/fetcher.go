// Package rod provides a brandscan.Fetcher backed by headless Chrome
// for storefront platforms that assemble their pages client-side.
package rod

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/fwojciec/brandscan"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single navigation, including the render
// delay and DOM serialization.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements brandscan.Fetcher at compile time.
var _ brandscan.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation. Use
// it when a storefront's markup only materializes after JavaScript runs;
// plain HTTP pages should go through the http package instead, and the
// products.json catalog endpoint always should. Fetcher is safe for
// concurrent use by multiple goroutines.
type Fetcher struct {
	manager     *BrowserManager
	ownsManager bool
	timeout     time.Duration
	renderDelay time.Duration
	closed      atomic.Bool
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithFetchTimeout sets the timeout applied to each Fetch call.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRenderDelay adds a fixed wait after the load event before the DOM
// is serialized, giving client-rendered storefronts time to hydrate.
// Defaults to zero.
func WithRenderDelay(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.renderDelay = d
	}
}

// WithBrowserManager supplies a shared BrowserManager. The caller
// retains ownership: Close on the Fetcher will not close a supplied
// manager.
func WithBrowserManager(m *BrowserManager) FetcherOption {
	return func(f *Fetcher) {
		f.manager = m
	}
}

// SetRenderDelay adjusts the post-load settle delay after construction.
// The scrape command tunes it once the storefront platform is known,
// before any Fetch call.
func (f *Fetcher) SetRenderDelay(d time.Duration) {
	f.renderDelay = d
}

// NewFetcher creates a Fetcher, launching its own headless Chrome via a
// BrowserManager unless one is supplied with WithBrowserManager. Close
// must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...FetcherOption) (*Fetcher, error) {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.manager == nil {
		m, err := NewBrowserManager()
		if err != nil {
			return nil, err
		}
		f.manager = m
		f.ownsManager = true
	}

	return f, nil
}

// Fetch navigates to the URL, waits for the page to render, and returns
// the serialized DOM. Non-2xx document responses and transport failures
// are reported as a *brandscan.FetchError, matching the HTTP fetcher's
// contract.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*brandscan.FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.closed.Load() {
		return nil, brandscan.Errorf(brandscan.EINVALID, "Fetcher is closed.")
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fetchError(url, err)
	}
	defer page.Close()

	page = page.Context(ctx)

	// Subscribe before navigating so the document response isn't lost
	// from the event stream.
	var status int
	waitStatus := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type == proto.NetworkResourceTypeDocument {
			status = e.Response.Status
			return true
		}
		return false
	})

	if err := page.Navigate(url); err != nil {
		return nil, fetchError(url, err)
	}
	waitStatus()
	if err := ctx.Err(); err != nil {
		return nil, fetchError(url, err)
	}
	if status < 200 || status > 299 {
		return nil, &brandscan.FetchError{
			URL:        url,
			Reason:     brandscan.FetchHTTPStatus,
			StatusCode: status,
		}
	}

	if err := page.WaitLoad(); err != nil {
		return nil, fetchError(url, err)
	}

	if f.renderDelay > 0 {
		select {
		case <-time.After(f.renderDelay):
		case <-ctx.Done():
			return nil, fetchError(url, ctx.Err())
		}
	}

	html, err := serializeDOM(page)
	if err != nil {
		return nil, fetchError(url, err)
	}

	f.manager.IncrementPageCount()

	return &brandscan.FetchResult{Body: html, StatusCode: status}, nil
}

// Close releases browser resources. Close is safe to call multiple
// times; fetching after Close returns EINVALID.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	if f.ownsManager {
		return f.manager.Close()
	}
	return nil
}

// LauncherPID returns the process ID of the underlying browser
// launcher. This method exists for testing purposes to verify proper
// cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// serializeJS renders the live DOM to markup, flattening open shadow
// roots so web-component storefronts are visible to the goquery
// extractors. Slotted children appear in both the shadow and light
// trees; the assembly dedup rules absorb the repeats.
const serializeJS = `() => {
	const hasShadow = () => {
		for (const el of document.querySelectorAll('*')) {
			if (el.shadowRoot) return true;
		}
		return false;
	};
	if (!hasShadow()) {
		return '<!DOCTYPE html>' + document.documentElement.outerHTML;
	}
	const serialize = (node) => {
		if (node.nodeType === Node.TEXT_NODE) return node.textContent;
		if (node.nodeType !== Node.ELEMENT_NODE) return '';
		const tag = node.tagName.toLowerCase();
		let out = '<' + tag;
		for (const attr of node.attributes) {
			out += ' ' + attr.name + '="' + attr.value.replace(/"/g, '&quot;') + '"';
		}
		out += '>';
		if (node.shadowRoot) {
			for (const child of node.shadowRoot.childNodes) out += serialize(child);
		}
		for (const child of node.childNodes) out += serialize(child);
		return out + '</' + tag + '>';
	};
	return '<!DOCTYPE html>' + serialize(document.documentElement);
}`

// serializeDOM returns the rendered page markup. Falls back to the
// plain outerHTML serialization if script evaluation fails.
func serializeDOM(page *rod.Page) (string, error) {
	obj, err := page.Eval(serializeJS)
	if err != nil {
		return page.HTML()
	}
	return obj.Value.Str(), nil
}

// fetchError turns browser automation failures into typed fetch
// failures, mirroring the HTTP fetcher's classification.
func fetchError(url string, err error) error {
	reason := brandscan.FetchConnection
	if errors.Is(err, context.DeadlineExceeded) {
		reason = brandscan.FetchTimeout
	}
	return &brandscan.FetchError{URL: url, Reason: reason, Err: err}
}
