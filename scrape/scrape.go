// Package scrape orchestrates brand context extraction. It coordinates
// page fetching, structured-data and DOM extraction, catalog
// pagination, and policy resolution, then assembles the results into a
// single BrandContext under the field precedence and dedup rules.
package scrape

import (
	"context"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/brandscan"
	"golang.org/x/sync/errgroup"
)

// Default tuning for a scrape run.
const (
	DefaultConcurrency = 5
	DefaultTimeout     = 90 * time.Second
)

var _ brandscan.BrandScraper = (*Scraper)(nil)

// Scraper extracts a BrandContext from a live storefront. The
// collaborator fields are required unless noted; zero values for the
// tuning knobs fall back to the package defaults.
type Scraper struct {
	Fetcher   brandscan.Fetcher
	Parser    brandscan.StructuredParser
	Heroes    brandscan.HeroSelectorRegistry
	FAQs      brandscan.FAQExtractor
	About     brandscan.AboutExtractor
	BrandName brandscan.BrandNameExtractor
	Links     brandscan.LinkExtractor
	Contacts  brandscan.ContactScanner

	// Text is the main-content extractor chain for policy bodies; the
	// first extractor returning non-empty text wins. May be empty, in
	// which case policies keep their URL with empty content.
	Text []brandscan.TextExtractor

	// RateLimiter, when set, paces every fetch per domain.
	RateLimiter brandscan.DomainLimiter

	Concurrency     int
	MaxCatalogPages int
	RetryDelays     []time.Duration

	// Timeout bounds the concurrent field stages. On expiry each stage
	// keeps whatever it has collected and assembly proceeds.
	Timeout time.Duration

	// Progress, when set, receives an event per fetched URL.
	Progress brandscan.ScrapeProgressFunc
}

// ScrapeBrand extracts a complete BrandContext from the storefront at
// websiteURL. The URL is normalized to scheme://host first; a URL that
// cannot be normalized returns EINVALID and an unreachable landing page
// returns EUNAVAILABLE. Every other failure leaves its field absent.
func (s *Scraper) ScrapeBrand(ctx context.Context, websiteURL string) (*brandscan.BrandContext, error) {
	base, err := brandscan.NormalizeBaseURL(websiteURL)
	if err != nil {
		return nil, err
	}

	pages := newPageSet(func(ctx context.Context, u string) (*brandscan.Page, error) {
		res, err := s.fetchWithRetry(ctx, u)
		if err != nil {
			return nil, err
		}
		return &brandscan.Page{URL: u, Body: res.Body, StatusCode: res.StatusCode}, nil
	})

	// The landing page anchors everything else; total failure after
	// retries is the one fatal condition.
	landing, err := pages.get(ctx, base)
	if err != nil {
		s.progress(brandscan.ScrapeProgress{Stage: "pages", URL: base, Error: err})
		return nil, brandscan.Errorf(brandscan.EUNAVAILABLE, "Storefront %s is unreachable: %v", base, err)
	}
	s.progress(brandscan.ScrapeProgress{Stage: "pages", URL: base})

	landingData := s.parseStructured(landing.Body)
	linksByCategory := groupByCategory(s.extractLinks(landing))

	aboutURL := base + "/pages/about"
	if links := linksByCategory[brandscan.LinkAbout]; len(links) > 0 {
		aboutURL = links[0]
	}

	// Independent field stages share a bounded worker pool and a
	// deadline; an expired deadline degrades to partial fields rather
	// than failing the scrape.
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	fieldCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	g, gctx := errgroup.WithContext(fieldCtx)
	g.SetLimit(concurrency)

	var products []brandscan.Product
	g.Go(func() error {
		products = s.collectProducts(gctx, base)
		return nil
	})

	kinds := brandscan.PolicyKinds()
	resolved := make([]*brandscan.Policy, len(kinds))
	for i, kind := range kinds {
		g.Go(func() error {
			resolved[i] = s.resolvePolicy(gctx, pages, base, kind, linksByCategory[brandscan.PolicyLinkCategory(kind)])
			return nil
		})
	}

	var faqs []brandscan.FAQ
	g.Go(func() error {
		faqs = s.collectFAQs(gctx, pages, base, linksByCategory[brandscan.LinkFAQ], landing)
		return nil
	})

	var aboutText string
	g.Go(func() error {
		aboutText = s.fetchAbout(gctx, pages, aboutURL)
		return nil
	})

	_ = g.Wait() // stage tasks degrade instead of returning errors

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Contact, social, and link scans cover every page this run
	// fetched, visited in fetch-plan order rather than goroutine
	// completion order, so an unchanged site always assembles the same
	// context.
	scanned := s.scanPages(scanPlan(base, linksByCategory, aboutURL), pages)

	bcx := brandscan.NewBrandContext(base)
	if products != nil {
		bcx.Products = products
	}
	if faqs != nil {
		bcx.FAQs = faqs
	}
	bcx.HeroProducts = s.heroProducts(landingData, landing, base)
	for _, p := range resolved {
		if p != nil {
			bcx.Policies = append(bcx.Policies, *p)
		}
	}
	assembleContacts(bcx, scanned)
	assembleLinks(bcx, scanned)
	if aboutText != "" {
		bcx.AboutText = &aboutText
	}
	if name := s.brandName(landingData, landing); name != "" {
		bcx.BrandName = &name
	}

	if err := bcx.Validate(); err != nil {
		return nil, err
	}
	return bcx, nil
}

// fetchWithRetry performs one rate-limited fetch with the configured
// retry policy. Each attempt takes its own rate limiter token.
func (s *Scraper) fetchWithRetry(ctx context.Context, rawURL string) (*brandscan.FetchResult, error) {
	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	fetchFn := func(ctx context.Context, u string) (*brandscan.FetchResult, error) {
		if s.RateLimiter != nil {
			if parsed, err := url.Parse(u); err == nil {
				if err := s.RateLimiter.Wait(ctx, parsed.Host); err != nil {
					return nil, err
				}
			}
		}
		return s.Fetcher.Fetch(ctx, u)
	}
	return FetchWithRetryDelays(ctx, rawURL, fetchFn, nil, delays)
}

// fetchAbout retrieves the about page and extracts its description.
func (s *Scraper) fetchAbout(ctx context.Context, pages *pageSet, aboutURL string) string {
	page, err := pages.get(ctx, aboutURL)
	if err != nil {
		s.progress(brandscan.ScrapeProgress{Stage: "pages", URL: aboutURL, Error: err})
		return ""
	}
	s.progress(brandscan.ScrapeProgress{Stage: "pages", URL: aboutURL})

	text, err := s.About.ExtractAbout(page.Body)
	if err != nil {
		return ""
	}
	return text
}

// heroProducts prefers Product-typed structured data from the landing
// page; the platform-matched DOM selector runs only when none exists.
// Duplicate title/URL pairs keep their first position.
func (s *Scraper) heroProducts(data *brandscan.StructuredData, landing *brandscan.Page, base string) []brandscan.HeroProduct {
	var heroes []brandscan.HeroProduct
	if len(data.Products) > 0 {
		for _, p := range data.Products {
			heroes = append(heroes, brandscan.HeroProduct{
				Title: capRunes(p.Name, brandscan.MaxHeroTitleLen),
				URL:   resolveAgainst(base, p.URL),
			})
		}
	} else if selector := s.Heroes.GetForHTML(landing.Body); selector != nil {
		if hs, err := selector.ExtractHeroProducts(landing.Body, base); err == nil {
			heroes = hs
		}
	}

	deduped := []brandscan.HeroProduct{}
	seen := make(map[brandscan.HeroProduct]bool)
	for _, h := range heroes {
		if seen[h] {
			continue
		}
		seen[h] = true
		deduped = append(deduped, h)
	}
	return deduped
}

// brandName prefers the structured Organization name over page chrome.
func (s *Scraper) brandName(data *brandscan.StructuredData, landing *brandscan.Page) string {
	for _, org := range data.Organizations {
		if org.Name != "" {
			return capRunes(org.Name, brandscan.MaxBrandNameLen)
		}
	}
	name, err := s.BrandName.ExtractBrandName(landing.Body)
	if err != nil {
		return ""
	}
	return name
}

// scannedPage holds the per-page artifacts consumed by assembly.
type scannedPage struct {
	orgs     []brandscan.StructuredOrganization
	links    []brandscan.Link
	contacts *brandscan.ContactSet
}

// scanPlan lists every URL a scrape may have fetched, in the fixed
// order assembly scans them: landing page, policy candidates in kind
// and path order, FAQ candidates in slug order, about page.
func scanPlan(base string, linksByCategory map[brandscan.LinkCategory][]string, aboutURL string) []string {
	plan := []string{base}
	for _, kind := range brandscan.PolicyKinds() {
		for _, path := range brandscan.CanonicalPolicyPaths(kind) {
			plan = append(plan, base+path)
		}
		plan = append(plan, linksByCategory[brandscan.PolicyLinkCategory(kind)]...)
	}
	for _, path := range faqPagePaths {
		plan = append(plan, base+path)
	}
	plan = append(plan, linksByCategory[brandscan.LinkFAQ]...)
	return append(plan, aboutURL)
}

// scanPages runs the structured, link, and contact scans over every
// plan URL that was fetched successfully, skipping repeats.
func (s *Scraper) scanPages(plan []string, pages *pageSet) []*scannedPage {
	var out []*scannedPage
	seen := make(map[string]bool)
	for _, u := range plan {
		if seen[u] {
			continue
		}
		seen[u] = true

		page, ok := pages.cached(u)
		if !ok {
			continue
		}

		sp := &scannedPage{}
		if data, err := s.Parser.Parse(page.Body); err == nil {
			sp.orgs = data.Organizations
		}
		if links, err := s.Links.ExtractLinks(page.Body, page.URL); err == nil {
			sp.links = links
		}
		if contacts, err := s.Contacts.ScanContacts(page.Body); err == nil {
			sp.contacts = contacts
		}
		out = append(out, sp)
	}
	return out
}

// assembleContacts merges the per-page scans into the context. Emails
// dedupe case-insensitively and phones by digit sequence, both keeping
// first-seen form; each social platform keeps its first match, with
// Organization sameAs URLs considered before any page anchors.
func assembleContacts(bcx *brandscan.BrandContext, scanned []*scannedPage) {
	for _, sp := range scanned {
		for _, org := range sp.orgs {
			for _, u := range org.SameAs {
				if platform, ok := brandscan.MatchSocialPlatform(u); ok {
					addSocial(bcx.SocialHandles, platform, u)
				}
			}
		}
	}

	seenEmail := make(map[string]bool)
	seenPhone := make(map[string]bool)
	for _, sp := range scanned {
		if sp.contacts == nil {
			continue
		}
		for _, sl := range sp.contacts.Socials {
			addSocial(bcx.SocialHandles, sl.Platform, sl.URL)
		}
		for _, e := range sp.contacts.Emails {
			e = strings.ToLower(e)
			if seenEmail[e] {
				continue
			}
			seenEmail[e] = true
			bcx.ContactEmails = append(bcx.ContactEmails, e)
		}
		for _, p := range sp.contacts.Phones {
			digits := digitsOf(p)
			if len(digits) < 7 || seenPhone[digits] {
				continue
			}
			seenPhone[digits] = true
			bcx.ContactPhones = append(bcx.ContactPhones, p)
		}
	}
}

// assembleLinks classifies every anchor from every scanned page. Within
// a category the last classified anchor in scan order wins.
func assembleLinks(bcx *brandscan.BrandContext, scanned []*scannedPage) {
	for _, sp := range scanned {
		for _, link := range sp.links {
			for _, cat := range brandscan.ClassifyLink(link) {
				bcx.ImportantLinks[cat] = link.URL
			}
		}
	}
}

// addSocial records the first value seen for a platform. The stored
// value is the profile handle; a bare platform-root link falls back to
// the full URL so the entry is never empty.
func addSocial(handles map[brandscan.SocialPlatform]string, platform brandscan.SocialPlatform, rawURL string) {
	if _, taken := handles[platform]; taken {
		return
	}
	if h := brandscan.SocialHandle(rawURL); h != "" {
		handles[platform] = h
		return
	}
	handles[platform] = rawURL
}

// extractText runs the main-content extractor chain and returns the
// first non-empty text, trimmed and capped at limit runes.
func (s *Scraper) extractText(html string, limit int) string {
	for _, ext := range s.Text {
		result, err := ext.Extract(html)
		if err != nil || result == nil {
			continue
		}
		if text := strings.TrimSpace(result.ContentText); text != "" {
			return capRunes(text, limit)
		}
	}
	return ""
}

// parseStructured parses and swallows errors: a page whose markup
// defeats the parser contributes no structured records.
func (s *Scraper) parseStructured(html string) *brandscan.StructuredData {
	data, err := s.Parser.Parse(html)
	if err != nil || data == nil {
		return &brandscan.StructuredData{}
	}
	return data
}

func (s *Scraper) extractLinks(page *brandscan.Page) []brandscan.Link {
	links, err := s.Links.ExtractLinks(page.Body, page.URL)
	if err != nil {
		return nil
	}
	return links
}

func (s *Scraper) progress(ev brandscan.ScrapeProgress) {
	if s.Progress != nil {
		s.Progress(ev)
	}
}

// groupByCategory buckets classified anchors by category, preserving
// document order and dropping repeated URLs within a category.
func groupByCategory(links []brandscan.Link) map[brandscan.LinkCategory][]string {
	grouped := make(map[brandscan.LinkCategory][]string)
	seen := make(map[brandscan.LinkCategory]map[string]bool)
	for _, link := range links {
		for _, cat := range brandscan.ClassifyLink(link) {
			if seen[cat] == nil {
				seen[cat] = make(map[string]bool)
			}
			if seen[cat][link.URL] {
				continue
			}
			seen[cat][link.URL] = true
			grouped[cat] = append(grouped[cat], link.URL)
		}
	}
	return grouped
}

// resolveAgainst resolves a possibly relative href against base. An
// empty href stays empty rather than resolving to base itself, and an
// unparseable href is returned untouched.
func resolveAgainst(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(u).String()
}

// capRunes truncates s to at most n runes.
func capRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// digitsOf strips everything but digits; phone dedup keys on the
// result.
func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
