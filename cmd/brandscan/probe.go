package main

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/fwojciec/brandscan"
)

// productPathRE narrows sitemap URLs to product pages.
var productPathRE = regexp.MustCompile(`/products/`)

// Run executes the probe command. It reports what a scrape would find:
// the platform and its rendering needs, catalog endpoint reachability,
// which canonical policy paths resolve, and the sitemap's product count.
// Every check degrades independently; probe only fails when the
// storefront itself is unreachable.
func (c *ProbeCmd) Run(deps *Dependencies) error {
	base, err := brandscan.NormalizeBaseURL(c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", brandscan.ErrorMessage(err))
		return err
	}

	landing, err := deps.Fetcher.Fetch(deps.Ctx, base)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", brandscan.ErrorMessage(err))
		return brandscan.Errorf(brandscan.EUNAVAILABLE, "Storefront %s is unreachable: %v", base, err)
	}

	fmt.Fprintln(deps.Stdout, base)
	c.reportPlatform(deps, landing.Body)
	c.reportCatalog(deps, base)
	c.reportPolicies(deps, base)
	c.reportSitemap(deps, base)

	return nil
}

func (c *ProbeCmd) reportPlatform(deps *Dependencies, html string) {
	platform := deps.Prober.Detect(html)
	label := string(platform)
	if platform == brandscan.PlatformUnknown {
		label = "unknown"
	}
	fmt.Fprintf(deps.Stdout, "  platform:  %s", label)
	if requires, known := deps.Prober.RequiresJS(platform); known && requires {
		fmt.Fprintf(deps.Stdout, " (needs browser rendering)")
	}
	fmt.Fprintln(deps.Stdout)
}

func (c *ProbeCmd) reportCatalog(deps *Dependencies, base string) {
	res, err := deps.Fetcher.Fetch(deps.Ctx, base+"/products.json?limit=250&page=1")
	if err != nil {
		fmt.Fprintf(deps.Stdout, "  catalog:   /products.json unreachable\n")
		return
	}

	var page struct {
		Products []struct {
			Handle string `json:"handle"`
		} `json:"products"`
	}
	if err := json.Unmarshal([]byte(res.Body), &page); err != nil {
		fmt.Fprintf(deps.Stdout, "  catalog:   /products.json responded but is not JSON\n")
		return
	}
	fmt.Fprintf(deps.Stdout, "  catalog:   /products.json reachable, %d products on the first page\n", len(page.Products))
}

func (c *ProbeCmd) reportPolicies(deps *Dependencies, base string) {
	resolved := 0
	for _, kind := range brandscan.PolicyKinds() {
		for _, path := range brandscan.CanonicalPolicyPaths(kind) {
			if _, err := deps.Fetcher.Fetch(deps.Ctx, base+path); err != nil {
				continue
			}
			fmt.Fprintf(deps.Stdout, "  policy:    %s at %s\n", kind, path)
			resolved++
			break
		}
	}
	if resolved == 0 {
		fmt.Fprintf(deps.Stdout, "  policy:    no canonical policy paths resolve\n")
	}
}

func (c *ProbeCmd) reportSitemap(deps *Dependencies, base string) {
	filter := &brandscan.URLFilter{Include: []*regexp.Regexp{productPathRE}}
	urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, base, filter)
	if err != nil {
		fmt.Fprintf(deps.Stdout, "  sitemap:   unavailable (%v)\n", err)
		return
	}
	fmt.Fprintf(deps.Stdout, "  sitemap:   %d product URLs\n", len(urls))
}
