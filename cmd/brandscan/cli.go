package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/brandscan"
	"github.com/fwojciec/brandscan/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	DB     *sqlite.DB
	Brands brandscan.BrandService

	// Scraper is wired for the scrape command only, with the transport
	// already selected for the target storefront.
	Scraper brandscan.BrandScraper

	// Archive is set when scrape runs with --archive; the command owns
	// the Commit/Abort decision.
	Archive brandscan.PageArchive

	// Fetcher, Prober, and Sitemaps serve the probe command.
	Fetcher  brandscan.Fetcher
	Prober   brandscan.Prober
	Sitemaps brandscan.SitemapService

	Competitors brandscan.CompetitorService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log fetches and saves to stderr"`

	Scrape      ScrapeCmd      `cmd:"" help:"Scrape a storefront and save its brand context"`
	List        ListCmd        `cmd:"" help:"List scraped brands"`
	Show        ShowCmd        `cmd:"" help:"Show a stored brand context"`
	Delete      DeleteCmd      `cmd:"" help:"Delete a brand and its stored context"`
	Probe       ProbeCmd       `cmd:"" help:"Inspect a storefront without scraping it"`
	Competitors CompetitorsCmd `cmd:"" help:"Find competing storefronts via web search"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL         string        `arg:"" help:"Storefront URL"`
	JSON        bool          `short:"j" help:"Print the extracted context as JSON"`
	DryRun      bool          `help:"Extract and print without saving"`
	Archive     string        `help:"Save fetched pages as markdown under this directory" type:"path"`
	NoJS        bool          `help:"Fetch with plain HTTP even on client-rendered platforms"`
	Concurrency int           `short:"c" default:"5" help:"Concurrent extraction limit"`
	RPS         float64       `default:"2" help:"Max requests per second against the storefront"`
	MaxPages    int           `default:"20" help:"Catalog pagination cap"`
	Timeout     time.Duration `short:"t" default:"90s" help:"Overall extraction deadline"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Brand string `arg:"" help:"Storefront URL or brand ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Brand string `arg:"" help:"Storefront URL or brand ID"`
	Force bool   `help:"Confirm deletion"`
}

// ProbeCmd is the "probe" subcommand.
type ProbeCmd struct {
	URL string `arg:"" help:"Storefront URL"`
}

// CompetitorsCmd is the "competitors" subcommand.
type CompetitorsCmd struct {
	URL   string `arg:"" help:"Storefront URL"`
	Limit int    `short:"n" default:"5" help:"Maximum number of results"`
}
