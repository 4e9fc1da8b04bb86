package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/brandscan"
	"github.com/fwojciec/brandscan/bing"
	"github.com/fwojciec/brandscan/fs"
	"github.com/fwojciec/brandscan/goquery"
	"github.com/fwojciec/brandscan/htmltomarkdown"
	brandscanhttp "github.com/fwojciec/brandscan/http"
	"github.com/fwojciec/brandscan/readability"
	"github.com/fwojciec/brandscan/rod"
	"github.com/fwojciec/brandscan/scrape"
	brandslog "github.com/fwojciec/brandscan/slog"
	"github.com/fwojciec/brandscan/sqlite"
	"github.com/fwojciec/brandscan/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	BrandService brandscan.BrandService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("brandscan"),
		kong.Description("Extract brand context from e-commerce storefronts"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'brandscan --help' to see available commands")
	}

	if first := args[0]; first == "help" || first == "--help" || first == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Kong reports the selected command as "scrape <url>"; wiring below
	// keys on the bare name so flag position doesn't matter.
	cmd, _, _ := strings.Cut(kongCtx.Command(), " ")

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set BRANDSCAN_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.BrandService = sqlite.NewBrandService(m.DB)
	deps.DB = m.DB
	deps.Brands = m.BrandService
	if cli.Verbose {
		deps.Brands = brandslog.NewLoggingBrandService(deps.Brands, logger)
	}
	deps.Sitemaps = brandscanhttp.NewSitemapService(nil)
	if cli.Verbose {
		deps.Sitemaps = brandslog.NewLoggingSitemapService(deps.Sitemaps, logger)
	}

	// Wire command-specific dependencies based on command
	if cmd == "scrape" {
		base, err := brandscan.NormalizeBaseURL(cli.Scrape.URL)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", brandscan.ErrorMessage(err))
			return err
		}

		httpFetcher := brandscanhttp.NewFetcher(brandscanhttp.WithUserAgent(userAgent()))
		defer httpFetcher.Close()

		var rendered brandscan.Fetcher
		if !cli.Scrape.NoJS {
			rodFetcher, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --no-js")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			defer rodFetcher.Close()
			rendered = rodFetcher
		}

		detector := goquery.NewDetector()
		extractor := trafilatura.NewExtractor()

		fetcher := SelectFetcher(ctx, base, httpFetcher, rendered, detector, extractor)
		if cli.Verbose {
			fetcher = brandslog.NewLoggingFetcher(fetcher, logger)
		}
		if cli.Scrape.Archive != "" {
			deps.Archive = fs.NewFileArchive(cli.Scrape.Archive, archiveName(base))
			fetcher = NewArchivingFetcher(fetcher, deps.Archive, htmltomarkdown.NewConverter(), func(u string, err error) {
				fmt.Fprintf(stderr, "  archive %s: %v\n", u, err)
			})
		}

		registry := goquery.NewRegistry(detector, goquery.NewHeroExtractor())
		registerPlatformSelectors(registry)
		var heroes brandscan.HeroSelectorRegistry = registry
		if cli.Verbose {
			heroes = brandslog.NewLoggingRegistry(registry, detector, logger)
		}

		scraper := &scrape.Scraper{
			Fetcher:         fetcher,
			Parser:          goquery.NewStructuredParser(),
			Heroes:          heroes,
			FAQs:            goquery.NewFAQExtractor(),
			About:           goquery.NewAboutExtractor(),
			BrandName:       goquery.NewBrandNameExtractor(),
			Links:           goquery.NewLinkExtractor(),
			Contacts:        goquery.NewContactScanner(),
			Text:            []brandscan.TextExtractor{extractor, readability.NewExtractor()},
			RateLimiter:     scrape.NewDomainLimiter(cli.Scrape.RPS),
			Concurrency:     cli.Scrape.Concurrency,
			MaxCatalogPages: cli.Scrape.MaxPages,
			Timeout:         cli.Scrape.Timeout,
			Progress: func(ev brandscan.ScrapeProgress) {
				if ev.Error != nil {
					fmt.Fprintf(stderr, "  skip %s: %v\n", ev.URL, ev.Error)
				}
			},
		}
		deps.Scraper = scraper
		if cli.Verbose {
			deps.Scraper = brandslog.NewLoggingBrandScraper(scraper, logger)
		}
	}

	if cmd == "probe" {
		probeFetcher := brandscanhttp.NewFetcher(brandscanhttp.WithUserAgent(userAgent()))
		defer probeFetcher.Close()

		deps.Fetcher = probeFetcher
		if cli.Verbose {
			deps.Fetcher = brandslog.NewLoggingFetcher(deps.Fetcher, logger)
		}
		deps.Prober = goquery.NewDetector()
	}

	if cmd == "competitors" {
		apiKey := os.Getenv("BING_SEARCH_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "BING_SEARCH_API_KEY environment variable not set. Competitor search uses the Bing Web Search API.")
			return fmt.Errorf("BING_SEARCH_API_KEY not set")
		}
		deps.Competitors = bing.NewCompetitorService(apiKey)
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("BRANDSCAN_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "brandscan.db"
	}
	dir := filepath.Join(home, ".brandscan")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "brandscan.db")
}

func userAgent() string {
	if ua := os.Getenv("BRANDSCAN_USER_AGENT"); ua != "" {
		return ua
	}
	return brandscanhttp.DefaultUserAgent
}

// archiveName derives the archive directory name from the normalized
// base URL, e.g. "acme.com" for https://acme.com.
func archiveName(base string) string {
	parsed, err := url.Parse(base)
	if err != nil || parsed.Host == "" {
		return "site"
	}
	return parsed.Host
}

// registerPlatformSelectors registers the platform-specific hero selectors with the registry.
func registerPlatformSelectors(registry brandscan.HeroSelectorRegistry) {
	registry.Register(brandscan.PlatformShopify, goquery.NewShopifySelector())
	registry.Register(brandscan.PlatformWooCommerce, goquery.NewWooCommerceSelector())
}
