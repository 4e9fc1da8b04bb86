package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/brandscan"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	bcx, err := deps.Scraper.ScrapeBrand(deps.Ctx, c.URL)
	if err != nil {
		if deps.Archive != nil {
			_ = deps.Archive.Abort()
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", brandscan.ErrorMessage(err))
		return err
	}

	if deps.Archive != nil {
		if err := deps.Archive.Commit(); err != nil {
			fmt.Fprintf(deps.Stderr, "error committing archive: %v\n", err)
			return err
		}
	}

	if c.DryRun {
		return printContext(deps.Stdout, bcx)
	}

	brand, err := deps.Brands.SaveBrandContext(deps.Ctx, bcx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", brandscan.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %s (%s)\n", brand.BaseURL, brand.ID)
	fmt.Fprintf(deps.Stdout, "  %d products, %d hero products, %d policies, %d FAQs\n",
		len(bcx.Products), len(bcx.HeroProducts), len(bcx.Policies), len(bcx.FAQs))

	if c.JSON {
		return printContext(deps.Stdout, bcx)
	}

	return nil
}

// printContext writes the context as indented JSON.
func printContext(w io.Writer, bcx *brandscan.BrandContext) error {
	buf, err := json.MarshalIndent(bcx, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(buf))
	return nil
}
