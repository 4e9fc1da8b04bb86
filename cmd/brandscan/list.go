package main

import (
	"fmt"

	"github.com/fwojciec/brandscan"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	brands, n, err := deps.Brands.FindBrands(deps.Ctx, brandscan.BrandFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", brandscan.ErrorMessage(err))
		return err
	}

	if n == 0 {
		fmt.Fprintln(deps.Stdout, "No brands found. Use 'brandscan scrape' to add one.")
		return nil
	}

	for _, b := range brands {
		name := b.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", b.ID, b.BaseURL, name)
	}

	if len(brands) < n {
		fmt.Fprintf(deps.Stdout, "(%d of %d)\n", len(brands), n)
	}

	return nil
}
