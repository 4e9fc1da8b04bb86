package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/brandscan"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	brand, err := findBrand(deps, c.Brand)
	if err != nil {
		if brandscan.ErrorCode(err) == brandscan.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: brand %q not found. Use 'brandscan list' to see stored brands.\n", c.Brand)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", brandscan.ErrorMessage(err))
		return err
	}

	buf, err := json.MarshalIndent(brand, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(buf))

	return nil
}

// findBrand resolves a CLI brand reference, which may be a storefront
// URL or a brand ID. URLs are tried first; anything that doesn't match
// a stored base URL falls through to an ID lookup.
func findBrand(deps *Dependencies, ref string) (*brandscan.Brand, error) {
	brand, err := deps.Brands.FindBrandByBaseURL(deps.Ctx, ref)
	if err == nil {
		return brand, nil
	}
	switch brandscan.ErrorCode(err) {
	case brandscan.ENOTFOUND, brandscan.EINVALID:
		return deps.Brands.FindBrandByID(deps.Ctx, ref)
	default:
		return nil, err
	}
}
