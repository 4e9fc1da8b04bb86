package main

import (
	"fmt"

	"github.com/fwojciec/brandscan"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return brandscan.Errorf(brandscan.EINVALID, "use --force to confirm deletion")
	}

	brand, err := findBrand(deps, c.Brand)
	if err != nil {
		if brandscan.ErrorCode(err) == brandscan.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: brand %q not found. Use 'brandscan list' to see stored brands.\n", c.Brand)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", brandscan.ErrorMessage(err))
		return err
	}

	if err := deps.Brands.DeleteBrand(deps.Ctx, brand.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", brandscan.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted %s\n", brand.BaseURL)
	return nil
}
