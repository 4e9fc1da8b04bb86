package main

import (
	"fmt"

	"github.com/fwojciec/brandscan"
)

// Run executes the competitors command.
func (c *CompetitorsCmd) Run(deps *Dependencies) error {
	urls, err := deps.Competitors.FindCompetitors(deps.Ctx, c.URL, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", brandscan.ErrorMessage(err))
		return err
	}

	if len(urls) == 0 {
		fmt.Fprintln(deps.Stdout, "No competitors found.")
		return nil
	}

	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}

	return nil
}
