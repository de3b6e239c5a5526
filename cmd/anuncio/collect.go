package main

import (
	"fmt"

	"github.com/rfontes/anuncio"
)

// Run executes the collect command.
func (c *CollectCmd) Run(deps *Dependencies) error {
	if err := validateSiteURL(c.URL); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", anuncio.ErrorMessage(err))
		return err
	}

	urls, err := deps.Source.Discover(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", anuncio.ErrorMessage(err))
		return err
	}

	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}

	fmt.Fprintf(deps.Stderr, "%d listing URLs\n", len(urls))
	return nil
}
