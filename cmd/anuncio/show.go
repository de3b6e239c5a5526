package main

import (
	"fmt"

	"github.com/rfontes/anuncio"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	listing, err := deps.Listings.FindListingByID(deps.Ctx, c.ID)
	if err != nil {
		if anuncio.ErrorCode(err) == anuncio.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: listing %q not found. Use 'anuncio list' to see stored listings.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", anuncio.ErrorMessage(err))
		}
		return err
	}

	printListing(deps.Stdout, listing, c.Full)
	return nil
}
