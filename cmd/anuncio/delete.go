package main

import (
	"fmt"

	"github.com/rfontes/anuncio"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return anuncio.Errorf(anuncio.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Listings.DeleteListing(deps.Ctx, c.ID); err != nil {
		if anuncio.ErrorCode(err) == anuncio.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: listing %q not found. Use 'anuncio list' to see stored listings.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", anuncio.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted listing %q\n", c.ID)
	return nil
}
