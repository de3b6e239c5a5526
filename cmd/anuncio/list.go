package main

import (
	"fmt"

	"github.com/rfontes/anuncio"
	"github.com/rfontes/anuncio/process"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := anuncio.ListingFilter{Limit: c.Limit, Offset: c.Offset}
	if c.AdID != "" {
		filter.AdID = &c.AdID
	}

	listings, err := deps.Listings.FindListings(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", anuncio.ErrorMessage(err))
		return err
	}

	if len(listings) == 0 {
		fmt.Fprintln(deps.Stdout, "No listings found. Use 'anuncio fetch --save' or 'anuncio batch' to store some.")
		return nil
	}

	for _, l := range listings {
		fmt.Fprintf(deps.Stdout, "%s  %s  %4s  %s\n",
			l.ID, l.FetchedAt.Format("2006-01-02 15:04"),
			process.FormatRatio(l.SuccessRatio), process.TruncateURL(l.URL, 60))
	}

	return nil
}
