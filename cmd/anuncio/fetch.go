package main

import (
	"fmt"
	"io"

	"github.com/rfontes/anuncio"
	"github.com/rfontes/anuncio/process"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	if err := validateListingURL(c.URL); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", anuncio.ErrorMessage(err))
		return err
	}

	listing, err := deps.Processor.ProcessURL(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", anuncio.ErrorMessage(err))
		return err
	}

	printListing(deps.Stdout, listing, true)

	if c.Save {
		if err := deps.Listings.CreateListing(deps.Ctx, listing); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", anuncio.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "\nSaved listing %s\n", listing.ID)
	}

	return nil
}

// printListing writes a listing report in a fixed field order. The
// description is included only when full is set.
func printListing(w io.Writer, listing *anuncio.Listing, full bool) {
	fmt.Fprintf(w, "%s\n", listing.URL)
	fmt.Fprintf(w, "  backend: %s  hash: %s  fields: %s\n\n",
		listing.Backend, listing.ContentHash, process.FormatRatio(listing.SuccessRatio))

	for _, res := range listing.Results {
		marker := " "
		if res.Required {
			marker = "*"
		}
		if res.Found {
			fmt.Fprintf(w, "  %s %-16s %s\n", marker, res.Field, res.Value)
			continue
		}
		fmt.Fprintf(w, "  %s %-16s (%s)\n", marker, res.Field, res.Reason)
	}

	if full && listing.Description != "" {
		fmt.Fprintf(w, "\n%s\n", listing.Description)
	}
}
