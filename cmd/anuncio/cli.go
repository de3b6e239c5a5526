package main

import (
	"context"
	"io"

	"github.com/rfontes/anuncio"
	"github.com/rfontes/anuncio/process"
	"github.com/rfontes/anuncio/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Listings  anuncio.ListingService
	Source    anuncio.URLSource
	Processor *process.Processor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log pipeline events to stderr"`
	DB      string `env:"ANUNCIO_DB" help:"Database path (defaults under the home directory)"`

	Fetch   FetchCmd   `cmd:"" help:"Process a single listing URL"`
	Collect CollectCmd `cmd:"" help:"Collect listing URLs from a search page"`
	Batch   BatchCmd   `cmd:"" help:"Collect, process and store listings from a search page"`
	List    ListCmd    `cmd:"" help:"List stored listings"`
	Show    ShowCmd    `cmd:"" help:"Show a stored listing"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a stored listing"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URL         string `arg:"" help:"Listing URL"`
	Save        bool   `short:"s" help:"Persist the listing after processing"`
	Static      bool   `help:"Skip the browser and use plain HTTP only"`
	RevealPhone bool   `help:"Click the phone-reveal control before extraction (counts as a contact view)"`
	Guess       bool   `short:"g" help:"Ask the language model for required fields the chains missed (needs GEMINI_API_KEY)"`
}

// CollectCmd is the "collect" subcommand.
type CollectCmd struct {
	URL      string  `arg:"" help:"Search-results URL"`
	Sitemap  bool    `help:"Discover URLs from the site's sitemap instead of paginating"`
	MaxPages int     `short:"m" default:"100" help:"Pagination page limit"`
	Rate     float64 `default:"1.0" help:"Requests per second per domain"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	URL         string  `arg:"" help:"Search-results URL"`
	Static      bool    `help:"Skip the browser and use plain HTTP only"`
	RevealPhone bool    `help:"Click the phone-reveal control before extraction (counts as a contact view)"`
	Guess       bool    `short:"g" help:"Ask the language model for required fields the chains missed (needs GEMINI_API_KEY)"`
	MaxPages    int     `short:"m" default:"100" help:"Pagination page limit"`
	Rate        float64 `default:"1.0" help:"Requests per second per domain"`
	Concurrency int     `short:"c" default:"4" help:"Concurrent listing limit"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	AdID   string `help:"Filter by ad id"`
	Limit  int    `default:"50" help:"Maximum rows"`
	Offset int    `help:"Rows to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID   string `arg:"" help:"Listing id"`
	Full bool   `help:"Include the Markdown description"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Listing id"`
	Force bool   `help:"Confirm deletion"`
}
