// Package process orchestrates listing processing end to end.
// It coordinates page acquisition, field extraction, the optional
// description pipeline, the language-model fallback, and storage.
package process

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/rfontes/anuncio"
	"github.com/rfontes/anuncio/goquery"
)

// DefaultConcurrency bounds parallel listing runs. Each run may hold a
// browser page, so the limit stays low.
const DefaultConcurrency = 4

// Processor runs the full pipeline for listing URLs.
type Processor struct {
	Acquirer  anuncio.Acquirer
	Extractor anuncio.Extractor
	Source    anuncio.URLSource
	Listings  anuncio.ListingService

	// Content and Converter feed the optional description field.
	// Either may be nil; the description is then skipped.
	Content   anuncio.ContentExtractor
	Converter anuncio.Converter

	// Guesser, when set, is asked for required fields whose strategy
	// chains exhausted. Guesses still pass through the normalizer.
	Guesser anuncio.Guesser

	Concurrency int
}

// Result holds the outcome of a batch run.
type Result struct {
	Saved  int
	Failed int
	Bytes  int
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// batchResult holds the outcome of processing a single URL.
type batchResult struct {
	position int
	url      string
	listing  *anuncio.Listing
	err      error
}

var adIDRe = regexp.MustCompile(`-(\d{8,})$`)

// monetary lists the fields whose guessed values get the currency
// prefix stripped, derived from the declared field catalog so the two
// normalization paths cannot drift apart.
var monetary = monetaryFields()

func monetaryFields() map[anuncio.Field]bool {
	m := make(map[anuncio.Field]bool)
	for _, c := range goquery.DefaultChains() {
		if c.Spec.Monetary {
			m[c.Spec.Field] = true
		}
	}
	return m
}

// ProcessURL runs a single listing through acquisition, extraction, the
// fallback guesser, and the description pipeline. The returned listing
// is not persisted; callers decide whether to save it.
func (p *Processor) ProcessURL(ctx context.Context, rawURL string) (*anuncio.Listing, error) {
	html, backend, err := p.Acquirer.Acquire(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	report, err := p.Extractor.Extract(html)
	if err != nil {
		return nil, err
	}

	if p.Guesser != nil {
		p.guessAbsent(ctx, html, report)
	}

	listing := &anuncio.Listing{
		URL:          rawURL,
		AdID:         AdID(rawURL),
		Backend:      backend,
		ContentHash:  ComputeHash(html),
		SuccessRatio: report.SuccessRatio(),
		Results:      report.Results,
	}

	if p.Content != nil && p.Converter != nil {
		listing.Description = p.describe(html)
	}

	return listing, nil
}

// guessAbsent asks the language model for required fields whose chains
// exhausted. A failed or empty guess leaves the result as it was; guess
// failures never fail the run.
func (p *Processor) guessAbsent(ctx context.Context, html string, report *anuncio.Report) {
	pageText, err := goquery.TextFromHTML(html)
	if err != nil || pageText == "" {
		return
	}

	for i, res := range report.Results {
		if res.Found || !res.Required {
			continue
		}

		guess, err := p.Guesser.Guess(ctx, pageText, res.Field)
		if err != nil || guess == "" {
			continue
		}

		n := anuncio.Normalizer{StripCurrency: monetary[res.Field]}
		value, ok := n.Normalize(guess)
		if !ok {
			continue
		}

		report.Results[i] = anuncio.Result{
			Field:    res.Field,
			Value:    value,
			Found:    true,
			Required: res.Required,
			Strategy: anuncio.StrategyGuessed,
		}
	}
}

// describe extracts the ad body and converts it to Markdown. An empty
// or failed extraction yields no description; the field is optional.
func (p *Processor) describe(html string) string {
	content, err := p.Content.Extract(html)
	if err != nil || content.ContentHTML == "" {
		return ""
	}
	markdown, err := p.Converter.Convert(content.ContentHTML)
	if err != nil {
		return ""
	}
	return markdown
}

// ProcessBatch discovers listing URLs from the source and processes
// them concurrently, persisting each successful run. Per-listing
// failures are counted, not fatal; an empty discovery is a normal
// empty result.
func (p *Processor) ProcessBatch(ctx context.Context, sourceURL string, progress ProgressFunc) (*Result, error) {
	if p.Source == nil {
		return nil, anuncio.Errorf(anuncio.EINVALID, "url source required for batch runs")
	}
	if p.Listings == nil {
		return nil, anuncio.Errorf(anuncio.EINVALID, "listing service required for batch runs")
	}

	urls, err := p.Source.Discover(ctx, sourceURL)
	if err != nil {
		return nil, fmt.Errorf("url discovery: %w", err)
	}
	if len(urls) == 0 {
		return &Result{}, nil
	}

	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan batchResult, len(urls))

	var completed atomic.Int64
	total := len(urls)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			i, u := i, u
			g.Go(func() error {
				listing, err := p.ProcessURL(gctx, u)
				resultCh <- batchResult{position: i, url: u, listing: listing, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect in declaration order; listings persist sequentially
	// afterwards because the store serializes writes anyway.
	results := make([]batchResult, len(urls))
	var failed int
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		if result.err != nil {
			failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					URL:       result.url,
					Error:     result.err,
				})
			}
			continue
		}
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       result.url,
			})
		}
	}

	var saved, bytes int
	for _, result := range results {
		if result.err != nil {
			continue
		}
		if err := p.Listings.CreateListing(ctx, result.listing); err != nil {
			failed++
			continue
		}
		saved++
		bytes += len(result.listing.Description)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return &Result{Saved: saved, Failed: failed, Bytes: bytes}, nil
}

// AdID extracts the numeric ad identifier from a listing URL, or ""
// when the URL does not end with one.
func AdID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	m := adIDRe.FindStringSubmatch(u.Path)
	if m == nil {
		return ""
	}
	return m[1]
}
