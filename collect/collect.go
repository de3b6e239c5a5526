// Package collect gathers listing URLs from paginated search results.
// It walks a category's result pages, deduplicates ad links, and stops
// when the site runs out of pages.
package collect

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/rfontes/anuncio"
	"github.com/rfontes/anuncio/acquire"
	"github.com/rfontes/anuncio/bloom"
)

// Ensure Collector implements anuncio.URLSource at compile time.
var _ anuncio.URLSource = (*Collector)(nil)

const (
	// DefaultMaxPages bounds a collection run.
	DefaultMaxPages = 100

	// fullPageSize is the smallest link count still treated as a full
	// result page. Pages thinner than this without a next-page control
	// are the tail of the result set.
	fullPageSize = 10

	// Bloom filter sizing for seen-URL tracking.
	expectedURLs      = 10000
	falsePositiveRate = 0.01
)

// Collector discovers listing URLs by paginating search-result pages.
// Pagination uses the site's "o" query parameter; the first page is the
// source URL as given.
type Collector struct {
	Fetcher     anuncio.Fetcher
	Parser      anuncio.SearchPageParser
	RateLimiter anuncio.DomainLimiter
	MaxPages    int
	RetryDelays []time.Duration
}

// Discover walks result pages from sourceURL and returns the listing
// URLs in discovery order, deduplicated. A failure on the first page is
// an error; failures on later pages end the run with the URLs gathered
// so far.
func (c *Collector) Discover(ctx context.Context, sourceURL string) ([]string, error) {
	base, err := url.Parse(sourceURL)
	if err != nil {
		return nil, anuncio.Errorf(anuncio.EINVALID, "invalid source URL: %v", err)
	}

	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	delays := c.RetryDelays
	if delays == nil {
		delays = acquire.DefaultRetryDelays()
	}

	seen := bloom.NewFilter(expectedURLs, falsePositiveRate)
	var links []string

	for page := 1; page <= maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if c.RateLimiter != nil {
			if err := c.RateLimiter.Wait(ctx, base.Host); err != nil {
				return nil, err
			}
		}

		pageURL := paginate(base, page)
		html, err := acquire.FetchWithRetryDelays(ctx, pageURL, c.Fetcher.Fetch, delays)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			break
		}

		sp, err := c.Parser.ParseSearchPage(html, pageURL)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			break
		}

		if len(sp.Links) == 0 {
			break
		}

		for _, link := range sp.Links {
			if seen.Test(link) {
				continue
			}
			seen.Add(link)
			links = append(links, link)
		}

		// A thin page with no next control is the end of the results.
		if !sp.HasNext && len(sp.Links) < fullPageSize {
			break
		}
	}

	return links, nil
}

// paginate builds the URL for the n-th result page using the "o"
// query parameter. Page 1 is the source URL unchanged.
func paginate(base *url.URL, page int) string {
	if page <= 1 {
		return base.String()
	}
	u := *base
	q := u.Query()
	q.Set("o", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}
