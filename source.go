package anuncio

import "context"

// SearchPage holds the listing links discovered on one search-result page.
type SearchPage struct {
	// Links are absolute, query-stripped ad URLs in page order.
	Links []string

	// HasNext reports whether the page advertises a next-page control.
	// Pagination may still continue without it when the page carried a
	// full set of results.
	HasNext bool
}

// SearchPageParser extracts ad links from search-result HTML.
// Implementations try the page's embedded JSON first and fall back to
// anchor-pattern matching.
type SearchPageParser interface {
	ParseSearchPage(html string, baseURL string) (*SearchPage, error)
}

// URLSource discovers listing URLs for batch processing, hiding the
// choice between search-page pagination and sitemap discovery.
type URLSource interface {
	Discover(ctx context.Context, sourceURL string) ([]string, error)
}

// DomainLimiter rate-limits outgoing requests per domain. The site
// serves each state from its own subdomain, so limits apply per host.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled before then.
	Wait(ctx context.Context, domain string) error
}
