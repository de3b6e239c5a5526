package anuncio

import "context"

// Fetcher retrieves HTML from listing URLs.
// Implementations may use browser automation to handle content that only
// materializes after client-side rendering.
type Fetcher interface {
	// Fetch navigates to the URL and returns the page HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any underlying resources (browser processes,
	// network connections). Must be called on every exit path.
	Close() error
}

// Backend identifies which acquisition backend produced a page.
type Backend string

// Acquisition backends.
const (
	BackendDynamic Backend = "dynamic"
	BackendStatic  Backend = "static"
)

// Acquirer produces page HTML for a listing URL, hiding the choice
// between the dynamic and static backends. The dynamic backend is tried
// first; the static backend is the fallback when the dynamic one is
// unavailable or fails. Only total failure of both backends is an error.
type Acquirer interface {
	Acquire(ctx context.Context, url string) (html string, backend Backend, err error)
	Close() error
}
