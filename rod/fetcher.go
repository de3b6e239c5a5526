package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rfontes/anuncio"
)

// Ensure Fetcher implements anuncio.Fetcher at compile time.
var _ anuncio.Fetcher = (*Fetcher)(nil)

// DefaultRenderDelay is the settle time after load before the page is
// snapshotted. Listing pages hydrate the price and seller boxes from
// client-side JavaScript after the load event fires.
const DefaultRenderDelay = 500 * time.Millisecond

// revealTimeout bounds the search for the phone-reveal control. Most
// listings have none; the snapshot must not stall on them.
const revealTimeout = 1 * time.Second

// revealLabel matches the site's phone-reveal button text.
const revealLabel = "/ver telefone/i"

// Fetcher retrieves rendered HTML from listing pages using Chrome browser
// automation. The browser comes from a BrowserManager, which relaunches
// it after a page budget so long batch runs don't accumulate Chrome
// memory. Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager      *BrowserManager
	fetchTimeout time.Duration
	renderDelay  time.Duration
	maxPages     int64
	phoneReveal  bool
	closed       atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds a single Fetch call. Zero means no timeout
// beyond whatever the caller's context imposes.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// WithRenderDelay sets the settle time after the load event before the
// page HTML is captured. Defaults to DefaultRenderDelay.
func WithRenderDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.renderDelay = d
	}
}

// WithPhoneReveal clicks the "ver telefone" control after load so the
// phone number is present in the snapshot. Off by default; the click
// counts as a contact view on the site.
func WithPhoneReveal() Option {
	return func(f *Fetcher) {
		f.phoneReveal = true
	}
}

// WithRecycleAfter sets the number of fetched pages before the browser
// is relaunched. Defaults to DefaultMaxPages.
func WithRecycleAfter(n int64) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		renderDelay: DefaultRenderDelay,
	}
	for _, opt := range opts {
		opt(f)
	}

	var managerOpts []ManagerOption
	if f.maxPages > 0 {
		managerOpts = append(managerOpts, WithMaxPages(f.maxPages))
	}
	manager, err := NewBrowserManager(managerOpts...)
	if err != nil {
		return nil, err
	}

	f.manager = manager
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", anuncio.Errorf(anuncio.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if f.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.fetchTimeout)
		defer cancel()
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if f.phoneReveal {
		clickReveal(page)
	}

	// Let client-side hydration finish before snapshotting.
	if f.renderDelay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.renderDelay):
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()
	return html, nil
}

// clickReveal clicks the phone-reveal control when present. A listing
// without one is normal, and a failed click still yields a usable
// snapshot, so errors are discarded.
func clickReveal(page *rod.Page) {
	el, err := page.Timeout(revealTimeout).ElementR("button", revealLabel)
	if err != nil {
		return
	}
	_ = el.Click(proto.InputMouseButtonLeft, 1)
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
