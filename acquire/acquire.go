// Package acquire combines the dynamic and static fetch backends behind
// the anuncio.Acquirer interface. The dynamic backend is preferred; the
// static backend only runs when the dynamic one is missing or fails.
package acquire

import (
	"context"
	"time"

	"github.com/rfontes/anuncio"
)

// Ensure Fallback implements anuncio.Acquirer at compile time.
var _ anuncio.Acquirer = (*Fallback)(nil)

// Fallback acquires pages through the dynamic fetcher, retrying with
// backoff, then falls back to the static fetcher. At least one backend
// must be set. A nil dynamic fetcher means static-only operation.
type Fallback struct {
	dynamic anuncio.Fetcher
	static  anuncio.Fetcher
	delays  []time.Duration
}

// Option configures a Fallback.
type Option func(*Fallback)

// WithRetryDelays overrides the backoff delays used for dynamic backend
// retries. Useful for testing without waiting for real delays.
func WithRetryDelays(delays []time.Duration) Option {
	return func(f *Fallback) {
		f.delays = delays
	}
}

// NewFallback creates a Fallback acquirer over the given backends.
// Either fetcher may be nil, but not both.
func NewFallback(dynamic, static anuncio.Fetcher, opts ...Option) (*Fallback, error) {
	if dynamic == nil && static == nil {
		return nil, anuncio.Errorf(anuncio.EINVALID, "at least one backend is required")
	}
	f := &Fallback{
		dynamic: dynamic,
		static:  static,
		delays:  DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Acquire returns the page HTML and the backend that produced it.
// The dynamic backend is retried with backoff before falling back.
// Only failure of every available backend is an error.
func (f *Fallback) Acquire(ctx context.Context, url string) (string, anuncio.Backend, error) {
	var dynErr error
	if f.dynamic != nil {
		html, err := FetchWithRetryDelays(ctx, url, f.dynamic.Fetch, f.delays)
		if err == nil {
			return html, anuncio.BackendDynamic, nil
		}
		dynErr = err
		if ctx.Err() != nil {
			return "", "", ctx.Err()
		}
	}

	if f.static != nil {
		html, err := f.static.Fetch(ctx, url)
		if err == nil {
			return html, anuncio.BackendStatic, nil
		}
		if dynErr != nil {
			return "", "", anuncio.Errorf(anuncio.EUNAVAILABLE, "all backends failed: dynamic: %v; static: %v", dynErr, err)
		}
		return "", "", anuncio.Errorf(anuncio.EUNAVAILABLE, "static backend failed: %v", err)
	}

	return "", "", anuncio.Errorf(anuncio.EUNAVAILABLE, "dynamic backend failed: %v", dynErr)
}

// Close releases both backends. The first error wins.
func (f *Fallback) Close() error {
	var err error
	if f.dynamic != nil {
		err = f.dynamic.Close()
	}
	if f.static != nil {
		if cerr := f.static.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
