package mock

import (
	"context"

	"github.com/rfontes/anuncio"
)

var _ anuncio.Acquirer = (*Acquirer)(nil)

// Acquirer is a mock implementation of anuncio.Acquirer.
type Acquirer struct {
	AcquireFn func(ctx context.Context, url string) (string, anuncio.Backend, error)
	CloseFn   func() error
}

func (a *Acquirer) Acquire(ctx context.Context, url string) (string, anuncio.Backend, error) {
	return a.AcquireFn(ctx, url)
}

func (a *Acquirer) Close() error {
	if a.CloseFn == nil {
		return nil
	}
	return a.CloseFn()
}
