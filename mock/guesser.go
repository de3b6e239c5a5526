package mock

import (
	"context"

	"github.com/rfontes/anuncio"
)

var _ anuncio.Guesser = (*Guesser)(nil)

// Guesser is a mock implementation of anuncio.Guesser.
type Guesser struct {
	GuessFn func(ctx context.Context, pageText string, field anuncio.Field) (string, error)
}

func (g *Guesser) Guess(ctx context.Context, pageText string, field anuncio.Field) (string, error) {
	return g.GuessFn(ctx, pageText, field)
}
