package anuncio

import "context"

// Guesser is a last-resort field locator backed by a language model.
// It reads the page's visible text and returns the field value, or ""
// when the model judges the field absent. Returned values still pass
// through the Normalizer before being reported.
type Guesser interface {
	Guess(ctx context.Context, pageText string, field Field) (string, error)
}
