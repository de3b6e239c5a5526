package mock

import "github.com/rfontes/anuncio"

var _ anuncio.Converter = (*Converter)(nil)

// Converter is a mock implementation of anuncio.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
