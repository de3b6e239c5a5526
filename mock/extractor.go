package mock

import "github.com/rfontes/anuncio"

var _ anuncio.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of anuncio.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*anuncio.Report, error)
}

func (e *Extractor) Extract(html string) (*anuncio.Report, error) {
	return e.ExtractFn(html)
}

var _ anuncio.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of anuncio.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*anuncio.ContentResult, error)
}

func (e *ContentExtractor) Extract(html string) (*anuncio.ContentResult, error) {
	return e.ExtractFn(html)
}
