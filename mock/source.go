package mock

import (
	"context"

	"github.com/rfontes/anuncio"
)

var _ anuncio.SearchPageParser = (*SearchPageParser)(nil)

// SearchPageParser is a mock implementation of anuncio.SearchPageParser.
type SearchPageParser struct {
	ParseSearchPageFn func(html string, baseURL string) (*anuncio.SearchPage, error)
}

func (p *SearchPageParser) ParseSearchPage(html string, baseURL string) (*anuncio.SearchPage, error) {
	return p.ParseSearchPageFn(html, baseURL)
}

var _ anuncio.URLSource = (*URLSource)(nil)

// URLSource is a mock implementation of anuncio.URLSource.
type URLSource struct {
	DiscoverFn func(ctx context.Context, sourceURL string) ([]string, error)
}

func (s *URLSource) Discover(ctx context.Context, sourceURL string) ([]string, error) {
	return s.DiscoverFn(ctx, sourceURL)
}
