// Package trafilatura extracts the ad description from listing pages.
// Listing pages bury the seller's text between navigation, seller boxes
// and recommendation widgets; trafilatura's content heuristics strip
// the chrome and keep the body.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/rfontes/anuncio"
	"golang.org/x/net/html"
)

// Ensure Extractor implements anuncio.ContentExtractor at compile time.
var _ anuncio.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to pull the ad body out of page HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the ad body and page title.
// An empty body is a valid result; some ads carry no description.
func (e *Extractor) Extract(rawHTML string) (*anuncio.ContentResult, error) {
	if rawHTML == "" {
		return nil, anuncio.Errorf(anuncio.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &anuncio.ContentResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
