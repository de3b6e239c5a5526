package goquery

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rfontes/anuncio"
)

// Ensure Extractor implements anuncio.Extractor at compile time.
var _ anuncio.Extractor = (*Extractor)(nil)

// Extractor runs the field catalog against page HTML and assembles an
// extraction report. Fields are isolated from one another: a field whose
// chain exhausts is recorded as absent and never aborts its siblings.
type Extractor struct {
	chains []Chain
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithChains replaces the default field catalog.
func WithChains(chains []Chain) Option {
	return func(e *Extractor) {
		e.chains = chains
	}
}

// NewExtractor creates an Extractor over the default OLX field catalog.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	if e.chains == nil {
		e.chains = DefaultChains()
	}
	return e
}

// Chains returns the declared field catalog.
func (e *Extractor) Chains() []Chain {
	return e.chains
}

// Extract parses the HTML once and resolves every declared field in
// declaration order. The parsed tree is never mutated.
func (e *Extractor) Extract(html string) (*anuncio.Report, error) {
	if strings.TrimSpace(html) == "" {
		return nil, anuncio.Errorf(anuncio.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, anuncio.Errorf(anuncio.EINVALID, "failed to parse HTML: %v", err)
	}

	report := &anuncio.Report{
		Results:   make([]anuncio.Result, 0, len(e.chains)),
		FetchedAt: time.Now().UTC(),
	}
	for _, c := range e.chains {
		report.Results = append(report.Results, extractField(doc, c))
	}
	return report, nil
}

func extractField(doc *goquery.Document, c Chain) anuncio.Result {
	result := anuncio.Result{
		Field:    c.Spec.Field,
		Required: c.Spec.Required,
		Strategy: -1,
	}

	candidate, ok := Resolve(doc, c.Strategies, c.Spec.Disambiguate)
	if !ok {
		result.Reason = absentReason(c.Spec, anuncio.ReasonExhausted)
		return result
	}

	// Currency stripping follows the spec's Monetary flag; the chain's
	// normalizer only carries cut patterns.
	n := c.Normalizer
	n.StripCurrency = c.Spec.Monetary
	value, ok := n.Normalize(candidate.Text)
	if !ok {
		// Normalization emptied the candidate: same terminal state as
		// an exhausted chain.
		result.Reason = absentReason(c.Spec, anuncio.ReasonEmpty)
		return result
	}

	result.Value = value
	result.Found = true
	result.Strategy = candidate.Strategy
	return result
}

// absentReason reports optional fields as plainly not available; only
// required fields carry the diagnostic reason.
func absentReason(spec anuncio.FieldSpec, reason string) string {
	if !spec.Required {
		return anuncio.ReasonNotAvailable
	}
	return reason
}
