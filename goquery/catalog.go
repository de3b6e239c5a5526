package goquery

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rfontes/anuncio"
)

// Chain binds a field declaration to its ordered locating strategies and
// its normalizer. The normalizer carries cut patterns only; currency
// stripping follows the spec's Monetary flag. Chains are declared once
// at startup and never mutated.
type Chain struct {
	Spec       anuncio.FieldSpec
	Strategies []Strategy
	Normalizer anuncio.Normalizer
}

// Embedded JSON sources. OLX ships the ad object both in the newer
// #initial-data attribute and in the legacy Next.js payload; paths are
// declared relative to the ad object and expanded to both sources.
const (
	initialDataQuery = "#initial-data"
	initialDataAttr  = "data-json"
	nextDataQuery    = "#__NEXT_DATA__"
	nextDataPrefix   = "props.pageProps.ad."
)

func embedded(paths ...string) []Strategy {
	initial := make([]string, 0, len(paths))
	next := make([]string, 0, len(paths))
	for _, p := range paths {
		initial = append(initial, "ad."+p)
		next = append(next, nextDataPrefix+p)
	}
	return []Strategy{
		Embedded{Query: initialDataQuery, Attr: initialDataAttr, Paths: initial},
		Embedded{Query: nextDataQuery, Paths: next},
	}
}

func chain(groups ...[]Strategy) []Strategy {
	var out []Strategy
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

var (
	yearRe  = regexp.MustCompile(`^(19|20)\d{2}$`)
	moneyRe = regexp.MustCompile(`R\$\s*[\d.,]+|^\d[\d.,]*$`)
	digitRe = regexp.MustCompile(`\d`)
)

// isYear classifies a 4-digit numeric token as a model year. Applied
// wherever one physical selector backs both the brand and year fields.
func isYear(text string) bool {
	return yearRe.MatchString(strings.TrimSpace(text))
}

func isBrand(text string) bool {
	t := strings.TrimSpace(text)
	if isYear(t) || digitRe.MatchString(t) {
		return false
	}
	// Category breadcrumbs share the brand link path but carry
	// punctuated labels ("Carros, vans e utilitários").
	if strings.ContainsAny(t, ",|") {
		return false
	}
	return utf8.RuneCountInString(t) > 1 && utf8.RuneCountInString(t) < 30
}

func isMoney(text string) bool {
	return moneyRe.MatchString(text)
}

// isSellerName rejects menu noise and administrative phrases that the
// broader profile-box selectors occasionally capture.
func isSellerName(text string) bool {
	n := utf8.RuneCountInString(text)
	if n <= 2 || n >= 50 {
		return false
	}
	lower := strings.ToLower(text)
	for _, noise := range []string{"acesso", "olx", "menu", "buscar", "chat", "entrar"} {
		if strings.Contains(lower, noise) {
			return false
		}
	}
	return true
}

func isPhone(text string) bool {
	return len(digitRe.FindAllString(text, -1)) >= 10
}

func minRunes(n int) func(string) bool {
	return func(text string) bool {
		return utf8.RuneCountInString(strings.TrimSpace(text)) > n
	}
}

// sellerCuts removes the administrative phrases OLX renders directly
// after the seller name, including when the markup glues them together.
func sellerCuts() []*regexp.Regexp {
	return anuncio.CutPatterns(
		`último\s*acesso`,
		`conta\s*verificada`,
		`na\s*olx\s*desde`,
		` - `,
	)
}

// titleCuts trims the ad id, site suffix, price and year qualifiers off
// the H1 title so it can stand in for the model field.
func titleCuts() []*regexp.Regexp {
	return anuncio.CutPatterns(
		`\s*-\s*\d+\s*\|`,
		`\s*\|\s*olx`,
		`\s*-\s*olx`,
		`\s*-?\s*r\$\s*[\d.,]+`,
		`\s+(19|20)\d{2}\b`,
	)
}

// DefaultChains returns the field catalog tuned to OLX vehicle listings.
// Strategy order within each chain is authoritative: the resolver
// short-circuits on the first valid candidate. The class-soup selectors
// are the site's current generated names and are expected to need
// updating when the site ships a redesign.
func DefaultChains() []Chain {
	detailBox := ".ad__sc-wuor06-0"
	detailValue := "span.olx-color-neutral-120"
	sharedDetail := ".ad__sc-wuor06-0.hfcCRQ " + detailValue

	return []Chain{
		{
			Spec: anuncio.FieldSpec{Field: anuncio.FieldSeller, Required: true, Disambiguate: isSellerName},
			Strategies: chain(
				[]Strategy{
					Selector{Query: "span.typo-body-large.ad__sc-ypp2u2-4.TTTuh"},
					Selector{Query: `.ad__sc-ypp2u2-12, div[data-testid="account-box"]`},
				},
				embedded("user.name"),
				[]Strategy{
					Pattern{Re: regexp.MustCompile(`([A-ZÁÉÍÓÚÂÊÔÇ][a-záéíóúâêôç]+(?:\s+[A-ZÁÉÍÓÚÂÊÔÇ][a-záéíóúâêôç]+)?)\s+(?:Na OLX desde|Último acesso)`)},
				},
			),
			Normalizer: anuncio.Normalizer{Cuts: sellerCuts()},
		},
		{
			Spec: anuncio.FieldSpec{Field: anuncio.FieldModel, Required: true, Disambiguate: minRunes(3)},
			Strategies: chain(
				[]Strategy{
					Labeled{Query: detailBox + ".hfcCRQ", Label: "Modelo", Value: detailValue},
				},
				embedded("model"),
				[]Strategy{
					Selector{Query: "h1"},
					Pattern{Re: regexp.MustCompile(`(?i)\bModelo\n([^\n]+)`)},
				},
			),
			Normalizer: anuncio.Normalizer{Cuts: titleCuts()},
		},
		{
			Spec: anuncio.FieldSpec{Field: anuncio.FieldVersion, Disambiguate: minRunes(5)},
			Strategies: chain(
				embedded("subject", "title"),
				[]Strategy{Selector{Query: "h1"}},
			),
			Normalizer: anuncio.Normalizer{Cuts: anuncio.CutPatterns(`\s*-\s*\d+\s*\|`, `\s*\|\s*olx`)},
		},
		{
			Spec: anuncio.FieldSpec{Field: anuncio.FieldBrand, Disambiguate: isBrand},
			Strategies: chain(
				embedded("brand", "vehicle_brand"),
				[]Strategy{
					Labeled{Query: detailBox, Label: "Marca", Value: detailValue},
					Attr{Query: "a", Name: "href", Substring: "/autos-e-pecas/carros-vans-e-utilitarios/"},
					// Shared with the year chain; the disambiguator
					// classifies by content shape.
					Selector{Query: sharedDetail},
				},
			),
		},
		{
			Spec: anuncio.FieldSpec{Field: anuncio.FieldYear, Disambiguate: isYear},
			Strategies: chain(
				embedded("regdate"),
				[]Strategy{
					Labeled{Query: detailBox, Label: "Ano", Value: detailValue},
					Selector{Query: sharedDetail},
				},
			),
		},
		{
			Spec: anuncio.FieldSpec{Field: anuncio.FieldPrice, Required: true, Monetary: true, Disambiguate: isMoney},
			Strategies: chain(
				[]Strategy{
					Selector{Query: "h2.olx-text.olx-text--title-large.olx-text--block.ad__sc-1leoitd-0.bJHaGt"},
					Selector{Query: "h2.ad__sc-1leoitd-0"},
					Selector{Query: `h2[data-ds-component="DS-Text"]`},
				},
				embedded("priceValue", "price"),
				[]Strategy{
					Pattern{Re: regexp.MustCompile(`R\$\s*[\d.,]+`)},
				},
			),
		},
		{
			Spec: anuncio.FieldSpec{Field: anuncio.FieldReferencePrice, Monetary: true, Disambiguate: isMoney},
			Strategies: chain(
				[]Strategy{
					Labeled{Query: ".LkJa2kno", Label: "FIPE", Child: 0},
				},
				embedded("priceStats.fipePrice", "abuyFipePrice.fipePrice"),
				[]Strategy{
					Pattern{Re: regexp.MustCompile(`(?is)fipe\D{0,20}(R\$\s*[\d.,]+)`)},
				},
			),
		},
		{
			Spec: anuncio.FieldSpec{Field: anuncio.FieldAveragePrice, Monetary: true, Disambiguate: isMoney},
			Strategies: chain(
				[]Strategy{
					Labeled{Query: ".LkJa2kno", Label: "MÉDIO", Value: "span.olx-text--bold"},
				},
				embedded("priceStats.averagePrice", "abuyPriceRef.price_p50", "abuyPriceRef.average_price"),
			),
		},
		{
			Spec: anuncio.FieldSpec{Field: anuncio.FieldMileage, Disambiguate: isMoney},
			Strategies: chain(
				embedded("mileage"),
				[]Strategy{
					Labeled{Query: detailBox, Label: "Quilometragem", Value: detailValue},
					Pattern{Re: regexp.MustCompile(`(?i)quilometragem\n([\d.,]+)`)},
				},
			),
		},
		{
			// The precedence between the embedded-JSON and regex
			// strategies for the phone changed across site revisions;
			// the order declared here is the one that applies.
			Spec: anuncio.FieldSpec{Field: anuncio.FieldPhone, Disambiguate: isPhone},
			Strategies: chain(
				embedded("phone.phone"),
				[]Strategy{
					Pattern{Re: regexp.MustCompile(`\(?\d{2}\)?\s*9?\s*\d{4}[- ]?\d{4}`)},
				},
			),
		},
		{
			Spec: anuncio.FieldSpec{Field: anuncio.FieldNeighbourhood},
			Strategies: chain(
				embedded("location.neighbourhood"),
				[]Strategy{
					Labeled{Query: detailBox, Label: "Bairro", Value: detailValue},
				},
			),
		},
		{
			Spec: anuncio.FieldSpec{Field: anuncio.FieldLocation},
			Strategies: chain(
				embedded("location.municipality"),
				[]Strategy{
					Labeled{Query: detailBox, Label: "Localização", Value: detailValue},
					Labeled{Query: detailBox, Label: "Município", Value: detailValue},
				},
			),
		},
	}
}
