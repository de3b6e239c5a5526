package anuncio

import (
	"regexp"
	"strings"
)

// TextSeparator is injected between sibling text nodes at traversal time
// so that adjacent text never merges into one token (a seller name
// immediately followed by an account-status phrase, for example).
// Normalization treats each separated segment as its own line.
const TextSeparator = "\n"

// CurrencyPrefix is the currency token stripped from monetary fields.
const CurrencyPrefix = "R$"

// Normalizer cleans raw candidate text through a fixed-order pipeline:
// boilerplate cut patterns, first line only, optional currency prefix
// removal, whitespace collapse. The pipeline is idempotent and never
// yields an empty string as a success.
type Normalizer struct {
	// Cuts are applied in order; each match is removed together with
	// everything after it. Patterns are expected to be case-insensitive
	// and to span lines so that glued text ("HenriqueÚltimo acesso") is
	// cut as reliably as separated text.
	Cuts []*regexp.Regexp

	// StripCurrency removes the currency prefix for numeric fields.
	StripCurrency bool
}

// Normalize cleans raw text. Returns ok=false when the result is empty
// after all steps; callers must treat that as field absence.
func (n Normalizer) Normalize(raw string) (value string, ok bool) {
	s := raw

	// Cut known boilerplate suffixes and everything after them.
	for _, cut := range n.Cuts {
		s = cut.ReplaceAllString(s, "")
	}

	// Keep only the first segment of separator-injected text.
	if i := strings.Index(s, TextSeparator); i >= 0 {
		s = s[:i]
	}

	if n.StripCurrency {
		s = strings.TrimPrefix(strings.TrimSpace(s), CurrencyPrefix)
	}

	// Collapse internal whitespace and trim.
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "", false
	}
	return s, true
}

// CutPatterns compiles cut-and-discard patterns for boilerplate suffixes.
// Each expression is wrapped so it matches case-insensitively across
// segment boundaries and consumes the remainder of the text.
func CutPatterns(exprs ...string) []*regexp.Regexp {
	cuts := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		cuts = append(cuts, regexp.MustCompile(`(?is)`+expr+`.*`))
	}
	return cuts
}
