package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rfontes/anuncio"
)

// Resolve tries strategies strictly in declaration order and returns the
// first candidate whose trimmed text is non-empty and, when a
// disambiguator is supplied, satisfies it. On success it returns
// immediately; later strategies are never evaluated. On exhaustion it
// returns ok=false.
func Resolve(doc *goquery.Document, strategies []Strategy, disambiguate func(string) bool) (anuncio.Candidate, bool) {
	for i, strategy := range strategies {
		for _, text := range strategy.Find(doc) {
			trimmed := strings.TrimSpace(text)
			if trimmed == "" {
				continue
			}
			if disambiguate != nil && !disambiguate(trimmed) {
				continue
			}
			return anuncio.Candidate{Text: text, Strategy: i}, true
		}
	}
	return anuncio.Candidate{}, false
}
