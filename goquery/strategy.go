// Package goquery implements the selector-resolution engine: locating
// strategies over a parsed document tree, the short-circuit resolver,
// and the field catalog tuned to OLX listing markup.
package goquery

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Strategy is one independent way to locate a field's value in a
// document tree. Given a document it produces zero or more candidate
// texts in document order. Strategies are side-effect-free; a missing
// target node is a negative result, never an error.
type Strategy interface {
	Find(doc *goquery.Document) []string
}

// Selector locates candidates with a CSS selector.
type Selector struct {
	Query string
}

// Find returns the text of every match.
func (s Selector) Find(doc *goquery.Document) []string {
	var out []string
	doc.Find(s.Query).Each(func(_ int, sel *goquery.Selection) {
		out = append(out, nodeText(sel))
	})
	return out
}

// Attr locates elements whose attribute value contains a substring.
type Attr struct {
	Query     string
	Name      string
	Substring string
}

// Find returns the text of every element whose attribute matches.
func (s Attr) Find(doc *goquery.Document) []string {
	var out []string
	doc.Find(s.Query).Each(func(_ int, sel *goquery.Selection) {
		v, ok := sel.Attr(s.Name)
		if !ok || !strings.Contains(v, s.Substring) {
			return
		}
		out = append(out, nodeText(sel))
	})
	return out
}

// Child locates the Nth element child of each match ("children[n]"
// style access for containers whose value position is stable even when
// class names churn).
type Child struct {
	Query string
	Index int
}

// Find returns the text of the Nth child of every match.
func (s Child) Find(doc *goquery.Document) []string {
	var out []string
	doc.Find(s.Query).Each(func(_ int, sel *goquery.Selection) {
		child := sel.Children().Eq(s.Index)
		if child.Length() == 0 {
			return
		}
		out = append(out, nodeText(child))
	})
	return out
}

// Labeled locates containers that carry a known label text and reads the
// value from a sub-selector, or from an ordinal child when Value is
// empty. This disambiguates boxes that share one physical class (the
// reference-price box is found by its "FIPE" label, not its styling).
type Labeled struct {
	Query string
	Label string
	Value string
	Child int
}

// Find returns the value text of every labeled container.
func (s Labeled) Find(doc *goquery.Document) []string {
	label := strings.ToUpper(s.Label)
	var out []string
	doc.Find(s.Query).Each(func(_ int, sel *goquery.Selection) {
		if !strings.Contains(strings.ToUpper(nodeText(sel)), label) {
			return
		}
		var value *goquery.Selection
		if s.Value != "" {
			value = sel.Find(s.Value)
		} else {
			value = sel.Children().Eq(s.Child)
		}
		if value.Length() == 0 {
			return
		}
		out = append(out, nodeText(value.First()))
	})
	return out
}

// Pattern locates candidates by running a regular expression over the
// document's full visible text. When the expression has a capture
// group, the first group is the candidate; otherwise the whole match is.
type Pattern struct {
	Re *regexp.Regexp
}

// Find returns every match of the pattern over the page text.
func (s Pattern) Find(doc *goquery.Document) []string {
	text := PageText(doc)
	var out []string
	for _, m := range s.Re.FindAllStringSubmatch(text, -1) {
		if len(m) > 1 && m[1] != "" {
			out = append(out, m[1])
		} else {
			out = append(out, m[0])
		}
	}
	return out
}

// Embedded reads a value out of a JSON blob the page ships for its own
// client-side rendering. Query selects the script/data element, Attr
// names the attribute carrying the JSON (empty means the element text),
// and Paths are dotted key paths tried in order.
type Embedded struct {
	Query string
	Attr  string
	Paths []string
}

// Find returns the first path that resolves to a non-empty scalar.
func (s Embedded) Find(doc *goquery.Document) []string {
	sel := doc.Find(s.Query).First()
	if sel.Length() == 0 {
		return nil
	}

	var raw string
	if s.Attr != "" {
		v, ok := sel.Attr(s.Attr)
		if !ok {
			return nil
		}
		raw = v
	} else {
		raw = sel.Text()
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err != nil {
		return nil
	}

	var out []string
	for _, path := range s.Paths {
		if v := lookupPath(data, path); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// lookupPath walks a dotted key path through decoded JSON and renders
// the scalar at the end, or "" when the path does not resolve.
func lookupPath(data any, path string) string {
	cur := data
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur, ok = m[key]
		if !ok {
			return ""
		}
	}

	switch v := cur.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}
