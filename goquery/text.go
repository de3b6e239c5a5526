package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rfontes/anuncio"
	"golang.org/x/net/html"
)

// nodeText returns the visible text of a selection with
// anuncio.TextSeparator injected between distinct text nodes.
// goquery's own Text() concatenates adjacent nodes with nothing in
// between, which merges a seller name straight into the account-status
// phrase that follows it in the markup.
func nodeText(sel *goquery.Selection) string {
	var parts []string
	for _, n := range sel.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(parts, anuncio.TextSeparator)
}

func collectText(n *html.Node, parts *[]string) {
	switch n.Type {
	case html.TextNode:
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, t)
		}
		return
	case html.ElementNode:
		// Script and style bodies are not visible text.
		if n.Data == "script" || n.Data == "style" || n.Data == "noscript" {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// PageText returns the whole document's visible text with separators
// injected, for regex strategies and for the LLM fallback.
func PageText(doc *goquery.Document) string {
	body := doc.Find("body")
	if body.Length() == 0 {
		return nodeText(doc.Selection)
	}
	return nodeText(body)
}

// TextFromHTML parses HTML and returns its visible text with separators
// injected.
func TextFromHTML(htmlStr string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return "", anuncio.Errorf(anuncio.EINVALID, "failed to parse HTML: %v", err)
	}
	return PageText(doc), nil
}
