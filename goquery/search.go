package goquery

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rfontes/anuncio"
)

// Ensure SearchParser implements anuncio.SearchPageParser at compile time.
var _ anuncio.SearchPageParser = (*SearchParser)(nil)

// adPathRe matches listing URLs: an 8+ digit ad id suffix under the
// vehicle categories.
var adPathRe = regexp.MustCompile(`-\d{8,}$`)

// SearchParser extracts ad links from search-result pages. The embedded
// Next.js payload is tried first; anchor-pattern matching is the
// fallback for pages served without it.
type SearchParser struct{}

// NewSearchParser creates a new SearchParser.
func NewSearchParser() *SearchParser {
	return &SearchParser{}
}

// ParseSearchPage returns the listing links found on one result page.
func (p *SearchParser) ParseSearchPage(htmlStr string, baseURL string) (*anuncio.SearchPage, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, anuncio.Errorf(anuncio.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil, anuncio.Errorf(anuncio.EINVALID, "failed to parse HTML: %v", err)
	}

	page := &anuncio.SearchPage{}

	links := linksFromJSON(doc)
	if len(links) == 0 {
		links = linksFromAnchors(doc, base)
	}

	seen := make(map[string]bool, len(links))
	for _, link := range links {
		if !seen[link] {
			seen[link] = true
			page.Links = append(page.Links, link)
		}
	}

	page.HasNext = hasNextControl(doc)
	return page, nil
}

// linksFromJSON reads ad URLs out of the Next.js search payload.
func linksFromJSON(doc *goquery.Document) []string {
	sel := doc.Find(nextDataQuery).First()
	if sel.Length() == 0 {
		return nil
	}

	var data struct {
		Props struct {
			PageProps struct {
				Ads []struct {
					URL string `json:"url"`
				} `json:"ads"`
			} `json:"pageProps"`
		} `json:"props"`
	}
	if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
		return nil
	}

	var links []string
	for _, ad := range data.Props.PageProps.Ads {
		if ad.URL == "" || !strings.Contains(ad.URL, "olx.com.br") {
			continue
		}
		links = append(links, stripQuery(ad.URL))
	}
	return links
}

// linksFromAnchors falls back to scanning every anchor for the ad URL
// shape under the vehicle categories.
func linksFromAnchors(doc *goquery.Document, base *url.URL) []string {
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" {
			return
		}
		if strings.HasPrefix(href, "/") {
			href = base.Scheme + "://" + base.Host + href
		}
		clean := stripQuery(href)
		if !adPathRe.MatchString(clean) {
			return
		}
		if !strings.Contains(clean, "autos-e-pecas") && !strings.Contains(clean, "carros") {
			return
		}
		links = append(links, clean)
	})
	return links
}

// hasNextControl looks for the next-page button by text.
func hasNextControl(doc *goquery.Document) bool {
	found := false
	doc.Find("a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(sel.Text()), "próxima página") ||
			(sel.HasClass("olx-core-button") && strings.Contains(sel.Text(), "Próxima")) {
			found = true
			return false
		}
		return true
	})
	return found
}

func stripQuery(rawURL string) string {
	if i := strings.IndexByte(rawURL, '?'); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}
