package anuncio

// ContentResult holds the main body extracted from a listing page.
type ContentResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the ad description as clean HTML with site chrome
	// (navigation, seller box, recommendation widgets) removed.
	ContentHTML string
}

// ContentExtractor pulls the main ad body out of page HTML.
// Used for the optional description field; absence of a usable body is
// a negative result, not an error.
type ContentExtractor interface {
	Extract(html string) (*ContentResult, error)
}

// Converter turns HTML into Markdown.
type Converter interface {
	Convert(html string) (string, error)
}
