package apimap

// PageParser turns raw HTML into extractable text and followable links.
type PageParser interface {
	// Parse strips non-content markup (script, style, meta, link) before
	// text extraction, flattens the visible text with single-space
	// separators, and returns the page's hyperlinks resolved to absolute
	// form against pageURL. Only links on the same host as pageURL are
	// returned; cross-domain links are silently dropped to bound the
	// crawl to one documentation site. Duplicate links are collapsed.
	Parse(html, pageURL string) (text string, links []string, err error)
}
