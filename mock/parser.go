package mock

import "github.com/apimap/apimap"

var _ apimap.PageParser = (*PageParser)(nil)

// PageParser is a mock implementation of apimap.PageParser.
type PageParser struct {
	ParseFn func(html, pageURL string) (string, []string, error)
}

func (p *PageParser) Parse(html, pageURL string) (string, []string, error) {
	return p.ParseFn(html, pageURL)
}
