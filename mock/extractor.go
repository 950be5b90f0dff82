package mock

import "github.com/apimap/apimap"

var _ apimap.EndpointExtractor = (*EndpointExtractor)(nil)

// EndpointExtractor is a mock implementation of apimap.EndpointExtractor.
type EndpointExtractor struct {
	ExtractFn func(text, baseURL string) []apimap.EndpointRecord
}

func (e *EndpointExtractor) Extract(text, baseURL string) []apimap.EndpointRecord {
	return e.ExtractFn(text, baseURL)
}

var _ apimap.Matcher = (*Matcher)(nil)

// Matcher is a mock implementation of apimap.Matcher.
type Matcher struct {
	MatchFn func(text, baseURL string) []apimap.EndpointRecord
	NameFn  func() apimap.Provenance
}

func (m *Matcher) Match(text, baseURL string) []apimap.EndpointRecord {
	return m.MatchFn(text, baseURL)
}

func (m *Matcher) Name() apimap.Provenance {
	return m.NameFn()
}
