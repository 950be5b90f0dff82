package extract

import "github.com/apimap/apimap"

// Compile-time interface verification.
var _ apimap.EndpointExtractor = (*Extractor)(nil)

// Extractor applies matchers to one page's text in a fixed order and
// unions their output with per-page key deduplication: the first matcher
// to claim a (method, path) key wins for that page.
type Extractor struct {
	matchers []apimap.Matcher
}

// NewExtractor creates an Extractor running the given matchers in order.
// With no arguments it runs DefaultMatchers.
func NewExtractor(matchers ...apimap.Matcher) *Extractor {
	if len(matchers) == 0 {
		matchers = DefaultMatchers()
	}
	return &Extractor{matchers: matchers}
}

// DefaultMatchers returns the built-in matchers in their fixed order:
// method+path, full URL, backtick-quoted path, curl command, API path
// shape. The order matters: earlier matchers claim keys first.
func DefaultMatchers() []apimap.Matcher {
	return []apimap.Matcher{
		&MethodPathMatcher{},
		&FullURLMatcher{},
		&CodeBlockMatcher{},
		&CurlMatcher{},
		&APIPathMatcher{},
	}
}

// Extract runs all matchers over text and returns the unioned records in
// detection order. Extraction is deterministic: identical text yields
// identical ordered output.
func (e *Extractor) Extract(text, baseURL string) []apimap.EndpointRecord {
	claimed := make(map[string]bool)
	var records []apimap.EndpointRecord
	for _, m := range e.matchers {
		for _, rec := range m.Match(text, baseURL) {
			if claimed[rec.Key()] {
				continue
			}
			claimed[rec.Key()] = true
			records = append(records, rec)
		}
	}
	return records
}
