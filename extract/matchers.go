// Package extract implements the heuristic endpoint matchers and the
// extractor that unions their output per page.
//
// The matchers are deliberately independent and overlap-tolerant:
// documentation prose is unstructured, so no single pattern is reliable,
// and misses by one matcher are expected to be recovered by another.
// False positives are accepted as a cost of recall; no matcher performs
// semantic validation of whether a matched path is truly an API route.
package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/apimap/apimap"
)

// Compile-time interface verification.
var (
	_ apimap.Matcher = (*MethodPathMatcher)(nil)
	_ apimap.Matcher = (*FullURLMatcher)(nil)
	_ apimap.Matcher = (*CodeBlockMatcher)(nil)
	_ apimap.Matcher = (*CurlMatcher)(nil)
	_ apimap.Matcher = (*APIPathMatcher)(nil)
)

var (
	methodPathRe = regexp.MustCompile(`(?i)(GET|POST|PUT|DELETE|PATCH|HEAD|OPTIONS)\s+(/[^\s)<>"]+)`)
	fullURLRe    = regexp.MustCompile(`(?i)https?://[^/\s]+(/[^\s)<>"]+)`)
	codeBlockRe  = regexp.MustCompile("`(/[^`]+)`")
	curlRe       = regexp.MustCompile(`(?i)curl\s+(?:-X\s+(\w+)\s+)?["']?https?://[^/\s]+(/[^\s"']+)`)
	apiPathRe    = regexp.MustCompile(`(?i)(/v\d+/[^\s)<>"]+|/api/[^\s)<>"]+)`)

	// bracketRe strips characters that commonly trail paths in prose,
	// e.g. "GET /v1/users)" or "(see GET /v1/users>".
	bracketRe = regexp.MustCompile(`[)\]}<>]`)
)

// contextMethods is the preference order when inferring a method from
// surrounding text. GET is the default when none are present.
var contextMethods = [...]string{"POST", "PUT", "DELETE", "PATCH"}

// methodNear scans text[lo:hi] for a method token, clamping the window to
// the text bounds.
func methodNear(text string, lo, hi int) string {
	if lo < 0 {
		lo = 0
	}
	if hi > len(text) {
		hi = len(text)
	}
	if lo >= hi {
		return "GET"
	}
	window := strings.ToUpper(text[lo:hi])
	for _, m := range contextMethods {
		if strings.Contains(window, m) {
			return m
		}
	}
	return "GET"
}

// validPath reports whether a path passes the uniform validity filter:
// length > 1 and a leading "/".
func validPath(path string) bool {
	return len(path) > 1 && strings.HasPrefix(path, "/")
}

// resolveAgainst resolves path against baseURL. If either side fails to
// parse the bare path is returned unchanged.
func resolveAgainst(baseURL, path string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return path
	}
	ref, err := url.Parse(path)
	if err != nil {
		return path
	}
	return base.ResolveReference(ref).String()
}

// MethodPathMatcher matches a literal HTTP method token immediately
// followed by a path, e.g. "GET /api/v1/files".
type MethodPathMatcher struct{}

// Name returns the matcher's provenance tag.
func (m *MethodPathMatcher) Name() apimap.Provenance { return apimap.ProvenanceMethodPath }

// Match scans text for method-then-path occurrences. The method is always
// the matched token, upper-cased; no context inference is applied.
func (m *MethodPathMatcher) Match(text, baseURL string) []apimap.EndpointRecord {
	var records []apimap.EndpointRecord
	for _, sub := range methodPathRe.FindAllStringSubmatch(text, -1) {
		method := strings.ToUpper(sub[1])
		path := bracketRe.ReplaceAllString(strings.TrimSpace(sub[2]), "")
		if !validPath(path) {
			continue
		}
		records = append(records, apimap.EndpointRecord{
			Method:  method,
			Path:    path,
			FullURL: resolveAgainst(baseURL, path),
			Source:  m.Name(),
		})
	}
	return records
}

// FullURLMatcher matches absolute http(s) URLs, e.g.
// "https://api.figma.com/v1/files". The method is inferred from the 50
// characters preceding the match.
type FullURLMatcher struct{}

// Name returns the matcher's provenance tag.
func (m *FullURLMatcher) Name() apimap.Provenance { return apimap.ProvenanceFullURL }

// Match scans text for full URLs. The matched URL itself becomes FullURL.
func (m *FullURLMatcher) Match(text, baseURL string) []apimap.EndpointRecord {
	var records []apimap.EndpointRecord
	for _, idx := range fullURLRe.FindAllStringSubmatchIndex(text, -1) {
		fullURL := text[idx[0]:idx[1]]
		path := text[idx[2]:idx[3]]
		if len(path) < 2 {
			continue
		}
		records = append(records, apimap.EndpointRecord{
			Method:  methodNear(text, idx[0]-50, idx[0]),
			Path:    path,
			FullURL: fullURL,
			Source:  m.Name(),
		})
	}
	return records
}

// CodeBlockMatcher matches backtick-quoted paths, e.g. "`/v1/users/{id}`".
// The method is inferred from 100 characters of context on each side.
type CodeBlockMatcher struct{}

// Name returns the matcher's provenance tag.
func (m *CodeBlockMatcher) Name() apimap.Provenance { return apimap.ProvenanceCodeBlock }

// Match scans text for backtick-quoted slash-prefixed paths.
func (m *CodeBlockMatcher) Match(text, baseURL string) []apimap.EndpointRecord {
	var records []apimap.EndpointRecord
	for _, idx := range codeBlockRe.FindAllStringSubmatchIndex(text, -1) {
		path := strings.TrimSpace(text[idx[2]:idx[3]])
		if !validPath(path) {
			continue
		}
		records = append(records, apimap.EndpointRecord{
			Method:  methodNear(text, idx[0]-100, idx[1]+100),
			Path:    path,
			FullURL: resolveAgainst(baseURL, path),
			Source:  m.Name(),
		})
	}
	return records
}

// CurlMatcher matches curl command invocations, e.g.
// `curl -X POST "https://api.example.com/v1/items"`. The method is the
// -X flag value when present, GET otherwise.
type CurlMatcher struct{}

// Name returns the matcher's provenance tag.
func (m *CurlMatcher) Name() apimap.Provenance { return apimap.ProvenanceCurlCommand }

// Match scans text for curl invocations with an optional -X method flag.
func (m *CurlMatcher) Match(text, baseURL string) []apimap.EndpointRecord {
	var records []apimap.EndpointRecord
	for _, sub := range curlRe.FindAllStringSubmatch(text, -1) {
		method := "GET"
		if sub[1] != "" {
			method = strings.ToUpper(sub[1])
		}
		path := strings.TrimSpace(sub[2])
		if len(path) < 2 {
			continue
		}
		records = append(records, apimap.EndpointRecord{
			Method:  method,
			Path:    path,
			FullURL: resolveAgainst(baseURL, path),
			Source:  m.Name(),
		})
	}
	return records
}

// APIPathMatcher matches path segments shaped like API routes ("/v<n>/..."
// or "/api/..."), independent of any surrounding method keyword. The
// method is inferred from the 100 characters preceding the match.
type APIPathMatcher struct{}

// Name returns the matcher's provenance tag.
func (m *APIPathMatcher) Name() apimap.Provenance { return apimap.ProvenanceAPIPath }

// Match scans text for versioned or /api/ prefixed paths.
func (m *APIPathMatcher) Match(text, baseURL string) []apimap.EndpointRecord {
	var records []apimap.EndpointRecord
	for _, idx := range apiPathRe.FindAllStringSubmatchIndex(text, -1) {
		path := strings.TrimSpace(text[idx[2]:idx[3]])
		if len(path) < 2 {
			continue
		}
		records = append(records, apimap.EndpointRecord{
			Method:  methodNear(text, idx[0]-100, idx[0]),
			Path:    path,
			FullURL: resolveAgainst(baseURL, path),
			Source:  m.Name(),
		})
	}
	return records
}
