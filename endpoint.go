package apimap

import "strings"

// Provenance identifies which heuristic matcher produced an endpoint
// detection. Retained for debuggability; never used for ranking.
type Provenance string

// Provenance tags for the built-in matchers.
const (
	ProvenanceMethodPath  Provenance = "method_path"
	ProvenanceFullURL     Provenance = "full_url"
	ProvenanceCodeBlock   Provenance = "code_block"
	ProvenanceCurlCommand Provenance = "curl_command"
	ProvenanceAPIPath     Provenance = "api_path_pattern"
)

// EndpointRecord represents one discovered API endpoint. Records are
// identified by (Method, Path); repeated detections of the same key across
// pages collapse to the first-seen record.
type EndpointRecord struct {
	Method  string     `json:"method"`
	Path    string     `json:"path"`
	FullURL string     `json:"fullUrl"`
	Source  Provenance `json:"source"`
}

// Validate returns an error if the record violates the path/method
// invariants: the method must be non-empty and the path must start with
// "/" and name more than the bare root.
func (e *EndpointRecord) Validate() error {
	if e.Method == "" {
		return Errorf(EINVALID, "endpoint method required")
	}
	if len(e.Path) < 2 || !strings.HasPrefix(e.Path, "/") {
		return Errorf(EINVALID, "endpoint path must start with %q and have length > 1", "/")
	}
	return nil
}

// Key returns the deduplication identity of the record.
func (e *EndpointRecord) Key() string {
	return e.Method + ":" + e.Path
}

// EndpointAnalysis is an EndpointRecord enriched with a synthesized
// description and the path parameter names found in its path. Derived,
// read-only, produced once per crawl result.
type EndpointAnalysis struct {
	EndpointRecord

	// Description is a short natural-language summary, at most 280
	// characters, located in the crawled text near the path's occurrence
	// or synthesized from a method-verb template.
	Description string `json:"description"`

	// Params holds path parameter names in either {name} or :name form.
	Params []string `json:"params"`
}

// Matcher recovers endpoint detections from unstructured page text.
// Matchers are independent and overlap-tolerant: no single pattern is
// reliable on documentation prose, so misses by one matcher are expected
// to be recovered by another.
type Matcher interface {
	// Match scans text for (method, path) pairs. Records without an
	// explicit URL in the matched text have FullURL resolved against
	// baseURL. Matching never fails; unmatched text produces nothing.
	Match(text, baseURL string) []EndpointRecord

	// Name returns the provenance tag this matcher stamps on its records.
	Name() Provenance
}

// EndpointExtractor applies a fixed, ordered set of matchers to one page's
// text and unions their output with per-page key deduplication (the first
// matcher to claim a key wins for that page).
type EndpointExtractor interface {
	Extract(text, baseURL string) []EndpointRecord
}
