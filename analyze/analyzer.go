// Package analyze synthesizes best-effort natural-language descriptions
// for discovered endpoints by locating relevant text near each path's
// occurrence in the crawl corpus, falling back to a method-verb template
// when the corpus has nothing to offer.
package analyze

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/apimap/apimap"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel endpoint analysis when the caller
// doesn't choose a limit.
const DefaultConcurrency = 4

const (
	// descriptionMaxLen caps synthesized descriptions.
	descriptionMaxLen = 280

	// windowBefore and windowAfter bound the corpus excerpt taken around
	// a path occurrence.
	windowBefore = 300
	windowAfter  = 500
)

var (
	braceParamRe  = regexp.MustCompile(`\{([^}]+)\}`)
	colonParamRe  = regexp.MustCompile(`:([A-Za-z0-9_]+)`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	sentenceEndRe = regexp.MustCompile(`[.!?]\s+`)
)

// methodVerbs supplies the verb for template descriptions.
var methodVerbs = map[string]string{
	"GET":    "retrieves",
	"POST":   "creates",
	"PUT":    "replaces",
	"PATCH":  "updates",
	"DELETE": "deletes",
}

// Analyzer derives EndpointAnalysis values from endpoint records and the
// crawl corpus. Analysis is read-only over its inputs and never fails per
// endpoint; the only error source is context cancellation.
type Analyzer struct {
	// Concurrency bounds the number of endpoints analyzed in parallel.
	// Values < 1 mean DefaultConcurrency. Output order always matches
	// input order regardless of the limit.
	Concurrency int
}

// Analyze describes each endpoint using the corpus. The result is in the
// same order as endpoints.
func (a *Analyzer) Analyze(ctx context.Context, endpoints []*apimap.EndpointRecord, corpus string) ([]*apimap.EndpointAnalysis, error) {
	concurrency := a.Concurrency
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}

	analyses := make([]*apimap.EndpointAnalysis, len(endpoints))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, ep := range endpoints {
		i, ep := i, ep
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			analyses[i] = describe(ep, corpus)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return analyses, nil
}

// describe builds one analysis: path params, then a corpus-located
// description with template fallback.
func describe(ep *apimap.EndpointRecord, corpus string) *apimap.EndpointAnalysis {
	params := pathParams(ep.Path)

	desc := locateDescription(ep.Method, ep.Path, corpus)
	if desc == "" {
		desc = templateDescription(ep.Method, ep.Path, params)
	}

	return &apimap.EndpointAnalysis{
		EndpointRecord: *ep,
		Description:    desc,
		Params:         params,
	}
}

// pathParams extracts path parameter names. The {name} form is checked
// first; the :name form only applies when no braces matched.
func pathParams(path string) []string {
	var params []string
	for _, m := range braceParamRe.FindAllStringSubmatch(path, -1) {
		params = append(params, m[1])
	}
	if len(params) == 0 {
		for _, m := range colonParamRe.FindAllStringSubmatch(path, -1) {
			params = append(params, m[1])
		}
	}
	return params
}

// locateDescription finds the first case-insensitive occurrence of the
// path (falling back to its last segment) in the corpus, takes a window
// around it, and prefers a sentence mentioning the path tail or the
// method. Returns "" when the corpus never mentions the path.
func locateDescription(method, path, corpus string) string {
	tail := lastSegment(path)

	pos := indexFold(corpus, path)
	if pos < 0 {
		pos = indexFold(corpus, tail)
	}
	if pos < 0 {
		return ""
	}

	start := max(0, pos-windowBefore)
	end := min(len(corpus), pos+windowAfter)
	window := corpus[start:end]

	desc := pickSentence(window, tail, method)
	if desc == "" {
		desc = strings.TrimSpace(window)
	}

	desc = strings.TrimSpace(whitespaceRe.ReplaceAllString(desc, " "))
	return truncate(desc, descriptionMaxLen)
}

// pickSentence returns a sentence from the window that mentions the path
// tail or the method, preferring the first one longer than 20 characters.
func pickSentence(window, tail, method string) string {
	var picked string
	for _, s := range splitSentences(window) {
		if strings.Contains(strings.ToLower(s), strings.ToLower(tail)) ||
			strings.Contains(strings.ToUpper(s), method) {
			picked = strings.TrimSpace(s)
			if len(picked) > 20 {
				break
			}
		}
	}
	return picked
}

// splitSentences splits on sentence-ending punctuation followed by
// whitespace, keeping the punctuation with the preceding sentence.
func splitSentences(window string) []string {
	var sentences []string
	prev := 0
	for _, loc := range sentenceEndRe.FindAllStringIndex(window, -1) {
		sentences = append(sentences, window[prev:loc[0]+1])
		prev = loc[1]
	}
	return append(sentences, window[prev:])
}

// templateDescription builds the generic fallback description from the
// method verb mapping plus a path-parameter hint when parameters exist.
func templateDescription(method, path string, params []string) string {
	action, ok := methodVerbs[method]
	if !ok {
		action = "operates on"
	}
	desc := fmt.Sprintf("%s %s %s the resource.", method, path, action)
	if len(params) > 0 {
		desc += fmt.Sprintf(" Path params: %s. Replace each placeholder with the corresponding value (e.g., IDs, keys).",
			strings.Join(params, ", "))
	}
	return desc
}

// indexFold is a case-insensitive strings.Index reporting an offset into
// the original string. Searching a ToLower copy is not equivalent: some
// runes change byte length when lowercased, skewing every offset after
// them.
func indexFold(s, substr string) int {
	loc := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(substr)).FindStringIndex(s)
	if loc == nil {
		return -1
	}
	return loc[0]
}

func lastSegment(path string) string {
	parts := strings.Split(path, "/")
	return parts[len(parts)-1]
}

// truncate caps s at maxLen characters, marking the cut with an ellipsis.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
