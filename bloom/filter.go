// Package bloom provides probabilistic URL membership tracking for the
// crawl frontier's enqueue-time deduplication.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter tracks URLs that have been enqueued. False positives are
// possible (a never-seen URL may be reported as seen and skipped, costing
// recall, not correctness); false negatives are not.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{f: bloom.NewWithEstimates(n, fpRate)}
}

// Add records a URL.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// MayContain reports whether the URL might have been added.
func (f *Filter) MayContain(url string) bool {
	return f.f.TestString(url)
}

// EstimatedCount returns the approximate number of URLs added.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
