package crawl

import (
	"strings"
	"sync"

	"github.com/apimap/apimap"
	"github.com/apimap/apimap/bloom"
)

// Frontier configuration.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
)

// Frontier is an in-memory FIFO crawl queue with Bloom-filter enqueue
// deduplication. FIFO order makes the traversal breadth-first by
// construction. It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue []apimap.CrawlTarget
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{
		seen: bloom.NewFilter(frontierExpectedURLs, frontierFalsePositiveRate),
	}
}

// Push enqueues a target. Returns false if the URL has already been
// enqueued. URL fragments are stripped before deduplication, so URLs
// differing only by fragment are considered duplicates.
func (f *Frontier) Push(target apimap.CrawlTarget) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	url := stripFragment(target.URL)
	if f.seen.MayContain(url) {
		return false
	}
	f.seen.Add(url)

	target.URL = url
	f.queue = append(f.queue, target)
	return true
}

// Pop dequeues the earliest-enqueued target.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (apimap.CrawlTarget, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return apimap.CrawlTarget{}, false
	}
	target := f.queue[0]
	f.queue = f.queue[1:]
	return target, true
}

// Len returns the number of targets waiting in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the URL has ever been enqueued.
// URL fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.MayContain(stripFragment(rawURL))
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}
