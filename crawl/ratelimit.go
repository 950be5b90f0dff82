package crawl

import (
	"context"
	"sync"

	"github.com/apimap/apimap"
	"golang.org/x/time/rate"
)

// Compile-time interface verification.
var _ apimap.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter rate-limits fetches per domain using token buckets. Each
// domain gets its own limiter with a burst of 1, so requests to one
// documentation host are spaced out while other hosts are unaffected.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per
// second to each domain.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
