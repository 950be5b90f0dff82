package mock

import (
	"context"

	"github.com/apimap/apimap"
)

var _ apimap.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of apimap.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.WaitFn(ctx, domain)
}
