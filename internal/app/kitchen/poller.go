package kitchen

import (
	"context"
	"time"
)

// Poller invokes Refresh on a fixed interval until its context is
// cancelled. A send on Trigger forces an immediate refresh between ticks;
// the broker subscriber uses it to cut the latency of the fixed-interval
// pull without replacing it.
type Poller struct {
	Interval time.Duration
	Refresh  func(ctx context.Context)
	Trigger  <-chan struct{}
}

// Run blocks until ctx is cancelled. The ticker is always torn down so an
// abandoned board leaves no orphaned background requests behind.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Refresh(ctx)
		case <-p.Trigger:
			p.Refresh(ctx)
		}
	}
}
