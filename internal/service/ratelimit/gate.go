package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Gate is a fixed-interval rate gate: successive Wait calls are spaced at
// least one interval apart. It protects external providers from burst
// traffic; the scanner passes through it once per symbol.
type Gate struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time

	// injectable for tests
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func NewGate(interval time.Duration) *Gate {
	return &Gate{
		interval: interval,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// Wait blocks until the gate opens or ctx is done.
func (g *Gate) Wait(ctx context.Context) error {
	g.mu.Lock()
	now := g.now()
	delay := g.next.Sub(now)
	if delay < 0 {
		delay = 0
	}
	g.next = now.Add(delay + g.interval)
	g.mu.Unlock()

	if delay == 0 {
		return ctx.Err()
	}
	return g.sleep(ctx, delay)
}

// Interval returns the configured spacing.
func (g *Gate) Interval() time.Duration {
	return g.interval
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
