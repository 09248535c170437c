package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestGateFirstPassIsFree(t *testing.T) {
	g := NewGate(100 * time.Millisecond)
	slept := time.Duration(0)
	g.now = func() time.Time { return time.Unix(0, 0) }
	g.sleep = func(_ context.Context, d time.Duration) error {
		slept += d
		return nil
	}

	if err := g.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if slept != 0 {
		t.Fatalf("first pass slept %v, want 0", slept)
	}
}

func TestGateSpacesCalls(t *testing.T) {
	g := NewGate(100 * time.Millisecond)
	clock := time.Unix(0, 0)
	var delays []time.Duration
	g.now = func() time.Time { return clock }
	g.sleep = func(_ context.Context, d time.Duration) error {
		delays = append(delays, d)
		clock = clock.Add(d)
		return nil
	}

	for i := 0; i < 3; i++ {
		if err := g.Wait(context.Background()); err != nil {
			t.Fatalf("wait %d: %v", i, err)
		}
	}

	// first call free, subsequent calls spaced by one interval
	if len(delays) != 2 {
		t.Fatalf("expected 2 sleeps, got %d", len(delays))
	}
	for i, d := range delays {
		if d != 100*time.Millisecond {
			t.Fatalf("sleep %d = %v, want 100ms", i, d)
		}
	}
}

func TestGateCancelled(t *testing.T) {
	g := NewGate(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	if err := g.Wait(ctx); err != nil {
		t.Fatalf("first wait: %v", err)
	}
	cancel()
	if err := g.Wait(ctx); err == nil {
		t.Fatalf("expected context error after cancel")
	}
}
