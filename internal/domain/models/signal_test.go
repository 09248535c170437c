package models

import (
	"testing"
	"time"
)

func TestCategoryTTLPolicy(t *testing.T) {
	cases := []struct {
		category Category
		want     time.Duration
	}{
		{CategoryMomentumMaster, time.Hour},
		{CategoryBreakoutPro, time.Hour},
		{CategoryTrendFollowing, 24 * time.Hour},
		{CategoryBreakoutTrading, 24 * time.Hour},
		{Category("Mystery Strategy"), 24 * time.Hour},
	}
	for _, tc := range cases {
		if got := tc.category.TTL(); got != tc.want {
			t.Fatalf("%s TTL = %v, want %v", tc.category, got, tc.want)
		}
	}
	if Category("Mystery Strategy").Known() {
		t.Fatalf("unknown category reported as known")
	}
}

func TestSignalIDEmbedsPair(t *testing.T) {
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	id := SignalID("BTCUSDT", CategoryMomentumMaster, at)
	want := "BTCUSDT_Momentum_Master_1785585600000"
	if id != want {
		t.Fatalf("id = %q, want %q", id, want)
	}

	// same instant, different pair, different id
	other := SignalID("ETHUSDT", CategoryMomentumMaster, at)
	if other == id {
		t.Fatalf("ids collide across symbols")
	}
}

func TestExpiryAndFreshnessBoundaries(t *testing.T) {
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	sig := &Signal{Category: CategoryMomentumMaster, CreatedAt: at}

	if sig.Expired(at.Add(time.Hour - time.Millisecond)) {
		t.Fatalf("expired just before TTL")
	}
	if !sig.Expired(at.Add(time.Hour)) {
		t.Fatalf("not expired exactly at TTL")
	}
	if !sig.Fresh(at.Add(FreshWindow - time.Millisecond)) {
		t.Fatalf("not fresh just inside window")
	}
	if sig.Fresh(at.Add(FreshWindow)) {
		t.Fatalf("fresh exactly at window end")
	}
	if got := sig.ExpiresIn(at.Add(30 * time.Minute)); got != 30*time.Minute {
		t.Fatalf("expires in = %v, want 30m", got)
	}
}

func TestVerdictConsistency(t *testing.T) {
	long := &Verdict{Direction: DirectionLong, Entry: 100, StopLoss: 98, TakeProfit: 104}
	if !long.Consistent() {
		t.Fatalf("valid long reported inconsistent")
	}
	short := &Verdict{Direction: DirectionShort, Entry: 100, StopLoss: 102, TakeProfit: 96}
	if !short.Consistent() {
		t.Fatalf("valid short reported inconsistent")
	}
	inverted := &Verdict{Direction: DirectionLong, Entry: 100, StopLoss: 104, TakeProfit: 98}
	if inverted.Consistent() {
		t.Fatalf("inverted long reported consistent")
	}
}
