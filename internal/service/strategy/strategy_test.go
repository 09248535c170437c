package strategy

import (
	"context"
	"testing"
	"time"

	"SigScan/internal/domain/models"
)

func snapshot(closes []float64, vols []float64) *models.Snapshot {
	klines := make([]models.Kline, len(closes))
	base := time.Unix(1_700_000_000, 0)
	for i, c := range closes {
		v := 1000.0
		if vols != nil {
			v = vols[i]
		}
		klines[i] = models.Kline{
			OpenTime:  base.Add(time.Duration(i) * 15 * time.Minute),
			Open:      c,
			High:      c + 0.5,
			Low:       c - 0.5,
			Close:     c,
			Volume:    v,
			CloseTime: base.Add(time.Duration(i+1) * 15 * time.Minute),
		}
	}
	return &models.Snapshot{
		Symbol:       "BTCUSDT",
		Klines:       klines,
		CurrentPrice: closes[len(closes)-1],
		AsOf:         base,
	}
}

func TestMomentumLongOnRisingSeries(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	snap := snapshot(closes, nil)

	v, err := NewMomentum().Evaluate(context.Background(), snap)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if v == nil {
		t.Fatalf("expected a verdict on rising series")
	}
	if v.Direction != models.DirectionLong {
		t.Fatalf("direction = %s, want LONG", v.Direction)
	}
	if !v.Consistent() {
		t.Fatalf("verdict not consistent: entry=%v sl=%v tp=%v", v.Entry, v.StopLoss, v.TakeProfit)
	}
	if v.Confidence < 50 || v.Confidence > 95 {
		t.Fatalf("confidence out of band: %v", v.Confidence)
	}
}

func TestBreakoutLongOnVolumeSpike(t *testing.T) {
	closes := make([]float64, 30)
	vols := make([]float64, 30)
	for i := range closes {
		closes[i] = 100
		vols[i] = 1000
	}
	closes[29] = 105
	vols[29] = 3000
	snap := snapshot(closes, vols)

	v, err := NewBreakout().Evaluate(context.Background(), snap)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if v == nil {
		t.Fatalf("expected a breakout verdict")
	}
	if v.Direction != models.DirectionLong {
		t.Fatalf("direction = %s, want LONG", v.Direction)
	}
	if !v.Consistent() {
		t.Fatalf("verdict not consistent: entry=%v sl=%v tp=%v", v.Entry, v.StopLoss, v.TakeProfit)
	}
}

func TestBreakoutQuietVolumeNoSignal(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100
	}
	closes[29] = 105
	snap := snapshot(closes, nil) // flat volume, no spike

	v, err := NewBreakout().Evaluate(context.Background(), snap)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if v != nil {
		t.Fatalf("expected no verdict without volume confirmation, got %+v", v)
	}
}

func TestTrendLongOnRisingSeries(t *testing.T) {
	closes := make([]float64, 80)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	snap := snapshot(closes, nil)

	v, err := NewTrend().Evaluate(context.Background(), snap)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if v == nil {
		t.Fatalf("expected a trend verdict on rising series")
	}
	if v.Direction != models.DirectionLong {
		t.Fatalf("direction = %s, want LONG", v.Direction)
	}
	if !v.Consistent() {
		t.Fatalf("verdict not consistent: entry=%v sl=%v tp=%v", v.Entry, v.StopLoss, v.TakeProfit)
	}
}

func TestRangeBreakLongAfterSqueeze(t *testing.T) {
	closes := make([]float64, 51)
	for i := 0; i < 40; i++ {
		if i%2 == 0 {
			closes[i] = 90
		} else {
			closes[i] = 110
		}
	}
	for i := 40; i < 50; i++ {
		closes[i] = 100
	}
	closes[50] = 102
	snap := snapshot(closes, nil)

	v, err := NewRangeBreak().Evaluate(context.Background(), snap)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if v == nil {
		t.Fatalf("expected a verdict after squeeze break")
	}
	if v.Direction != models.DirectionLong {
		t.Fatalf("direction = %s, want LONG", v.Direction)
	}
	if !v.Consistent() {
		t.Fatalf("verdict not consistent: entry=%v sl=%v tp=%v", v.Entry, v.StopLoss, v.TakeProfit)
	}
}

func TestFlatMarketProducesNothing(t *testing.T) {
	closes := make([]float64, 100)
	for i := range closes {
		closes[i] = 100
	}
	snap := snapshot(closes, nil)

	for _, ev := range All() {
		v, err := ev.Evaluate(context.Background(), snap)
		if err != nil {
			t.Fatalf("%s: evaluate: %v", ev.Name(), err)
		}
		if v != nil {
			t.Fatalf("%s: expected no verdict on flat market, got %+v", ev.Name(), v)
		}
	}
}

func TestShortSnapshotIsSafe(t *testing.T) {
	snap := snapshot([]float64{100, 101, 102}, nil)
	for _, ev := range All() {
		v, err := ev.Evaluate(context.Background(), snap)
		if err != nil {
			t.Fatalf("%s: evaluate: %v", ev.Name(), err)
		}
		if v != nil {
			t.Fatalf("%s: expected no verdict on short history", ev.Name())
		}
	}
}
