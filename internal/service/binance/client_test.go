package binance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const klinesBody = `[
  [1753900200000,"117000.1","117500.0","116800.0","117200.5","123.45",1753901099999,"0","0","0","0","0"],
  [1753901100000,"117200.5","117900.0","117100.0","117800.2","98.76",1753901999999,"0","0","0","0","0"]
]`

func TestSnapshotParsesKlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fapi/v1/klines" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("symbol") != "BTCUSDT" || q.Get("interval") != "15m" || q.Get("limit") != "100" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(klinesBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "15m", 100, 5*time.Second, nil)
	snap, err := c.Snapshot(context.Background(), "BTCUSDT")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.Klines) != 2 {
		t.Fatalf("klines = %d, want 2", len(snap.Klines))
	}

	first := snap.Klines[0]
	if first.Open != 117000.1 || first.High != 117500.0 || first.Low != 116800.0 {
		t.Fatalf("ohlc mismatch: %+v", first)
	}
	if first.Volume != 123.45 {
		t.Fatalf("volume = %v", first.Volume)
	}
	if !first.OpenTime.Equal(time.UnixMilli(1753900200000).UTC()) {
		t.Fatalf("open time = %v", first.OpenTime)
	}

	// current price falls back to the last close without a stream
	if snap.CurrentPrice != 117800.2 {
		t.Fatalf("current price = %v", snap.CurrentPrice)
	}
}

func TestSnapshotUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "teapot", http.StatusTeapot)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "15m", 100, 5*time.Second, nil)
	if _, err := c.Snapshot(context.Background(), "BTCUSDT"); err == nil {
		t.Fatalf("expected error on upstream failure")
	}
}

func TestSnapshotEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "15m", 100, 5*time.Second, nil)
	if _, err := c.Snapshot(context.Background(), "BTCUSDT"); err == nil {
		t.Fatalf("expected error on empty kline response")
	}
}
