package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"SigScan/internal/domain/models"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "signals.json")
	fs := NewFileStore(path, nil)
	ctx := context.Background()

	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	in := []models.Signal{
		{
			ID:         models.SignalID("BTCUSDT", models.CategoryMomentumMaster, at),
			Symbol:     "BTCUSDT",
			Category:   models.CategoryMomentumMaster,
			Direction:  models.DirectionLong,
			Entry:      50000,
			StopLoss:   49250,
			TakeProfit: 51500,
			Confidence: 80,
			CreatedAt:  at,
		},
	}

	if err := fs.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := fs.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("loaded %d signals, want 1", len(out))
	}
	if out[0].ID != in[0].ID || out[0].Category != in[0].Category {
		t.Fatalf("round trip mismatch: %+v", out[0])
	}
	if !out[0].CreatedAt.Equal(at) {
		t.Fatalf("created_at = %v, want %v", out[0].CreatedAt, at)
	}
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "nope.json"), nil)
	out, err := fs.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty store, got %d", len(out))
	}
}

func TestFileStoreCorruptFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signals.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	fs := NewFileStore(path, nil)
	out, err := fs.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty store on corruption, got %d", len(out))
	}
}

func TestFileStoreSaveNilWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signals.json")
	fs := NewFileStore(path, nil)
	ctx := context.Background()

	if err := fs.Save(ctx, nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "[]" {
		t.Fatalf("expected empty array, got %q", data)
	}
}
