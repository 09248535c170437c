package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
environment: test
binance:
  symbols: [BTCUSDT]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Binance.Interval != "15m" || cfg.Binance.KlineLimit != 100 {
		t.Fatalf("binance defaults: %+v", cfg.Binance)
	}
	if cfg.Scanner.Interval != 5*time.Minute {
		t.Fatalf("scan interval = %v", cfg.Scanner.Interval)
	}
	if cfg.Scanner.Pace != 100*time.Millisecond {
		t.Fatalf("pace = %v", cfg.Scanner.Pace)
	}
	if cfg.Signals.SweepInterval != time.Hour {
		t.Fatalf("sweep interval = %v", cfg.Signals.SweepInterval)
	}
	if cfg.Cache.Backend != "memory" {
		t.Fatalf("cache backend = %q", cfg.Cache.Backend)
	}
}

func TestLoadRejectsEmptySymbols(t *testing.T) {
	path := writeConfig(t, `
environment: test
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for empty symbols")
	}
}

func TestLoadRejectsPublishWithoutBrokers(t *testing.T) {
	path := writeConfig(t, `
environment: test
binance:
  symbols: [BTCUSDT]
publish:
  enabled: true
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for enabled publish without brokers")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
environment: test
binance:
  symbols: [BTCUSDT]
`)
	t.Setenv("SYMBOLS", "ETHUSDT,SOLUSDT")
	t.Setenv("SIGNALS_DATA_FILE", "/tmp/override.json")

	cfg, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Binance.Symbols) != 2 || cfg.Binance.Symbols[0] != "ETHUSDT" {
		t.Fatalf("symbols override failed: %v", cfg.Binance.Symbols)
	}
	if cfg.Signals.DataFile != "/tmp/override.json" {
		t.Fatalf("data file override failed: %q", cfg.Signals.DataFile)
	}
}
