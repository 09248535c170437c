package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"SigScan/internal/domain/models"
	pkgch "SigScan/pkg/clickhouse"
	applogger "SigScan/pkg/logger"
)

// archiveSchema is ensured at startup; idempotent.
var archiveSchema = []string{
	`CREATE DATABASE IF NOT EXISTS sigscan`,
	`CREATE TABLE IF NOT EXISTS sigscan.signals (
        id          String,
        symbol      LowCardinality(String),
        category    LowCardinality(String),
        direction   LowCardinality(String),
        entry       Float64,
        stop_loss   Float64,
        take_profit Float64,
        confidence  Float64,
        created_at  DateTime64(3, 'UTC')
    ) ENGINE = MergeTree()
    PARTITION BY toYYYYMM(created_at)
    ORDER BY (symbol, created_at)`,
}

// CHArchive appends accepted signals to ClickHouse for historical analysis.
// The live store never reads from it.
type CHArchive struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewCHArchive(ctx context.Context, ch *pkgch.Client, l *applogger.Logger) (*CHArchive, error) {
	if err := ch.InitSchema(ctx, archiveSchema); err != nil {
		return nil, fmt.Errorf("archive schema: %w", err)
	}
	return &CHArchive{db: ch.DB(), l: l}, nil
}

// ArchiveSignal inserts one signal row. Best effort; the caller treats the
// error as non-fatal.
func (a *CHArchive) ArchiveSignal(ctx context.Context, sig *models.Signal) error {
	start := time.Now()
	const q = `
        INSERT INTO sigscan.signals
            (id, symbol, category, direction, entry, stop_loss, take_profit, confidence, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := a.db.ExecContext(ctx, q,
		sig.ID, sig.Symbol, string(sig.Category), string(sig.Direction),
		sig.Entry, sig.StopLoss, sig.TakeProfit, sig.Confidence, sig.CreatedAt)
	if err != nil {
		if a.l != nil {
			a.l.Error("clickhouse archive insert error",
				applogger.String("id", sig.ID),
				applogger.String("symbol", sig.Symbol),
				applogger.Error(err))
		}
		return fmt.Errorf("archive signal: %w", err)
	}
	if a.l != nil {
		a.l.Debug("clickhouse archive insert ok",
			applogger.String("id", sig.ID),
			applogger.Duration("duration_ms", time.Since(start)))
	}
	return nil
}

// Close is a no-op; the shared client owns the pool.
func (a *CHArchive) Close() error { return nil }
