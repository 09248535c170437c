package repository

import (
	"context"

	"SigScan/internal/domain/models"
)

// SnapshotProvider fetches a bounded recent market view for one symbol.
// Failures are per-symbol and never affect other symbols.
type SnapshotProvider interface {
	Snapshot(ctx context.Context, symbol string) (*models.Snapshot, error)
}

// Evaluator is a pluggable strategy check. A nil verdict with nil error means
// no opportunity. Evaluators are stateless and registered at startup.
type Evaluator interface {
	Name() models.Category
	Evaluate(ctx context.Context, snap *models.Snapshot) (*models.Verdict, error)
}

// Persistence mirrors the full signal collection to durable storage.
type Persistence interface {
	Load(ctx context.Context) ([]models.Signal, error)
	Save(ctx context.Context, signals []models.Signal) error
}

// Publisher fans accepted signals out to downstream consumers. Best-effort:
// a publish failure never blocks acceptance.
type Publisher interface {
	PublishSignal(ctx context.Context, s *models.Signal) error
	Close() error
}

// Archive appends accepted signals to a historical store.
type Archive interface {
	ArchiveSignal(ctx context.Context, s *models.Signal) error
	Close() error
}

// PriceStream maintains the latest streamed price per symbol.
type PriceStream interface {
	Start(ctx context.Context) error
	LastPrice(symbol string) (float64, bool)
	IsConnected() bool
	Close() error
}

// Metrics records scanner and store observability counters.
type Metrics interface {
	RecordSignalAccepted(symbol string, category string)
	RecordSignalRejected(symbol string, category string)
	RecordProviderError(symbol string)
	RecordEvaluatorError(category string)
	RecordScanDuration(seconds float64)
	SetStoreSize(n int)
	SetLastScan(unixSeconds float64)
}
