//go:build wireinject
// +build wireinject

package di

import (
	"SigScan/pkg/config"
	"SigScan/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Metrics
		ProvideMetrics,

		// Infrastructure clients
		ProvideKafkaProducer,
		ProvideLogger,
		ProvideClickHouseClient,
		ProvideCache,

		// Repositories
		ProvidePersistence,
		ProvidePublisher,
		ProvideArchive,

		// Market data services
		ProvidePriceStream,
		ProvideSnapshotProvider,
		ProvideGate,
		ProvideEvaluators,

		// Use cases
		ProvideSignalStore,
		ProvideScanner,
		ProvideQueryService,

		// HTTP surface
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
