package di

import (
	"context"
	"fmt"
	"time"

	"SigScan/internal/domain/repository"
	"SigScan/internal/handler/api"
	internalrepo "SigScan/internal/repository"
	"SigScan/internal/service/binance"
	"SigScan/internal/service/ratelimit"
	"SigScan/internal/service/strategy"
	"SigScan/internal/usecase"
	"SigScan/pkg/cache"
	pkgch "SigScan/pkg/clickhouse"
	"SigScan/pkg/config"
	pkgkafka "SigScan/pkg/kafka"
	applogger "SigScan/pkg/logger"
	"SigScan/pkg/metrics"
	"SigScan/pkg/server"
)

// ProvideKafkaProducer creates a Kafka producer, or nil when publishing is
// disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Publish.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Publish.Brokers),
		pkgkafka.WithCompression(cfg.Publish.Compression),
		pkgkafka.WithRequiredAcks(cfg.Publish.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Publish.MaxAttempts),
		pkgkafka.WithTimeouts(cfg.Publish.WriteTimeout, cfg.Publish.ReadTimeout),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideLogger creates the application logger. When publishing is enabled
// and a log topic is configured, error logs are aggregated and flushed to it.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	if producer != nil && cfg.Publish.LogTopic != "" {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          cfg.Publish.LogTopic,
			Publisher:      producer,
		})
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when archiving
// is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.Archive.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.Archive.Host),
		pkgch.WithPort(cfg.Archive.Port),
		pkgch.WithDatabase(cfg.Archive.Database),
		pkgch.WithCredentials(cfg.Archive.User, cfg.Archive.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.Archive.UseHTTP),
		pkgch.WithTimeouts(cfg.Archive.DialTimeout, cfg.Archive.ReadTimeout, cfg.Archive.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideArchive creates the signal archive, or nil when disabled.
func ProvideArchive(chClient *pkgch.Client, l *applogger.Logger) (repository.Archive, error) {
	if chClient == nil {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	archive, err := internalrepo.NewCHArchive(ctx, chClient, l)
	if err != nil {
		return nil, err
	}
	return archive, nil
}

// ProvidePublisher creates the signal fan-out, or nil when disabled.
func ProvidePublisher(producer *pkgkafka.Producer, cfg *config.Config, l *applogger.Logger) repository.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Publish.Topic, l)
}

// ProvidePriceStream creates the Binance WebSocket stream, or nil when
// disabled. The scanner falls back to kline closes without it.
func ProvidePriceStream(cfg *config.Config, l *applogger.Logger) repository.PriceStream {
	if !cfg.Binance.StreamEnabled {
		return nil
	}
	return binance.NewStream(
		cfg.Binance.WebSocketURL,
		cfg.Binance.Symbols,
		cfg.Binance.ReconnectDelay,
		l,
	)
}

// ProvideSnapshotProvider creates the Binance REST kline provider.
func ProvideSnapshotProvider(cfg *config.Config, stream repository.PriceStream) repository.SnapshotProvider {
	return binance.NewClient(
		cfg.Binance.BaseURL,
		cfg.Binance.Interval,
		cfg.Binance.KlineLimit,
		cfg.Binance.RequestTimeout,
		stream,
	)
}

// ProvideGate creates the provider pacing gate.
func ProvideGate(cfg *config.Config) *ratelimit.Gate {
	return ratelimit.NewGate(cfg.Scanner.Pace)
}

// ProvideEvaluators returns the built-in strategy set.
func ProvideEvaluators() []repository.Evaluator {
	return strategy.All()
}

// ProvidePersistence creates the flat-file signal persistence.
func ProvidePersistence(cfg *config.Config, l *applogger.Logger) repository.Persistence {
	return internalrepo.NewFileStore(cfg.Signals.DataFile, l)
}

// ProvideSignalStore creates the live signal store with optional fan-out.
func ProvideSignalStore(
	persist repository.Persistence,
	m repository.Metrics,
	l *applogger.Logger,
	pub repository.Publisher,
	arch repository.Archive,
) *usecase.SignalStore {
	store := usecase.NewSignalStore(persist, m, l)
	if pub != nil {
		store.SetPublisher(pub)
	}
	if arch != nil {
		store.SetArchive(arch)
	}
	return store
}

// ProvideScanner creates the scan orchestrator.
func ProvideScanner(
	cfg *config.Config,
	provider repository.SnapshotProvider,
	evaluators []repository.Evaluator,
	store *usecase.SignalStore,
	gate *ratelimit.Gate,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.Scanner {
	return usecase.NewScanner(
		cfg.Binance.Symbols,
		cfg.Scanner.Interval,
		cfg.Scanner.InitialDelay,
		provider,
		evaluators,
		store,
		gate,
		m,
		l,
	)
}

// ProvideCache creates the API response cache backend.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if cfg.Cache.Backend == "redis" {
		c, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Cache.Redis.Host),
			cache.WithRedisPort(cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
			cache.WithRedisPrefix("sigscan"),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return c, nil
	}
	return cache.NewMemoryCache(
		cache.WithMemoryMaxSize(1024),
		cache.WithMemoryCleanup(time.Minute),
	), nil
}

// ProvideQueryService creates the read-side service.
func ProvideQueryService(
	store *usecase.SignalStore,
	scanner *usecase.Scanner,
	c cache.Service,
	cfg *config.Config,
	l *applogger.Logger,
) *usecase.QueryService {
	return usecase.NewQueryService(store, scanner, c, cfg.Cache.TTL, l)
}

// ProvideHandler creates the Echo API handler.
func ProvideHandler(
	l *applogger.Logger,
	query *usecase.QueryService,
	scanner *usecase.Scanner,
	stream repository.PriceStream,
) *api.SignalsEchoHandler {
	return api.NewSignalsEchoHandler(l, query, scanner, stream)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	store *usecase.SignalStore,
	scanner *usecase.Scanner,
	stream repository.PriceStream,
	handler *api.SignalsEchoHandler,
	producer *pkgkafka.Producer,
	chClient *pkgch.Client,
	c cache.Service,
) *server.App {
	return server.New(cfg, l, store, scanner, stream, handler, producer, chClient, c)
}
