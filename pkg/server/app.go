package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	drepo "SigScan/internal/domain/repository"
	"SigScan/internal/usecase"
	"SigScan/pkg/cache"
	pkgch "SigScan/pkg/clickhouse"
	"SigScan/pkg/config"
	xhttp "SigScan/pkg/http"
	pkgkafka "SigScan/pkg/kafka"
	applogger "SigScan/pkg/logger"
)

// App encapsulates the entire application lifecycle: restore the store,
// start the price stream and scanner, run the periodic sweep and the HTTP
// server, then tear everything down on SIGINT/SIGTERM.
type App struct {
	cfg     *config.Config
	l       *applogger.Logger
	store   *usecase.SignalStore
	scanner *usecase.Scanner
	stream  drepo.PriceStream
	handler xhttp.Handler

	producer *pkgkafka.Producer
	chClient *pkgch.Client
	cache    cache.Service

	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	store *usecase.SignalStore,
	scanner *usecase.Scanner,
	stream drepo.PriceStream,
	handler xhttp.Handler,
	producer *pkgkafka.Producer,
	chClient *pkgch.Client,
	c cache.Service,
) *App {
	return &App{
		cfg:      cfg,
		l:        l,
		store:    store,
		scanner:  scanner,
		stream:   stream,
		handler:  handler,
		producer: producer,
		chClient: chClient,
		cache:    c,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.store.Restore(ctx); err != nil {
		a.l.Warn("store restore failed, starting empty", applogger.Error(err))
	}

	if a.stream != nil {
		go func() {
			if err := a.stream.Start(ctx); err != nil && ctx.Err() == nil {
				a.l.Error("price stream stopped", applogger.Error(err))
			}
		}()
		a.l.Info("price stream started", applogger.Strings("symbols", a.cfg.Binance.Symbols))
	}

	go func() {
		if err := a.scanner.Run(ctx); err != nil && ctx.Err() == nil {
			a.l.Error("scanner stopped", applogger.Error(err))
		}
	}()

	go a.sweepLoop(ctx)

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)
	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}
	a.l.Info("api ready", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.l.Info("shutdown signal received")
	cancel()
	return a.shutdown()
}

// sweepLoop periodically removes expired signals regardless of read traffic.
func (a *App) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(a.cfg.Signals.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := a.store.Sweep(ctx); err != nil {
				a.l.Warn("sweep persist error", applogger.Error(err))
			}
		}
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if a.httpServer != nil {
		if err := a.httpServer.Stop(shutdownCtx); err != nil {
			a.l.Error("http shutdown error", applogger.Error(err))
		}
	}

	if a.stream != nil {
		if err := a.stream.Close(); err != nil {
			a.l.Warn("price stream close error", applogger.Error(err))
		}
	}

	// final persist of whatever survived the last sweep
	if _, err := a.store.Sweep(shutdownCtx); err != nil {
		a.l.Warn("final sweep error", applogger.Error(err))
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.l.Warn("cache close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	// flush the aggregated error logs before the producer goes away
	a.l.RemoveCollector()
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.l.Warn("kafka producer close error", applogger.Error(err))
		}
	}

	a.l.Info("shutdown complete")
	return nil
}
