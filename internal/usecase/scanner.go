package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"SigScan/internal/domain/models"
	drepo "SigScan/internal/domain/repository"
	"SigScan/internal/service/ratelimit"
	applogger "SigScan/pkg/logger"
)

// Scanner drives the periodic scan cycle: every interval it walks the
// configured universe, paced through the provider gate, fans each snapshot
// out to all evaluators concurrently and hands positive verdicts to the
// store. Cycles never overlap; a still-running cycle makes the next tick a
// no-op.
type Scanner struct {
	symbols  []string
	interval time.Duration
	initial  time.Duration

	provider   drepo.SnapshotProvider
	evaluators []drepo.Evaluator
	store      *SignalStore
	gate       *ratelimit.Gate
	metrics    drepo.Metrics
	l          *applogger.Logger

	running  atomic.Bool
	lastScan atomic.Int64 // unix millis, 0 until the first cycle

	// injectable for tests
	now func() time.Time
}

func NewScanner(
	symbols []string,
	interval, initial time.Duration,
	provider drepo.SnapshotProvider,
	evaluators []drepo.Evaluator,
	store *SignalStore,
	gate *ratelimit.Gate,
	metrics drepo.Metrics,
	l *applogger.Logger,
) *Scanner {
	return &Scanner{
		symbols:    symbols,
		interval:   interval,
		initial:    initial,
		provider:   provider,
		evaluators: evaluators,
		store:      store,
		gate:       gate,
		metrics:    metrics,
		l:          l,
		now:        time.Now,
	}
}

// Run blocks until ctx is done, scanning after the initial delay and then
// on every interval tick.
func (s *Scanner) Run(ctx context.Context) error {
	s.l.Info("scanner starting",
		applogger.Int("symbols", len(s.symbols)),
		applogger.Duration("interval", s.interval),
		applogger.Duration("initial_delay", s.initial))

	if s.initial > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.initial):
		}
	}
	s.ScanOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.ScanOnce(ctx)
		}
	}
}

// ScanOnce runs a single cycle. Returns the number of accepted signals;
// -1 when a previous cycle is still in flight.
func (s *Scanner) ScanOnce(ctx context.Context) int {
	if !s.running.CompareAndSwap(false, true) {
		s.l.Warn("scan skipped, previous cycle still running")
		return -1
	}
	defer s.running.Store(false)

	start := s.now()
	accepted := 0

	for _, symbol := range s.symbols {
		if err := s.gate.Wait(ctx); err != nil {
			break
		}
		n, err := s.scanSymbol(ctx, symbol)
		if err != nil {
			s.metrics.RecordProviderError(symbol)
			s.l.Error("symbol scan failed",
				applogger.String("symbol", symbol),
				applogger.Error(err))
			continue
		}
		accepted += n
	}

	elapsed := s.now().Sub(start)
	s.lastScan.Store(start.UnixMilli())
	s.metrics.RecordScanDuration(elapsed.Seconds())
	s.metrics.SetLastScan(float64(start.Unix()))
	s.l.Info("scan cycle completed",
		applogger.Int("symbols", len(s.symbols)),
		applogger.Int("accepted", accepted),
		applogger.Duration("elapsed", elapsed))
	return accepted
}

// scanSymbol fetches one snapshot and fans it out to every evaluator.
// Evaluator failures and panics are isolated per evaluator.
func (s *Scanner) scanSymbol(ctx context.Context, symbol string) (int, error) {
	snap, err := s.provider.Snapshot(ctx, symbol)
	if err != nil {
		return 0, err
	}

	results := make([]*evalResult, len(s.evaluators))
	var wg sync.WaitGroup
	for i, ev := range s.evaluators {
		wg.Add(1)
		go func(i int, ev drepo.Evaluator) {
			defer wg.Done()
			results[i] = s.evaluate(ctx, ev, snap)
		}(i, ev)
	}
	wg.Wait()

	accepted := 0
	for i, res := range results {
		if res.err != nil {
			cat := string(s.evaluators[i].Name())
			s.metrics.RecordEvaluatorError(cat)
			s.l.Error("evaluator failed",
				applogger.String("symbol", symbol),
				applogger.String("category", cat),
				applogger.Error(res.err))
			continue
		}
		if res.verdict == nil {
			continue
		}
		sig, err := s.store.Add(ctx, symbol, res.verdict)
		if err != nil {
			s.l.Warn("signal accepted but not persisted",
				applogger.String("symbol", symbol),
				applogger.Error(err))
		}
		if sig != nil {
			accepted++
			s.l.Info("new signal",
				applogger.String("id", sig.ID),
				applogger.String("symbol", sig.Symbol),
				applogger.String("category", string(sig.Category)),
				applogger.String("direction", string(sig.Direction)),
				applogger.Float64("confidence", sig.Confidence))
		}
	}
	return accepted, nil
}

type evalResult struct {
	verdict *models.Verdict
	err     error
}

func (s *Scanner) evaluate(ctx context.Context, ev drepo.Evaluator, snap *models.Snapshot) (res *evalResult) {
	res = &evalResult{}
	defer func() {
		if r := recover(); r != nil {
			res.verdict = nil
			res.err = fmt.Errorf("evaluator panic: %v", r)
		}
	}()
	res.verdict, res.err = ev.Evaluate(ctx, snap)
	return res
}

// LastScan returns the start time of the most recent completed cycle and
// whether one has completed yet.
func (s *Scanner) LastScan() (time.Time, bool) {
	ms := s.lastScan.Load()
	if ms == 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).UTC(), true
}

// IsScanning reports whether a cycle is in flight.
func (s *Scanner) IsScanning() bool {
	return s.running.Load()
}
