package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"SigScan/internal/domain/models"
	drepo "SigScan/internal/domain/repository"
	"SigScan/internal/service/ratelimit"
)

type fakeProvider struct {
	calls []string
	fail  map[string]bool
}

func (f *fakeProvider) Snapshot(_ context.Context, symbol string) (*models.Snapshot, error) {
	f.calls = append(f.calls, symbol)
	if f.fail[symbol] {
		return nil, errors.New("upstream 502")
	}
	return &models.Snapshot{
		Symbol:       symbol,
		Klines:       []models.Kline{{Close: 100}},
		CurrentPrice: 100,
	}, nil
}

type fakeEvaluator struct {
	category models.Category
	verdict  *models.Verdict
	err      error
	panics   bool
}

func (f *fakeEvaluator) Name() models.Category { return f.category }

func (f *fakeEvaluator) Evaluate(context.Context, *models.Snapshot) (*models.Verdict, error) {
	if f.panics {
		panic("boom")
	}
	return f.verdict, f.err
}

func fireVerdict(cat models.Category) *models.Verdict {
	return &models.Verdict{
		Category:   cat,
		Direction:  models.DirectionLong,
		Entry:      100,
		StopLoss:   98,
		TakeProfit: 104,
		Confidence: 70,
	}
}

func newTestScanner(t *testing.T, symbols []string, provider drepo.SnapshotProvider, evs []drepo.Evaluator) (*Scanner, *SignalStore, *time.Time) {
	t.Helper()
	store, clock := newTestStore(t, &fakePersistence{})
	sc := NewScanner(symbols, 5*time.Minute, 0, provider, evs, store, ratelimit.NewGate(0), nopMetrics{}, testLogger(t))
	sc.now = func() time.Time { return *clock }
	return sc, store, clock
}

func TestScanAcceptsVerdicts(t *testing.T) {
	provider := &fakeProvider{}
	evs := []drepo.Evaluator{
		&fakeEvaluator{category: models.CategoryMomentumMaster, verdict: fireVerdict(models.CategoryMomentumMaster)},
		&fakeEvaluator{category: models.CategoryTrendFollowing},
	}
	sc, store, _ := newTestScanner(t, []string{"BTCUSDT", "ETHUSDT"}, provider, evs)

	accepted := sc.ScanOnce(context.Background())
	if accepted != 2 {
		t.Fatalf("accepted = %d, want 2", accepted)
	}
	if store.Size() != 2 {
		t.Fatalf("store size = %d, want 2", store.Size())
	}
	if len(provider.calls) != 2 {
		t.Fatalf("provider calls = %v", provider.calls)
	}
	if _, ok := sc.LastScan(); !ok {
		t.Fatalf("last scan not recorded")
	}
}

func TestFailuresAreIsolated(t *testing.T) {
	provider := &fakeProvider{fail: map[string]bool{"BADUSDT": true}}
	evs := []drepo.Evaluator{
		&fakeEvaluator{category: models.CategoryMomentumMaster, panics: true},
		&fakeEvaluator{category: models.CategoryBreakoutPro, err: errors.New("bad math")},
		&fakeEvaluator{category: models.CategoryTrendFollowing, verdict: fireVerdict(models.CategoryTrendFollowing)},
	}
	sc, store, _ := newTestScanner(t, []string{"BADUSDT", "BTCUSDT"}, provider, evs)

	accepted := sc.ScanOnce(context.Background())
	if accepted != 1 {
		t.Fatalf("accepted = %d, want 1", accepted)
	}
	if store.Size() != 1 {
		t.Fatalf("store size = %d, want 1", store.Size())
	}
	// both symbols were attempted despite the first failing
	if len(provider.calls) != 2 {
		t.Fatalf("provider calls = %v", provider.calls)
	}
}

func TestNoOverlappingCycles(t *testing.T) {
	sc, _, _ := newTestScanner(t, []string{"BTCUSDT"}, &fakeProvider{}, nil)
	sc.running.Store(true)
	if got := sc.ScanOnce(context.Background()); got != -1 {
		t.Fatalf("expected skip while running, got %d", got)
	}
	sc.running.Store(false)
	if got := sc.ScanOnce(context.Background()); got != 0 {
		t.Fatalf("expected clean cycle after release, got %d", got)
	}
}

func TestTwoCyclesDedupThenExpiry(t *testing.T) {
	provider := &fakeProvider{}
	evs := []drepo.Evaluator{
		&fakeEvaluator{category: models.CategoryMomentumMaster, verdict: fireVerdict(models.CategoryMomentumMaster)},
	}
	sc, store, clock := newTestScanner(t, []string{"BTCUSDT"}, provider, evs)
	ctx := context.Background()

	if accepted := sc.ScanOnce(ctx); accepted != 1 {
		t.Fatalf("first cycle accepted = %d, want 1", accepted)
	}

	// second cycle five minutes later is inside the dedup window
	*clock = clock.Add(5 * time.Minute)
	if accepted := sc.ScanOnce(ctx); accepted != 0 {
		t.Fatalf("second cycle accepted = %d, want 0", accepted)
	}
	if store.Size() != 1 {
		t.Fatalf("store size = %d, want 1", store.Size())
	}

	// an hour past creation the short-TTL signal expires and the pair reopens
	*clock = clock.Add(56 * time.Minute)
	if accepted := sc.ScanOnce(ctx); accepted != 1 {
		t.Fatalf("post-expiry cycle accepted = %d, want 1", accepted)
	}
	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("store holds %d signals, want 1", len(list))
	}
	if age := list[0].Age(*clock); age != 0 {
		t.Fatalf("surviving signal age = %v, want 0", age)
	}
}

func TestCancelledContextStopsCycle(t *testing.T) {
	provider := &fakeProvider{}
	sc, _, _ := newTestScanner(t, []string{"BTCUSDT", "ETHUSDT"}, provider, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sc.ScanOnce(ctx)
	if len(provider.calls) != 0 {
		t.Fatalf("provider called after cancel: %v", provider.calls)
	}
}
