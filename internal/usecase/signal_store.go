package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"SigScan/internal/domain/models"
	drepo "SigScan/internal/domain/repository"
	applogger "SigScan/pkg/logger"
)

// SignalStore owns the live signal collection: acceptance with dedup,
// category TTL expiry, reads and explicit deletes. All mutations are
// mirrored to the Persistence backend; a persist failure is soft, the
// in-memory state stands and the error is reported.
type SignalStore struct {
	mu      sync.Mutex
	signals map[string]models.Signal

	persist   drepo.Persistence
	publisher drepo.Publisher // optional
	archive   drepo.Archive   // optional
	metrics   drepo.Metrics
	l         *applogger.Logger

	// injectable for tests
	now func() time.Time
}

func NewSignalStore(persist drepo.Persistence, metrics drepo.Metrics, l *applogger.Logger) *SignalStore {
	return &SignalStore{
		signals: make(map[string]models.Signal),
		persist: persist,
		metrics: metrics,
		l:       l,
		now:     time.Now,
	}
}

// SetPublisher attaches an optional downstream fan-out.
func (s *SignalStore) SetPublisher(p drepo.Publisher) { s.publisher = p }

// SetArchive attaches an optional historical archive.
func (s *SignalStore) SetArchive(a drepo.Archive) { s.archive = a }

// Restore loads the persisted collection, dropping entries already expired.
func (s *SignalStore) Restore(ctx context.Context) error {
	loaded, err := s.persist.Load(ctx)
	if err != nil {
		return err
	}
	now := s.now()

	s.mu.Lock()
	for _, sig := range loaded {
		if sig.Expired(now) {
			continue
		}
		s.signals[sig.ID] = sig
	}
	n := len(s.signals)
	s.mu.Unlock()

	s.metrics.SetStoreSize(n)
	s.l.Info("signal store restored", applogger.Int("signals", n))
	return nil
}

// Add applies a verdict for a symbol. It is rejected when a live signal for
// the same (symbol, category) is younger than the dedup window; expiry of
// the previous signal reopens the pair. Returns the accepted signal, or nil
// on rejection.
func (s *SignalStore) Add(ctx context.Context, symbol string, v *models.Verdict) (*models.Signal, error) {
	now := s.now()

	s.mu.Lock()
	s.sweepLocked(now)

	for _, existing := range s.signals {
		if existing.Symbol == symbol && existing.Category == v.Category &&
			now.Sub(existing.CreatedAt) < models.DedupWindow {
			s.mu.Unlock()
			s.metrics.RecordSignalRejected(symbol, string(v.Category))
			return nil, nil
		}
	}

	sig := models.Signal{
		ID:         models.SignalID(symbol, v.Category, now),
		Symbol:     symbol,
		Category:   v.Category,
		Direction:  v.Direction,
		Entry:      v.Entry,
		StopLoss:   v.StopLoss,
		TakeProfit: v.TakeProfit,
		Confidence: v.Confidence,
		CreatedAt:  now,
	}
	s.signals[sig.ID] = sig
	n := len(s.signals)
	persistErr := s.persistLocked(ctx)
	s.mu.Unlock()

	s.metrics.RecordSignalAccepted(symbol, string(v.Category))
	s.metrics.SetStoreSize(n)

	if !v.Consistent() {
		s.l.Warn("accepted signal with inconsistent levels",
			applogger.String("id", sig.ID),
			applogger.String("direction", string(sig.Direction)),
			applogger.Float64("entry", sig.Entry),
			applogger.Float64("stop_loss", sig.StopLoss),
			applogger.Float64("take_profit", sig.TakeProfit))
	}

	// fan-out is best effort and never blocks acceptance
	if s.publisher != nil {
		_ = s.publisher.PublishSignal(ctx, &sig)
	}
	if s.archive != nil {
		_ = s.archive.ArchiveSignal(ctx, &sig)
	}

	return &sig, persistErr
}

// List returns the live signals, newest first. Expired entries are swept
// before the read.
func (s *SignalStore) List(ctx context.Context) ([]models.Signal, error) {
	now := s.now()

	s.mu.Lock()
	removed := s.sweepLocked(now)
	var persistErr error
	if removed > 0 {
		persistErr = s.persistLocked(ctx)
	}
	out := make([]models.Signal, 0, len(s.signals))
	for _, sig := range s.signals {
		out = append(out, sig)
	}
	n := len(out)
	s.mu.Unlock()

	s.metrics.SetStoreSize(n)
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, persistErr
}

// Remove deletes a signal by id; false when absent.
func (s *SignalStore) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	_, ok := s.signals[id]
	if !ok {
		s.mu.Unlock()
		return false, nil
	}
	delete(s.signals, id)
	n := len(s.signals)
	persistErr := s.persistLocked(ctx)
	s.mu.Unlock()

	s.metrics.SetStoreSize(n)
	return true, persistErr
}

// Stats aggregates the live collection.
func (s *SignalStore) Stats(ctx context.Context) (models.Stats, error) {
	now := s.now()

	s.mu.Lock()
	removed := s.sweepLocked(now)
	var persistErr error
	if removed > 0 {
		persistErr = s.persistLocked(ctx)
	}
	st := models.Stats{ByCategory: make(map[models.Category]int)}
	for _, sig := range s.signals {
		st.Total++
		age := sig.Age(now)
		if age < time.Hour {
			st.LastHour++
		}
		if age < 24*time.Hour {
			st.LastDay++
		}
		st.ByCategory[sig.Category]++
	}
	s.mu.Unlock()

	s.metrics.SetStoreSize(st.Total)
	return st, persistErr
}

// Sweep removes expired signals; used by the periodic cleanup ticker.
func (s *SignalStore) Sweep(ctx context.Context) (int, error) {
	now := s.now()

	s.mu.Lock()
	removed := s.sweepLocked(now)
	var persistErr error
	if removed > 0 {
		persistErr = s.persistLocked(ctx)
	}
	n := len(s.signals)
	s.mu.Unlock()

	s.metrics.SetStoreSize(n)
	if removed > 0 {
		s.l.Info("expired signals swept", applogger.Int("removed", removed))
	}
	return removed, persistErr
}

// Size reports the current live count without sweeping.
func (s *SignalStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.signals)
}

// sweepLocked drops expired entries. Caller holds s.mu.
func (s *SignalStore) sweepLocked(now time.Time) int {
	removed := 0
	for id, sig := range s.signals {
		if sig.Expired(now) {
			delete(s.signals, id)
			removed++
		}
	}
	return removed
}

// persistLocked mirrors the collection to storage. Caller holds s.mu. The
// in-memory mutation stands even when the write fails.
func (s *SignalStore) persistLocked(ctx context.Context) error {
	out := make([]models.Signal, 0, len(s.signals))
	for _, sig := range s.signals {
		out = append(out, sig)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if err := s.persist.Save(ctx, out); err != nil {
		s.l.Error("persist signals failed", applogger.Error(err))
		return err
	}
	return nil
}
