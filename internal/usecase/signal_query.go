package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"SigScan/internal/domain/models"
	"SigScan/pkg/cache"
	applogger "SigScan/pkg/logger"
	"SigScan/pkg/util"
)

const listCachePrefix = "signals:list"

// QueryService is the read side of the store: filtered list views with the
// presentation fields, aggregate stats and delete-by-id. List responses are
// cached for a short TTL; any write invalidates the cached views.
type QueryService struct {
	store    *SignalStore
	scanner  *Scanner
	cache    cache.Service
	cacheTTL time.Duration
	l        *applogger.Logger

	// injectable for tests
	now func() time.Time
}

func NewQueryService(store *SignalStore, scanner *Scanner, c cache.Service, cacheTTL time.Duration, l *applogger.Logger) *QueryService {
	return &QueryService{
		store:    store,
		scanner:  scanner,
		cache:    c,
		cacheTTL: cacheTTL,
		l:        l,
		now:      time.Now,
	}
}

// List returns the live signals matching the request, newest first, with
// read-time presentation fields attached.
func (q *QueryService) List(ctx context.Context, req *models.ListSignalsRequest) ([]models.SignalView, error) {
	key := fmt.Sprintf("%s:%s:%s:%d", listCachePrefix, req.Symbol, req.Category, req.Limit)
	if q.cache != nil {
		var cached []models.SignalView
		if err := q.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	signals, err := q.store.List(ctx)
	if err != nil {
		return nil, err
	}

	now := q.now()
	out := make([]models.SignalView, 0, len(signals))
	for _, sig := range signals {
		if req.Symbol != "" && sig.Symbol != req.Symbol {
			continue
		}
		if req.Category != "" && string(sig.Category) != req.Category {
			continue
		}
		out = append(out, buildView(sig, now))
		if req.Limit > 0 && len(out) >= req.Limit {
			break
		}
	}

	if q.cache != nil {
		if err := q.cache.Set(ctx, key, out, q.cacheTTL); err != nil {
			q.l.Warn("list cache set failed", applogger.Error(err))
		}
	}
	return out, nil
}

// Stats returns the aggregate view plus the last scan time when known.
func (q *QueryService) Stats(ctx context.Context) (*models.StatsView, error) {
	st, err := q.store.Stats(ctx)
	if err != nil {
		return nil, err
	}
	view := &models.StatsView{Stats: st}
	if q.scanner != nil {
		if at, ok := q.scanner.LastScan(); ok {
			view.LastScan = at.Format(time.RFC3339)
		}
	}
	return view, nil
}

// Delete removes a signal by id; false when absent. Cached list views are
// invalidated on success.
func (q *QueryService) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := q.store.Remove(ctx, id)
	if ok && q.cache != nil {
		if err := q.cache.DeleteByPattern(ctx, listCachePrefix+":*"); err != nil {
			q.l.Warn("list cache invalidation failed", applogger.Error(err))
		}
	}
	return ok, err
}

// buildView derives the presentation fields for one signal at the given
// instant.
func buildView(sig models.Signal, now time.Time) models.SignalView {
	view := models.SignalView{
		Signal:         sig,
		IsNew:          sig.Fresh(now),
		AgeSeconds:     int64(sig.Age(now).Seconds()),
		TimeAgo:        util.TimeAgo(sig.CreatedAt, now),
		ExpiresIn:      util.HumanDuration(sig.ExpiresIn(now)),
		RiskReward:     riskReward(&sig),
		ConfidenceBand: confidenceBand(sig.Confidence),
	}
	return view
}

// riskReward is reward distance over risk distance, rounded to two decimals.
// Zero when the risk side is degenerate.
func riskReward(sig *models.Signal) float64 {
	risk := math.Abs(sig.Entry - sig.StopLoss)
	reward := math.Abs(sig.TakeProfit - sig.Entry)
	if risk == 0 {
		return 0
	}
	return math.Round(reward/risk*100) / 100
}

func confidenceBand(c float64) string {
	switch {
	case c >= 80:
		return "high"
	case c >= 65:
		return "medium"
	default:
		return "low"
	}
}
