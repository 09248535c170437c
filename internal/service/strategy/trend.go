package strategy

import (
	"context"

	"SigScan/internal/domain/models"
	drepo "SigScan/internal/domain/repository"
)

// Trend flags established directional structure: fast EMA on the right side
// of the slow EMA with price extended beyond both.
type Trend struct{}

func NewTrend() drepo.Evaluator { return &Trend{} }

func (t *Trend) Name() models.Category { return models.CategoryTrendFollowing }

func (t *Trend) Evaluate(_ context.Context, snap *models.Snapshot) (*models.Verdict, error) {
	closes := snap.Closes()
	fast, ok := ema(closes, 20)
	if !ok {
		return nil, nil
	}
	slow, ok := ema(closes, 50)
	if !ok {
		return nil, nil
	}
	price := snap.CurrentPrice
	if slow == 0 {
		return nil, nil
	}

	spread := (fast - slow) / slow
	switch {
	case spread > 0.004 && price > fast:
		conf := clamp(55+spread*2000, 55, 90)
		return &models.Verdict{
			Category:   t.Name(),
			Direction:  models.DirectionLong,
			Entry:      price,
			StopLoss:   slow,
			TakeProfit: price + (price-slow)*1.5,
			Confidence: conf,
		}, nil
	case spread < -0.004 && price < fast:
		conf := clamp(55-spread*2000, 55, 90)
		return &models.Verdict{
			Category:   t.Name(),
			Direction:  models.DirectionShort,
			Entry:      price,
			StopLoss:   slow,
			TakeProfit: price - (slow-price)*1.5,
			Confidence: conf,
		}, nil
	}
	return nil, nil
}
