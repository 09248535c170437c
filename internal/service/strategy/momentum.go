package strategy

import (
	"context"

	"SigScan/internal/domain/models"
	drepo "SigScan/internal/domain/repository"
)

// Momentum flags strong directional moves: RSI stretched past the trigger
// band while price trades on the matching side of the fast EMA.
type Momentum struct{}

func NewMomentum() drepo.Evaluator { return &Momentum{} }

func (m *Momentum) Name() models.Category { return models.CategoryMomentumMaster }

func (m *Momentum) Evaluate(_ context.Context, snap *models.Snapshot) (*models.Verdict, error) {
	closes := snap.Closes()
	r, ok := rsi(closes, 14)
	if !ok {
		return nil, nil
	}
	fast, ok := ema(closes, 20)
	if !ok {
		return nil, nil
	}
	price := snap.CurrentPrice

	switch {
	case r >= 62 && price > fast:
		conf := clamp(50+(r-62)*1.5, 50, 95)
		return &models.Verdict{
			Category:   m.Name(),
			Direction:  models.DirectionLong,
			Entry:      price,
			StopLoss:   price * 0.985,
			TakeProfit: price * 1.03,
			Confidence: conf,
		}, nil
	case r <= 38 && price < fast:
		conf := clamp(50+(38-r)*1.5, 50, 95)
		return &models.Verdict{
			Category:   m.Name(),
			Direction:  models.DirectionShort,
			Entry:      price,
			StopLoss:   price * 1.015,
			TakeProfit: price * 0.97,
			Confidence: conf,
		}, nil
	}
	return nil, nil
}
