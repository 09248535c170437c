package strategy

import (
	"context"

	"SigScan/internal/domain/models"
	drepo "SigScan/internal/domain/repository"
)

const breakoutLookback = 20

// Breakout flags closes beyond the prior 20-bar extreme on elevated volume.
type Breakout struct{}

func NewBreakout() drepo.Evaluator { return &Breakout{} }

func (b *Breakout) Name() models.Category { return models.CategoryBreakoutPro }

func (b *Breakout) Evaluate(_ context.Context, snap *models.Snapshot) (*models.Verdict, error) {
	last, ok := snap.Last()
	if !ok {
		return nil, nil
	}
	highs := make([]float64, len(snap.Klines))
	lows := make([]float64, len(snap.Klines))
	vols := make([]float64, len(snap.Klines))
	for i, k := range snap.Klines {
		highs[i], lows[i], vols[i] = k.High, k.Low, k.Volume
	}

	hi, lo, ok := highLow(highs, lows, breakoutLookback, true)
	if !ok {
		return nil, nil
	}
	avgVol, ok := mean(vols[:len(vols)-1], breakoutLookback)
	if !ok || avgVol <= 0 {
		return nil, nil
	}
	volRatio := last.Volume / avgVol
	if volRatio < 1.5 {
		return nil, nil
	}
	conf := clamp(55+(volRatio-1.5)*10, 55, 95)
	price := snap.CurrentPrice

	switch {
	case last.Close > hi:
		return &models.Verdict{
			Category:   b.Name(),
			Direction:  models.DirectionLong,
			Entry:      price,
			StopLoss:   hi * 0.995,
			TakeProfit: price + (price-hi*0.995)*2,
			Confidence: conf,
		}, nil
	case last.Close < lo:
		return &models.Verdict{
			Category:   b.Name(),
			Direction:  models.DirectionShort,
			Entry:      price,
			StopLoss:   lo * 1.005,
			TakeProfit: price - (lo*1.005-price)*2,
			Confidence: conf,
		}, nil
	}
	return nil, nil
}
