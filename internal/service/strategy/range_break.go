package strategy

import (
	"context"

	"SigScan/internal/domain/models"
	drepo "SigScan/internal/domain/repository"
)

const (
	squeezeBars    = 10
	baselineBars   = 40
	squeezeMaxFrac = 0.5
)

// RangeBreak flags breaks out of a compressed consolidation: the recent
// trading range must be under half of the longer baseline range before the
// last close escapes it.
type RangeBreak struct{}

func NewRangeBreak() drepo.Evaluator { return &RangeBreak{} }

func (r *RangeBreak) Name() models.Category { return models.CategoryBreakoutTrading }

func (r *RangeBreak) Evaluate(_ context.Context, snap *models.Snapshot) (*models.Verdict, error) {
	last, ok := snap.Last()
	if !ok {
		return nil, nil
	}
	highs := make([]float64, len(snap.Klines))
	lows := make([]float64, len(snap.Klines))
	for i, k := range snap.Klines {
		highs[i], lows[i] = k.High, k.Low
	}

	sqHi, sqLo, ok := highLow(highs, lows, squeezeBars, true)
	if !ok {
		return nil, nil
	}
	baseHi, baseLo, ok := highLow(highs, lows, baselineBars, true)
	if !ok {
		return nil, nil
	}
	baseRange := baseHi - baseLo
	if baseRange <= 0 {
		return nil, nil
	}
	frac := (sqHi - sqLo) / baseRange
	if frac > squeezeMaxFrac {
		return nil, nil
	}
	// tighter squeeze, higher conviction
	conf := clamp(60+(squeezeMaxFrac-frac)*60, 60, 92)
	price := snap.CurrentPrice

	switch {
	case last.Close > sqHi:
		return &models.Verdict{
			Category:   r.Name(),
			Direction:  models.DirectionLong,
			Entry:      price,
			StopLoss:   sqLo,
			TakeProfit: price + (sqHi-sqLo)*2,
			Confidence: conf,
		}, nil
	case last.Close < sqLo:
		return &models.Verdict{
			Category:   r.Name(),
			Direction:  models.DirectionShort,
			Entry:      price,
			StopLoss:   sqHi,
			TakeProfit: price - (sqHi-sqLo)*2,
			Confidence: conf,
		}, nil
	}
	return nil, nil
}

// All returns the built-in evaluator set in registration order.
func All() []drepo.Evaluator {
	return []drepo.Evaluator{
		NewMomentum(),
		NewBreakout(),
		NewTrend(),
		NewRangeBreak(),
	}
}
