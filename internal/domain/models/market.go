package models

import "time"

// Kline is one OHLCV bar.
type Kline struct {
	OpenTime  time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	CloseTime time.Time
}

// Snapshot is the normalized market view handed to every evaluator:
// a bounded recent kline history plus the current price.
type Snapshot struct {
	Symbol       string
	Klines       []Kline
	CurrentPrice float64
	AsOf         time.Time
}

// Closes returns the close series, oldest first.
func (s *Snapshot) Closes() []float64 {
	out := make([]float64, len(s.Klines))
	for i, k := range s.Klines {
		out[i] = k.Close
	}
	return out
}

// Last returns the most recent kline, or false when the snapshot is empty.
func (s *Snapshot) Last() (Kline, bool) {
	if len(s.Klines) == 0 {
		return Kline{}, false
	}
	return s.Klines[len(s.Klines)-1], true
}
