package models

import (
	"fmt"
	"strings"
	"time"
)

// Direction is the polarity of a trade idea.
type Direction string

const (
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
)

// Signal is the persisted unit the scanner produces. Immutable after
// acceptance; removed only by explicit delete or the expiry sweep.
type Signal struct {
	ID         string    `json:"id"`
	Symbol     string    `json:"symbol"`
	Category   Category  `json:"category"`
	Direction  Direction `json:"direction"`
	Entry      float64   `json:"entry"`
	StopLoss   float64   `json:"stop_loss"`
	TakeProfit float64   `json:"take_profit"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

// SignalID builds the stable identifier for a signal. Symbol and category are
// part of the key, so same-millisecond creation across different pairs stays
// unique.
func SignalID(symbol string, category Category, at time.Time) string {
	return fmt.Sprintf("%s_%s_%d", symbol, strings.ReplaceAll(string(category), " ", "_"), at.UnixMilli())
}

// Age of the signal at the given instant.
func (s *Signal) Age(now time.Time) time.Duration {
	return now.Sub(s.CreatedAt)
}

// ExpiresIn is the remaining lifetime at the given instant; <= 0 means expired.
func (s *Signal) ExpiresIn(now time.Time) time.Duration {
	return s.Category.TTL() - s.Age(now)
}

// Expired reports whether the signal is past its category TTL.
func (s *Signal) Expired(now time.Time) bool {
	return s.Age(now) >= s.Category.TTL()
}

// Fresh reports whether the signal is inside the IsNew window.
func (s *Signal) Fresh(now time.Time) bool {
	return s.Age(now) < FreshWindow
}

// Verdict is a positive evaluator outcome; nil means no signal.
type Verdict struct {
	Category   Category
	Direction  Direction
	Entry      float64
	StopLoss   float64
	TakeProfit float64
	Confidence float64
}

// Consistent reports whether entry sits between stop and target for the
// stated direction. Inconsistent verdicts are still accepted; callers log.
func (v *Verdict) Consistent() bool {
	switch v.Direction {
	case DirectionLong:
		return v.StopLoss < v.Entry && v.Entry < v.TakeProfit
	case DirectionShort:
		return v.TakeProfit < v.Entry && v.Entry < v.StopLoss
	}
	return false
}

// Stats is the aggregate view over live signals.
type Stats struct {
	Total      int              `json:"total"`
	LastHour   int              `json:"last_hour"`
	LastDay    int              `json:"last_day"`
	ByCategory map[Category]int `json:"by_category"`
}
