package models

import "time"

// Category names a strategy family. Every signal carries exactly one.
type Category string

const (
	CategoryMomentumMaster  Category = "Momentum Master"
	CategoryBreakoutPro     Category = "Breakout Pro"
	CategoryTrendFollowing  Category = "Trend Following"
	CategoryBreakoutTrading Category = "Breakout Trading"
)

// Knowns lists the registered categories in display order.
func Knowns() []Category {
	return []Category{
		CategoryMomentumMaster,
		CategoryBreakoutPro,
		CategoryTrendFollowing,
		CategoryBreakoutTrading,
	}
}

const (
	// DedupWindow is how long a (symbol, category) pair blocks re-entry,
	// measured from the last accepted signal. Independent of TTL.
	DedupWindow = time.Hour

	// FreshWindow is the age below which a signal reports IsNew.
	FreshWindow = 5 * time.Minute

	shortTTL   = time.Hour
	defaultTTL = 24 * time.Hour
)

// categoryTTL is the single policy table consumed by both the store sweep
// and the read-side expires-in computation. Unknown categories fall through
// to defaultTTL.
var categoryTTL = map[Category]time.Duration{
	CategoryMomentumMaster:  shortTTL,
	CategoryBreakoutPro:     shortTTL,
	CategoryTrendFollowing:  defaultTTL,
	CategoryBreakoutTrading: defaultTTL,
}

// TTL returns the expiry duration for a category.
func (c Category) TTL() time.Duration {
	if d, ok := categoryTTL[c]; ok {
		return d
	}
	return defaultTTL
}

// Known reports whether the category is in the registered set.
func (c Category) Known() bool {
	_, ok := categoryTTL[c]
	return ok
}
