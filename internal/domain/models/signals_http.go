package models

// Requests for the signals HTTP endpoints. Defined in domain for consistency
// and reuse.

type ListSignalsRequest struct {
	Symbol   string `query:"symbol" json:"symbol"`
	Category string `query:"category" json:"category"`
	Limit    int    `query:"limit" json:"limit" default:"100" validate:"gte=1,lte=500"`
}

// SignalView is a Signal plus the read-time presentation fields. Never
// persisted; derived from the same policy table as the store sweep.
type SignalView struct {
	Signal
	IsNew          bool    `json:"is_new"`
	AgeSeconds     int64   `json:"age_seconds"`
	TimeAgo        string  `json:"time_ago"`
	ExpiresIn      string  `json:"expires_in"`
	RiskReward     float64 `json:"risk_reward"`
	ConfidenceBand string  `json:"confidence_band"`
}

// StatsView is Stats plus scan observability fields.
type StatsView struct {
	Stats
	LastScan string `json:"last_scan,omitempty"`
}
