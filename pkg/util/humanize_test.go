package util

import (
	"testing"
	"time"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
	cases := []struct {
		from time.Time
		want string
	}{
		{now.Add(-30 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-49 * time.Hour), "2d ago"},
	}
	for _, c := range cases {
		if got := TimeAgo(c.from, now); got != c.want {
			t.Fatalf("TimeAgo(%v) = %q, want %q", c.from, got, c.want)
		}
	}
}

func TestHumanDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{-time.Minute, "expired"},
		{0, "expired"},
		{45 * time.Second, "45s"},
		{59 * time.Minute, "59m"},
		{2 * time.Hour, "2h"},
		{90 * time.Minute, "1h 30m"},
	}
	for _, c := range cases {
		if got := HumanDuration(c.d); got != c.want {
			t.Fatalf("HumanDuration(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}
