// Package timeago renders timestamps the way question cards show them.
package timeago

import (
	"fmt"
	"time"
)

const (
	day   = 24 * time.Hour
	month = 30 * day
	year  = 365 * day
)

// Since formats the time elapsed from t to now, e.g. "2 hours ago".
// Anything under a minute, or in the future, is "just now".
func Since(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < day:
		return plural(int(d/time.Hour), "hour")
	case d < month:
		return plural(int(d/day), "day")
	case d < year:
		return plural(int(d/month), "month")
	default:
		return plural(int(d/year), "year")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
