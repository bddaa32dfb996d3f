package utils

import (
	"math"
	"time"
)

// FormatTimestamp renders ts in the local time zone using TimestampLayout.
func FormatTimestamp(ts time.Time) string {
	return ts.Local().Format(TimestampLayout)
}

// DaysUntil returns the number of whole days from now until ts, truncated toward zero.
// A negative value means ts is in the past. Values never overflow: differences too large
// for a time.Duration are computed from Unix seconds instead.
func DaysUntil(ts, now time.Time) int {
	diff := ts.Sub(now)
	if diff != math.MaxInt64 && diff != math.MinInt64 {
		return int(diff / Day)
	}

	// time.Sub saturates at roughly +/-292 years.
	secs := ts.Unix() - now.Unix()
	nanos := int64(ts.Nanosecond()) - int64(now.Nanosecond())
	if secs > 0 && nanos < 0 {
		secs--
	} else if secs < 0 && nanos > 0 {
		secs++
	}
	return int(secs / secondsInDay)
}
