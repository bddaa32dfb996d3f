package certstore

import "time"

const (
	// Seconds between 1601-01-01 and 1970-01-01.
	filetimeEpochOffset = 11644473600
	ticksPerSecond      = 10_000_000
)

// filetimeToTime converts a Windows FILETIME (100-ns ticks since 1601-01-01 UTC) to a time.Time.
// The conversion stays in seconds so dates past 2262 do not overflow.
func filetimeToTime(high, low uint32) time.Time {
	ticks := int64(high)<<32 | int64(low)
	return time.Unix(ticks/ticksPerSecond-filetimeEpochOffset, (ticks%ticksPerSecond)*100).UTC()
}
