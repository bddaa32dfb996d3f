package utils

import (
	"time"
)

const (
	// Hour is an int based representation of the time unit.
	Hour = time.Minute * 60

	// Day is an int based representation of the time unit.
	Day = Hour * 24
)

// TimestampLayout renders as DD/MM/YYYY HH:MM:SS.
const TimestampLayout = "02/01/2006 15:04:05"

const secondsInDay = 24 * 60 * 60
