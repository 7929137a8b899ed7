package dataset

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

const clockLayout = "15:04:05"

var errClockRange = errors.New("time of day out of range")

// ParseClock parses a time-of-day cell. It accepts "HH:MM:SS" text and the
// day-fraction numbers Excel stores for time cells.
func ParseClock(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	if t, err := time.Parse(clockLayout, v); err == nil {
		return t, nil
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return time.Time{}, &ParseError{Column: "Time", Value: value, Err: errors.New("expected HH:MM:SS")}
	}
	if f < 0 || f >= 1 {
		return time.Time{}, &ParseError{Column: "Time", Value: value, Err: errClockRange}
	}
	seconds := int(math.Round(f * 86400))
	if seconds >= 86400 {
		seconds = 86399
	}
	return time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(seconds) * time.Second), nil
}

// ParseHour returns the hour of day (0-23) of a time-of-day cell.
func ParseHour(value string) (int, error) {
	t, err := ParseClock(value)
	if err != nil {
		return 0, err
	}
	return t.Hour(), nil
}
