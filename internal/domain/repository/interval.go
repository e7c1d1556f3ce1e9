package repository

import (
	"fmt"
	"time"

	"BarPulse/internal/domain/models"
)

// Interval is a bar size from the accepted vocabulary, e.g. "15m" or "4h".
type Interval string

const (
	IntervalUnitSecond = 1
	IntervalUnitMinute = 2
	IntervalUnitHour   = 3
	IntervalUnitDay    = 4
	IntervalUnitWeek   = 5
	IntervalUnitMonth  = 6
)

// intervalTable maps each accepted interval to the upstream (unit, number)
// pair and its duration.
var intervalTable = map[Interval]struct {
	unit     int
	number   int
	duration time.Duration
}{
	"1s":  {IntervalUnitSecond, 1, time.Second},
	"5s":  {IntervalUnitSecond, 5, 5 * time.Second},
	"15s": {IntervalUnitSecond, 15, 15 * time.Second},
	"30s": {IntervalUnitSecond, 30, 30 * time.Second},
	"1m":  {IntervalUnitMinute, 1, time.Minute},
	"2m":  {IntervalUnitMinute, 2, 2 * time.Minute},
	"3m":  {IntervalUnitMinute, 3, 3 * time.Minute},
	"5m":  {IntervalUnitMinute, 5, 5 * time.Minute},
	"15m": {IntervalUnitMinute, 15, 15 * time.Minute},
	"30m": {IntervalUnitMinute, 30, 30 * time.Minute},
	"1h":  {IntervalUnitHour, 1, time.Hour},
	"2h":  {IntervalUnitHour, 2, 2 * time.Hour},
	"4h":  {IntervalUnitHour, 4, 4 * time.Hour},
	"1d":  {IntervalUnitDay, 1, 24 * time.Hour},
	"1w":  {IntervalUnitWeek, 1, 7 * 24 * time.Hour},
	"1M":  {IntervalUnitMonth, 1, 30 * 24 * time.Hour},
}

// ParseInterval maps an interval string to the upstream (unit, number)
// pair. Unrecognized intervals fail with ErrUnsupportedInterval.
func ParseInterval(s string) (unit int, number int, err error) {
	entry, ok := intervalTable[Interval(s)]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", models.ErrUnsupportedInterval, s)
	}
	return entry.unit, entry.number, nil
}

// IsValidInterval returns true if s is in the accepted vocabulary.
func IsValidInterval(s string) bool {
	_, ok := intervalTable[Interval(s)]
	return ok
}

// IntervalDuration returns the bar duration for an accepted interval and
// zero for an unrecognized one.
func IntervalDuration(s string) time.Duration {
	return intervalTable[Interval(s)].duration
}
