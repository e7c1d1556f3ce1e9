package analytics

import (
	"time"

	"BarPulse/internal/domain/models"
)

// The CME weekly halt: Friday 20:00 UTC through Sunday 22:00 UTC, both
// boundaries open (the market counts as open at the exact instants).
const (
	weekendCloseHourUTC  = 20
	weekendReopenHourUTC = 22
	maxAutoWindow        = 7 * 24 * time.Hour
)

// WeekendStatus reports whether t falls inside the weekly closure, along
// with the closure's boundary instants.
func WeekendStatus(t time.Time) models.ClosureStatus {
	u := t.UTC()

	day := u
	for day.Weekday() != time.Friday {
		day = day.AddDate(0, 0, -1)
	}
	closeAt := time.Date(day.Year(), day.Month(), day.Day(), weekendCloseHourUTC, 0, 0, 0, time.UTC)

	reopenDay := closeAt.AddDate(0, 0, 2)
	reopenAt := time.Date(reopenDay.Year(), reopenDay.Month(), reopenDay.Day(), weekendReopenHourUTC, 0, 0, 0, time.UTC)

	return models.ClosureStatus{
		Closed:   closeAt.Before(u) && u.Before(reopenAt),
		CloseAt:  closeAt,
		ReopenAt: reopenAt,
	}
}

// ResolveWindow decides the effective query window for a requested
// [start, end) under the closure guard policy.
//
// Open market: pass-through. Closed with guard on and no auto window:
// models.ErrMarketClosed. Closed with auto window: clip the end to the
// Friday close and preserve the requested duration, capped at seven days.
func ResolveWindow(start, end time.Time, guardOn, autoWindow bool) (models.ResolvedWindow, error) {
	status := WeekendStatus(end)
	if !status.Closed {
		return models.ResolvedWindow{Start: start, End: end}, nil
	}

	if !autoWindow {
		if guardOn {
			return models.ResolvedWindow{}, models.ErrMarketClosed
		}
		return models.ResolvedWindow{Start: start, End: end}, nil
	}

	duration := end.Sub(start)
	if duration > maxAutoWindow {
		duration = maxAutoWindow
	}

	effectiveEnd := status.CloseAt
	if end.Before(effectiveEnd) {
		effectiveEnd = end
	}

	return models.ResolvedWindow{
		Start:    effectiveEnd.Add(-duration),
		End:      effectiveEnd,
		Adjusted: true,
	}, nil
}
