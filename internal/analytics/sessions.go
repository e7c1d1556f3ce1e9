package analytics

import (
	"math"
	"time"

	"BarPulse/internal/domain/models"
)

// Session boundaries in the exchange's civil timezone. The Asian window
// opens the evening before the anchor date; the prior-close window runs
// from the previous day's settlement to the as-of instant.
const (
	asianOpenHour   = 18
	asianCloseHour  = 2
	londonOpenHour  = 2
	londonCloseHour = 7
	londonCloseMin  = 30
	priorCloseHour  = 15
)

// Session names as they appear in responses.
const (
	SessionAsian    = "asian"
	SessionLondon   = "london"
	SessionPriorDay = "priorClose"
)

// SessionWindows resolves the named session windows for one as-of instant
// in the given civil timezone. Boundaries come back in UTC.
func SessionWindows(asOf time.Time, loc *time.Location) []models.SessionWindow {
	local := asOf.In(loc)
	y, m, d := local.Date()

	civil := func(dayOffset, hour, min int) time.Time {
		return time.Date(y, m, d+dayOffset, hour, min, 0, 0, loc).UTC()
	}

	return []models.SessionWindow{
		{Name: SessionAsian, Start: civil(-1, asianOpenHour, 0), End: civil(0, asianCloseHour, 0)},
		{Name: SessionLondon, Start: civil(0, londonOpenHour, 0), End: civil(0, londonCloseHour, londonCloseMin)},
		{Name: SessionPriorDay, Start: civil(-1, priorCloseHour, 0), End: asOf.UTC()},
	}
}

// SessionWindowByName returns the named window from a resolved set.
func SessionWindowByName(windows []models.SessionWindow, name string) (models.SessionWindow, bool) {
	for _, w := range windows {
		if w.Name == name {
			return w, true
		}
	}
	return models.SessionWindow{}, false
}

// SummarizeSession slices bars into the window (inclusive on both bounds)
// and reports the high/low extremes. Bars with a missing high or low do
// not contribute to that extreme.
func SummarizeSession(bars []models.Bar, window models.SessionWindow) models.SessionSummary {
	summary := models.SessionSummary{SessionWindow: window}

	high := math.NaN()
	low := math.NaN()
	for _, b := range models.SliceBars(bars, window.Start, window.End) {
		summary.BarCount++
		if b.HasHigh() && (math.IsNaN(high) || b.High > high) {
			high = b.High
		}
		if b.HasLow() && (math.IsNaN(low) || b.Low < low) {
			low = b.Low
		}
	}

	summary.High = models.FiniteOrNil(high)
	summary.Low = models.FiniteOrNil(low)
	return summary
}
