package analytics

import (
	"BarPulse/internal/domain/models"
)

// breachEpsilon absorbs floating-point noise when testing whether a later
// bar traded through a level.
const breachEpsilon = 1e-9

// DefaultNeighbors is the symmetric neighbor count used when a caller does
// not configure one.
const DefaultNeighbors = 2

// ScanSwings detects local extrema over a bar sequence with a symmetric
// neighbor window (left bars before, right bars after) and classifies each
// as breached or untaken by scanning strictly forward.
//
// Ties qualify: a plateau of equal highs yields a swing at every index of
// the plateau. An index whose own high/low or any neighbor's high/low is
// missing is excluded from that classification.
func ScanSwings(bars []models.Bar, left, right int) []models.Level {
	levels := make([]models.Level, 0)
	if left < 0 || right < 0 {
		return levels
	}

	for i := left; i < len(bars)-right; i++ {
		if isSwingHigh(bars, i, left, right) {
			levels = append(levels, buildLevel(bars, i, models.SwingHigh, bars[i].High))
		}
		if isSwingLow(bars, i, left, right) {
			levels = append(levels, buildLevel(bars, i, models.SwingLow, bars[i].Low))
		}
	}
	return levels
}

func isSwingHigh(bars []models.Bar, i, left, right int) bool {
	if !bars[i].HasHigh() {
		return false
	}
	for j := i - left; j <= i+right; j++ {
		if j == i {
			continue
		}
		if !bars[j].HasHigh() {
			return false
		}
		if bars[j].High > bars[i].High {
			return false
		}
	}
	return true
}

func isSwingLow(bars []models.Bar, i, left, right int) bool {
	if !bars[i].HasLow() {
		return false
	}
	for j := i - left; j <= i+right; j++ {
		if j == i {
			continue
		}
		if !bars[j].HasLow() {
			return false
		}
		if bars[j].Low < bars[i].Low {
			return false
		}
	}
	return true
}

func buildLevel(bars []models.Bar, i int, kind models.SwingKind, price float64) models.Level {
	level := models.Level{
		SwingPoint: models.SwingPoint{
			Kind:     kind,
			Index:    i,
			Price:    price,
			FormedAt: bars[i].Time,
		},
		Untaken: true,
	}

	for j := i + 1; j < len(bars); j++ {
		breached := false
		switch kind {
		case models.SwingHigh:
			breached = bars[j].HasHigh() && bars[j].High > price+breachEpsilon
		case models.SwingLow:
			breached = bars[j].HasLow() && bars[j].Low < price-breachEpsilon
		}
		if breached {
			t := bars[j].Time
			level.Untaken = false
			level.BreachedAt = &t
			break
		}
	}
	return level
}

// UntakenLevels filters a level list down to the untaken ones.
func UntakenLevels(levels []models.Level) []models.Level {
	out := make([]models.Level, 0, len(levels))
	for _, l := range levels {
		if l.Untaken {
			out = append(out, l)
		}
	}
	return out
}
