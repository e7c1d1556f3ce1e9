package models

import (
	"math"
	"time"
)

// Bar represents one OHLCV sample. Price fields the upstream omitted are
// carried as NaN; scanners that need a field skip such bars.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// HasHigh reports whether the high price is usable.
func (b *Bar) HasHigh() bool { return !math.IsNaN(b.High) }

// HasLow reports whether the low price is usable.
func (b *Bar) HasLow() bool { return !math.IsNaN(b.Low) }

// HasClose reports whether the close price is usable.
func (b *Bar) HasClose() bool { return !math.IsNaN(b.Close) }

// HasPrices reports whether all four price fields are usable.
func (b *Bar) HasPrices() bool {
	return !math.IsNaN(b.Open) && !math.IsNaN(b.High) && !math.IsNaN(b.Low) && !math.IsNaN(b.Close)
}

// TypicalPrice returns (high+low+close)/3, NaN if any component is missing.
func (b *Bar) TypicalPrice() float64 {
	return (b.High + b.Low + b.Close) / 3
}

// SliceBars returns bars whose time falls within [start, end], inclusive on
// both bounds.
func SliceBars(bars []Bar, start, end time.Time) []Bar {
	out := make([]Bar, 0, len(bars))
	for _, b := range bars {
		if b.Time.Before(start) || b.Time.After(end) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Closes returns the closing-price projection of a bar sequence.
func Closes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i := range bars {
		out[i] = bars[i].Close
	}
	return out
}
