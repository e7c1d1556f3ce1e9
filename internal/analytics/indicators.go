package analytics

import (
	"math"

	"BarPulse/internal/domain/models"
)

// Indicator series are index-aligned with their input; NaN marks the
// warm-up period before enough history exists.

func nanSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// SMA computes the simple moving average of the trailing length values as a
// running sum.
func SMA(values []float64, length int) []float64 {
	out := nanSeries(len(values))
	if length <= 0 || len(values) < length {
		return out
	}

	var sum float64
	for i, v := range values {
		sum += v
		if i >= length {
			sum -= values[i-length]
		}
		if i >= length-1 {
			out[i] = sum / float64(length)
		}
	}
	return out
}

// EMA computes the exponential moving average seeded with the SMA of the
// first length values at index length-1.
func EMA(values []float64, length int) []float64 {
	out := nanSeries(len(values))
	if length <= 0 || len(values) < length {
		return out
	}

	var seed float64
	for i := 0; i < length; i++ {
		seed += values[i]
	}
	seed /= float64(length)
	out[length-1] = seed

	k := 2 / float64(length+1)
	ema := seed
	for i := length; i < len(values); i++ {
		ema = (values[i]-ema)*k + ema
		out[i] = ema
	}
	return out
}

// RSI computes Wilder's smoothed relative strength index. The seed average
// gain/loss is the simple mean of the first length deltas, so the first
// defined output is at index length.
func RSI(values []float64, length int) []float64 {
	out := nanSeries(len(values))
	if length <= 0 || len(values) <= length {
		return out
	}

	var avgGain, avgLoss float64
	for i := 1; i < len(values); i++ {
		delta := values[i] - values[i-1]
		gain := math.Max(delta, 0)
		loss := math.Max(-delta, 0)

		if i <= length {
			avgGain += gain
			avgLoss += loss
			if i == length {
				avgGain /= float64(length)
				avgLoss /= float64(length)
				out[i] = rsiFromAverages(avgGain, avgLoss)
			}
			continue
		}

		avgGain = (avgGain*float64(length-1) + gain) / float64(length)
		avgLoss = (avgLoss*float64(length-1) + loss) / float64(length)
		out[i] = rsiFromAverages(avgGain, avgLoss)
	}
	return out
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	return 100 - 100/(1+avgGain/avgLoss)
}

// VWAP computes the cumulative-from-start volume-weighted average of
// typical price. Bars with zero or missing volume, or a missing price,
// contribute nothing; while the cumulative volume is zero the series
// reports 0. Session anchoring is the caller's job via slicing the input.
func VWAP(bars []models.Bar) (final float64, series []float64) {
	series = make([]float64, len(bars))

	var pv, vol float64
	for i := range bars {
		tp := bars[i].TypicalPrice()
		v := bars[i].Volume
		if !math.IsNaN(tp) && v > 0 {
			pv += tp * v
			vol += v
		}
		if vol == 0 {
			series[i] = 0
		} else {
			series[i] = pv / vol
		}
	}

	if len(series) == 0 {
		return 0, series
	}
	return series[len(series)-1], series
}

// LastValue returns the last non-NaN value of a series, nil when every
// value is NaN.
func LastValue(series []float64) *float64 {
	for i := len(series) - 1; i >= 0; i-- {
		if !math.IsNaN(series[i]) {
			v := series[i]
			return &v
		}
	}
	return nil
}
