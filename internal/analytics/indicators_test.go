package analytics

import (
	"math"
	"testing"
	"time"

	"BarPulse/internal/domain/models"
)

func TestSMA(t *testing.T) {
	got := SMA([]float64{1, 2, 3, 4, 5}, 3)
	want := []float64{math.NaN(), math.NaN(), 2, 3, 4}
	assertSeries(t, got, want)
}

func TestEMA(t *testing.T) {
	// Seed = SMA(3) = 2 at index 2, k = 0.5.
	got := EMA([]float64{1, 2, 3, 4, 5}, 3)
	want := []float64{math.NaN(), math.NaN(), 2, 3, 4}
	assertSeries(t, got, want)
}

func TestIndicatorWarmup(t *testing.T) {
	values := []float64{10, 11, 12, 11, 13, 14, 12, 15}
	const length = 4

	tests := []struct {
		name     string
		series   []float64
		firstIdx int
	}{
		{"sma", SMA(values, length), length - 1},
		{"ema", EMA(values, length), length - 1},
		{"rsi", RSI(values, length), length},
	}

	for _, tt := range tests {
		for i, v := range tt.series {
			if i < tt.firstIdx && !math.IsNaN(v) {
				t.Errorf("%s[%d] = %v, want NaN during warm-up", tt.name, i, v)
			}
			if i >= tt.firstIdx && math.IsNaN(v) {
				t.Errorf("%s[%d] = NaN after warm-up", tt.name, i)
			}
		}
	}
}

func TestRSIBoundsAndAllGains(t *testing.T) {
	// Strictly rising closes: no losses, RSI pinned at 100.
	rising := RSI([]float64{1, 2, 3, 4, 5, 6}, 3)
	for i := 3; i < len(rising); i++ {
		if rising[i] != 100 {
			t.Errorf("rsi[%d] = %v, want exactly 100 with no losses", i, rising[i])
		}
	}

	mixed := RSI([]float64{10, 12, 9, 14, 8, 13, 11, 15, 10}, 3)
	for i, v := range mixed {
		if math.IsNaN(v) {
			continue
		}
		if v < 0 || v > 100 {
			t.Errorf("rsi[%d] = %v outside [0, 100]", i, v)
		}
	}
}

func TestRSIShortInput(t *testing.T) {
	got := RSI([]float64{1, 2, 3}, 3)
	for i, v := range got {
		if !math.IsNaN(v) {
			t.Errorf("rsi[%d] = %v, want NaN with insufficient history", i, v)
		}
	}
}

func TestVWAPUniformVolumeIsMeanTypicalPrice(t *testing.T) {
	bars := []models.Bar{
		{Time: time.Unix(0, 0), High: 12, Low: 10, Close: 11, Volume: 50},
		{Time: time.Unix(60, 0), High: 14, Low: 12, Close: 13, Volume: 50},
		{Time: time.Unix(120, 0), High: 16, Low: 14, Close: 15, Volume: 50},
	}

	final, series := VWAP(bars)

	var sum float64
	for i := range bars {
		sum += bars[i].TypicalPrice()
	}
	mean := sum / float64(len(bars))

	if math.Abs(final-mean) > 1e-9 {
		t.Errorf("vwap = %v, want mean typical price %v", final, mean)
	}
	if len(series) != len(bars) {
		t.Errorf("series length = %d, want %d", len(series), len(bars))
	}
}

func TestVWAPZeroVolume(t *testing.T) {
	bars := []models.Bar{
		{Time: time.Unix(0, 0), High: 12, Low: 10, Close: 11, Volume: 0},
		{Time: time.Unix(60, 0), High: 14, Low: 12, Close: 13, Volume: 0},
	}

	final, series := VWAP(bars)
	if final != 0 {
		t.Errorf("vwap with zero volume = %v, want 0", final)
	}
	for i, v := range series {
		if v != 0 {
			t.Errorf("series[%d] = %v, want 0", i, v)
		}
	}
}

func TestVWAPSkipsMissingPrices(t *testing.T) {
	bars := []models.Bar{
		{Time: time.Unix(0, 0), High: 12, Low: 10, Close: 11, Volume: 100},
		{Time: time.Unix(60, 0), High: math.NaN(), Low: 12, Close: 13, Volume: 100},
		{Time: time.Unix(120, 0), High: 12, Low: 10, Close: 11, Volume: 100},
	}

	final, _ := VWAP(bars)
	if math.IsNaN(final) {
		t.Errorf("a bar with a missing price must not poison the vwap")
	}
	if math.Abs(final-11) > 1e-9 {
		t.Errorf("vwap = %v, want 11 from the two usable bars", final)
	}
}

func TestLastValue(t *testing.T) {
	if v := LastValue([]float64{math.NaN(), 2, math.NaN()}); v == nil || *v != 2 {
		t.Errorf("LastValue = %v, want 2", v)
	}
	if v := LastValue([]float64{math.NaN()}); v != nil {
		t.Errorf("LastValue of all-NaN = %v, want nil", v)
	}
	if v := LastValue(nil); v != nil {
		t.Errorf("LastValue of empty = %v, want nil", v)
	}
}

func assertSeries(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.IsNaN(want[i]) {
			if !math.IsNaN(got[i]) {
				t.Errorf("[%d] = %v, want NaN", i, got[i])
			}
			continue
		}
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
