package analytics

import (
	"math"
	"testing"
	"time"

	"BarPulse/internal/domain/models"
)

func mkOHLC(vals ...[4]float64) []models.Bar {
	base := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, len(vals))
	for i, v := range vals {
		bars[i] = models.Bar{
			Time:   base.Add(time.Duration(i) * 15 * time.Minute),
			Open:   v[0],
			High:   v[1],
			Low:    v[2],
			Close:  v[3],
			Volume: 100,
		}
	}
	return bars
}

func TestScanImbalancesBullish(t *testing.T) {
	// Confirm low (101) gaps above anchor high (100).
	bars := mkOHLC(
		[4]float64{99, 100, 98, 99.5},
		[4]float64{103, 105, 102, 104},
		[4]float64{102, 108, 101, 107},
	)

	gaps := ScanImbalances(bars)
	if len(gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d: %+v", len(gaps), gaps)
	}

	g := gaps[0]
	if g.Kind != models.ImbalanceBullish {
		t.Errorf("kind = %s, want bullish", g.Kind)
	}
	if g.LowerBound != 100 || g.UpperBound != 101 {
		t.Errorf("bounds = [%v, %v], want [100, 101]", g.LowerBound, g.UpperBound)
	}
	if g.AnchorIndex != 0 || g.ConfirmIndex != 2 {
		t.Errorf("indices = (%d, %d), want (0, 2)", g.AnchorIndex, g.ConfirmIndex)
	}
	if !g.FormedAt.Equal(bars[2].Time) {
		t.Errorf("formedAt should be the confirm bar's time")
	}
	if g.Filled {
		t.Errorf("gap with empty tail must stay unfilled")
	}
}

func TestScanImbalancesFillFirstTouch(t *testing.T) {
	bars := mkOHLC(
		[4]float64{99, 100, 98, 99.5},
		[4]float64{103, 105, 102, 104},
		[4]float64{102, 108, 101, 107},
		[4]float64{106, 107, 103, 106}, // does not reach [100, 101]
		[4]float64{101, 102, 99, 100},  // first overlap
		[4]float64{102, 104, 100, 101}, // overlaps too, but fill already latched
	)

	gaps := ScanImbalances(bars)
	if len(gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d", len(gaps))
	}

	g := gaps[0]
	if !g.Filled {
		t.Fatalf("gap should be filled by bar 4")
	}
	if g.FilledAt == nil || !g.FilledAt.Equal(bars[4].Time) {
		t.Errorf("filledAt = %v, want first-touch time %v", g.FilledAt, bars[4].Time)
	}
}

func TestScanImbalancesBearish(t *testing.T) {
	// Confirm high (94) gaps below anchor low (95).
	bars := mkOHLC(
		[4]float64{99, 100, 95, 96},
		[4]float64{94, 95, 92, 93},
		[4]float64{93, 94, 90, 91},
	)

	gaps := ScanImbalances(bars)
	if len(gaps) != 1 {
		t.Fatalf("expected 1 bearish gap, got %d: %+v", len(gaps), gaps)
	}

	g := gaps[0]
	if g.Kind != models.ImbalanceBearish {
		t.Errorf("kind = %s, want bearish", g.Kind)
	}
	if g.LowerBound != 94 || g.UpperBound != 95 {
		t.Errorf("bounds = [%v, %v], want [94, 95]", g.LowerBound, g.UpperBound)
	}
}

func TestScanImbalancesSkipsMissingPrices(t *testing.T) {
	bars := mkOHLC(
		[4]float64{99, 100, 98, 99.5},
		[4]float64{103, 105, 102, 104},
		[4]float64{102, 108, 101, 107},
	)
	bars[0].High = math.NaN()

	if gaps := ScanImbalances(bars); len(gaps) != 0 {
		t.Errorf("anchor with missing price must not form a gap, got %+v", gaps)
	}
}

func TestOpenImbalancesFilter(t *testing.T) {
	gaps := []models.Imbalance{
		{Kind: models.ImbalanceBullish, Filled: true},
		{Kind: models.ImbalanceBearish, Filled: false},
	}
	open := OpenImbalances(gaps)
	if len(open) != 1 || open[0].Kind != models.ImbalanceBearish {
		t.Errorf("expected only the unfilled gap, got %+v", open)
	}
}
