package analytics

import (
	"BarPulse/internal/domain/models"
)

// ScanImbalances detects three-bar fair value gaps over a bar sequence of
// one fixed interval. For every index i >= 2 it compares the anchor bar
// (i-2) with the confirm bar (i): the gap is bullish when confirm.low is
// above anchor.high and bearish when confirm.high is below anchor.low.
//
// Fill detection is first-touch: the first bar strictly after the confirm
// whose range overlaps the gap bounds marks it filled. A bar with any
// missing price field serves as neither anchor nor confirm.
func ScanImbalances(bars []models.Bar) []models.Imbalance {
	gaps := make([]models.Imbalance, 0)

	for i := 2; i < len(bars); i++ {
		anchor := &bars[i-2]
		confirm := &bars[i]
		if !anchor.HasPrices() || !confirm.HasPrices() {
			continue
		}

		if confirm.Low > anchor.High {
			gaps = append(gaps, newImbalance(bars, models.ImbalanceBullish, i, anchor.High, confirm.Low))
		} else if confirm.High < anchor.Low {
			gaps = append(gaps, newImbalance(bars, models.ImbalanceBearish, i, confirm.High, anchor.Low))
		}
	}
	return gaps
}

func newImbalance(bars []models.Bar, kind models.ImbalanceKind, confirmIdx int, lower, upper float64) models.Imbalance {
	gap := models.Imbalance{
		Kind:         kind,
		AnchorIndex:  confirmIdx - 2,
		ConfirmIndex: confirmIdx,
		LowerBound:   lower,
		UpperBound:   upper,
		FormedAt:     bars[confirmIdx].Time,
	}

	for j := confirmIdx + 1; j < len(bars); j++ {
		if !bars[j].HasHigh() || !bars[j].HasLow() {
			continue
		}
		if bars[j].Low <= upper && bars[j].High >= lower {
			t := bars[j].Time
			gap.Filled = true
			gap.FilledAt = &t
			break
		}
	}
	return gap
}

// OpenImbalances filters a gap list down to the unfilled ones.
func OpenImbalances(gaps []models.Imbalance) []models.Imbalance {
	out := make([]models.Imbalance, 0, len(gaps))
	for _, g := range gaps {
		if !g.Filled {
			out = append(out, g)
		}
	}
	return out
}
