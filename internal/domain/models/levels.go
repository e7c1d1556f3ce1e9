package models

import "time"

// SwingKind classifies a swing point.
type SwingKind string

const (
	SwingHigh SwingKind = "high"
	SwingLow  SwingKind = "low"
)

// SwingPoint is a local price extremum within a bar sequence.
type SwingPoint struct {
	Kind     SwingKind `json:"kind"`
	Index    int       `json:"index"`
	Price    float64   `json:"price"`
	FormedAt time.Time `json:"formedAt"`
}

// Level is a swing point annotated with breach status. Untaken means no
// later bar has traded through the level's price.
type Level struct {
	SwingPoint
	Untaken    bool       `json:"untaken"`
	BreachedAt *time.Time `json:"breachedAt,omitempty"`
}

// ImbalanceKind classifies a fair value gap.
type ImbalanceKind string

const (
	ImbalanceBullish ImbalanceKind = "bullish"
	ImbalanceBearish ImbalanceKind = "bearish"
)

// Imbalance is a three-bar price discontinuity (fair value gap). The gap is
// bounded by [LowerBound, UpperBound]; a later bar whose range re-overlaps
// the bounds fills it.
type Imbalance struct {
	Kind         ImbalanceKind `json:"kind"`
	AnchorIndex  int           `json:"anchorIndex"`
	ConfirmIndex int           `json:"confirmIndex"`
	LowerBound   float64       `json:"lowerBound"`
	UpperBound   float64       `json:"upperBound"`
	FormedAt     time.Time     `json:"formedAt"`
	Filled       bool          `json:"filled"`
	FilledAt     *time.Time    `json:"filledAt,omitempty"`
}
