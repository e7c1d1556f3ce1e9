package models

import "time"

// SessionWindow is a named time-of-day interval, resolved to UTC instants
// for one reference day.
type SessionWindow struct {
	Name  string    `json:"name"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SessionSummary carries the high/low extremes of the bars inside one
// session window.
type SessionSummary struct {
	SessionWindow
	High     *float64 `json:"high"`
	Low      *float64 `json:"low"`
	BarCount int      `json:"barCount"`
}

// ClosureStatus reports whether an instant falls inside the weekly trading
// halt, with the halt's boundary instants.
type ClosureStatus struct {
	Closed   bool      `json:"closed"`
	CloseAt  time.Time `json:"fridayClose"`
	ReopenAt time.Time `json:"sundayOpen"`
}

// ResolvedWindow is the effective query window after closure clipping.
type ResolvedWindow struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Adjusted bool      `json:"adjusted"`
}
