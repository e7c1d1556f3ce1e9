package models

import (
	"math"
	"time"
)

// BarDTO is the JSON shape of a canonical bar. Missing prices marshal as
// null rather than NaN.
type BarDTO struct {
	Time   time.Time `json:"time"`
	Open   *float64  `json:"open"`
	High   *float64  `json:"high"`
	Low    *float64  `json:"low"`
	Close  *float64  `json:"close"`
	Volume float64   `json:"volume"`
}

// FiniteOrNil converts NaN to nil for JSON output.
func FiniteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ToBarDTO converts a canonical bar to its JSON shape.
func ToBarDTO(b Bar) BarDTO {
	return BarDTO{
		Time:   b.Time,
		Open:   FiniteOrNil(b.Open),
		High:   FiniteOrNil(b.High),
		Low:    FiniteOrNil(b.Low),
		Close:  FiniteOrNil(b.Close),
		Volume: b.Volume,
	}
}

// ToBarDTOs converts a bar sequence for JSON output.
func ToBarDTOs(bars []Bar) []BarDTO {
	out := make([]BarDTO, len(bars))
	for i := range bars {
		out[i] = ToBarDTO(bars[i])
	}
	return out
}

// FromBarDTOs converts JSON bars back to canonical form, restoring NaN for
// null prices. Used when bars round-trip through a cache.
func FromBarDTOs(dtos []BarDTO) []Bar {
	nanIfNil := func(v *float64) float64 {
		if v == nil {
			return math.NaN()
		}
		return *v
	}

	out := make([]Bar, len(dtos))
	for i, d := range dtos {
		out[i] = Bar{
			Time:   d.Time,
			Open:   nanIfNil(d.Open),
			High:   nanIfNil(d.High),
			Low:    nanIfNil(d.Low),
			Close:  nanIfNil(d.Close),
			Volume: d.Volume,
		}
	}
	return out
}

// WindowMeta describes the requested and effective query window of an
// analytics response.
type WindowMeta struct {
	RequestedStart time.Time `json:"requestedStart"`
	RequestedEnd   time.Time `json:"requestedEnd"`
	EffectiveStart time.Time `json:"effectiveStart"`
	EffectiveEnd   time.Time `json:"effectiveEnd"`
	Adjusted       bool      `json:"adjusted"`
}

// VwapPoint is one bar's contribution to the cumulative VWAP series.
type VwapPoint struct {
	Time         time.Time `json:"time"`
	TypicalPrice *float64  `json:"typicalPrice"`
	VWAP         *float64  `json:"vwap"`
	Close        *float64  `json:"close"`
	Volume       float64   `json:"volume"`
}

// VwapResponse is the payload of GET /api/vwap.
type VwapResponse struct {
	Contract string      `json:"contract"`
	Interval string      `json:"interval"`
	Live     bool        `json:"live"`
	Window   WindowMeta  `json:"window"`
	Count    int         `json:"count"`
	VWAP     *float64    `json:"vwap"`
	Series   []VwapPoint `json:"series,omitempty"`
}

// ClosePoint pairs a bar timestamp with its closing price.
type ClosePoint struct {
	Time  time.Time `json:"time"`
	Close *float64  `json:"close"`
}

// IndicatorsResponse is the payload of GET /api/indicators.
type IndicatorsResponse struct {
	Contract string       `json:"contract"`
	Interval string       `json:"interval"`
	Live     bool         `json:"live"`
	Window   WindowMeta   `json:"window"`
	Count    int          `json:"count"`
	Series   []ClosePoint `json:"series"`
	SMA      *float64     `json:"sma,omitempty"`
	EMA      *float64     `json:"ema,omitempty"`
	RSI      *float64     `json:"rsi,omitempty"`
	Close    *float64     `json:"close"`
}

// ContextLevelsResponse is the payload of GET /api/context/levels.
type ContextLevelsResponse struct {
	Contract        string           `json:"contract"`
	AsOf            time.Time        `json:"asOf"`
	UntakenLevels   []Level          `json:"untakenLevels"`
	Sessions        []SessionSummary `json:"sessions"`
	PrevCloseLevels []Level          `json:"prevCloseLevels"`
	OpenGaps        []Imbalance      `json:"openGaps"`
}

// BarsResponse is the payload of GET /api/bars.
type BarsResponse struct {
	Contract string     `json:"contract"`
	Interval string     `json:"interval"`
	Live     bool       `json:"live"`
	Window   WindowMeta `json:"window"`
	Count    int        `json:"count"`
	Bars     []BarDTO   `json:"bars"`
}

// TradesResponse is the payload of GET /api/trades.
type TradesResponse struct {
	AccountID int64   `json:"accountId"`
	Count     int     `json:"count"`
	Trades    []Trade `json:"trades"`
}
