package models

// Requests for analytics HTTP endpoints. Defined in domain for consistency and reuse.

// WindowRequest carries the shared window/routing parameters of the bar
// analytics endpoints. Symbol and Contract are alternatives; Contract wins
// when both are set. AutoWindow is a pointer so handlers can tell "not
// specified" apart from an explicit false.
type WindowRequest struct {
	Symbol         string `query:"symbol" json:"symbol" validate:"required_without=Contract"`
	Contract       string `query:"contract" json:"contract"`
	Interval       string `query:"interval" json:"interval" default:"1m"`
	Start          string `query:"start" json:"start"`
	End            string `query:"end" json:"end"`
	Route          string `query:"route" json:"route" default:"auto" validate:"oneof=auto live nonlive"`
	Live           *bool  `query:"live" json:"live"`
	Guard          string `query:"guard" json:"guard" default:"on" validate:"oneof=on off"`
	AutoWindow     *bool  `query:"auto_window" json:"auto_window"`
	IncludePartial bool   `query:"include_partial" json:"include_partial"`
}

type VwapRequest struct {
	WindowRequest
	Mode string `query:"mode" json:"mode" validate:"omitempty,oneof=weekly"`
}

type IndicatorsRequest struct {
	WindowRequest
	SMA int `query:"sma" json:"sma" validate:"gte=0,lte=500"`
	EMA int `query:"ema" json:"ema" validate:"gte=0,lte=500"`
	RSI int `query:"rsi" json:"rsi" validate:"gte=0,lte=500"`
}

type ContextLevelsRequest struct {
	Symbol   string `query:"symbol" json:"symbol" validate:"required_without=Contract"`
	Contract string `query:"contract" json:"contract"`
	AsOf     string `query:"asOf" json:"asOf"`
	Live     bool   `query:"live" json:"live"`
}

type BarsRequest struct {
	WindowRequest
	Limit int `query:"limit" json:"limit" validate:"gte=0,lte=20000"`
}

type TradesRequest struct {
	AccountID int64  `query:"accountId" json:"accountId" validate:"gte=0"`
	Start     string `query:"start" json:"start"`
	End       string `query:"end" json:"end"`
}

type JournalCreateRequest struct {
	Symbol string  `json:"symbol" validate:"required"`
	Side   string  `json:"side" validate:"omitempty,oneof=long short"`
	Entry  float64 `json:"entry" validate:"required"`
	Stop   float64 `json:"stop"`
	Target float64 `json:"target"`
	Notes  string  `json:"notes" validate:"max=4096"`
}
