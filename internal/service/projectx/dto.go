package projectx

import (
	"math"

	"BarPulse/internal/domain/models"
	"BarPulse/pkg/util"
)

// The upstream answers with either short ("t", "o", ...) or long ("time",
// "open", ...) field names depending on the endpoint generation. The DTOs
// accept both; normalization to the canonical models happens here and only
// here.

type barDTO struct {
	T      *string  `json:"t"`
	Time   *string  `json:"time"`
	O      *float64 `json:"o"`
	Open   *float64 `json:"open"`
	H      *float64 `json:"h"`
	High   *float64 `json:"high"`
	L      *float64 `json:"l"`
	Low    *float64 `json:"low"`
	C      *float64 `json:"c"`
	Close  *float64 `json:"close"`
	V      *float64 `json:"v"`
	Volume *float64 `json:"volume"`
}

func firstString(candidates ...*string) (string, bool) {
	for _, c := range candidates {
		if c != nil && *c != "" {
			return *c, true
		}
	}
	return "", false
}

func firstPrice(candidates ...*float64) float64 {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return math.NaN()
}

// toBar converts a DTO to a canonical bar. A bar without a parseable
// timestamp is unusable and dropped.
func (d *barDTO) toBar() (models.Bar, bool) {
	raw, ok := firstString(d.T, d.Time)
	if !ok {
		return models.Bar{}, false
	}
	ts, ok := util.ParseTime(raw)
	if !ok {
		return models.Bar{}, false
	}

	volume := firstPrice(d.V, d.Volume)
	if math.IsNaN(volume) {
		volume = 0
	}

	return models.Bar{
		Time:   ts.UTC(),
		Open:   firstPrice(d.O, d.Open),
		High:   firstPrice(d.H, d.High),
		Low:    firstPrice(d.L, d.Low),
		Close:  firstPrice(d.C, d.Close),
		Volume: volume,
	}, true
}

func toBars(dtos []barDTO) []models.Bar {
	bars := make([]models.Bar, 0, len(dtos))
	for i := range dtos {
		if b, ok := dtos[i].toBar(); ok {
			bars = append(bars, b)
		}
	}
	return bars
}

type loginRequest struct {
	UserName string `json:"userName"`
	APIKey   string `json:"apiKey"`
}

type loginResponse struct {
	Token        string `json:"token"`
	Success      bool   `json:"success"`
	ErrorMessage string `json:"errorMessage"`
}

type retrieveBarsRequest struct {
	ContractID        string `json:"contractId"`
	Live              bool   `json:"live"`
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	Unit              int    `json:"unit"`
	UnitNumber        int    `json:"unitNumber"`
	Limit             int    `json:"limit"`
	IncludePartialBar bool   `json:"includePartialBar"`
}

type retrieveBarsResponse struct {
	Bars []barDTO `json:"bars"`
}

type contractSearchRequest struct {
	SearchText   string `json:"searchText"`
	Live         bool   `json:"live"`
	OnlyTradable bool   `json:"onlyTradable"`
	Limit        int    `json:"limit"`
}

type contractDTO struct {
	ID             string `json:"id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	IsFront        bool   `json:"isFront"`
	ActiveContract bool   `json:"activeContract"`
}

func (c *contractDTO) identifier() string {
	if c.ID != "" {
		return c.ID
	}
	return c.Code
}

type contractSearchResponse struct {
	Contracts []contractDTO `json:"contracts"`
}

type contractByIDRequest struct {
	ContractID string `json:"contractId"`
}

type contractByIDResponse struct {
	Contract *contractDTO `json:"contract"`
}

type tradeSearchRequest struct {
	AccountID      int64  `json:"accountId"`
	StartTimestamp string `json:"startTimestamp"`
	EndTimestamp   string `json:"endTimestamp,omitempty"`
}

type tradeDTO struct {
	ID            int64    `json:"id"`
	AccountID     int64    `json:"accountId"`
	ContractID    string   `json:"contractId"`
	CreationTime  string   `json:"creationTimestamp"`
	Price         float64  `json:"price"`
	Size          float64  `json:"size"`
	Side          int      `json:"side"`
	ProfitAndLoss *float64 `json:"profitAndLoss"`
	Fees          float64  `json:"fees"`
	OrderID       int64    `json:"orderId"`
}

type tradeSearchResponse struct {
	Trades []tradeDTO `json:"trades"`
}

type accountSearchRequest struct {
	OnlyActiveAccounts bool `json:"onlyActiveAccounts"`
}

type accountDTO struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Balance   float64 `json:"balance"`
	CanTrade  bool    `json:"canTrade"`
	Simulated bool    `json:"simulated"`
}

type accountSearchResponse struct {
	Accounts []accountDTO `json:"accounts"`
}
