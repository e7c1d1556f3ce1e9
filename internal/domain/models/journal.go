package models

import "time"

// JournalEntry is one persisted trade-journal record.
type JournalEntry struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	Side      string    `json:"side,omitempty"`
	Entry     float64   `json:"entry"`
	Stop      float64   `json:"stop"`
	Target    float64   `json:"target"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Trade is one execution record returned by the upstream trade search.
type Trade struct {
	ID            int64     `json:"id"`
	AccountID     int64     `json:"accountId"`
	ContractID    string    `json:"contractId"`
	Time          time.Time `json:"time"`
	Price         float64   `json:"price"`
	Size          float64   `json:"size"`
	Side          int       `json:"side"`
	ProfitAndLoss *float64  `json:"profitAndLoss,omitempty"`
	Fees          float64   `json:"fees"`
	OrderID       int64     `json:"orderId"`
}

// Account is one upstream trading account.
type Account struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Balance   float64 `json:"balance"`
	CanTrade  bool    `json:"canTrade"`
	Simulated bool    `json:"simulated"`
}
