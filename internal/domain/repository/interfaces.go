package repository

import (
	"context"
	"time"

	"BarPulse/internal/domain/models"
)

// BarSource fetches canonical bars from the upstream brokerage API. An
// empty sequence is a legitimate result, not an error; network and auth
// failures surface as models.ErrUpstreamUnavailable.
type BarSource interface {
	FetchBars(ctx context.Context, contractID string, start, end time.Time, interval string, live, includePartial bool) ([]models.Bar, error)
}

// ContractResolver turns a human-readable symbol or a contract ID into the
// upstream contract identifier. Fails with models.ErrContractNotFound when
// nothing matches.
type ContractResolver interface {
	ResolveContract(ctx context.Context, symbolOrID string, live bool) (string, error)
}

// TradeSource searches executed trades for an account.
type TradeSource interface {
	SearchTrades(ctx context.Context, accountID int64, start, end time.Time) ([]models.Trade, error)
	SearchAccounts(ctx context.Context, onlyActive bool) ([]models.Account, error)
}

// JournalStore persists trade-journal entries.
type JournalStore interface {
	Init(ctx context.Context) error
	Append(ctx context.Context, entry *models.JournalEntry) error
	Close() error
}

// Metrics records operational measurements.
type Metrics interface {
	RecordUpstreamRequest(endpoint, result string)
	RecordError(kind string)
	RecordBarsFetched(interval string, count int)
	RecordLatency(op string, seconds float64)
}
