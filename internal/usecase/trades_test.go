package usecase

import (
	"context"
	"testing"
	"time"

	"BarPulse/internal/domain/models"
)

type fakeTradeSource struct {
	accounts     []models.Account
	trades       []models.Trade
	gotAccountID int64
	gotStart     time.Time
	gotEnd       time.Time
}

func (f *fakeTradeSource) SearchTrades(_ context.Context, accountID int64, start, end time.Time) ([]models.Trade, error) {
	f.gotAccountID = accountID
	f.gotStart = start
	f.gotEnd = end
	return f.trades, nil
}

func (f *fakeTradeSource) SearchAccounts(_ context.Context, _ bool) ([]models.Account, error) {
	return f.accounts, nil
}

func TestTradeSearchPrefersSimulatedAccount(t *testing.T) {
	src := &fakeTradeSource{
		accounts: []models.Account{
			{ID: 11, Name: "FUNDED", Simulated: false},
			{ID: 42, Name: "PRACTICE", Simulated: true},
		},
		trades: []models.Trade{{ID: 1, AccountID: 42}},
	}
	svc := NewTradeService(src)

	resp, err := svc.Search(context.Background(), &models.TradesRequest{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.AccountID != 42 {
		t.Errorf("accountID = %d, want simulated account 42", resp.AccountID)
	}
	if resp.Count != 1 {
		t.Errorf("count = %d, want 1", resp.Count)
	}
}

func TestTradeSearchFallsBackToFirstAccount(t *testing.T) {
	src := &fakeTradeSource{accounts: []models.Account{{ID: 7}, {ID: 8}}}
	svc := NewTradeService(src)

	resp, err := svc.Search(context.Background(), &models.TradesRequest{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.AccountID != 7 {
		t.Errorf("accountID = %d, want first account 7", resp.AccountID)
	}
}

func TestTradeSearchExplicitAccountSkipsLookup(t *testing.T) {
	src := &fakeTradeSource{}
	svc := NewTradeService(src)
	svc.now = func() time.Time { return time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC) }

	resp, err := svc.Search(context.Background(), &models.TradesRequest{AccountID: 99})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.AccountID != 99 {
		t.Errorf("accountID = %d, want 99", resp.AccountID)
	}
	if src.gotAccountID != 99 {
		t.Errorf("upstream accountID = %d, want 99", src.gotAccountID)
	}
	wantStart := time.Date(2026, 8, 19, 12, 0, 0, 0, time.UTC)
	if !src.gotStart.Equal(wantStart) {
		t.Errorf("default start = %v, want %v", src.gotStart, wantStart)
	}
	if !src.gotEnd.IsZero() {
		t.Errorf("default end = %v, want zero (open-ended)", src.gotEnd)
	}
}

func TestTradeSearchNoAccounts(t *testing.T) {
	svc := NewTradeService(&fakeTradeSource{})

	if _, err := svc.Search(context.Background(), &models.TradesRequest{}); err == nil {
		t.Fatal("expected error when no accounts are available")
	}
}
