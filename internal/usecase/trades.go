package usecase

import (
	"context"
	"fmt"
	"time"

	"BarPulse/internal/domain/models"
	"BarPulse/internal/domain/repository"
	"BarPulse/pkg/util"
)

// TradeService searches upstream executions, defaulting the account to the
// caller's first simulated (practice) account when none is given.
type TradeService struct {
	source repository.TradeSource
	now    func() time.Time
}

// NewTradeService creates the trade search usecase.
func NewTradeService(source repository.TradeSource) *TradeService {
	return &TradeService{source: source, now: time.Now}
}

// Search serves GET /api/trades.
func (s *TradeService) Search(ctx context.Context, req *models.TradesRequest) (*models.TradesResponse, error) {
	accountID := req.AccountID
	if accountID == 0 {
		id, err := s.defaultAccount(ctx)
		if err != nil {
			return nil, err
		}
		accountID = id
	}

	now := s.now().UTC()
	start := now.Add(-7 * 24 * time.Hour)
	if req.Start != "" {
		t, ok := util.ParseTime(req.Start)
		if !ok {
			return nil, fmt.Errorf("%w: bad start time %q", models.ErrInvalidRequest, req.Start)
		}
		start = t.UTC()
	}

	var end time.Time
	if req.End != "" {
		t, ok := util.ParseTime(req.End)
		if !ok {
			return nil, fmt.Errorf("%w: bad end time %q", models.ErrInvalidRequest, req.End)
		}
		end = t.UTC()
	}

	trades, err := s.source.SearchTrades(ctx, accountID, start, end)
	if err != nil {
		return nil, err
	}

	return &models.TradesResponse{
		AccountID: accountID,
		Count:     len(trades),
		Trades:    trades,
	}, nil
}

func (s *TradeService) defaultAccount(ctx context.Context) (int64, error) {
	accounts, err := s.source.SearchAccounts(ctx, true)
	if err != nil {
		return 0, err
	}
	if len(accounts) == 0 {
		return 0, fmt.Errorf("%w: no active accounts available", models.ErrInvalidRequest)
	}

	for _, a := range accounts {
		if a.Simulated {
			return a.ID, nil
		}
	}
	return accounts[0].ID, nil
}
