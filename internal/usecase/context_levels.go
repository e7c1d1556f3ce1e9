package usecase

import (
	"context"
	"fmt"
	"time"

	"BarPulse/internal/analytics"
	"BarPulse/internal/domain/models"
	"BarPulse/internal/domain/repository"
	applogger "BarPulse/pkg/logger"
	"BarPulse/pkg/util"
)

const (
	higherTfInterval = "4h"
	lowerTfInterval  = "15m"

	// Untaken 4h levels look back five days, padded an hour so the first
	// bar's neighbor window is complete.
	higherTfLookback = 5*24*time.Hour + time.Hour

	// The 15m fetch starts two hours before the Asian open so early swings
	// have left neighbors.
	lowerTfLeadIn = 2 * time.Hour
)

// ContextService assembles the market-structure context for one contract:
// higher-timeframe untaken levels, session high/lows, swings since the
// prior close and open fair value gaps.
type ContextService struct {
	resolver  repository.ContractResolver
	source    repository.BarSource
	loc       *time.Location
	neighbors int
	logger    *applogger.Logger
	now       func() time.Time
}

// NewContextService creates the context-levels usecase.
func NewContextService(
	resolver repository.ContractResolver,
	source repository.BarSource,
	loc *time.Location,
	neighbors int,
	logger *applogger.Logger,
) *ContextService {
	if neighbors <= 0 {
		neighbors = analytics.DefaultNeighbors
	}
	return &ContextService{
		resolver:  resolver,
		source:    source,
		loc:       loc,
		neighbors: neighbors,
		logger:    logger,
		now:       time.Now,
	}
}

// Levels serves GET /api/context/levels.
func (s *ContextService) Levels(ctx context.Context, req *models.ContextLevelsRequest) (*models.ContextLevelsResponse, error) {
	asOf := s.now().UTC()
	if req.AsOf != "" {
		t, ok := util.ParseTime(req.AsOf)
		if !ok {
			return nil, fmt.Errorf("%w: bad asOf %q", models.ErrInvalidRequest, req.AsOf)
		}
		asOf = t.UTC()
	}

	contractID, err := s.resolver.ResolveContract(ctx, symbolOrContract(req.Symbol, req.Contract), req.Live)
	if err != nil {
		return nil, err
	}

	// Higher timeframe: untaken swing levels over the last five days.
	h4Bars, err := s.source.FetchBars(ctx, contractID, asOf.Add(-higherTfLookback), asOf, higherTfInterval, req.Live, false)
	if err != nil {
		return nil, err
	}
	untaken := analytics.UntakenLevels(analytics.ScanSwings(h4Bars, s.neighbors, s.neighbors))

	// Lower timeframe: one fetch covers the sessions, the prior-close
	// swings and the gap scan.
	windows := analytics.SessionWindows(asOf, s.loc)
	asian, _ := analytics.SessionWindowByName(windows, analytics.SessionAsian)
	london, _ := analytics.SessionWindowByName(windows, analytics.SessionLondon)
	prior, _ := analytics.SessionWindowByName(windows, analytics.SessionPriorDay)

	m15Bars, err := s.source.FetchBars(ctx, contractID, asian.Start.Add(-lowerTfLeadIn), asOf, lowerTfInterval, req.Live, false)
	if err != nil {
		return nil, err
	}

	sessions := []models.SessionSummary{
		analytics.SummarizeSession(m15Bars, asian),
		analytics.SummarizeSession(m15Bars, london),
	}

	prevCloseBars := models.SliceBars(m15Bars, prior.Start, prior.End)
	prevCloseLevels := analytics.ScanSwings(prevCloseBars, s.neighbors, s.neighbors)

	openGaps := analytics.OpenImbalances(analytics.ScanImbalances(m15Bars))

	s.logger.Debug("context levels computed",
		applogger.String("contract", contractID),
		applogger.Int("untaken", len(untaken)),
		applogger.Int("openGaps", len(openGaps)),
	)

	return &models.ContextLevelsResponse{
		Contract:        contractID,
		AsOf:            asOf,
		UntakenLevels:   untaken,
		Sessions:        sessions,
		PrevCloseLevels: prevCloseLevels,
		OpenGaps:        openGaps,
	}, nil
}
