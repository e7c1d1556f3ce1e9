package usecase

import (
	"context"
	"fmt"
	"time"

	"BarPulse/internal/analytics"
	"BarPulse/internal/domain/models"
	"BarPulse/pkg/util"
)

// IndicatorService computes VWAP and rolling indicators over fetched bar
// windows, applying the request defaulting the endpoints expect.
type IndicatorService struct {
	bars *BarService
	now  func() time.Time
}

// NewIndicatorService creates the indicator/VWAP usecase.
func NewIndicatorService(bars *BarService) *IndicatorService {
	return &IndicatorService{bars: bars, now: time.Now}
}

// Vwap serves GET /api/vwap. Weekly mode defaults the window to the last
// seven days and turns the closure auto-window on.
func (s *IndicatorService) Vwap(ctx context.Context, req *models.VwapRequest) (*models.VwapResponse, error) {
	weekly := req.Mode == "weekly"

	defaultSpan := 6 * time.Hour
	if weekly {
		defaultSpan = 7 * 24 * time.Hour
	}
	start, end, err := s.parseWindow(req.Start, req.End, defaultSpan)
	if err != nil {
		return nil, err
	}

	autoWindow := weekly
	if req.AutoWindow != nil {
		autoWindow = *req.AutoWindow
	}

	window, err := s.bars.Fetch(ctx, BarQuery{
		SymbolOrContract: symbolOrContract(req.Symbol, req.Contract),
		Interval:         req.Interval,
		Start:            start,
		End:              end,
		Route:            routeFor(req.Route, req.Live),
		GuardOn:          req.Guard != "off",
		AutoWindow:       autoWindow,
		IncludePartial:   req.IncludePartial,
	})
	if err != nil {
		return nil, err
	}

	final, series := analytics.VWAP(window.Bars)
	out := make([]models.VwapPoint, len(series))
	for i, b := range window.Bars {
		out[i] = models.VwapPoint{
			Time:         b.Time,
			TypicalPrice: models.FiniteOrNil(b.TypicalPrice()),
			VWAP:         models.FiniteOrNil(series[i]),
			Close:        models.FiniteOrNil(b.Close),
			Volume:       b.Volume,
		}
	}

	return &models.VwapResponse{
		Contract: window.ContractID,
		Interval: window.Interval,
		Live:     window.Live,
		Window:   window.Window,
		Count:    len(window.Bars),
		VWAP:     models.FiniteOrNil(final),
		Series:   out,
	}, nil
}

// Indicators serves GET /api/indicators. When the market is closed and the
// caller did not specify auto_window it defaults to on, so weekend queries
// come back clipped instead of rejected.
func (s *IndicatorService) Indicators(ctx context.Context, req *models.IndicatorsRequest) (*models.IndicatorsResponse, error) {
	if req.SMA <= 0 && req.EMA <= 0 && req.RSI <= 0 {
		return nil, fmt.Errorf("%w: specify at least one indicator length: sma, ema, rsi", models.ErrInvalidRequest)
	}

	start, end, err := s.parseWindow(req.Start, req.End, 6*time.Hour)
	if err != nil {
		return nil, err
	}

	autoWindow := analytics.WeekendStatus(end).Closed
	if req.AutoWindow != nil {
		autoWindow = *req.AutoWindow
	}

	window, err := s.bars.Fetch(ctx, BarQuery{
		SymbolOrContract: symbolOrContract(req.Symbol, req.Contract),
		Interval:         req.Interval,
		Start:            start,
		End:              end,
		Route:            routeFor(req.Route, req.Live),
		GuardOn:          req.Guard != "off",
		AutoWindow:       autoWindow,
		IncludePartial:   req.IncludePartial,
	})
	if err != nil {
		return nil, err
	}

	closes := models.Closes(window.Bars)
	series := make([]models.ClosePoint, len(window.Bars))
	for i, b := range window.Bars {
		series[i] = models.ClosePoint{Time: b.Time, Close: models.FiniteOrNil(b.Close)}
	}

	resp := &models.IndicatorsResponse{
		Contract: window.ContractID,
		Interval: window.Interval,
		Live:     window.Live,
		Window:   window.Window,
		Count:    len(closes),
		Series:   series,
	}
	if len(closes) > 0 {
		resp.Close = models.FiniteOrNil(closes[len(closes)-1])
	}

	if req.SMA > 0 {
		resp.SMA = analytics.LastValue(analytics.SMA(closes, req.SMA))
	}
	if req.EMA > 0 {
		resp.EMA = analytics.LastValue(analytics.EMA(closes, req.EMA))
	}
	if req.RSI > 0 {
		resp.RSI = analytics.LastValue(analytics.RSI(closes, req.RSI))
	}
	return resp, nil
}

// Bars serves GET /api/bars: the canonical bar passthrough.
func (s *IndicatorService) Bars(ctx context.Context, req *models.BarsRequest) (*models.BarsResponse, error) {
	start, end, err := s.parseWindow(req.Start, req.End, 6*time.Hour)
	if err != nil {
		return nil, err
	}

	autoWindow := false
	if req.AutoWindow != nil {
		autoWindow = *req.AutoWindow
	}

	window, err := s.bars.Fetch(ctx, BarQuery{
		SymbolOrContract: symbolOrContract(req.Symbol, req.Contract),
		Interval:         req.Interval,
		Start:            start,
		End:              end,
		Route:            routeFor(req.Route, req.Live),
		GuardOn:          req.Guard != "off",
		AutoWindow:       autoWindow,
		IncludePartial:   req.IncludePartial,
	})
	if err != nil {
		return nil, err
	}

	bars := window.Bars
	if req.Limit > 0 && len(bars) > req.Limit {
		bars = bars[len(bars)-req.Limit:]
	}

	return &models.BarsResponse{
		Contract: window.ContractID,
		Interval: window.Interval,
		Live:     window.Live,
		Window:   window.Window,
		Count:    len(bars),
		Bars:     models.ToBarDTOs(bars),
	}, nil
}

// parseWindow parses the start/end strings, defaulting to [now-span, now]
// when either is absent.
func (s *IndicatorService) parseWindow(start, end string, span time.Duration) (time.Time, time.Time, error) {
	now := s.now().UTC()
	if start == "" || end == "" {
		return now.Add(-span), now, nil
	}

	startT, ok := util.ParseTime(start)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: bad start time %q", models.ErrInvalidRequest, start)
	}
	endT, ok := util.ParseTime(end)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: bad end time %q", models.ErrInvalidRequest, end)
	}
	return startT.UTC(), endT.UTC(), nil
}

func symbolOrContract(symbol, contract string) string {
	if contract != "" {
		return contract
	}
	return symbol
}

// routeFor maps the legacy live=true/false parameter onto the route
// vocabulary; an explicit live flag wins over route.
func routeFor(route string, live *bool) string {
	if live != nil {
		if *live {
			return RouteLive
		}
		return RouteNonLive
	}
	if route == "" {
		return RouteAuto
	}
	return route
}
