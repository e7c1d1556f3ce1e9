package usecase

import (
	"context"
	"fmt"
	"time"

	"BarPulse/internal/analytics"
	"BarPulse/internal/domain/models"
	"BarPulse/internal/domain/repository"
	"BarPulse/pkg/cache"
	applogger "BarPulse/pkg/logger"
)

// RouteAuto lets the service pick live vs historical by window freshness.
const (
	RouteAuto    = "auto"
	RouteLive    = "live"
	RouteNonLive = "nonlive"
)

// BarQuery is a resolved request for one bar window.
type BarQuery struct {
	SymbolOrContract string
	Interval         string
	Start            time.Time
	End              time.Time
	Route            string
	GuardOn          bool
	AutoWindow       bool
	IncludePartial   bool
}

// BarWindow is the outcome of fetching one bar window: the resolved
// contract, the route taken, the effective window and the bars themselves.
type BarWindow struct {
	ContractID string
	Interval   string
	Live       bool
	Window     models.WindowMeta
	Bars       []models.Bar
}

// BarService resolves contracts and windows and fetches bar sequences,
// applying the weekend-closure policy and the live/historical routing the
// upstream expects.
type BarService struct {
	resolver        repository.ContractResolver
	source          repository.BarSource
	cache           cache.Service
	logger          *applogger.Logger
	liveFreshWindow time.Duration
	barsCacheTTL    time.Duration
	now             func() time.Time
}

// NewBarService creates the bar retrieval service.
func NewBarService(
	resolver repository.ContractResolver,
	source repository.BarSource,
	c cache.Service,
	logger *applogger.Logger,
	liveFreshWindow, barsCacheTTL time.Duration,
) *BarService {
	if liveFreshWindow <= 0 {
		liveFreshWindow = 10 * time.Minute
	}
	return &BarService{
		resolver:        resolver,
		source:          source,
		cache:           c,
		logger:          logger,
		liveFreshWindow: liveFreshWindow,
		barsCacheTTL:    barsCacheTTL,
		now:             time.Now,
	}
}

// Fetch resolves the query's contract and effective window and returns the
// bars. A zero-bar result maps to models.ErrNoBars.
func (s *BarService) Fetch(ctx context.Context, q BarQuery) (*BarWindow, error) {
	if !repository.IsValidInterval(q.Interval) {
		return nil, fmt.Errorf("%w: %q", models.ErrUnsupportedInterval, q.Interval)
	}

	live, err := s.decideRoute(q.Route, q.End)
	if err != nil {
		return nil, err
	}

	win, err := analytics.ResolveWindow(q.Start, q.End, q.GuardOn, q.AutoWindow)
	if err != nil {
		return nil, err
	}
	if win.Adjusted {
		// A clipped window is historical by definition.
		live = false
	}

	contractID, err := s.resolver.ResolveContract(ctx, q.SymbolOrContract, live)
	if err != nil {
		return nil, err
	}

	bars, err := s.fetchBars(ctx, contractID, win.Start, win.End, q.Interval, live, q.IncludePartial)
	if err != nil {
		return nil, err
	}

	// A live fetch can race the feed and come back empty; fall back to the
	// historical route once.
	if len(bars) == 0 && live {
		s.logger.Debug("live fetch empty, falling back to historical",
			applogger.String("contract", contractID),
		)
		live = false
		bars, err = s.fetchBars(ctx, contractID, win.Start, win.End, q.Interval, false, q.IncludePartial)
		if err != nil {
			return nil, err
		}
	}

	if len(bars) == 0 {
		return nil, models.ErrNoBars
	}

	return &BarWindow{
		ContractID: contractID,
		Interval:   q.Interval,
		Live:       live,
		Window: models.WindowMeta{
			RequestedStart: q.Start,
			RequestedEnd:   q.End,
			EffectiveStart: win.Start,
			EffectiveEnd:   win.End,
			Adjusted:       win.Adjusted,
		},
		Bars: bars,
	}, nil
}

func (s *BarService) decideRoute(route string, end time.Time) (bool, error) {
	switch route {
	case RouteLive:
		return true, nil
	case RouteNonLive:
		return false, nil
	case RouteAuto, "":
		return !end.Before(s.now().Add(-s.liveFreshWindow)), nil
	default:
		return false, fmt.Errorf("%w: unknown route %q", models.ErrInvalidRequest, route)
	}
}

// fetchBars caches fully historical windows for a short TTL; live windows
// always go upstream.
func (s *BarService) fetchBars(ctx context.Context, contractID string, start, end time.Time, interval string, live, includePartial bool) ([]models.Bar, error) {
	cacheable := !live && s.cache != nil && s.barsCacheTTL > 0 && end.Before(s.now())
	key := cache.GenerateKeyWithParams("bars", contractID, interval, start.Unix(), end.Unix(), includePartial)

	if cacheable {
		var cached []models.BarDTO
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return models.FromBarDTOs(cached), nil
		}
	}

	bars, err := s.source.FetchBars(ctx, contractID, start, end, interval, live, includePartial)
	if err != nil {
		return nil, err
	}

	if cacheable && len(bars) > 0 {
		if err := s.cache.Set(ctx, key, models.ToBarDTOs(bars), s.barsCacheTTL); err != nil {
			s.logger.Warn("bars cache write failed", applogger.Error(err))
		}
	}
	return bars, nil
}
