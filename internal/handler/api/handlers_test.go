package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"BarPulse/internal/domain/models"
	"BarPulse/internal/usecase"
	applogger "BarPulse/pkg/logger"
)

type stubResolver struct{ id string }

func (s *stubResolver) ResolveContract(context.Context, string, bool) (string, error) {
	return s.id, nil
}

type stubSource struct{ bars []models.Bar }

func (s *stubSource) FetchBars(context.Context, string, time.Time, time.Time, string, bool, bool) ([]models.Bar, error) {
	return s.bars, nil
}

type stubTradeSource struct {
	accounts []models.Account
	trades   []models.Trade
}

func (s *stubTradeSource) SearchTrades(context.Context, int64, time.Time, time.Time) ([]models.Trade, error) {
	return s.trades, nil
}

func (s *stubTradeSource) SearchAccounts(context.Context, bool) ([]models.Account, error) {
	return s.accounts, nil
}

type stubJournalStore struct{ entries []*models.JournalEntry }

func (s *stubJournalStore) Init(context.Context) error { return nil }
func (s *stubJournalStore) Append(_ context.Context, e *models.JournalEntry) error {
	s.entries = append(s.entries, e)
	return nil
}
func (s *stubJournalStore) Close() error { return nil }

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func stubBars(base time.Time, n int) []models.Bar {
	bars := make([]models.Bar, n)
	for i := range bars {
		p := 100 + float64(i)
		bars[i] = models.Bar{
			Time:   base.Add(time.Duration(i) * time.Minute),
			Open:   p,
			High:   p + 1,
			Low:    p - 1,
			Close:  p,
			Volume: 10,
		}
	}
	return bars
}

func newTestServer(t *testing.T, bars []models.Bar) (*echo.Echo, *stubJournalStore) {
	t.Helper()
	logger, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	chicago, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatalf("load tz: %v", err)
	}

	resolver := &stubResolver{id: "CON.F.US.MES.U26"}
	source := &stubSource{bars: bars}
	barSvc := usecase.NewBarService(resolver, source, nil, logger, 10*time.Minute, 0)
	indSvc := usecase.NewIndicatorService(barSvc)
	ctxSvc := usecase.NewContextService(resolver, source, chicago, 2, logger)

	tradeSvc := usecase.NewTradeService(&stubTradeSource{
		accounts: []models.Account{{ID: 42, Simulated: true}},
		trades:   []models.Trade{{ID: 1, AccountID: 42, Price: 5321.25}},
	})
	store := &stubJournalStore{}
	journalSvc := usecase.NewJournalService(store, logger)

	e := echo.New()
	NewHandlers(
		NewAnalyticsHandler(logger, indSvc, ctxSvc),
		NewDataHandler(logger, indSvc, tradeSvc, journalSvc),
	).RegisterRoutes(e)
	return e, store
}

func doGET(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return env
}

func TestHealth(t *testing.T) {
	e, _ := newTestServer(t, nil)
	rec := doGET(e, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestHoursClosedSaturday(t *testing.T) {
	e, _ := newTestServer(t, nil)
	rec := doGET(e, "/hours?at=2026-08-22T12:00:00Z")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var status models.ClosureStatus
	if err := json.Unmarshal(decode(t, rec).Data, &status); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if !status.Closed {
		t.Error("Saturday noon should be closed")
	}
	if want := time.Date(2026, 8, 21, 20, 0, 0, 0, time.UTC); !status.CloseAt.Equal(want) {
		t.Errorf("fridayClose = %v, want %v", status.CloseAt, want)
	}
}

func TestVwapEndpoint(t *testing.T) {
	base := time.Date(2026, 8, 25, 14, 0, 0, 0, time.UTC)
	e, _ := newTestServer(t, stubBars(base, 10))

	rec := doGET(e, "/api/vwap?symbol=MES&start=2026-08-25T14:00:00Z&end=2026-08-25T15:00:00Z&route=nonlive&guard=off")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res models.VwapResponse
	if err := json.Unmarshal(decode(t, rec).Data, &res); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if res.Contract != "CON.F.US.MES.U26" {
		t.Errorf("contract = %q", res.Contract)
	}
	if res.VWAP == nil {
		t.Error("vwap should be present for volume-bearing bars")
	}
	if res.Count != 10 {
		t.Errorf("count = %d, want 10", res.Count)
	}
}

func TestVwapMissingSymbolIsBadRequest(t *testing.T) {
	e, _ := newTestServer(t, nil)
	if rec := doGET(e, "/api/vwap"); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestIndicatorsRequiresALength(t *testing.T) {
	base := time.Date(2026, 8, 25, 14, 0, 0, 0, time.UTC)
	e, _ := newTestServer(t, stubBars(base, 10))

	rec := doGET(e, "/api/indicators?symbol=MES&start=2026-08-25T14:00:00Z&end=2026-08-25T15:00:00Z&route=nonlive&guard=off")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestIndicatorsEndpoint(t *testing.T) {
	base := time.Date(2026, 8, 25, 14, 0, 0, 0, time.UTC)
	e, _ := newTestServer(t, stubBars(base, 10))

	rec := doGET(e, "/api/indicators?symbol=MES&sma=3&ema=3&start=2026-08-25T14:00:00Z&end=2026-08-25T15:00:00Z&route=nonlive&guard=off")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res models.IndicatorsResponse
	if err := json.Unmarshal(decode(t, rec).Data, &res); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if res.SMA == nil || *res.SMA != 108 {
		t.Errorf("sma = %v, want 108 (mean of closes 107..109)", res.SMA)
	}
	if res.RSI != nil {
		t.Error("rsi should be absent when not requested")
	}
}

func TestBarsUnsupportedInterval(t *testing.T) {
	e, _ := newTestServer(t, nil)
	rec := doGET(e, "/api/bars?symbol=MES&interval=7m&route=nonlive&guard=off")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestBarsEmptyUpstreamIsNotFound(t *testing.T) {
	e, _ := newTestServer(t, nil)
	rec := doGET(e, "/api/bars?symbol=MES&start=2026-08-25T14:00:00Z&end=2026-08-25T15:00:00Z&route=nonlive&guard=off")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestBarsClosedMarketConflict(t *testing.T) {
	e, _ := newTestServer(t, nil)
	rec := doGET(e, "/api/bars?symbol=MES&start=2026-08-22T10:00:00Z&end=2026-08-22T12:00:00Z&route=nonlive")
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestContextLevelsEndpoint(t *testing.T) {
	base := time.Date(2026, 8, 25, 14, 0, 0, 0, time.UTC)
	e, _ := newTestServer(t, stubBars(base, 10))

	rec := doGET(e, "/api/context/levels?symbol=MES&asOf=2026-08-26T15:00:00Z")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res models.ContextLevelsResponse
	if err := json.Unmarshal(decode(t, rec).Data, &res); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if res.Contract != "CON.F.US.MES.U26" {
		t.Errorf("contract = %q", res.Contract)
	}
	if len(res.Sessions) != 2 {
		t.Errorf("sessions = %d, want 2", len(res.Sessions))
	}
}

func TestTradesEndpoint(t *testing.T) {
	e, _ := newTestServer(t, nil)
	rec := doGET(e, "/api/trades")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res models.TradesResponse
	if err := json.Unmarshal(decode(t, rec).Data, &res); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if res.AccountID != 42 || res.Count != 1 {
		t.Errorf("response = %+v, want account 42 with one trade", res)
	}
}

func TestJournalCreateEndpoint(t *testing.T) {
	e, store := newTestServer(t, nil)

	body := `{"symbol":"MES","side":"long","entry":5321.25,"stop":5310,"target":5350,"notes":"gap fill long"}`
	req := httptest.NewRequest(http.MethodPost, "/api/journal", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var entry models.JournalEntry
	if err := json.Unmarshal(decode(t, rec).Data, &entry); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if entry.ID == "" || entry.Symbol != "MES" {
		t.Errorf("entry = %+v", entry)
	}
	if len(store.entries) != 1 {
		t.Errorf("stored entries = %d, want 1", len(store.entries))
	}
}

func TestJournalCreateRejectsMissingSymbol(t *testing.T) {
	e, _ := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/journal", strings.NewReader(`{"entry":1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
