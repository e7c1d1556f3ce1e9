package usecase

import (
	"context"
	"testing"
	"time"

	"BarPulse/internal/domain/models"
)

type intervalSource struct {
	byInterval map[string][]models.Bar
	starts     map[string]time.Time
}

func (f *intervalSource) FetchBars(_ context.Context, _ string, start, _ time.Time, interval string, _, _ bool) ([]models.Bar, error) {
	if f.starts == nil {
		f.starts = make(map[string]time.Time)
	}
	f.starts[interval] = start
	return f.byInterval[interval], nil
}

func h4Fixture(base time.Time, highs []float64) []models.Bar {
	bars := make([]models.Bar, len(highs))
	for i, h := range highs {
		bars[i] = models.Bar{
			Time:   base.Add(time.Duration(i) * 4 * time.Hour),
			Open:   h - 1,
			High:   h,
			Low:    h - 2,
			Close:  h - 1,
			Volume: 100,
		}
	}
	return bars
}

func TestContextLevels(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatalf("load tz: %v", err)
	}
	asOf := time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC) // 10:00 CDT

	// Highs peak at index 2 and never get taken out.
	h4Base := asOf.Add(-24 * time.Hour)
	h4Bars := h4Fixture(h4Base, []float64{5300, 5310, 5320, 5310, 5300})

	// Three Asian bars and one London bar, all CDT-derived UTC instants.
	m15Bars := []models.Bar{
		{Time: time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC), Open: 100, High: 110, Low: 90, Close: 105, Volume: 10},
		{Time: time.Date(2026, 8, 26, 0, 15, 0, 0, time.UTC), Open: 105, High: 115, Low: 95, Close: 110, Volume: 10},
		{Time: time.Date(2026, 8, 26, 0, 30, 0, 0, time.UTC), Open: 110, High: 112, Low: 92, Close: 100, Volume: 10},
		{Time: time.Date(2026, 8, 26, 8, 0, 0, 0, time.UTC), Open: 100, High: 120, Low: 100, Close: 118, Volume: 10},
	}

	src := &intervalSource{byInterval: map[string][]models.Bar{
		"4h":  h4Bars,
		"15m": m15Bars,
	}}
	svc := NewContextService(&fakeResolver{id: "CON.F.US.MES.U26"}, src, chicago, 2, testLogger(t))
	svc.now = func() time.Time { return asOf }

	resp, err := svc.Levels(context.Background(), &models.ContextLevelsRequest{Symbol: "MES"})
	if err != nil {
		t.Fatalf("Levels: %v", err)
	}

	if resp.Contract != "CON.F.US.MES.U26" {
		t.Errorf("contract = %q", resp.Contract)
	}
	if !resp.AsOf.Equal(asOf) {
		t.Errorf("asOf = %v, want %v", resp.AsOf, asOf)
	}

	if len(resp.UntakenLevels) != 1 {
		t.Fatalf("untaken levels = %d, want 1", len(resp.UntakenLevels))
	}
	if lvl := resp.UntakenLevels[0]; lvl.Kind != models.SwingHigh || lvl.Price != 5320 {
		t.Errorf("untaken level = %+v, want swing high at 5320", lvl)
	}

	if len(resp.Sessions) != 2 {
		t.Fatalf("sessions = %d, want asian and london", len(resp.Sessions))
	}
	asian := resp.Sessions[0]
	if asian.Name != "asian" || asian.BarCount != 3 {
		t.Errorf("asian = %+v, want 3 bars", asian)
	}
	if asian.High == nil || *asian.High != 115 || asian.Low == nil || *asian.Low != 90 {
		t.Errorf("asian extremes = %v/%v, want 115/90", asian.High, asian.Low)
	}
	london := resp.Sessions[1]
	if london.Name != "london" || london.BarCount != 1 {
		t.Errorf("london = %+v, want 1 bar", london)
	}

	// The Asian open is 18:00 CDT the prior evening; the 15m fetch leads it
	// by two hours.
	wantM15Start := time.Date(2026, 8, 25, 21, 0, 0, 0, time.UTC)
	if !src.starts["15m"].Equal(wantM15Start) {
		t.Errorf("15m fetch start = %v, want %v", src.starts["15m"], wantM15Start)
	}
	wantH4Start := asOf.Add(-(5*24*time.Hour + time.Hour))
	if !src.starts["4h"].Equal(wantH4Start) {
		t.Errorf("4h fetch start = %v, want %v", src.starts["4h"], wantH4Start)
	}
}

func TestContextLevelsExplicitAsOf(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatalf("load tz: %v", err)
	}
	src := &intervalSource{byInterval: map[string][]models.Bar{}}
	svc := NewContextService(&fakeResolver{id: "CON.F.US.NQ.U26"}, src, chicago, 2, testLogger(t))

	resp, err := svc.Levels(context.Background(), &models.ContextLevelsRequest{
		Contract: "CON.F.US.NQ.U26",
		AsOf:     "2026-08-25T14:00:00Z",
	})
	if err != nil {
		t.Fatalf("Levels: %v", err)
	}
	if want := time.Date(2026, 8, 25, 14, 0, 0, 0, time.UTC); !resp.AsOf.Equal(want) {
		t.Errorf("asOf = %v, want %v", resp.AsOf, want)
	}
	if len(resp.UntakenLevels) != 0 || len(resp.OpenGaps) != 0 {
		t.Error("empty upstream should produce empty context")
	}
	if resp.Sessions[0].BarCount != 0 || resp.Sessions[0].High != nil {
		t.Errorf("empty asian session = %+v", resp.Sessions[0])
	}
}
