package analytics

import (
	"errors"
	"testing"
	"time"

	"BarPulse/internal/domain/models"
)

// 2026-08-21 is a Friday; 2026-08-23 the following Sunday.
var (
	fridayClose = time.Date(2026, 8, 21, 20, 0, 0, 0, time.UTC)
	sundayOpen  = time.Date(2026, 8, 23, 22, 0, 0, 0, time.UTC)
)

func TestWeekendStatus(t *testing.T) {
	tests := []struct {
		name   string
		at     time.Time
		closed bool
	}{
		{"friday close boundary is open", fridayClose, false},
		{"millisecond after close", fridayClose.Add(time.Millisecond), true},
		{"saturday noon", time.Date(2026, 8, 22, 12, 0, 0, 0, time.UTC), true},
		{"millisecond before reopen", sundayOpen.Add(-time.Millisecond), true},
		{"sunday open boundary is open", sundayOpen, false},
		{"friday morning", time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC), false},
		{"wednesday", time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC), false},
		{"monday", time.Date(2026, 8, 24, 3, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := WeekendStatus(tt.at)
			if status.Closed != tt.closed {
				t.Errorf("closed = %v, want %v", status.Closed, tt.closed)
			}
		})
	}
}

func TestWeekendStatusBoundaries(t *testing.T) {
	// Every instant inside the weekend reports the same boundary pair.
	status := WeekendStatus(time.Date(2026, 8, 22, 12, 0, 0, 0, time.UTC))
	if !status.CloseAt.Equal(fridayClose) {
		t.Errorf("closeAt = %v, want %v", status.CloseAt, fridayClose)
	}
	if !status.ReopenAt.Equal(sundayOpen) {
		t.Errorf("reopenAt = %v, want %v", status.ReopenAt, sundayOpen)
	}

	// A Friday morning instant anchors to the same day's close.
	status = WeekendStatus(time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC))
	if !status.CloseAt.Equal(fridayClose) {
		t.Errorf("friday morning closeAt = %v, want %v", status.CloseAt, fridayClose)
	}
}

func TestResolveWindowOpenMarketPassThrough(t *testing.T) {
	start := time.Date(2026, 8, 25, 6, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	win, err := ResolveWindow(start, end, true, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !win.Start.Equal(start) || !win.End.Equal(end) || win.Adjusted {
		t.Errorf("open market must pass through unchanged, got %+v", win)
	}
}

func TestResolveWindowGuardRejects(t *testing.T) {
	start := time.Date(2026, 8, 22, 6, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 22, 12, 0, 0, 0, time.UTC)

	_, err := ResolveWindow(start, end, true, false)
	if !errors.Is(err, models.ErrMarketClosed) {
		t.Fatalf("err = %v, want ErrMarketClosed", err)
	}
}

func TestResolveWindowGuardOffPassThrough(t *testing.T) {
	start := time.Date(2026, 8, 22, 6, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 22, 12, 0, 0, 0, time.UTC)

	win, err := ResolveWindow(start, end, false, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !win.End.Equal(end) || win.Adjusted {
		t.Errorf("guard off must pass through, got %+v", win)
	}
}

func TestResolveWindowClipPreservesDuration(t *testing.T) {
	// Saturday request, six hours wide: clipped to end at Friday close.
	start := time.Date(2026, 8, 22, 6, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 22, 12, 0, 0, 0, time.UTC)

	win, err := ResolveWindow(start, end, true, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !win.Adjusted {
		t.Errorf("clipping must be reported")
	}
	if !win.End.Equal(fridayClose) {
		t.Errorf("effective end = %v, want friday close %v", win.End, fridayClose)
	}
	if got := win.End.Sub(win.Start); got != 6*time.Hour {
		t.Errorf("effective duration = %v, want 6h", got)
	}
}

func TestResolveWindowClipCapsAtSevenDays(t *testing.T) {
	end := time.Date(2026, 8, 22, 12, 0, 0, 0, time.UTC)
	start := end.Add(-10 * 24 * time.Hour)

	win, err := ResolveWindow(start, end, true, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := win.End.Sub(win.Start); got != maxAutoWindow {
		t.Errorf("effective duration = %v, want 7d cap", got)
	}
}
