package repository

import (
	"errors"
	"testing"
	"time"

	"BarPulse/internal/domain/models"
)

func TestParseInterval(t *testing.T) {
	tests := []struct {
		in     string
		unit   int
		number int
	}{
		{"1s", IntervalUnitSecond, 1},
		{"30s", IntervalUnitSecond, 30},
		{"1m", IntervalUnitMinute, 1},
		{"15m", IntervalUnitMinute, 15},
		{"4h", IntervalUnitHour, 4},
		{"1d", IntervalUnitDay, 1},
		{"1w", IntervalUnitWeek, 1},
		{"1M", IntervalUnitMonth, 1},
	}
	for _, tc := range tests {
		unit, number, err := ParseInterval(tc.in)
		if err != nil {
			t.Errorf("ParseInterval(%q): %v", tc.in, err)
			continue
		}
		if unit != tc.unit || number != tc.number {
			t.Errorf("ParseInterval(%q) = (%d, %d), want (%d, %d)", tc.in, unit, number, tc.unit, tc.number)
		}
	}
}

func TestParseIntervalUnsupported(t *testing.T) {
	for _, in := range []string{"", "7m", "1h30m", "2d", "1mo"} {
		if _, _, err := ParseInterval(in); !errors.Is(err, models.ErrUnsupportedInterval) {
			t.Errorf("ParseInterval(%q) err = %v, want ErrUnsupportedInterval", in, err)
		}
		if IsValidInterval(in) {
			t.Errorf("IsValidInterval(%q) = true", in)
		}
	}
}

func TestIntervalDuration(t *testing.T) {
	if d := IntervalDuration("15m"); d != 15*time.Minute {
		t.Errorf("duration(15m) = %v", d)
	}
	if d := IntervalDuration("bogus"); d != 0 {
		t.Errorf("duration(bogus) = %v, want 0", d)
	}
}
