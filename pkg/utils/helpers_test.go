package utils

import (
	"testing"
	"time"
)

func TestDaysSince(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		from time.Time
		want int
	}{
		{time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC), 366},
		{time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(1500, 1, 1, 0, 0, 0, 0, time.UTC), 191456},
		{time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC), 738954},
	}

	for _, tt := range tests {
		if got := DaysSince(tt.from, now); got != tt.want {
			t.Errorf("DaysSince(%s) = %d; want %d", tt.from.Format(time.DateOnly), got, tt.want)
		}
	}
}

func TestDaysBetweenFloorsNegative(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	if got := DaysBetween(now.Add(3*time.Hour), now); got != -1 {
		t.Errorf("DaysBetween(+3h) = %d; want -1", got)
	}
	if got := DaysBetween(now.Add(-47*time.Hour), now); got != 1 {
		t.Errorf("DaysBetween(-47h) = %d; want 1", got)
	}
	if got := DaysBetween(now.Add(48*time.Hour), now); got != -2 {
		t.Errorf("DaysBetween(+48h) = %d; want -2", got)
	}
}

func TestRoundTo(t *testing.T) {
	if got := RoundTo(18.6549, 2); got != 18.65 {
		t.Errorf("RoundTo = %v; want 18.65", got)
	}
	if got := RoundTo(17.6, 0); got != 18 {
		t.Errorf("RoundTo = %v; want 18", got)
	}
}

func TestMean(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v; want 0", got)
	}
	if got := Mean([]float64{1, 2, 3, 6}); got != 3 {
		t.Errorf("Mean = %v; want 3", got)
	}
}
