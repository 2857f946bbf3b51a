package utils

import (
	"math"
	"time"
)

// RoundTo rounds a float to specified decimal places
func RoundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

// secondsPerDay is the length of a calendar day in UTC
const secondsPerDay = 24 * 60 * 60

// DaysBetween returns the whole days from t to now, floored. It works on Unix
// seconds so spans beyond the ~292 years a time.Duration holds stay exact.
func DaysBetween(t, now time.Time) int64 {
	secs := now.Unix() - t.Unix()
	days := secs / secondsPerDay
	if secs%secondsPerDay != 0 && secs < 0 {
		days--
	}
	return days
}

// DaysSince returns the whole days elapsed from t to now, clipped at zero
func DaysSince(t, now time.Time) int {
	days := DaysBetween(t, now)
	if days < 0 {
		return 0
	}
	return int(days)
}

// Mean returns the arithmetic mean of values, or 0 for none
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
