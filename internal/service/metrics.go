package service

import (
	"time"

	"github.com/smartcity/streetlights/internal/domain"
	"github.com/smartcity/streetlights/pkg/utils"
)

// Priority score weights
const (
	OverdueWeight = 1.5
	WattageWeight = 0.05
	AgeWeight     = 0.01
)

// PriorityScore combines overdue days, wattage and age into one ranking value
func PriorityScore(overdueDays int, wattage float64, ageDays int) float64 {
	return float64(overdueDays)*OverdueWeight + wattage*WattageWeight + float64(ageDays)*AgeWeight
}

// DeriveMetrics computes the metrics of one asset relative to now.
// A missing date contributes zero and is flagged as unknown.
func DeriveMetrics(a domain.LightAsset, now time.Time) domain.Metrics {
	var m domain.Metrics

	if a.PlacedAt != nil {
		m.AgeDays = utils.DaysSince(*a.PlacedAt, now)
	} else {
		m.AgeUnknown = true
	}

	if a.MaintainedAt != nil {
		m.OverdueDays = utils.DaysSince(*a.MaintainedAt, now)
	} else {
		m.OverdueUnknown = true
	}

	m.PriorityScore = PriorityScore(m.OverdueDays, a.WattageOrZero(), m.AgeDays)
	return m
}

// Derive returns a copy of assets with metrics attached. It never fails and
// leaves the input untouched.
func Derive(assets []domain.LightAsset, now time.Time) []domain.LightAsset {
	out := make([]domain.LightAsset, len(assets))
	for i, a := range assets {
		a.Metrics = DeriveMetrics(a, now)
		out[i] = a
	}
	return out
}
