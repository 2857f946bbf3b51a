package service

import (
	"time"

	"github.com/smartcity/streetlights/internal/domain"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func daysAgo(n int) *time.Time {
	t := testNow.AddDate(0, 0, -n).Truncate(24 * time.Hour)
	return &t
}

func coord(lon, lat float64) *domain.Coordinate {
	return &domain.Coordinate{Lon: lon, Lat: lat}
}

// sampleTable is a small derived table covering the nullable fields
func sampleTable() []domain.LightAsset {
	raw := []domain.LightAsset{
		{ObjectID: 1, District: "Centrum", Neighborhood: "Binnenstad", Type: strPtr("LED"), Color: "red",
			Wattage: floatPtr(100), PlacedAt: daysAgo(365), MaintainedAt: daysAgo(10), Location: coord(5.47, 51.44)},
		{ObjectID: 2, District: "Centrum", Neighborhood: "Binnenstad", Type: strPtr("SOX"), Color: "blue",
			Wattage: floatPtr(200), PlacedAt: daysAgo(10), MaintainedAt: daysAgo(5), Location: coord(5.48, 51.45)},
		{ObjectID: 3, District: "Woensel", Neighborhood: "Vaartbroek", Type: nil, Color: "green",
			Wattage: floatPtr(50), PlacedAt: nil, MaintainedAt: daysAgo(400), Location: coord(5.46, 51.47)},
		{ObjectID: 4, District: "Woensel", Neighborhood: "Eckart", Type: strPtr("LED"), Color: "red",
			Wattage: nil, PlacedAt: daysAgo(3000), MaintainedAt: nil, Location: nil},
		{ObjectID: 5, District: "Strijp", Neighborhood: "Philipsdorp", Type: strPtr("LED"), Color: "white",
			Wattage: floatPtr(35), PlacedAt: daysAgo(2000), MaintainedAt: daysAgo(20), Location: coord(5.44, 51.45)},
	}
	return Derive(raw, testNow)
}

func ids(assets []domain.LightAsset) []int64 {
	out := make([]int64, len(assets))
	for i, a := range assets {
		out[i] = a.ObjectID
	}
	return out
}

func farFuture() time.Time {
	return time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)
}
