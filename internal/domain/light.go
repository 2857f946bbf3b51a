package domain

import "time"

// UnspecifiedType is the display label of assets whose TYPE cell is empty.
// It is only a label: filters and counts keep missing types apart from a
// real type of the same name.
const UnspecifiedType = "unspecified"

// Default map centre (Eindhoven)
const (
	DefaultCenterLat = 51.45
	DefaultCenterLon = 5.48
)

// Coordinate is a WGS-84 position in decimal degrees
type Coordinate struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Valid reports whether the coordinate lies inside the WGS-84 bounds
func (c Coordinate) Valid() bool {
	return c.Lon >= -180 && c.Lon <= 180 && c.Lat >= -90 && c.Lat <= 90
}

// Metrics holds the values derived once per asset at load time.
type Metrics struct {
	AgeDays       int     `json:"age_days"`
	OverdueDays   int     `json:"overdue_days"`
	PriorityScore float64 `json:"priority_score"`

	// Set when the date feeding the metric was missing and the metric
	// contributed zero to the priority score.
	AgeUnknown     bool `json:"age_unknown"`
	OverdueUnknown bool `json:"overdue_unknown"`
}

// LightAsset is one physical street-light fixture
type LightAsset struct {
	ObjectID     int64       `json:"objectid"`
	District     string      `json:"district"`
	Neighborhood string      `json:"neighborhood"`
	Type         *string     `json:"type"`
	Color        string      `json:"color"`
	Wattage      *float64    `json:"wattage"`
	PlacedAt     *time.Time  `json:"date_placement"`
	MaintainedAt *time.Time  `json:"date_maintenance"`
	Location     *Coordinate `json:"location"`

	Metrics
}

// TypeLabel returns the asset type for display, or UnspecifiedType when it is
// missing.
func (a LightAsset) TypeLabel() string {
	if a.Type == nil {
		return UnspecifiedType
	}
	return *a.Type
}

// WattageOrZero returns the wattage, treating a missing value as zero.
func (a LightAsset) WattageOrZero() float64 {
	if a.Wattage == nil {
		return 0
	}
	return *a.Wattage
}

// LoadReport counts what happened to the rows of a source during a load.
type LoadReport struct {
	Rows         int `json:"rows"`
	Loaded       int `json:"loaded"`
	Skipped      int `json:"skipped"`
	DuplicateIDs int `json:"duplicate_ids"`
	BadDates     int `json:"bad_dates"`
	BadWattage   int `json:"bad_wattage"`
	BadGeometry  int `json:"bad_geometry"`
}

// DatasetInfo describes the currently cached table
type DatasetInfo struct {
	LoadID      string     `json:"load_id"`
	Source      string     `json:"source"`
	Fingerprint string     `json:"fingerprint"`
	LoadedAt    time.Time  `json:"loaded_at"`
	Assets      int        `json:"assets"`
	Report      LoadReport `json:"report"`
}
