package domain

// MapMode selects how the marker layer is drawn
type MapMode string

const (
	MapClustered MapMode = "clustered"
	MapFlat      MapMode = "flat"
)

// Marker is one circle marker on the lights map
type Marker struct {
	ObjectID int64   `json:"objectid"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Color    string  `json:"color"`
	Radius   int     `json:"radius"`
	Label    string  `json:"label"`
}

// MarkerLayer is the input of the lights map. Mode only changes how the
// browser groups the markers.
type MarkerLayer struct {
	Mode    MapMode    `json:"mode"`
	Center  Coordinate `json:"center"`
	Markers []Marker   `json:"markers"`
}

// HeatPoint is a [lat, lon] pair
type HeatPoint [2]float64

// MaintenanceInterval is one bar of the lifecycle timeline
type MaintenanceInterval struct {
	ObjectID int64  `json:"objectid"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Label    string `json:"label"`
	Group    string `json:"group"`
}

// PlacementPoint is one asset inside an animation frame
type PlacementPoint struct {
	Lat     float64  `json:"lat"`
	Lon     float64  `json:"lon"`
	Type    *string  `json:"type"`
	Wattage *float64 `json:"wattage"`
}

// PlacementFrame holds the assets placed in one calendar year
type PlacementFrame struct {
	Year   int              `json:"year"`
	Points []PlacementPoint `json:"points"`
}

// TypeDistribution counts assets per type value. Assets without a type are
// counted in Unspecified, never under a type name.
type TypeDistribution struct {
	Counts      map[string]int `json:"counts"`
	Unspecified int            `json:"unspecified"`
}

// TableRow is the fixed column set of the prioritized maintenance table
type TableRow struct {
	ObjectID        int64    `json:"OBJECTID"`
	District        string   `json:"DISTRICT"`
	Neighborhood    string   `json:"NEIGHBORHOOD"`
	DatePlacement   string   `json:"DATE_PLACEMENT"`
	DateMaintenance string   `json:"DATE_MAINTENENCE"`
	Type            *string  `json:"TYPE"`
	Color           string   `json:"COLOR"`
	Wattage         *float64 `json:"WATTAGE"`
	PriorityScore   float64  `json:"priority_score"`
}

// TableColumns is the header of the maintenance table, in display order
var TableColumns = []string{
	"OBJECTID", "DISTRICT", "NEIGHBORHOOD", "DATE_PLACEMENT",
	"DATE_MAINTENENCE", "TYPE", "COLOR", "WATTAGE", "priority_score",
}

// Dashboard aggregates every view projected from one filtered subset
type Dashboard struct {
	Count      int                   `json:"count"`
	Empty      bool                  `json:"empty"`
	Markers    MarkerLayer           `json:"markers"`
	Heatmap    []HeatPoint           `json:"heatmap"`
	Intervals  []MaintenanceInterval `json:"intervals"`
	Placements []PlacementFrame      `json:"placements"`
	Types      TypeDistribution      `json:"types"`
	Table      []TableRow            `json:"table"`
}
