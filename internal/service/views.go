package service

import (
	"fmt"
	"html"
	"sort"
	"strconv"

	"github.com/smartcity/streetlights/internal/domain"
	"github.com/smartcity/streetlights/internal/loader"
	"github.com/smartcity/streetlights/pkg/utils"
)

// MarkerRadius is the circle radius of every map marker, in pixels
const MarkerRadius = 5

// The view adapters below are pure projections of a filtered subset. Each
// returns an empty, non-nil collection for an empty input.

// MarkerView projects assets with a known location onto map markers.
// The mode is carried through for the browser; the markers do not depend on it.
func MarkerView(assets []domain.LightAsset, mode domain.MapMode, fallback domain.Coordinate) domain.MarkerLayer {
	layer := domain.MarkerLayer{
		Mode:    mode,
		Center:  fallback,
		Markers: make([]domain.Marker, 0, len(assets)),
	}

	lats := make([]float64, 0, len(assets))
	lons := make([]float64, 0, len(assets))
	for _, a := range assets {
		if a.Location == nil {
			continue
		}
		layer.Markers = append(layer.Markers, domain.Marker{
			ObjectID: a.ObjectID,
			Lat:      a.Location.Lat,
			Lon:      a.Location.Lon,
			Color:    a.Color,
			Radius:   MarkerRadius,
			Label:    MarkerLabel(a),
		})
		lats = append(lats, a.Location.Lat)
		lons = append(lons, a.Location.Lon)
	}

	if len(lats) > 0 {
		layer.Center = domain.Coordinate{Lat: utils.Mean(lats), Lon: utils.Mean(lons)}
	}
	return layer
}

// MarkerLabel renders the popup text of a marker. Values are HTML-escaped.
func MarkerLabel(a domain.LightAsset) string {
	return fmt.Sprintf(
		"<b>Type:</b> %s<br><b>District:</b> %s<br><b>Placement:</b> %s<br>"+
			"<b>Maintenance:</b> %s<br><b>Wattage:</b> %s<br><b>Priority Score:</b> %.1f",
		html.EscapeString(a.TypeLabel()),
		html.EscapeString(a.District),
		orUnknown(loader.FormatDate(a.PlacedAt)),
		orUnknown(loader.FormatDate(a.MaintainedAt)),
		formatWattage(a.Wattage),
		a.PriorityScore,
	)
}

// HeatView returns [lat, lon] pairs, dropping assets without a location
func HeatView(assets []domain.LightAsset) []domain.HeatPoint {
	points := make([]domain.HeatPoint, 0, len(assets))
	for _, a := range assets {
		if a.Location == nil {
			continue
		}
		points = append(points, domain.HeatPoint{a.Location.Lat, a.Location.Lon})
	}
	return points
}

// IntervalView returns one placement-to-maintenance interval per asset that
// has both dates
func IntervalView(assets []domain.LightAsset) []domain.MaintenanceInterval {
	intervals := make([]domain.MaintenanceInterval, 0, len(assets))
	for _, a := range assets {
		if a.PlacedAt == nil || a.MaintainedAt == nil {
			continue
		}
		intervals = append(intervals, domain.MaintenanceInterval{
			ObjectID: a.ObjectID,
			Start:    loader.FormatDate(a.PlacedAt),
			End:      loader.FormatDate(a.MaintainedAt),
			Label:    a.District + " - " + strconv.FormatInt(a.ObjectID, 10),
			Group:    a.District,
		})
	}
	return intervals
}

// PlacementView groups located assets by placement year, oldest year first.
// Assets without a placement date are left out of every frame.
func PlacementView(assets []domain.LightAsset) []domain.PlacementFrame {
	byYear := make(map[int][]domain.PlacementPoint)
	for _, a := range assets {
		if a.PlacedAt == nil || a.Location == nil {
			continue
		}
		year := a.PlacedAt.Year()
		byYear[year] = append(byYear[year], domain.PlacementPoint{
			Lat:     a.Location.Lat,
			Lon:     a.Location.Lon,
			Type:    a.Type,
			Wattage: a.Wattage,
		})
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	frames := make([]domain.PlacementFrame, 0, len(years))
	for _, y := range years {
		frames = append(frames, domain.PlacementFrame{Year: y, Points: byYear[y]})
	}
	return frames
}

// TypeView counts assets per type; missing types are counted apart
func TypeView(assets []domain.LightAsset) domain.TypeDistribution {
	dist := domain.TypeDistribution{Counts: make(map[string]int)}
	for _, a := range assets {
		if a.Type == nil {
			dist.Unspecified++
			continue
		}
		dist.Counts[*a.Type]++
	}
	return dist
}

// TableView projects assets onto the maintenance table columns, keeping order.
// Scores are kept unrounded; renderers choose the precision.
func TableView(assets []domain.LightAsset) []domain.TableRow {
	rows := make([]domain.TableRow, 0, len(assets))
	for _, a := range assets {
		rows = append(rows, domain.TableRow{
			ObjectID:        a.ObjectID,
			District:        a.District,
			Neighborhood:    a.Neighborhood,
			DatePlacement:   loader.FormatDate(a.PlacedAt),
			DateMaintenance: loader.FormatDate(a.MaintainedAt),
			Type:            a.Type,
			Color:           a.Color,
			Wattage:         a.Wattage,
			PriorityScore:   a.PriorityScore,
		})
	}
	return rows
}

// BuildDashboard runs every view adapter over the same filtered subset
func BuildDashboard(filtered []domain.LightAsset, mode domain.MapMode, center domain.Coordinate) domain.Dashboard {
	return domain.Dashboard{
		Count:      len(filtered),
		Empty:      len(filtered) == 0,
		Markers:    MarkerView(filtered, mode, center),
		Heatmap:    HeatView(filtered),
		Intervals:  IntervalView(filtered),
		Placements: PlacementView(filtered),
		Types:      TypeView(filtered),
		Table:      TableView(filtered),
	}
}

func formatWattage(w *float64) string {
	if w == nil {
		return "unknown"
	}
	return strconv.FormatFloat(*w, 'f', -1, 64)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
