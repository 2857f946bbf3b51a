package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	geojson "github.com/paulmach/go.geojson"
	"github.com/xuri/excelize/v2"

	"github.com/smartcity/streetlights/internal/domain"
	"github.com/smartcity/streetlights/pkg/utils"
)

// ExportSheet is the worksheet name of the XLSX export
const ExportSheet = "Maintenance"

func tableRecord(r domain.TableRow) []string {
	wattage := ""
	if r.Wattage != nil {
		wattage = strconv.FormatFloat(*r.Wattage, 'f', -1, 64)
	}
	typ := ""
	if r.Type != nil {
		typ = *r.Type
	}
	return []string{
		strconv.FormatInt(r.ObjectID, 10),
		r.District,
		r.Neighborhood,
		r.DatePlacement,
		r.DateMaintenance,
		typ,
		r.Color,
		wattage,
		strconv.FormatFloat(r.PriorityScore, 'f', 2, 64),
	}
}

// WriteTableCSV writes the maintenance table as comma-separated values
func WriteTableCSV(w io.Writer, rows []domain.TableRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(domain.TableColumns); err != nil {
		return fmt.Errorf("export: write csv header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(tableRecord(r)); err != nil {
			return fmt.Errorf("export: write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTableXLSX writes the maintenance table as a single-sheet workbook
func WriteTableXLSX(w io.Writer, rows []domain.TableRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}

	for i, header := range domain.TableColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("export: header cell: %w", err)
		}
		if err := f.SetCellValue(ExportSheet, cell, header); err != nil {
			return fmt.Errorf("export: write header: %w", err)
		}
	}
	if err := f.SetColWidth(ExportSheet, "A", "I", 18); err != nil {
		return fmt.Errorf("export: column width: %w", err)
	}

	for i, r := range rows {
		var wattage any = ""
		if r.Wattage != nil {
			wattage = *r.Wattage
		}
		typ := ""
		if r.Type != nil {
			typ = *r.Type
		}
		values := []any{
			r.ObjectID, r.District, r.Neighborhood, r.DatePlacement, r.DateMaintenance,
			typ, r.Color, wattage, utils.RoundTo(r.PriorityScore, 2),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export: row cell: %w", err)
		}
		if err := f.SetSheetRow(ExportSheet, cell, &values); err != nil {
			return fmt.Errorf("export: write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write xlsx: %w", err)
	}
	return nil
}

// MarkersGeoJSON encodes the located assets as a FeatureCollection of points
func MarkersGeoJSON(assets []domain.LightAsset) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, a := range assets {
		if a.Location == nil {
			continue
		}
		f := geojson.NewPointFeature([]float64{a.Location.Lon, a.Location.Lat})
		f.SetProperty("objectid", a.ObjectID)
		f.SetProperty("district", a.District)
		f.SetProperty("neighborhood", a.Neighborhood)
		if a.Type != nil {
			f.SetProperty("type", *a.Type)
		}
		f.SetProperty("color", a.Color)
		f.SetProperty("radius", MarkerRadius)
		f.SetProperty("priority_score", a.PriorityScore)
		if a.Wattage != nil {
			f.SetProperty("wattage", *a.Wattage)
		}
		fc.AddFeature(f)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("export: encode geojson: %w", err)
	}
	return data, nil
}
