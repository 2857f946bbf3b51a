package loader

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/smartcity/streetlights/internal/domain"
)

// Source column names
const (
	ColObjectID     = "OBJECTID"
	ColDistrict     = "DISTRICT"
	ColNeighborhood = "NEIGHBORHOOD"
	ColType         = "TYPE"
	ColColor        = "COLOR"
	ColWattage      = "WATTAGE"
	ColPlacement    = "DATE_PLACEMENT"
	ColMaintenance  = "DATE_MAINTENENCE"
	ColGeoShape     = "GEO_SHAPE"
)

// RequiredColumns must all be present in the header of a source
var RequiredColumns = []string{
	ColObjectID, ColDistrict, ColNeighborhood, ColType, ColColor,
	ColWattage, ColPlacement, ColMaintenance, ColGeoShape,
}

// Header maps upper-cased column names to field positions
type Header map[string]int

// NewHeader indexes the header row and checks every required column is there.
func NewHeader(names []string) (Header, error) {
	h := make(Header, len(names))
	for i, name := range names {
		name = strings.TrimPrefix(name, "\ufeff")
		h[strings.ToUpper(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := h[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("loader: %w: %s", domain.ErrMissingColumn, strings.Join(missing, ", "))
	}
	return h, nil
}

// width is the number of fields a row needs to reach every required column
func (h Header) width() int {
	w := 0
	for _, col := range RequiredColumns {
		if h[col]+1 > w {
			w = h[col] + 1
		}
	}
	return w
}

func (h Header) get(fields []string, col string) string {
	return strings.TrimSpace(fields[h[col]])
}

// RecordParser turns raw rows into assets and keeps the load report.
// It is shared by every source so rows are read the same way everywhere.
type RecordParser struct {
	header Header
	seen   map[int64]struct{}
	assets []domain.LightAsset
	report domain.LoadReport
}

// NewRecordParser creates a parser for rows laid out like columns
func NewRecordParser(columns []string) (*RecordParser, error) {
	h, err := NewHeader(columns)
	if err != nil {
		return nil, err
	}
	return &RecordParser{
		header: h,
		seen:   make(map[int64]struct{}),
	}, nil
}

// Skip counts a row that could not even be split into fields
func (p *RecordParser) Skip(reason string) {
	p.report.Rows++
	p.report.Skipped++
	log.Printf("loader: skipping row %d: %s", p.report.Rows, reason)
}

// Add parses one row. Rows without a usable unique identifier are skipped,
// every other defect degrades the affected field to missing.
func (p *RecordParser) Add(fields []string) {
	p.report.Rows++
	row := p.report.Rows

	if len(fields) < p.header.width() {
		p.report.Skipped++
		log.Printf("loader: skipping row %d: %d fields, want %d", row, len(fields), p.header.width())
		return
	}

	id, err := parseObjectID(p.header.get(fields, ColObjectID))
	if err != nil {
		p.report.Skipped++
		log.Printf("loader: skipping row %d: %v", row, err)
		return
	}
	if _, dup := p.seen[id]; dup {
		p.report.Skipped++
		p.report.DuplicateIDs++
		log.Printf("loader: skipping row %d: duplicate OBJECTID %d", row, id)
		return
	}
	p.seen[id] = struct{}{}

	asset := domain.LightAsset{
		ObjectID:     id,
		District:     p.header.get(fields, ColDistrict),
		Neighborhood: p.header.get(fields, ColNeighborhood),
		Color:        p.header.get(fields, ColColor),
	}

	if t := p.header.get(fields, ColType); !isBlank(t) {
		asset.Type = &t
	}

	wattage, ok := parseWattage(p.header.get(fields, ColWattage))
	if ok {
		asset.Wattage = wattage
	} else {
		p.report.BadWattage++
	}

	placed, ok := ParseDate(p.header.get(fields, ColPlacement))
	if !ok {
		p.report.BadDates++
	}
	asset.PlacedAt = placed

	maintained, ok := ParseDate(p.header.get(fields, ColMaintenance))
	if !ok {
		p.report.BadDates++
	}
	asset.MaintainedAt = maintained

	if shape := p.header.get(fields, ColGeoShape); !isBlank(shape) {
		loc, err := ParseGeometry(shape)
		if err != nil {
			p.report.BadGeometry++
		} else {
			asset.Location = &loc
		}
	} else {
		p.report.BadGeometry++
	}

	p.assets = append(p.assets, asset)
	p.report.Loaded++
}

// Result returns the parsed assets in source order and the load report
func (p *RecordParser) Result() ([]domain.LightAsset, domain.LoadReport) {
	if p.assets == nil {
		p.assets = []domain.LightAsset{}
	}
	return p.assets, p.report
}

// maxObjectID is 2^63, the first float that no longer fits an int64
const maxObjectID = float64(1 << 63)

func parseObjectID(s string) (int64, error) {
	if isBlank(s) {
		return 0, fmt.Errorf("blank OBJECTID")
	}
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		if id < 0 {
			return 0, fmt.Errorf("negative OBJECTID %q", s)
		}
		return id, nil
	}
	// exports sometimes carry integral ids as "123.0"
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f < 0 || f >= maxObjectID {
		return 0, fmt.Errorf("invalid OBJECTID %q", s)
	}
	return int64(f), nil
}

// parseWattage returns the wattage (nil when blank) and false when the cell
// held something that is not a non-negative number.
func parseWattage(s string) (*float64, bool) {
	if isBlank(s) {
		return nil, true
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil || w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return nil, false
	}
	return &w, true
}

// isBlank treats empty cells and the usual null spellings as missing
func isBlank(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nan", "nat", "null", "none", "na", "n/a":
		return true
	}
	return false
}
