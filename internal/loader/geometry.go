package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	geojson "github.com/paulmach/go.geojson"

	"github.com/smartcity/streetlights/internal/domain"
)

// ErrBadGeometry is returned for geometry descriptors without a usable point
var ErrBadGeometry = errors.New("malformed geometry")

type rawShape struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// ParseGeometry extracts the [lon, lat] pair from a geometry descriptor such
// as {'coordinates': [5.47, 51.44], 'type': 'Point'}. The text is decoded as
// data, never evaluated.
func ParseGeometry(s string) (domain.Coordinate, error) {
	data, err := normalizeLiteral(s)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("%w: %v", ErrBadGeometry, err)
	}

	var shape rawShape
	if err := json.Unmarshal(data, &shape); err != nil {
		return domain.Coordinate{}, fmt.Errorf("%w: %v", ErrBadGeometry, err)
	}

	var pos []float64
	if shape.Type != "" {
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return domain.Coordinate{}, fmt.Errorf("%w: %v", ErrBadGeometry, err)
		}
		if !g.IsPoint() || len(g.Point) < 2 {
			return domain.Coordinate{}, fmt.Errorf("%w: want Point, got %s", ErrBadGeometry, g.Type)
		}
		pos = g.Point[:2]
	} else {
		if len(shape.Coordinates) == 0 {
			return domain.Coordinate{}, fmt.Errorf("%w: no coordinates", ErrBadGeometry)
		}
		if err := json.Unmarshal(shape.Coordinates, &pos); err != nil {
			return domain.Coordinate{}, fmt.Errorf("%w: %v", ErrBadGeometry, err)
		}
		if len(pos) != 2 {
			return domain.Coordinate{}, fmt.Errorf("%w: want 2 coordinates, got %d", ErrBadGeometry, len(pos))
		}
	}

	c := domain.Coordinate{Lon: pos[0], Lat: pos[1]}
	if math.IsNaN(c.Lon) || math.IsNaN(c.Lat) || !c.Valid() {
		return domain.Coordinate{}, fmt.Errorf("%w: coordinate out of range (%v, %v)", ErrBadGeometry, c.Lon, c.Lat)
	}
	return c, nil
}

// normalizeLiteral rewrites a dict-style literal into JSON: single-quoted
// strings become double-quoted and tuples become arrays. Anything else is
// left for the JSON decoder to reject.
func normalizeLiteral(s string) ([]byte, error) {
	var b strings.Builder
	b.Grow(len(s))

	var quote rune
	escaped := false
	for _, r := range strings.TrimSpace(s) {
		if quote != 0 {
			switch {
			case escaped:
				escaped = false
				if r == '\'' {
					b.WriteRune(r)
					continue
				}
				b.WriteRune('\\')
				b.WriteRune(r)
			case r == '\\':
				escaped = true
			case r == quote:
				quote = 0
				b.WriteRune('"')
			case r == '"':
				b.WriteString(`\"`)
			default:
				b.WriteRune(r)
			}
			continue
		}

		switch r {
		case '\'', '"':
			quote = r
			b.WriteRune('"')
		case '(':
			b.WriteRune('[')
		case ')':
			b.WriteRune(']')
		default:
			b.WriteRune(r)
		}
	}
	if quote != 0 {
		return nil, errors.New("unterminated string")
	}
	return []byte(b.String()), nil
}
