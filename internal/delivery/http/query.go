package http

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/smartcity/streetlights/internal/domain"
	"github.com/smartcity/streetlights/internal/loader"
)

// Query parameter names
const (
	paramDistrict    = "district"
	paramType        = "type"
	paramUnspecified = "unspecified"
	paramWattageMin  = "wattage_min"
	paramWattageMax  = "wattage_max"
	paramCutoff      = "cutoff"
	paramMode        = "mode"
	paramFormat      = "format"
)

// bindFilter overlays the request's query parameters on the default filter.
// district and type are repeated once per selected value. A selection
// parameter that is absent keeps the default (everything); one that is
// present but empty selects nothing. unspecified=true adds assets without
// a type.
func bindFilter(c *fiber.Ctx, defaults domain.FilterSpec) (domain.FilterSpec, error) {
	spec := defaults
	args := c.Context().QueryArgs()

	if args.Has(paramDistrict) {
		spec.Districts = multiValue(c, paramDistrict)
	}
	if args.Has(paramType) {
		spec.Types = multiValue(c, paramType)
	}
	if v := strings.TrimSpace(c.Query(paramUnspecified)); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			return spec, fiber.NewError(fiber.StatusBadRequest, "Invalid unspecified, expected true or false")
		}
		spec.Unspecified = include
	}

	if v := strings.TrimSpace(c.Query(paramWattageMin)); v != "" {
		w, err := parseNumber(v)
		if err != nil {
			return spec, fiber.NewError(fiber.StatusBadRequest, "Invalid wattage_min")
		}
		spec.WattageMin = w
	}
	if v := strings.TrimSpace(c.Query(paramWattageMax)); v != "" {
		w, err := parseNumber(v)
		if err != nil {
			return spec, fiber.NewError(fiber.StatusBadRequest, "Invalid wattage_max")
		}
		spec.WattageMax = w
	}

	if v := strings.TrimSpace(c.Query(paramCutoff)); v != "" {
		cutoff, err := time.Parse(loader.DateLayout, v)
		if err != nil {
			return spec, fiber.NewError(fiber.StatusBadRequest, "Invalid cutoff, expected YYYY-MM-DD")
		}
		spec.MaintenanceCutoff = cutoff
	}

	return spec, nil
}

// bindMode reads the map mode; clustered is the default
func bindMode(c *fiber.Ctx) (domain.MapMode, error) {
	switch strings.ToLower(strings.TrimSpace(c.Query(paramMode))) {
	case "", "clustered":
		return domain.MapClustered, nil
	case "flat", "non-clustered":
		return domain.MapFlat, nil
	default:
		return "", fiber.NewError(fiber.StatusBadRequest, "Invalid mode, expected clustered or flat")
	}
}

// multiValue collects a repeated parameter. Values are taken whole so names
// containing commas stay selectable.
func multiValue(c *fiber.Ctx, name string) domain.StringSet {
	set := domain.NewStringSet()
	for _, raw := range c.Context().QueryArgs().PeekMulti(name) {
		if v := strings.TrimSpace(string(raw)); v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrSyntax
	}
	return f, nil
}
