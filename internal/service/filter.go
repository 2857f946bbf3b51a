package service

import (
	"sort"
	"time"

	"github.com/smartcity/streetlights/internal/domain"
	"github.com/smartcity/streetlights/internal/loader"
)

// Matches reports whether an asset satisfies every predicate of spec.
// Missing wattage and missing maintenance dates never match; a missing type
// matches only when spec.Unspecified is set.
func Matches(a domain.LightAsset, spec domain.FilterSpec) bool {
	if !spec.Districts.Has(a.District) {
		return false
	}
	if a.Type == nil {
		if !spec.Unspecified {
			return false
		}
	} else if !spec.Types.Has(*a.Type) {
		return false
	}
	if a.Wattage == nil || *a.Wattage < spec.WattageMin || *a.Wattage > spec.WattageMax {
		return false
	}
	if a.MaintainedAt == nil || a.MaintainedAt.After(spec.MaintenanceCutoff) {
		return false
	}
	return true
}

// Filter returns the assets matching spec ordered by descending priority
// score. Ties keep the table order. The table itself is not modified.
func Filter(table []domain.LightAsset, spec domain.FilterSpec) []domain.LightAsset {
	if spec.WattageMin > spec.WattageMax {
		spec.WattageMin, spec.WattageMax = spec.WattageMax, spec.WattageMin
	}

	out := make([]domain.LightAsset, 0)
	for _, a := range table {
		if Matches(a, spec) {
			out = append(out, a)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PriorityScore > out[j].PriorityScore
	})
	return out
}

// DefaultFilter selects every district, every known type, the full observed
// wattage range and the given maintenance cutoff. Assets without a type are
// left out.
func DefaultFilter(table []domain.LightAsset, cutoff time.Time) domain.FilterSpec {
	opts := Options(table, cutoff)
	return domain.FilterSpec{
		Districts:         domain.NewStringSet(opts.Districts...),
		Types:             domain.NewStringSet(opts.Types...),
		WattageMin:        0,
		WattageMax:        opts.WattageMax,
		MaintenanceCutoff: cutoff,
	}
}

// Options lists the selectable districts and types in first-seen order
// together with the default wattage bound and cutoff.
func Options(table []domain.LightAsset, cutoff time.Time) domain.FilterOptions {
	opts := domain.FilterOptions{
		Districts:         []string{},
		Types:             []string{},
		MaintenanceCutoff: cutoff.Format(loader.DateLayout),
		Modes:             []string{string(domain.MapClustered), string(domain.MapFlat)},
	}

	seenDistrict := make(map[string]struct{})
	seenType := make(map[string]struct{})
	for _, a := range table {
		if _, ok := seenDistrict[a.District]; !ok {
			seenDistrict[a.District] = struct{}{}
			opts.Districts = append(opts.Districts, a.District)
		}
		if a.Type == nil {
			opts.HasUnspecified = true
		} else {
			if _, ok := seenType[*a.Type]; !ok {
				seenType[*a.Type] = struct{}{}
				opts.Types = append(opts.Types, *a.Type)
			}
		}
		if a.Wattage != nil && *a.Wattage > opts.WattageMax {
			opts.WattageMax = *a.Wattage
		}
	}
	return opts
}
