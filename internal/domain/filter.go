package domain

import "time"

// StringSet is a set of selected option values
type StringSet map[string]struct{}

// NewStringSet builds a set from the given values
func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether v is in the set
func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// FilterSpec is the set of user-selected predicates for one interaction.
// An asset passes when it satisfies all of them.
type FilterSpec struct {
	Districts         StringSet
	Types             StringSet
	Unspecified       bool // include assets without a type
	WattageMin        float64
	WattageMax        float64
	MaintenanceCutoff time.Time
}

// FilterOptions lists the choices and defaults offered to the user
type FilterOptions struct {
	Districts         []string `json:"districts"`
	Types             []string `json:"types"`
	HasUnspecified    bool     `json:"has_unspecified"`
	WattageMax        float64  `json:"wattage_max"`
	MaintenanceCutoff string   `json:"maintenance_cutoff"`
	Modes             []string `json:"modes"`
}
