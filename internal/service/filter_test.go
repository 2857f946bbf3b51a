package service

import (
	"reflect"
	"testing"
	"time"

	"github.com/smartcity/streetlights/internal/domain"
)

func TestFilterDefaultsReturnKnownRowsInPriorityOrder(t *testing.T) {
	table := sampleTable()
	spec := DefaultFilter(table, farFuture())

	got := ids(Filter(table, spec))
	// 3 has no type and 4 has no wattage or maintenance date
	want := []int64{5, 1, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("default filter: got %v, want %v", got, want)
	}
}

func TestFilterFullSelectionReturnsWholeTable(t *testing.T) {
	raw := []domain.LightAsset{
		{ObjectID: 10, District: "A", Type: strPtr("LED"), Wattage: floatPtr(10), MaintainedAt: daysAgo(1)},
		{ObjectID: 11, District: "B", Type: strPtr("SOX"), Wattage: floatPtr(70), MaintainedAt: daysAgo(30)},
		{ObjectID: 12, District: "A", Type: strPtr("LED"), Wattage: floatPtr(35.5), MaintainedAt: daysAgo(7)},
	}
	table := Derive(raw, testNow)

	got := ids(Filter(table, DefaultFilter(table, farFuture())))
	want := []int64{11, 12, 10}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFilterOverdueOutranksWattage(t *testing.T) {
	raw := []domain.LightAsset{
		{ObjectID: 2, District: "Centrum", Type: strPtr("LED"), Wattage: floatPtr(200), PlacedAt: daysAgo(10), MaintainedAt: daysAgo(5)},
		{ObjectID: 1, District: "Centrum", Type: strPtr("LED"), Wattage: floatPtr(100), PlacedAt: daysAgo(365), MaintainedAt: daysAgo(10)},
	}
	table := Derive(raw, testNow)
	spec := domain.FilterSpec{
		Districts:         domain.NewStringSet("Centrum"),
		Types:             domain.NewStringSet("LED"),
		WattageMin:        0,
		WattageMax:        500,
		MaintenanceCutoff: farFuture(),
	}

	got := ids(Filter(table, spec))
	if !reflect.DeepEqual(got, []int64{1, 2}) {
		t.Errorf("got %v, want [1 2]", got)
	}
}

func TestFilterStableTies(t *testing.T) {
	raw := []domain.LightAsset{
		{ObjectID: 7, District: "A", Type: strPtr("LED"), Wattage: floatPtr(10), MaintainedAt: daysAgo(3)},
		{ObjectID: 3, District: "A", Type: strPtr("LED"), Wattage: floatPtr(10), MaintainedAt: daysAgo(3)},
		{ObjectID: 9, District: "A", Type: strPtr("LED"), Wattage: floatPtr(10), MaintainedAt: daysAgo(3)},
	}
	table := Derive(raw, testNow)

	got := ids(Filter(table, DefaultFilter(table, farFuture())))
	if !reflect.DeepEqual(got, []int64{7, 3, 9}) {
		t.Errorf("ties should keep load order: got %v", got)
	}
}

func TestFilterPredicates(t *testing.T) {
	table := sampleTable()
	base := DefaultFilter(table, farFuture())

	tests := []struct {
		name string
		edit func(*domain.FilterSpec)
		want []int64
	}{
		{
			name: "single district",
			edit: func(s *domain.FilterSpec) { s.Districts = domain.NewStringSet("Centrum") },
			want: []int64{1, 2},
		},
		{
			name: "unknown district",
			edit: func(s *domain.FilterSpec) { s.Districts = domain.NewStringSet("Nowhere") },
			want: []int64{},
		},
		{
			name: "include unspecified type",
			edit: func(s *domain.FilterSpec) { s.Unspecified = true },
			want: []int64{3, 5, 1, 2},
		},
		{
			name: "wattage bounds inclusive",
			edit: func(s *domain.FilterSpec) { s.WattageMin, s.WattageMax = 100, 200 },
			want: []int64{1, 2},
		},
		{
			name: "reversed wattage bounds",
			edit: func(s *domain.FilterSpec) { s.WattageMin, s.WattageMax = 100, 35 },
			want: []int64{5, 1},
		},
		{
			name: "maintenance cutoff inclusive",
			edit: func(s *domain.FilterSpec) { s.MaintenanceCutoff = *daysAgo(10) },
			want: []int64{5, 1},
		},
		{
			name: "cutoff before every maintenance",
			edit: func(s *domain.FilterSpec) { s.MaintenanceCutoff = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC) },
			want: []int64{},
		},
	}

	for _, tt := range tests {
		spec := base
		spec.Types = domain.NewStringSet()
		for k := range base.Types {
			spec.Types[k] = struct{}{}
		}
		tt.edit(&spec)

		got := ids(Filter(table, spec))
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFilterIsSubsetAndLeavesTableAlone(t *testing.T) {
	table := sampleTable()
	before := ids(table)

	spec := DefaultFilter(table, farFuture())
	spec.Unspecified = true
	out := Filter(table, spec)

	inTable := make(map[int64]domain.LightAsset)
	for _, a := range table {
		inTable[a.ObjectID] = a
	}
	for i, a := range out {
		orig, ok := inTable[a.ObjectID]
		if !ok || !reflect.DeepEqual(orig, a) {
			t.Errorf("output asset %d was not taken from the table", a.ObjectID)
		}
		if i > 0 && out[i-1].PriorityScore < a.PriorityScore {
			t.Errorf("output not sorted at %d", i)
		}
	}
	if !reflect.DeepEqual(ids(table), before) {
		t.Error("table order was modified")
	}
}

func TestOptions(t *testing.T) {
	opts := Options(sampleTable(), time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))

	if !reflect.DeepEqual(opts.Districts, []string{"Centrum", "Woensel", "Strijp"}) {
		t.Errorf("districts: got %v", opts.Districts)
	}
	if !reflect.DeepEqual(opts.Types, []string{"LED", "SOX"}) {
		t.Errorf("types: got %v", opts.Types)
	}
	if opts.WattageMax != 200 {
		t.Errorf("wattage max: got %v, want 200", opts.WattageMax)
	}
	if opts.MaintenanceCutoff != "2030-01-01" {
		t.Errorf("cutoff: got %q", opts.MaintenanceCutoff)
	}
	if !opts.HasUnspecified {
		t.Error("asset 3 has no type, HasUnspecified should be set")
	}
}

func TestFilterKeepsMissingTypeApartFromTypeNamedUnspecified(t *testing.T) {
	raw := []domain.LightAsset{
		{ObjectID: 1, District: "A", Type: strPtr(domain.UnspecifiedType), Wattage: floatPtr(10), MaintainedAt: daysAgo(2)},
		{ObjectID: 2, District: "A", Type: nil, Wattage: floatPtr(10), MaintainedAt: daysAgo(1)},
	}
	table := Derive(raw, testNow)

	defaults := DefaultFilter(table, farFuture())
	if got := ids(Filter(table, defaults)); !reflect.DeepEqual(got, []int64{1}) {
		t.Errorf("default filter: got %v, want [1]", got)
	}

	onlyMissing := defaults
	onlyMissing.Types = domain.NewStringSet()
	onlyMissing.Unspecified = true
	if got := ids(Filter(table, onlyMissing)); !reflect.DeepEqual(got, []int64{2}) {
		t.Errorf("missing types only: got %v, want [2]", got)
	}

	both := defaults
	both.Unspecified = true
	if got := ids(Filter(table, both)); !reflect.DeepEqual(got, []int64{1, 2}) {
		t.Errorf("both: got %v, want [1 2]", got)
	}
}

func TestOptionsEmptyTable(t *testing.T) {
	opts := Options(nil, farFuture())
	if opts.Districts == nil || opts.Types == nil || len(opts.Districts) != 0 {
		t.Errorf("expected empty non-nil option lists, got %+v", opts)
	}
	if got := Filter(nil, DefaultFilter(nil, farFuture())); got == nil || len(got) != 0 {
		t.Errorf("filtering an empty table should give an empty slice, got %v", got)
	}
}
