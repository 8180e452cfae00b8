package demanda

import (
	"reflect"
	"testing"
)

func intPtr(n int) *int             { return &n }
func statusPtr(s Status) *Status    { return &s }
func boolPtr(b bool) *bool          { return &b }
func subPtr(s Subregion) *Subregion { return &s }

func testBook() *PlanBook {
	return NewPlanBook([]PlanningEntry{
		{StoreID: 85, AccountLine: "22.02 - Refrigeração", Brand: "FORT", Subregion: SubregionNorth,
			Monthly: map[string]float64{"Nov": 500}},
		{StoreID: 115, AccountLine: "22.02 - Refrigeração", Brand: "FORT", Subregion: SubregionVale,
			Monthly: map[string]float64{"Nov": 300}},
		{StoreID: 700, AccountLine: "22.02 - Refrigeração", Brand: "BATE FORTE", Subregion: SubregionOther,
			Monthly: map[string]float64{"Nov": 200}},
	}, []RegionalPlanEntry{
		{AccountLine: "22.02 - Refrigeração", North: 800, Vale: 600, GrandTotal: 1500},
	})
}

func TestCriteriaMatches(t *testing.T) {
	book := testBook()
	open := Demand{BranchID: 85, Owner: "Maria", Kind: "Corretiva", Status: StatusOpen, IsPlanned: true}

	tests := []struct {
		name string
		c    Criteria
		want bool
	}{
		{"empty criteria", Criteria{}, true},
		{"branch match", Criteria{Branch: intPtr(85)}, true},
		{"branch mismatch", Criteria{Branch: intPtr(115)}, false},
		{"owner case-insensitive", Criteria{Owner: "maria"}, true},
		{"kind mismatch", Criteria{Kind: "Preventiva"}, false},
		{"status match", Criteria{Status: statusPtr(StatusOpen)}, true},
		{"planned match", Criteria{Planned: boolPtr(true)}, true},
		{"planned mismatch", Criteria{Planned: boolPtr(false)}, false},
		{"subregion from membership", Criteria{Subregion: subPtr(SubregionNorth)}, true},
		{"subregion mismatch", Criteria{Subregion: subPtr(SubregionVale)}, false},
		{"brand via planning book", Criteria{Brand: "FORT"}, true},
		{"brand mismatch", Criteria{Brand: "BATE FORTE"}, false},
		{"all criteria and-composed", Criteria{Branch: intPtr(85), Owner: "Maria", Kind: "corretiva"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Matches(open, book); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCriteriaBrandWithoutBook(t *testing.T) {
	d := Demand{BranchID: 85}
	if (Criteria{Brand: "FORT"}).Matches(d, nil) {
		t.Error("brand criterion must not match without a plan book")
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	demands := []Demand{
		{BranchID: 85, Owner: "A"},
		{BranchID: 115, Owner: "B"},
		{BranchID: 85, Owner: "C"},
	}
	got := Apply(demands, Criteria{Branch: intPtr(85)}, nil)
	if len(got) != 2 || got[0].Owner != "A" || got[1].Owner != "C" {
		t.Errorf("Apply returned %+v", got)
	}
	if len(demands) != 3 {
		t.Error("input slice mutated")
	}
}

func TestOptions(t *testing.T) {
	demands := []Demand{
		{BranchID: 115, Owner: "Bruna", Kind: "Corretiva", Status: StatusOpen},
		{BranchID: 85, Owner: "Ana", Kind: "Preventiva", Status: StatusClosed},
		{BranchID: 85, Owner: "Ana", Status: StatusClosed},
		{BranchID: 85, Ownerless: true, Status: StatusOther},
	}
	opts := Options(demands, testBook())

	if !reflect.DeepEqual(opts.Branches, []int{85, 115}) {
		t.Errorf("Branches = %v", opts.Branches)
	}
	if !reflect.DeepEqual(opts.Owners, []string{"Ana", "Bruna"}) {
		t.Errorf("Owners = %v", opts.Owners)
	}
	if !reflect.DeepEqual(opts.Kinds, []string{"Corretiva", "Preventiva"}) {
		t.Errorf("Kinds = %v", opts.Kinds)
	}
	if !reflect.DeepEqual(opts.Brands, []string{"BATE FORTE", "FORT"}) {
		t.Errorf("Brands = %v", opts.Brands)
	}
	if len(opts.Statuses) != 3 {
		t.Errorf("Statuses = %v", opts.Statuses)
	}
}
