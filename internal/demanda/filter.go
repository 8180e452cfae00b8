package demanda

import "sort"

// Criteria is an AND-composed record filter. Nil/empty fields mean "no
// restriction". String criteria match on the trimmed, upper-cased form.
type Criteria struct {
	Branch    *int
	Owner     string
	Kind      string
	Status    *Status
	Planned   *bool
	Subregion *Subregion
	Brand     string
}

// Matches reports whether one record satisfies every set criterion. Brand
// resolution needs the planning book; with no book loaded a brand
// criterion matches nothing, since no record can prove its brand.
func (c Criteria) Matches(d Demand, book *PlanBook) bool {
	if c.Branch != nil && d.BranchID != *c.Branch {
		return false
	}
	if c.Owner != "" && canonical(d.Owner) != canonical(c.Owner) {
		return false
	}
	if c.Kind != "" && canonical(d.Kind) != canonical(c.Kind) {
		return false
	}
	if c.Status != nil && d.Status != *c.Status {
		return false
	}
	if c.Planned != nil && d.IsPlanned != *c.Planned {
		return false
	}
	if c.Subregion != nil && SubregionOf(d.BranchID) != *c.Subregion {
		return false
	}
	if c.Brand != "" {
		if book == nil {
			return false
		}
		info, ok := book.StoreInfo(d.BranchID)
		if !ok || canonical(info.Brand) != canonical(c.Brand) {
			return false
		}
	}
	return true
}

// Apply returns the records satisfying the criteria, in input order. The
// input slice is never mutated.
func Apply(demands []Demand, c Criteria, book *PlanBook) []Demand {
	out := make([]Demand, 0, len(demands))
	for _, d := range demands {
		if c.Matches(d, book) {
			out = append(out, d)
		}
	}
	return out
}

// FilterOptions enumerates the distinct values a dashboard can offer for
// each select, sorted lexicographically.
type FilterOptions struct {
	Branches []int    `json:"filiais"`
	Owners   []string `json:"encarregados"`
	Kinds    []string `json:"tipos"`
	Statuses []string `json:"status"`
	Brands   []string `json:"bandeiras"`
}

// Options scans the records (and planning book, for brands) and collects
// the distinct filterable values.
func Options(demands []Demand, book *PlanBook) FilterOptions {
	branches := map[int]struct{}{}
	owners := map[string]struct{}{}
	kinds := map[string]struct{}{}
	statuses := map[string]struct{}{}
	brands := map[string]struct{}{}

	for _, d := range demands {
		branches[d.BranchID] = struct{}{}
		if d.HasOwner() {
			owners[d.Owner] = struct{}{}
		}
		if d.Kind != "" {
			kinds[d.Kind] = struct{}{}
		}
		statuses[d.Status.Label()] = struct{}{}
	}
	if book != nil {
		for _, brand := range book.Brands() {
			brands[brand] = struct{}{}
		}
	}

	opts := FilterOptions{
		Branches: make([]int, 0, len(branches)),
		Owners:   sortedKeys(owners),
		Kinds:    sortedKeys(kinds),
		Statuses: sortedKeys(statuses),
		Brands:   sortedKeys(brands),
	}
	for b := range branches {
		opts.Branches = append(opts.Branches, b)
	}
	sort.Ints(opts.Branches)
	return opts
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
