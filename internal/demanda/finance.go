package demanda

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// unmappedFamily is the bucket key for records with no account family.
const unmappedFamily = "NÃO INFORMADO"

// StoreDetails is what the planning dataset knows about one store.
type StoreDetails struct {
	Subregion Subregion
	Brand     string
}

// PlanBook holds both planning datasets: the per-store monthly plan and
// the regional rollup, plus the store directory derived from the former.
type PlanBook struct {
	Entries  []PlanningEntry
	Regional []RegionalPlanEntry

	stores map[int]StoreDetails
}

// NewPlanBook indexes the planning rows. The first row seen for a store
// defines its subregion and brand.
func NewPlanBook(entries []PlanningEntry, regional []RegionalPlanEntry) *PlanBook {
	b := &PlanBook{
		Entries:  entries,
		Regional: regional,
		stores:   make(map[int]StoreDetails),
	}
	for _, e := range entries {
		if _, seen := b.stores[e.StoreID]; !seen {
			b.stores[e.StoreID] = StoreDetails{Subregion: e.Subregion, Brand: e.Brand}
		}
	}
	return b
}

// StoreInfo looks a store up in the planning directory.
func (b *PlanBook) StoreInfo(storeID int) (StoreDetails, bool) {
	info, ok := b.stores[storeID]
	return info, ok
}

// Brands lists the distinct brands present in the plan, sorted.
func (b *PlanBook) Brands() []string {
	set := map[string]struct{}{}
	for _, info := range b.stores {
		if info.Brand != "" {
			set[info.Brand] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// StoreIDs lists the distinct planned stores, ascending.
func (b *PlanBook) StoreIDs() []int {
	ids := make([]int, 0, len(b.stores))
	for id := range b.stores {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (b *PlanBook) regionalRow(accountLine string) (RegionalPlanEntry, bool) {
	want := strings.TrimSpace(accountLine)
	for _, r := range b.Regional {
		if strings.TrimSpace(r.AccountLine) == want {
			return r, true
		}
	}
	return RegionalPlanEntry{}, false
}

// PlannedFor resolves the planned value for one account line under the
// active filter, by scope priority: a subregion filter reads the regional
// rollup column; a store filter sums that store's plan rows for the
// period; a brand filter sums the brand's stores; no filter reads the
// rollup grand total. Missing rows resolve to 0.
func (b *PlanBook) PlannedFor(accountLine string, c Criteria, period string) float64 {
	switch {
	case c.Subregion != nil:
		row, ok := b.regionalRow(accountLine)
		if !ok {
			return 0
		}
		switch *c.Subregion {
		case SubregionNorth:
			return row.North
		case SubregionVale:
			return row.Vale
		default:
			return row.GrandTotal
		}
	case c.Branch != nil:
		return b.sumPlan(accountLine, period, func(e PlanningEntry) bool {
			return e.StoreID == *c.Branch
		})
	case c.Brand != "":
		return b.sumPlan(accountLine, period, func(e PlanningEntry) bool {
			return canonical(e.Brand) == canonical(c.Brand)
		})
	default:
		row, ok := b.regionalRow(accountLine)
		if !ok {
			return 0
		}
		return row.GrandTotal
	}
}

func (b *PlanBook) sumPlan(accountLine, period string, match func(PlanningEntry) bool) float64 {
	want := strings.TrimSpace(accountLine)
	total := 0.0
	for _, e := range b.Entries {
		if strings.TrimSpace(e.AccountLine) != want || !match(e) {
			continue
		}
		total += e.Monthly[period]
	}
	return total
}

// RelevantStoreCount counts the planned stores in scope for a filter,
// the denominator of the per-store average. A store filter always counts
// one store.
func (b *PlanBook) RelevantStoreCount(c Criteria) int {
	if c.Branch != nil {
		return 1
	}
	count := 0
	for _, info := range b.stores {
		if c.Subregion != nil && info.Subregion != *c.Subregion {
			continue
		}
		if c.Brand != "" && canonical(info.Brand) != canonical(c.Brand) {
			continue
		}
		count++
	}
	return count
}

// AccountRow is one reconciled line of the financial table. Variance is
// planned minus realized; the forecast column does not reduce per-line
// variance, only the totals row counts it.
type AccountRow struct {
	Line         string  `json:"contaLinha"`
	Number       string  `json:"numeroConta"`
	Planned      float64 `json:"planejado"`
	Realized     float64 `json:"realizado"`
	Forecast     float64 `json:"previsto"`
	Variance     float64 `json:"deltaRS"`
	VariancePct  float64 `json:"deltaPercentual"`
	NoValueCount int     `json:"demandasSemValor"`
}

// FamilyTotals is the realized/forecast bucket of one demand family.
type FamilyTotals struct {
	Family       string  `json:"familia"`
	Realized     float64 `json:"realizado"`
	Forecast     float64 `json:"previsto"`
	NoValueCount int     `json:"demandasSemValor"`
}

// Reconciliation is the full financial table: one row per chart account,
// a totals row, a per-store average, and the leftover families that map
// to no account line.
type Reconciliation struct {
	Rows       []AccountRow   `json:"contas"`
	Total      AccountRow     `json:"total"`
	StoreCount int            `json:"totalLojas"`
	PerStore   AccountRow     `json:"mediaPorLoja"`
	Unmapped   []FamilyTotals `json:"naoMapeadas"`
}

// Reconcile aggregates filtered records into family buckets and joins
// them against the chart of accounts and the planning book. A record with
// a real order and a positive value is realized; a positive value without
// an order is forecast; zero-value records are counted separately.
func Reconcile(demands []Demand, book *PlanBook, c Criteria, period string, v Vocabulary) Reconciliation {
	type bucket struct {
		realized, forecast float64
		noValue            int
	}
	families := map[string]*bucket{}
	order := []string{}

	for _, d := range demands {
		key := canonical(d.AccountFamily)
		if key == "" {
			key = unmappedFamily
		}
		fam, ok := families[key]
		if !ok {
			fam = &bucket{}
			families[key] = fam
			order = append(order, key)
		}
		switch {
		case d.MonetaryValue == 0:
			fam.noValue++
		case v.HasOrder(d):
			fam.realized += d.MonetaryValue
		default:
			fam.forecast += d.MonetaryValue
		}
	}

	rec := Reconciliation{Rows: make([]AccountRow, 0, len(ChartOfAccounts))}
	mapped := map[string]struct{}{}

	planned := make([]float64, 0, len(ChartOfAccounts))
	realized := make([]float64, 0, len(ChartOfAccounts))
	forecast := make([]float64, 0, len(ChartOfAccounts))

	for _, acc := range ChartOfAccounts {
		row := AccountRow{Line: acc.Line, Number: acc.Number}
		if book != nil {
			row.Planned = book.PlannedFor(acc.Line, c, period)
		}
		if key := canonical(acc.Family); key != "" {
			if fam, ok := families[key]; ok {
				row.Realized = fam.realized
				row.Forecast = fam.forecast
				row.NoValueCount = fam.noValue
				mapped[key] = struct{}{}
			}
		}
		row.Variance = row.Planned - row.Realized
		if row.Planned > 0 {
			row.VariancePct = row.Variance / row.Planned * 100
		}
		planned = append(planned, row.Planned)
		realized = append(realized, row.Realized)
		forecast = append(forecast, row.Forecast)
		rec.Total.NoValueCount += row.NoValueCount
		rec.Rows = append(rec.Rows, row)
	}

	rec.Total.Line = "TOTAL"
	rec.Total.Planned = floats.Sum(planned)
	rec.Total.Realized = floats.Sum(realized)
	rec.Total.Forecast = floats.Sum(forecast)
	rec.Total.Variance = rec.Total.Planned - (rec.Total.Realized + rec.Total.Forecast)
	if rec.Total.Planned > 0 {
		rec.Total.VariancePct = rec.Total.Variance / rec.Total.Planned * 100
	}

	if book != nil {
		rec.StoreCount = book.RelevantStoreCount(c)
	}
	if rec.StoreCount > 0 {
		n := float64(rec.StoreCount)
		rec.PerStore = AccountRow{
			Line:         "MÉDIA POR LOJA",
			Planned:      rec.Total.Planned / n,
			Realized:     rec.Total.Realized / n,
			Forecast:     rec.Total.Forecast / n,
			Variance:     rec.Total.Variance / n,
			VariancePct:  rec.Total.VariancePct,
			NoValueCount: int(math.Round(float64(rec.Total.NoValueCount) / n)),
		}
	}

	for _, key := range order {
		if _, ok := mapped[key]; ok {
			continue
		}
		fam := families[key]
		rec.Unmapped = append(rec.Unmapped, FamilyTotals{
			Family:       key,
			Realized:     fam.realized,
			Forecast:     fam.forecast,
			NoValueCount: fam.noValue,
		})
	}
	return rec
}
