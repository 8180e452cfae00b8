package loader

import (
	"io"
	"strings"

	"github.com/go-gota/gota/dataframe"

	"github.com/demandaops/painel-manutencao/internal/demanda"
)

// The planning sheets are loosely shaped: month columns come and go, and
// monetary cells mix raw numbers with "R$ 1.234,56" strings. Reading them
// through a dataframe keeps the column access defensive.

func containsString(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}

func getStr(col string, rowIdx int, df *dataframe.DataFrame) string {
	if df == nil {
		return ""
	}
	if containsString(df.Names(), col) {
		val := df.Col(col).Elem(rowIdx).String()
		if val == "NaN" {
			return ""
		}
		return val
	}
	return ""
}

func getMoney(col string, rowIdx int, df *dataframe.DataFrame) float64 {
	return demanda.ParseBRLNumber(getStr(col, rowIdx, df))
}

func getStoreID(col string, rowIdx int, df *dataframe.DataFrame) int {
	n := int(demanda.ParseBRLNumber(getStr(col, rowIdx, df)))
	if n < 0 {
		return 0
	}
	return n
}

func dfRowToPlanningEntry(df *dataframe.DataFrame, rowIdx int) demanda.PlanningEntry {
	storeID := getStoreID("Loja", rowIdx, df)
	// The sheet's SUB column drifts; the store-id sets are authoritative, so
	// the sheet value only counts for stores outside both sets.
	sub := demanda.SubregionOf(storeID)
	if sub == demanda.SubregionOther {
		sub = demanda.ParseSubregion(getStr("SUB", rowIdx, df))
	}
	entry := demanda.PlanningEntry{
		StoreID:     storeID,
		AccountLine: strings.TrimSpace(getStr("Conta/linha", rowIdx, df)),
		Brand:       strings.TrimSpace(getStr("BANDEIRA", rowIdx, df)),
		Subregion:   sub,
		Monthly:     make(map[string]float64),
	}
	for _, month := range demanda.PlanMonths() {
		if containsString(df.Names(), month) {
			entry.Monthly[month] = getMoney(month, rowIdx, df)
		}
	}
	return entry
}

// ParsePlanning decodes the per-store planning sheet.
func ParsePlanning(r io.Reader) ([]demanda.PlanningEntry, error) {
	df := dataframe.ReadJSON(r)
	if df.Err != nil {
		return nil, df.Err
	}
	entries := make([]demanda.PlanningEntry, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		entries = append(entries, dfRowToPlanningEntry(&df, i))
	}
	return entries, nil
}

// ParseRegionalPlan decodes the regional rollup sheet.
func ParseRegionalPlan(r io.Reader) ([]demanda.RegionalPlanEntry, error) {
	df := dataframe.ReadJSON(r)
	if df.Err != nil {
		return nil, df.Err
	}
	entries := make([]demanda.RegionalPlanEntry, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		entries = append(entries, demanda.RegionalPlanEntry{
			AccountLine: strings.TrimSpace(getStr("Conta/linha", i, &df)),
			North:       getMoney("NORTE/FORT", i, &df),
			Vale:        getMoney("VALE/FORT", i, &df),
			GrandTotal:  getMoney("TOTAL GERAL", i, &df),
		})
	}
	return entries, nil
}
