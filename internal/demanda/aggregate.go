package demanda

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// DailyGoal is the number of records a store is expected to open per day.
const DailyGoal = 5

// LabelCount is one label/value point of a chart series.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"quantidade"`
}

// CountByStatus tallies records per normalized status, always emitting the
// four statuses in enum order so series stay aligned across filters.
func CountByStatus(demands []Demand) []LabelCount {
	counts := map[Status]int{}
	for _, d := range demands {
		counts[d.Status]++
	}
	out := make([]LabelCount, 0, 4)
	for _, s := range []Status{StatusOpen, StatusClosed, StatusCancelled, StatusOther} {
		out = append(out, LabelCount{Label: s.Label(), Count: counts[s]})
	}
	return out
}

// CountByKind tallies records per kind in first-seen order, so the series
// order is stable across recomputations of the same snapshot.
func CountByKind(demands []Demand, v Vocabulary) []LabelCount {
	index := map[string]int{}
	out := []LabelCount{}
	for _, d := range demands {
		label := v.LabelOrNotInformed(d.Kind)
		i, seen := index[label]
		if !seen {
			index[label] = len(out)
			out = append(out, LabelCount{Label: label})
			i = len(out) - 1
		}
		out[i].Count++
	}
	return out
}

// TopNByGroup groups records by key, counts them, and returns the n
// largest groups. Sorting is stable over first-seen order, so equal counts
// keep their input ranking. Records keyed to "" are skipped.
func TopNByGroup(demands []Demand, n int, key func(Demand) string) []LabelCount {
	index := map[string]int{}
	groups := []LabelCount{}
	for _, d := range demands {
		k := key(d)
		if k == "" {
			continue
		}
		i, seen := index[k]
		if !seen {
			index[k] = len(groups)
			groups = append(groups, LabelCount{Label: k})
			i = len(groups) - 1
		}
		groups[i].Count++
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})
	if n > 0 && len(groups) > n {
		groups = groups[:n]
	}
	return groups
}

// TopBranches ranks the n stores with the most records.
func TopBranches(demands []Demand, n int) []LabelCount {
	return TopNByGroup(demands, n, func(d Demand) string {
		return strconv.Itoa(d.BranchID)
	})
}

// TopOwners ranks the n owners with the most records; ownerless records do
// not count toward anyone.
func TopOwners(demands []Demand, n int) []LabelCount {
	return TopNByGroup(demands, n, func(d Demand) string {
		if !d.HasOwner() {
			return ""
		}
		return d.Owner
	})
}

// TopOwnersOpen ranks owners by their open records only.
func TopOwnersOpen(demands []Demand, n int) []LabelCount {
	return TopNByGroup(demands, n, func(d Demand) string {
		if !d.HasOwner() || d.Status != StatusOpen {
			return ""
		}
		return d.Owner
	})
}

// CountByNimbi tallies records per requisition (Nimbi) status, largest
// first; absent statuses group under the not-informed label.
func CountByNimbi(demands []Demand, v Vocabulary) []LabelCount {
	return TopNByGroup(demands, 0, func(d Demand) string {
		return v.LabelOrNotInformed(d.NimbiStatus)
	})
}

// CountByOrderStatus tallies records per purchase-order status, largest
// first; absent statuses group under the not-informed label.
func CountByOrderStatus(demands []Demand, v Vocabulary) []LabelCount {
	return TopNByGroup(demands, 0, func(d Demand) string {
		return v.LabelOrNotInformed(d.OrderStatus)
	})
}

// MoneySplit compares corrective and preventive spending.
type MoneySplit struct {
	Corrective    float64 `json:"corretiva"`
	Preventive    float64 `json:"preventiva"`
	CorrectivePct float64 `json:"corretivaPercentual"`
	PreventivePct float64 `json:"preventivaPercentual"`
}

// SplitCorrectivePreventive sums the monetary value of records that have
// an order reference and a positive value, keyed on whether the account
// family reads corrective or preventive. Families naming neither are
// left out.
func SplitCorrectivePreventive(demands []Demand) MoneySplit {
	var s MoneySplit
	for _, d := range demands {
		if d.MonetaryValue <= 0 || strings.TrimSpace(d.OrderRef) == "" {
			continue
		}
		fam := canonical(d.AccountFamily)
		switch {
		case strings.Contains(fam, "CORRETIVA"):
			s.Corrective += d.MonetaryValue
		case strings.Contains(fam, "PREVENTIVA"):
			s.Preventive += d.MonetaryValue
		}
	}
	total := s.Corrective + s.Preventive
	s.CorrectivePct = Percent(s.Corrective, total)
	s.PreventivePct = Percent(s.Preventive, total)
	return s
}

// MonthlyStatus is one month of the opened-vs-settled series. Settled
// covers everything not open, cancellations included.
type MonthlyStatus struct {
	Month   string `json:"mes"`
	Open    int    `json:"abertas"`
	Settled int    `json:"fechadas"`
}

// MonthlySeries buckets records by opening month ("YYYY-MM", ascending).
// Records without an opening date are skipped.
func MonthlySeries(demands []Demand) []MonthlyStatus {
	buckets := map[string]*MonthlyStatus{}
	for _, d := range demands {
		if d.OpenedAt.IsZero() {
			continue
		}
		key := d.OpenedAt.Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &MonthlyStatus{Month: key}
			buckets[key] = b
		}
		if d.Status == StatusOpen {
			b.Open++
		} else {
			b.Settled++
		}
	}
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]MonthlyStatus, 0, len(keys))
	for _, k := range keys {
		out = append(out, *buckets[k])
	}
	return out
}

// PlannedEfficiency summarizes planned records: how many closed, and the
// closed share as a percentage.
type PlannedEfficiency struct {
	Total      int     `json:"total"`
	Open       int     `json:"abertas"`
	Closed     int     `json:"fechadas"`
	Cancelled  int     `json:"canceladas"`
	Efficiency float64 `json:"eficiencia"`
}

// MeasurePlannedEfficiency computes the planned-record breakdown. With no
// planned records the efficiency is 0.
func MeasurePlannedEfficiency(demands []Demand) PlannedEfficiency {
	var e PlannedEfficiency
	for _, d := range demands {
		if !d.IsPlanned {
			continue
		}
		e.Total++
		switch d.Status {
		case StatusOpen:
			e.Open++
		case StatusClosed:
			e.Closed++
		case StatusCancelled:
			e.Cancelled++
		}
	}
	e.Efficiency = Percent(float64(e.Closed), float64(e.Total))
	return e
}

// BranchStatus is one store's per-status record counts.
type BranchStatus struct {
	Branch    int `json:"filial"`
	Open      int `json:"abertas"`
	Closed    int `json:"fechadas"`
	Cancelled int `json:"canceladas"`
	Other     int `json:"outras"`
}

// StatusByBranch breaks record statuses down per store, sorted by store id.
func StatusByBranch(demands []Demand) []BranchStatus {
	byBranch := map[int]*BranchStatus{}
	for _, d := range demands {
		b, ok := byBranch[d.BranchID]
		if !ok {
			b = &BranchStatus{Branch: d.BranchID}
			byBranch[d.BranchID] = b
		}
		switch d.Status {
		case StatusOpen:
			b.Open++
		case StatusClosed:
			b.Closed++
		case StatusCancelled:
			b.Cancelled++
		default:
			b.Other++
		}
	}
	ids := make([]int, 0, len(byBranch))
	for id := range byBranch {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]BranchStatus, 0, len(ids))
	for _, id := range ids {
		out = append(out, *byBranch[id])
	}
	return out
}

// pt-BR month names indexed by time.Month.
var ptMonths = [...]string{"", "Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro"}

// MonthName renders a month in pt-BR.
func MonthName(m time.Month) string {
	return ptMonths[m]
}

// Short pt-BR month names, the column headers of the planning sheet.
var ptShortMonths = [...]string{"", "Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// ShortMonthName renders a month as its planning-sheet column name.
func ShortMonthName(m time.Month) string {
	return ptShortMonths[m]
}

// PlanMonths lists the twelve planning column names in calendar order.
func PlanMonths() []string {
	return ptShortMonths[1:]
}

// MonthlyAverageRow holds one store's average records per day with
// activity, keyed by pt-BR month name.
type MonthlyAverageRow struct {
	Branch  int                `json:"filial"`
	ByMonth map[string]float64 `json:"medias"`
}

// MonthlyAverages computes, per store and month, the average number of
// records per day that had at least one record. The denominator is the
// count of distinct active days, not the calendar length of the month, so
// ten records across two days average to 5. Months are returned in
// calendar order; stores ascending. Records without a branch or an opening
// date are skipped.
func MonthlyAverages(demands []Demand) (rows []MonthlyAverageRow, months []string) {
	type bucket struct {
		total int
		days  map[string]struct{}
	}
	stats := map[int]map[time.Month]*bucket{}
	seenMonths := map[time.Month]struct{}{}

	for _, d := range demands {
		if d.BranchID == 0 || d.OpenedAt.IsZero() {
			continue
		}
		byMonth, ok := stats[d.BranchID]
		if !ok {
			byMonth = map[time.Month]*bucket{}
			stats[d.BranchID] = byMonth
		}
		m := d.OpenedAt.Month()
		b, ok := byMonth[m]
		if !ok {
			b = &bucket{days: map[string]struct{}{}}
			byMonth[m] = b
		}
		b.total++
		b.days[d.OpenedAt.Format("2006-01-02")] = struct{}{}
		seenMonths[m] = struct{}{}
	}

	for m := time.January; m <= time.December; m++ {
		if _, ok := seenMonths[m]; ok {
			months = append(months, MonthName(m))
		}
	}

	ids := make([]int, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		row := MonthlyAverageRow{Branch: id, ByMonth: map[string]float64{}}
		for m, b := range stats[id] {
			if len(b.days) == 0 {
				continue
			}
			row.ByMonth[MonthName(m)] = float64(b.total) / float64(len(b.days))
		}
		rows = append(rows, row)
	}
	return rows, months
}

// GoalRow is one store's attainment of the daily record goal.
type GoalRow struct {
	Branch int  `json:"filial"`
	Count  int  `json:"quantidade"`
	Met    bool `json:"metaAtingida"`
}

// GoalAttainment counts each store's records opened on the given day and
// marks whether the store reached the goal. Only stores with at least one
// record that day appear, sorted by store id.
func GoalAttainment(demands []Demand, day time.Time, goal int) []GoalRow {
	counts := map[int]int{}
	for _, d := range demands {
		if d.BranchID == 0 || d.OpenedAt.IsZero() || !SameDay(d.OpenedAt, day) {
			continue
		}
		counts[d.BranchID]++
	}
	ids := make([]int, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	rows := make([]GoalRow, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, GoalRow{Branch: id, Count: counts[id], Met: counts[id] >= goal})
	}
	return rows
}
