package demanda

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCountByStatusIsTotal(t *testing.T) {
	demands := []Demand{
		{Status: StatusOpen}, {Status: StatusOpen},
		{Status: StatusClosed},
		{Status: StatusOther},
	}
	counts := CountByStatus(demands)
	if len(counts) != 4 {
		t.Fatalf("expected 4 status buckets, got %d", len(counts))
	}
	sum := 0
	for _, c := range counts {
		sum += c.Count
	}
	if sum != len(demands) {
		t.Errorf("status counts sum to %d, want %d", sum, len(demands))
	}
	if counts[0].Label != "Aberta" || counts[0].Count != 2 {
		t.Errorf("first bucket = %+v", counts[0])
	}
}

func TestCountByKindFirstSeenOrder(t *testing.T) {
	v := DefaultVocabulary()
	demands := []Demand{
		{Kind: "Corretiva"},
		{Kind: "Preventiva"},
		{Kind: "Corretiva"},
		{Kind: ""},
	}
	counts := CountByKind(demands, v)
	if len(counts) != 3 {
		t.Fatalf("got %d kinds", len(counts))
	}
	if counts[0].Label != "Corretiva" || counts[0].Count != 2 {
		t.Errorf("first = %+v", counts[0])
	}
	if counts[2].Label != "Não informado" || counts[2].Count != 1 {
		t.Errorf("empty kind bucket = %+v", counts[2])
	}
}

func TestTopNByGroupStableTies(t *testing.T) {
	demands := []Demand{
		{Owner: "Ana"}, {Owner: "Bia"}, {Owner: "Caio"},
		{Owner: "Bia"}, {Owner: "Caio"}, {Owner: "Dani"},
	}
	top := TopOwners(demands, 3)
	if len(top) != 3 {
		t.Fatalf("got %d entries", len(top))
	}
	// Bia and Caio tie at 2; Bia appeared first and must stay ahead.
	if top[0].Label != "Bia" || top[1].Label != "Caio" || top[2].Label != "Ana" {
		t.Errorf("ranking = %v", top)
	}

	again := TopOwners(demands, 3)
	for i := range top {
		if top[i] != again[i] {
			t.Fatal("ranking not deterministic across recomputation")
		}
	}
}

func TestTopOwnersSkipsOwnerless(t *testing.T) {
	demands := []Demand{
		{Owner: "Ana"},
		{Ownerless: true},
		{Owner: ""},
	}
	top := TopOwners(demands, 10)
	if len(top) != 1 || top[0].Label != "Ana" {
		t.Errorf("top = %v", top)
	}
}

func TestCountByNimbi(t *testing.T) {
	v := DefaultVocabulary()
	demands := []Demand{
		{NimbiStatus: "SIM"},
		{NimbiStatus: "SIM"},
		{NimbiStatus: "NÃO"},
		{NimbiStatus: ""},
	}
	counts := CountByNimbi(demands, v)
	if len(counts) != 3 {
		t.Fatalf("got %d buckets", len(counts))
	}
	if counts[0].Label != "SIM" || counts[0].Count != 2 {
		t.Errorf("first = %+v", counts[0])
	}
	found := false
	for _, c := range counts {
		if c.Label == "Não informado" && c.Count == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("missing not-informed bucket: %v", counts)
	}
}

func TestCountByOrderStatus(t *testing.T) {
	v := DefaultVocabulary()
	demands := []Demand{
		{OrderStatus: "PEDIDO ACEITO"},
		{OrderStatus: "PEDIDO ACEITO"},
		{OrderStatus: "SEM PEDIDO"},
		{OrderStatus: ""},
	}
	counts := CountByOrderStatus(demands, v)
	if len(counts) != 3 {
		t.Fatalf("got %d buckets", len(counts))
	}
	if counts[0].Label != "PEDIDO ACEITO" || counts[0].Count != 2 {
		t.Errorf("first = %+v", counts[0])
	}
	if counts[1].Label != "SEM PEDIDO" || counts[2].Label != "Não informado" {
		t.Errorf("tail = %+v", counts[1:])
	}
}

func TestSplitCorrectivePreventive(t *testing.T) {
	demands := []Demand{
		{AccountFamily: "REFRIGERAÇÃO CORRETIVA", MonetaryValue: 300, OrderRef: "PED-1"},
		{AccountFamily: "refrigeração preventiva", MonetaryValue: 100, OrderRef: "PED-2"},
		{AccountFamily: "REFRIGERAÇÃO CORRETIVA", MonetaryValue: 500, OrderRef: ""},  // no order
		{AccountFamily: "REFRIGERAÇÃO CORRETIVA", MonetaryValue: 0, OrderRef: "P-3"}, // no value
		{AccountFamily: "JARDINAGEM", MonetaryValue: 50, OrderRef: "P-4"},            // neither
	}
	s := SplitCorrectivePreventive(demands)
	if s.Corrective != 300 || s.Preventive != 100 {
		t.Errorf("split = %+v", s)
	}
	if s.CorrectivePct != 75 || s.PreventivePct != 25 {
		t.Errorf("percents = %+v", s)
	}
}

func TestMonthlySeries(t *testing.T) {
	demands := []Demand{
		{OpenedAt: day(2025, 10, 5), Status: StatusOpen},
		{OpenedAt: day(2025, 10, 9), Status: StatusClosed},
		{OpenedAt: day(2025, 11, 1), Status: StatusCancelled},
		{Status: StatusOpen}, // no opening date, skipped
	}
	series := MonthlySeries(demands)
	if len(series) != 2 {
		t.Fatalf("got %d months", len(series))
	}
	if series[0].Month != "2025-10" || series[0].Open != 1 || series[0].Settled != 1 {
		t.Errorf("october = %+v", series[0])
	}
	if series[1].Month != "2025-11" || series[1].Settled != 1 {
		t.Errorf("november = %+v", series[1])
	}
}

func TestMeasurePlannedEfficiency(t *testing.T) {
	demands := []Demand{
		{IsPlanned: true, Status: StatusClosed},
		{IsPlanned: true, Status: StatusClosed},
		{IsPlanned: true, Status: StatusOpen},
		{IsPlanned: true, Status: StatusCancelled},
		{Status: StatusClosed}, // unplanned, ignored
	}
	e := MeasurePlannedEfficiency(demands)
	if e.Total != 4 || e.Closed != 2 || e.Open != 1 || e.Cancelled != 1 {
		t.Errorf("breakdown = %+v", e)
	}
	if e.Efficiency != 50 {
		t.Errorf("Efficiency = %v, want 50", e.Efficiency)
	}

	empty := MeasurePlannedEfficiency(nil)
	if empty.Efficiency != 0 {
		t.Errorf("empty efficiency = %v, want 0", empty.Efficiency)
	}
}

func TestMonthlyAverages(t *testing.T) {
	demands := make([]Demand, 0, 10)
	// Ten records across two distinct days average to five.
	for i := 0; i < 6; i++ {
		demands = append(demands, Demand{BranchID: 85, OpenedAt: day(2025, 11, 3)})
	}
	for i := 0; i < 4; i++ {
		demands = append(demands, Demand{BranchID: 85, OpenedAt: day(2025, 11, 4)})
	}
	rows, months := MonthlyAverages(demands)
	if len(rows) != 1 || len(months) != 1 || months[0] != "Novembro" {
		t.Fatalf("rows=%v months=%v", rows, months)
	}
	if got := rows[0].ByMonth["Novembro"]; got != 5 {
		t.Errorf("average = %v, want 5", got)
	}
}

func TestGoalAttainment(t *testing.T) {
	today := day(2025, 11, 5)
	demands := []Demand{}
	for i := 0; i < 5; i++ {
		demands = append(demands, Demand{BranchID: 85, OpenedAt: today})
	}
	for i := 0; i < 4; i++ {
		demands = append(demands, Demand{BranchID: 115, OpenedAt: today})
	}
	demands = append(demands, Demand{BranchID: 115, OpenedAt: day(2025, 11, 4)})

	rows := GoalAttainment(demands, today, DailyGoal)
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0].Branch != 85 || !rows[0].Met || rows[0].Count != 5 {
		t.Errorf("store 85 = %+v", rows[0])
	}
	if rows[1].Branch != 115 || rows[1].Met || rows[1].Count != 4 {
		t.Errorf("store 115 = %+v", rows[1])
	}
}

func TestStatusByBranch(t *testing.T) {
	demands := []Demand{
		{BranchID: 115, Status: StatusOpen},
		{BranchID: 85, Status: StatusClosed},
		{BranchID: 85, Status: StatusOpen},
	}
	rows := StatusByBranch(demands)
	if len(rows) != 2 || rows[0].Branch != 85 || rows[1].Branch != 115 {
		t.Fatalf("rows = %+v", rows)
	}
	if rows[0].Open != 1 || rows[0].Closed != 1 {
		t.Errorf("store 85 = %+v", rows[0])
	}
}
