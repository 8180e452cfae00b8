package demanda

import (
	"sort"
	"time"
)

// Stats is the headline card block of the work-order view.
type Stats struct {
	Total     int `json:"total"`
	Open      int `json:"abertas"`
	Closed    int `json:"fechadas"`
	Cancelled int `json:"canceladas"`
	Planned   int `json:"planejadas"`
}

// Summarize counts the filtered records per headline card.
func Summarize(demands []Demand) Stats {
	var s Stats
	s.Total = len(demands)
	for _, d := range demands {
		switch d.Status {
		case StatusOpen:
			s.Open++
		case StatusClosed:
			s.Closed++
		case StatusCancelled:
			s.Cancelled++
		}
		if d.IsPlanned {
			s.Planned++
		}
	}
	return s
}

// DemandStats is the headline card block of the procurement view.
type DemandStats struct {
	Total      int     `json:"total"`
	WithOrder  int     `json:"comPedido"`
	NoValue    int     `json:"semValor"`
	Completed  int     `json:"concluidas"`
	Pending    int     `json:"pendentes"`
	TotalValue float64 `json:"valorTotal"`
}

// SummarizeDemands counts the procurement-side cards. "Com pedido" means
// the supplier accepted the order, not merely that a reference exists.
func SummarizeDemands(demands []Demand, v Vocabulary) DemandStats {
	var s DemandStats
	s.Total = len(demands)
	for _, d := range demands {
		if v.IsOrderAccepted(d) {
			s.WithOrder++
		}
		if d.MonetaryValue <= 0 {
			s.NoValue++
		}
		switch d.Status {
		case StatusClosed:
			s.Completed++
		case StatusOpen:
			s.Pending++
		}
		s.TotalValue += d.MonetaryValue
	}
	return s
}

// Point is one chart point: label, count and share of the series total.
type Point struct {
	Label   string  `json:"label"`
	Count   int     `json:"quantidade"`
	Percent float64 `json:"percentual"`
}

// WithPercents annotates a count series with each point's share of the
// series total. An all-zero series yields zero percentages.
func WithPercents(counts []LabelCount) []Point {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	out := make([]Point, 0, len(counts))
	for _, c := range counts {
		out = append(out, Point{
			Label:   c.Label,
			Count:   c.Count,
			Percent: Percent(float64(c.Count), float64(total)),
		})
	}
	return out
}

// StatusPoints is the status donut series with percentages.
func StatusPoints(demands []Demand) []Point {
	return WithPercents(CountByStatus(demands))
}

// KindPoints is the kind chart series with percentages.
func KindPoints(demands []Demand, v Vocabulary) []Point {
	return WithPercents(CountByKind(demands, v))
}

// TopOwnerPoints ranks owners and sizes each share against the whole set
// being ranked, not just the visible top slice.
func TopOwnerPoints(demands []Demand, n int, openOnly bool) []Point {
	var counts []LabelCount
	total := 0
	if openOnly {
		counts = TopOwnersOpen(demands, n)
		for _, d := range demands {
			if d.HasOwner() && d.Status == StatusOpen {
				total++
			}
		}
	} else {
		counts = TopOwners(demands, n)
		for _, d := range demands {
			if d.HasOwner() {
				total++
			}
		}
	}
	out := make([]Point, 0, len(counts))
	for _, c := range counts {
		out = append(out, Point{
			Label:   c.Label,
			Count:   c.Count,
			Percent: Percent(float64(c.Count), float64(total)),
		})
	}
	return out
}

// Thresholds, in business days since the last requisition send, for the
// overdue follow-up list.
const (
	OverdueAfterDays  = 5
	AlertAfterDays    = 4
	CriticalAfterDays = 7
)

// OverdueRow is one line of the "sem pedido" follow-up table.
type OverdueRow struct {
	Owner         string `json:"encarregado"`
	Branch        int    `json:"filial"`
	ServiceCode   string `json:"ss"`
	RequestCode   string `json:"rc"`
	Description   string `json:"descricao"`
	OrderForecast string `json:"previsaoPedido"`
	LastRCSent    string `json:"ultimoEnvioRC"`
	BusinessDays  int    `json:"diasUteis"`
	Severity      string `json:"severidade"`
}

// OverdueOrders lists records stuck without a purchase order for more
// than OverdueAfterDays business days since the requisition was sent,
// oldest send first. Severity escalates with age.
func OverdueOrders(demands []Demand, today time.Time, v Vocabulary) []OverdueRow {
	type candidate struct {
		d    Demand
		days int
	}
	stuck := []candidate{}
	for _, d := range demands {
		if !v.IsOverdueCandidate(d) {
			continue
		}
		days := CountBusinessDays(d.LastRCSent, today)
		if days > OverdueAfterDays {
			stuck = append(stuck, candidate{d: d, days: days})
		}
	}
	sort.SliceStable(stuck, func(i, j int) bool {
		return stuck[i].d.LastRCSent.Before(stuck[j].d.LastRCSent)
	})

	rows := make([]OverdueRow, 0, len(stuck))
	for _, c := range stuck {
		severity := "normal"
		switch {
		case c.days > CriticalAfterDays:
			severity = "critico"
		case c.days > AlertAfterDays:
			severity = "alerta"
		}
		rows = append(rows, OverdueRow{
			Owner:         c.d.Owner,
			Branch:        c.d.BranchID,
			ServiceCode:   c.d.ServiceCode,
			RequestCode:   c.d.RequestCode,
			Description:   c.d.Description,
			OrderForecast: FormatBRDate(ParseBRDate(c.d.OrderForecast)),
			LastRCSent:    FormatBRDate(c.d.LastRCSent),
			BusinessDays:  c.days,
			Severity:      severity,
		})
	}
	return rows
}

// DetailRow is one record of the detail table, formatted for display.
type DetailRow struct {
	Branch   int    `json:"filial"`
	Owner    string `json:"responsavel"`
	Tag      string `json:"tag"`
	Kind     string `json:"tipo"`
	Status   string `json:"status"`
	OpenedAt string `json:"dataAbertura"`
	ClosedAt string `json:"dataFechamento"`
	Employee string `json:"funcionario"`
	Planned  string `json:"planejada"`
}

func toDetailRow(d Demand) DetailRow {
	planned := "Não"
	if d.IsPlanned {
		planned = "Sim"
	}
	return DetailRow{
		Branch:   d.BranchID,
		Owner:    d.Owner,
		Tag:      d.Tag,
		Kind:     d.Kind,
		Status:   d.Status.Label(),
		OpenedAt: FormatBRDate(d.OpenedAt),
		ClosedAt: FormatBRDate(d.ClosedAt),
		Employee: d.Employee,
		Planned:  planned,
	}
}

// DetailRows projects records into display rows, preserving input order.
func DetailRows(demands []Demand) []DetailRow {
	rows := make([]DetailRow, 0, len(demands))
	for _, d := range demands {
		rows = append(rows, toDetailRow(d))
	}
	return rows
}

// OwnerlessRows projects the ownerless queue, capped at limit rows when
// limit is positive.
func OwnerlessRows(demands []Demand, limit int) []DetailRow {
	if limit > 0 && len(demands) > limit {
		demands = demands[:limit]
	}
	return DetailRows(demands)
}

// GoalTable is the daily-goal attainment sheet for one calendar day.
type GoalTable struct {
	Day  string    `json:"dia"`
	Goal int       `json:"meta"`
	Rows []GoalRow `json:"linhas"`
}

// ProjectGoalTable builds the attainment sheet for the given day.
func ProjectGoalTable(demands []Demand, day time.Time, goal int) GoalTable {
	return GoalTable{
		Day:  FormatBRDate(day),
		Goal: goal,
		Rows: GoalAttainment(demands, day, goal),
	}
}

// MonthlyAverageCells is one store's row of the monthly-average sheet,
// cells aligned with the table's month headers.
type MonthlyAverageCells struct {
	Branch int      `json:"filial"`
	Cells  []string `json:"medias"`
}

// MonthlyAverageTable is the per-store daily-average sheet. Months with
// no activity for a store render as "0,00".
type MonthlyAverageTable struct {
	Months []string              `json:"meses"`
	Rows   []MonthlyAverageCells `json:"linhas"`
}

// ProjectMonthlyAverages formats the monthly averages with two decimals
// and the pt-BR separator.
func ProjectMonthlyAverages(demands []Demand) MonthlyAverageTable {
	rows, months := MonthlyAverages(demands)
	table := MonthlyAverageTable{Months: months}
	for _, r := range rows {
		cells := make([]string, 0, len(months))
		for _, m := range months {
			cells = append(cells, FormatDecimalBR(r.ByMonth[m], 2))
		}
		table.Rows = append(table.Rows, MonthlyAverageCells{Branch: r.Branch, Cells: cells})
	}
	return table
}
