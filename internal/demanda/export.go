package demanda

import "strconv"

// Column sets for the CSV exports, shared by the API and the report CLI.

func DetailColumns() []Column[DetailRow] {
	return []Column[DetailRow]{
		{Label: "Tag", Value: func(r DetailRow) string { return r.Tag }},
		{Label: "Data Abertura", Value: func(r DetailRow) string { return r.OpenedAt }},
		{Label: "Status", Value: func(r DetailRow) string { return r.Status }},
		{Label: "Filial", Value: func(r DetailRow) string { return "Filial " + strconv.Itoa(r.Branch) }},
		{Label: "Responsável", Value: func(r DetailRow) string { return r.Owner }},
		{Label: "Tipo", Value: func(r DetailRow) string { return r.Kind }},
		{Label: "Planejada", Value: func(r DetailRow) string { return r.Planned }},
	}
}

// TopColumns carries a position counter, so a set is good for one export.
func TopColumns(header string) []Column[Point] {
	pos := 0
	return []Column[Point]{
		{Label: "Posição", Value: func(Point) string { pos++; return strconv.Itoa(pos) }},
		{Label: header, Value: func(p Point) string { return p.Label }},
		{Label: "Quantidade", Value: func(p Point) string { return strconv.Itoa(p.Count) }},
		{Label: "% do Total", Value: func(p Point) string { return FormatDecimalBR(p.Percent, 1) + "%" }},
	}
}

func OverdueColumns() []Column[OverdueRow] {
	return []Column[OverdueRow]{
		{Label: "Encarregado", Value: func(r OverdueRow) string { return r.Owner }},
		{Label: "Filial", Value: func(r OverdueRow) string { return strconv.Itoa(r.Branch) }},
		{Label: "SS", Value: func(r OverdueRow) string { return r.ServiceCode }},
		{Label: "RC", Value: func(r OverdueRow) string { return r.RequestCode }},
		{Label: "Descrição", Value: func(r OverdueRow) string { return r.Description }},
		{Label: "Previsão Pedido", Value: func(r OverdueRow) string { return r.OrderForecast }},
		{Label: "Último Envio RC", Value: func(r OverdueRow) string { return r.LastRCSent }},
		{Label: "Dias Úteis", Value: func(r OverdueRow) string { return strconv.Itoa(r.BusinessDays) }},
	}
}

func GoalColumns() []Column[GoalRow] {
	return []Column[GoalRow]{
		{Label: "Loja", Value: func(r GoalRow) string { return strconv.Itoa(r.Branch) }},
		{Label: "Quantidade", Value: func(r GoalRow) string { return strconv.Itoa(r.Count) }},
		{Label: "Meta", Value: func(r GoalRow) string {
			if r.Met {
				return "Atingida"
			}
			return "Não Atingida"
		}},
	}
}

func AccountColumns() []Column[AccountRow] {
	return []Column[AccountRow]{
		{Label: "Conta/Linha", Value: func(r AccountRow) string { return r.Line }},
		{Label: "Número Conta", Value: func(r AccountRow) string { return r.Number }},
		{Label: "Planejado", Value: func(r AccountRow) string { return FormatBRL(r.Planned) }},
		{Label: "Realizado", Value: func(r AccountRow) string { return FormatBRL(r.Realized) }},
		{Label: "Previsto", Value: func(r AccountRow) string { return FormatBRL(r.Forecast) }},
		{Label: "Delta R$", Value: func(r AccountRow) string { return FormatBRL(r.Variance) }},
		{Label: "Demandas Sem Valor", Value: func(r AccountRow) string { return strconv.Itoa(r.NoValueCount) }},
		{Label: "Delta %", Value: func(r AccountRow) string { return FormatDecimalBR(r.VariancePct, 1) + "%" }},
	}
}

// MonthlyAverageColumns builds the column set for a monthly-average
// table, one column per month present in it.
func MonthlyAverageColumns(table MonthlyAverageTable) []Column[MonthlyAverageCells] {
	cols := []Column[MonthlyAverageCells]{
		{Label: "Loja", Value: func(r MonthlyAverageCells) string { return strconv.Itoa(r.Branch) }},
	}
	for i, month := range table.Months {
		i := i
		cols = append(cols, Column[MonthlyAverageCells]{
			Label: month,
			Value: func(r MonthlyAverageCells) string {
				if i < len(r.Cells) {
					return r.Cells[i]
				}
				return "0,00"
			},
		})
	}
	return cols
}
