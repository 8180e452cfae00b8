package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/demandaops/painel-manutencao/internal/demanda"
)

// handleExport renders one view as CSV. The delimiter can be overridden
// with ?delimitador=; for pt-BR spreadsheet tools, and
// ?charset=windows-1252 re-encodes the payload for legacy Excel.
func (app *application) handleExport(w http.ResponseWriter, r *http.Request) {
	snap, filtered, criteria, ok := app.filtered(w, r)
	if !ok {
		return
	}

	delimiter := ','
	if v := r.URL.Query().Get("delimitador"); v != "" {
		runes := []rune(v)
		if len(runes) != 1 {
			writeJSONError(w, http.StatusBadRequest, "parâmetro delimitador inválido")
			return
		}
		delimiter = runes[0]
	}

	view := chi.URLParam(r, "view")
	var (
		csv      string
		filename string
		err      error
	)
	switch view {
	case "detalhes":
		csv, err = demanda.BuildCSV(demanda.DetailRows(filtered), demanda.DetailColumns(), delimiter)
		filename = "ordens_servico.csv"
	case "sem-dono":
		queue := demanda.Apply(snap.Ownerless, criteria, snap.Book)
		csv, err = demanda.BuildCSV(demanda.OwnerlessRows(queue, 0), demanda.DetailColumns(), delimiter)
		filename = "ordens_sem_dono.csv"
	case "top-responsaveis":
		points := demanda.TopOwnerPoints(filtered, parseLimit(r, 10), true)
		csv, err = demanda.BuildCSV(points, demanda.TopColumns("Responsável"), delimiter)
		filename = "top_responsaveis.csv"
	case "sem-pedido":
		rows := demanda.OverdueOrders(filtered, app.now(), app.vocab)
		csv, err = demanda.BuildCSV(rows, demanda.OverdueColumns(), delimiter)
		filename = "demandas_sem_pedido.csv"
	case "metas":
		rows := demanda.GoalAttainment(filtered, app.now(), demanda.DailyGoal)
		csv, err = demanda.BuildCSV(rows, demanda.GoalColumns(), delimiter)
		filename = "metas_diarias.csv"
	case "financeiro":
		rec := demanda.Reconcile(filtered, snap.Book, criteria, app.period(r), app.vocab)
		rows := append(rec.Rows, rec.Total)
		csv, err = demanda.BuildCSV(rows, demanda.AccountColumns(), delimiter)
		filename = "financeiro.csv"
	case "media-mensal":
		table := demanda.ProjectMonthlyAverages(filtered)
		csv, err = demanda.BuildCSV(table.Rows, demanda.MonthlyAverageColumns(table), delimiter)
		filename = "media_mensal.csv"
	default:
		writeJSONError(w, http.StatusNotFound, "visão desconhecida: "+view)
		return
	}
	if err != nil {
		if errors.Is(err, demanda.ErrNothingToExport) {
			writeJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	payload := []byte(csv)
	contentType := "text/csv; charset=utf-8"
	if r.URL.Query().Get("charset") == "windows-1252" {
		payload = demanda.EncodeWindows1252(csv)
		contentType = "text/csv; charset=windows-1252"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}
