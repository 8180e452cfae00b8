package main

import (
	"net/http"
	"strconv"

	"github.com/demandaops/painel-manutencao/internal/demanda"
	"github.com/demandaops/painel-manutencao/internal/response"
)

type SummaryData struct {
	Orders   demanda.Stats       `json:"ordens"`
	Demands  demanda.DemandStats `json:"demandas"`
	LoadedAt string              `json:"carregadoEm"`
}

type GetSummaryResponse = response.APIResponse[SummaryData]
type GetReconciliationResponse = response.APIResponse[demanda.Reconciliation]

func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	_, loaded := app.state.get()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"dadosCarregados": loaded,
	})
}

// snapshot answers 503 while no load has succeeded yet.
func (app *application) snapshot(w http.ResponseWriter) (*demanda.Snapshot, bool) {
	snap, ok := app.state.get()
	if !ok {
		writeJSONError(w, http.StatusServiceUnavailable, "dados ainda não carregados")
	}
	return snap, ok
}

// filtered resolves the snapshot and applies the request's criteria.
func (app *application) filtered(w http.ResponseWriter, r *http.Request) (*demanda.Snapshot, []demanda.Demand, demanda.Criteria, bool) {
	snap, ok := app.snapshot(w)
	if !ok {
		return nil, nil, demanda.Criteria{}, false
	}
	criteria, err := app.parseCriteria(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return nil, nil, demanda.Criteria{}, false
	}
	return snap, demanda.Apply(snap.Demands, criteria, snap.Book), criteria, true
}

func (app *application) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	snap, filtered, _, ok := app.filtered(w, r)
	if !ok {
		return
	}
	data := SummaryData{
		Orders:   demanda.Summarize(filtered),
		Demands:  demanda.SummarizeDemands(filtered, app.vocab),
		LoadedAt: snap.LoadedAt.Format("02/01/2006 15:04:05"),
	}
	resp := &GetSummaryResponse{Success: true, Data: data}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleGetDemandStats(w http.ResponseWriter, r *http.Request) {
	_, filtered, _, ok := app.filtered(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, response.OK(demanda.SummarizeDemands(filtered, app.vocab)))
}

func (app *application) handleGetNimbiSeries(w http.ResponseWriter, r *http.Request) {
	_, filtered, _, ok := app.filtered(w, r)
	if !ok {
		return
	}
	points := demanda.WithPercents(demanda.CountByNimbi(filtered, app.vocab))
	writeJSON(w, http.StatusOK, response.OK(points))
}

func (app *application) handleGetOrderStatusSeries(w http.ResponseWriter, r *http.Request) {
	_, filtered, _, ok := app.filtered(w, r)
	if !ok {
		return
	}
	points := demanda.WithPercents(demanda.CountByOrderStatus(filtered, app.vocab))
	writeJSON(w, http.StatusOK, response.OK(points))
}

func (app *application) handleGetMoneySplit(w http.ResponseWriter, r *http.Request) {
	_, filtered, _, ok := app.filtered(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, response.OK(demanda.SplitCorrectivePreventive(filtered)))
}

func (app *application) handleGetFilterOptions(w http.ResponseWriter, r *http.Request) {
	snap, ok := app.snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, response.OK(demanda.Options(snap.Demands, snap.Book)))
}

func (app *application) handleGetStatusSeries(w http.ResponseWriter, r *http.Request) {
	_, filtered, _, ok := app.filtered(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, response.OK(demanda.StatusPoints(filtered)))
}

func (app *application) handleGetKindSeries(w http.ResponseWriter, r *http.Request) {
	_, filtered, _, ok := app.filtered(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, response.OK(demanda.KindPoints(filtered, app.vocab)))
}

func (app *application) handleGetTopBranches(w http.ResponseWriter, r *http.Request) {
	_, filtered, _, ok := app.filtered(w, r)
	if !ok {
		return
	}
	top := demanda.TopBranches(filtered, parseLimit(r, 10))
	writeJSON(w, http.StatusOK, response.OK(demanda.WithPercents(top)))
}

func (app *application) handleGetTopOwners(w http.ResponseWriter, r *http.Request) {
	_, filtered, _, ok := app.filtered(w, r)
	if !ok {
		return
	}
	openOnly := r.URL.Query().Get("abertas") == "true"
	points := demanda.TopOwnerPoints(filtered, parseLimit(r, 10), openOnly)
	writeJSON(w, http.StatusOK, response.OK(points))
}

func (app *application) handleGetMonthlySeries(w http.ResponseWriter, r *http.Request) {
	_, filtered, _, ok := app.filtered(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, response.OK(demanda.MonthlySeries(filtered)))
}

func (app *application) handleGetPlannedEfficiency(w http.ResponseWriter, r *http.Request) {
	_, filtered, _, ok := app.filtered(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, response.OK(demanda.MeasurePlannedEfficiency(filtered)))
}

func (app *application) handleGetStatusByBranch(w http.ResponseWriter, r *http.Request) {
	_, filtered, _, ok := app.filtered(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, response.OK(demanda.StatusByBranch(filtered)))
}

func (app *application) handleGetReconciliation(w http.ResponseWriter, r *http.Request) {
	snap, filtered, criteria, ok := app.filtered(w, r)
	if !ok {
		return
	}
	rec := demanda.Reconcile(filtered, snap.Book, criteria, app.period(r), app.vocab)
	resp := &GetReconciliationResponse{Success: true, Data: rec}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleGetOverdue(w http.ResponseWriter, r *http.Request) {
	_, filtered, _, ok := app.filtered(w, r)
	if !ok {
		return
	}
	rows := demanda.OverdueOrders(filtered, app.now(), app.vocab)
	writeJSON(w, http.StatusOK, response.OK(rows))
}

func (app *application) handleGetOwnerless(w http.ResponseWriter, r *http.Request) {
	snap, ok := app.snapshot(w)
	if !ok {
		return
	}
	criteria, err := app.parseCriteria(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	queue := demanda.Apply(snap.Ownerless, criteria, snap.Book)
	writeJSON(w, http.StatusOK, response.OK(demanda.OwnerlessRows(queue, parseLimit(r, 100))))
}

func (app *application) handleGetGoalTable(w http.ResponseWriter, r *http.Request) {
	_, filtered, _, ok := app.filtered(w, r)
	if !ok {
		return
	}
	day := app.now()
	if v := r.URL.Query().Get("dia"); v != "" {
		parsed := demanda.ParseBRDate(v)
		if parsed.IsZero() {
			writeJSONError(w, http.StatusBadRequest, "parâmetro dia inválido")
			return
		}
		day = parsed
	}
	goal := demanda.DailyGoal
	if v := r.URL.Query().Get("meta"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSONError(w, http.StatusBadRequest, "parâmetro meta inválido")
			return
		}
		goal = n
	}
	table := demanda.ProjectGoalTable(filtered, day, goal)
	writeJSON(w, http.StatusOK, response.OK(table))
}

func (app *application) handleGetMonthlyAverages(w http.ResponseWriter, r *http.Request) {
	_, filtered, _, ok := app.filtered(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, response.OK(demanda.ProjectMonthlyAverages(filtered)))
}

func (app *application) handleGetDetails(w http.ResponseWriter, r *http.Request) {
	_, filtered, _, ok := app.filtered(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, response.OK(demanda.DetailRows(filtered)))
}
