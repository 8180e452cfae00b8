package main

import (
	"context"
	"net/http"
	"time"

	"github.com/demandaops/painel-manutencao/internal/response"
)

type RefreshData struct {
	Records   int    `json:"registros"`
	Ownerless int    `json:"semDono"`
	LoadedAt  string `json:"carregadoEm"`
}

// handleRefresh reloads all datasets and swaps the snapshot. On failure
// the previous snapshot keeps serving.
func (app *application) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Minute)
	defer cancel()

	snap, err := app.loader.Load(ctx)
	if err != nil {
		writeJSONError(w, http.StatusBadGateway, err.Error())
		return
	}
	app.state.set(snap)

	data := RefreshData{
		Records:   len(snap.Demands),
		Ownerless: len(snap.Ownerless),
		LoadedAt:  snap.LoadedAt.Format("02/01/2006 15:04:05"),
	}
	writeJSON(w, http.StatusOK, response.OK(data))
}
