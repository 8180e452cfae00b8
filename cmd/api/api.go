package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/demandaops/painel-manutencao/internal/demanda"
	"github.com/demandaops/painel-manutencao/internal/loader"
	"github.com/demandaops/painel-manutencao/internal/logger"
)

type application struct {
	config config
	log    *logger.Logger
	loader *loader.Loader
	state  snapshotState
	vocab  demanda.Vocabulary

	// now is swapped in tests to pin goal and overdue calculations.
	now func() time.Time
}

type config struct {
	addr     string
	logLevel string
	datasets datasetConfig
}

type datasetConfig struct {
	recordsURL  string
	planningURL string
	regionalURL string
	userAgent   string
	dataset     string
}

// snapshotState guards the current snapshot. Loads swap the pointer; every
// request reads whichever snapshot was current when it arrived.
type snapshotState struct {
	mu   sync.RWMutex
	snap *demanda.Snapshot
}

func (s *snapshotState) get() (*demanda.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.snap != nil
}

func (s *snapshotState) set(snap *demanda.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Route("/painel", func(r chi.Router) {
			r.Get("/stats", app.handleGetSummary)
			r.Get("/stats/demandas", app.handleGetDemandStats)
			r.Get("/filtros", app.handleGetFilterOptions)
			r.Route("/charts", func(r chi.Router) {
				r.Get("/status", app.handleGetStatusSeries)
				r.Get("/tipos", app.handleGetKindSeries)
				r.Get("/nimbi", app.handleGetNimbiSeries)
				r.Get("/status-pedido", app.handleGetOrderStatusSeries)
				r.Get("/top-filiais", app.handleGetTopBranches)
				r.Get("/top-encarregados", app.handleGetTopOwners)
				r.Get("/mensal", app.handleGetMonthlySeries)
				r.Get("/eficiencia", app.handleGetPlannedEfficiency)
				r.Get("/status-filiais", app.handleGetStatusByBranch)
				r.Get("/corretiva-preventiva", app.handleGetMoneySplit)
			})
			r.Get("/financeiro/contas", app.handleGetReconciliation)
			r.Get("/demandas/sem-pedido", app.handleGetOverdue)
			r.Get("/os/sem-dono", app.handleGetOwnerless)
			r.Get("/metas", app.handleGetGoalTable)
			r.Get("/medias-mensais", app.handleGetMonthlyAverages)
			r.Get("/detalhes", app.handleGetDetails)
			r.Get("/export/{view}", app.handleExport)
		})
		r.Route("/ingestao", func(r chi.Router) {
			r.Post("/atualizar", app.handleRefresh)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	app.log.Info("api", "Server started on %s", app.config.addr)
	return srv.ListenAndServe()
}
