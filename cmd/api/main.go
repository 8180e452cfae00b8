package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/demandaops/painel-manutencao/internal/demanda"
	"github.com/demandaops/painel-manutencao/internal/env"
	"github.com/demandaops/painel-manutencao/internal/loader"
	"github.com/demandaops/painel-manutencao/internal/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, relying on environment")
	}

	cfg := config{
		addr:     env.GetString("ADDR", ":8080"),
		logLevel: env.GetString("LOG_LEVEL", "info"),
		datasets: datasetConfig{
			recordsURL:  env.GetString("RECORDS_URL", ""),
			planningURL: env.GetString("PLANNING_URL", ""),
			regionalURL: env.GetString("REGIONAL_PLANNING_URL", ""),
			userAgent:   env.GetString("FETCH_USER_AGENT", ""),
			dataset:     env.GetString("DATASET", "demandas"),
		},
	}

	if cfg.datasets.recordsURL == "" {
		log.Panic("RECORDS_URL is required")
	}

	appLog := logger.New(logger.ParseLevel(cfg.logLevel))

	mapping := demanda.DemandMapping()
	if cfg.datasets.dataset == "ordens" {
		mapping = demanda.WorkOrderMapping()
	}

	ld := loader.New(loader.Config{
		RecordsURL:    cfg.datasets.recordsURL,
		PlanningURL:   cfg.datasets.planningURL,
		RegionalURL:   cfg.datasets.regionalURL,
		UserAgent:     cfg.datasets.userAgent,
		Timeout:       time.Duration(env.GetInt("FETCH_TIMEOUT_SECONDS", 30)) * time.Second,
		Mapping:       mapping,
		KeepOwnerless: true,
	}, appLog)

	app := &application{
		config: cfg,
		log:    appLog,
		loader: ld,
		vocab:  demanda.DefaultVocabulary(),
		now:    time.Now,
	}

	// Serve even when the first load fails; handlers answer 503 until a
	// refresh succeeds.
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	snap, err := ld.Load(ctx)
	cancel()
	if err != nil {
		appLog.Warn("api", "initial load failed, starting empty: %v", err)
	} else {
		app.state.set(snap)
	}

	mux := app.mount()

	log.Fatal(app.run(mux))
}
