package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/demandaops/painel-manutencao/internal/demanda"
	"github.com/demandaops/painel-manutencao/internal/env"
	"github.com/demandaops/painel-manutencao/internal/loader"
	"github.com/demandaops/painel-manutencao/internal/logger"
)

const component = "relatorio"

// One-shot report run: load the datasets once, write every CSV sheet to
// the output directory, exit non-zero on load failure.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, relying on environment")
	}

	var (
		recordsPath  = flag.String("dados", "", "arquivo JSON de registros (vazio: busca RECORDS_URL)")
		planningPath = flag.String("planejamento", "", "arquivo JSON do planejamento por loja")
		regionalPath = flag.String("regional", "", "arquivo JSON do planejamento regional")
		outDir       = flag.String("saida", "relatorios", "diretório de saída")
		dataset      = flag.String("base", env.GetString("DATASET", "demandas"), "base de dados: demandas ou ordens")
		excel        = flag.Bool("excel", env.GetBool("EXPORT_EXCEL", false), "grava em windows-1252 para Excel legado")
		delimStr     = flag.String("delimitador", ",", "delimitador das planilhas CSV")
		level        = flag.String("log", env.GetString("LOG_LEVEL", "info"), "nível de log")
	)
	flag.Parse()

	appLog := logger.New(logger.ParseLevel(*level))

	mapping := demanda.DemandMapping()
	if *dataset == "ordens" {
		mapping = demanda.WorkOrderMapping()
	}

	ld := loader.New(loader.Config{
		RecordsURL:    env.GetString("RECORDS_URL", ""),
		PlanningURL:   env.GetString("PLANNING_URL", ""),
		RegionalURL:   env.GetString("REGIONAL_PLANNING_URL", ""),
		UserAgent:     env.GetString("FETCH_USER_AGENT", ""),
		Mapping:       mapping,
		KeepOwnerless: true,
	}, appLog)

	var (
		snap *demanda.Snapshot
		err  error
	)
	if *recordsPath != "" {
		snap, err = ld.LoadFiles(*recordsPath, *planningPath, *regionalPath)
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		snap, err = ld.Load(ctx)
		cancel()
	}
	if err != nil {
		appLog.Fatal(component, "carga falhou: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		appLog.Fatal(component, "não foi possível criar %s: %v", *outDir, err)
	}

	delim := ','
	if runes := []rune(*delimStr); len(runes) == 1 {
		delim = runes[0]
	}

	vocab := demanda.DefaultVocabulary()
	now := time.Now()
	period := demanda.ShortMonthName(now.Month())
	all := snap.Demands
	none := demanda.Criteria{}

	write := func(name, csv string, err error) {
		if err != nil {
			if errors.Is(err, demanda.ErrNothingToExport) {
				appLog.Warn(component, "%s: sem dados, planilha ignorada", name)
				return
			}
			appLog.Fatal(component, "%s: %v", name, err)
		}
		payload := []byte(csv)
		if *excel {
			payload = demanda.EncodeWindows1252(csv)
		}
		path := filepath.Join(*outDir, name)
		if err := os.WriteFile(path, payload, 0o644); err != nil {
			appLog.Fatal(component, "gravação de %s falhou: %v", path, err)
		}
		appLog.Info(component, "planilha gravada: %s", path)
	}

	csv, err := demanda.BuildCSV(demanda.DetailRows(all), demanda.DetailColumns(), delim)
	write("ordens_servico.csv", csv, err)

	csv, err = demanda.BuildCSV(demanda.OwnerlessRows(snap.Ownerless, 0), demanda.DetailColumns(), delim)
	write("ordens_sem_dono.csv", csv, err)

	csv, err = demanda.BuildCSV(demanda.TopOwnerPoints(all, 10, true), demanda.TopColumns("Responsável"), delim)
	write("top_responsaveis.csv", csv, err)

	csv, err = demanda.BuildCSV(demanda.OverdueOrders(all, now, vocab), demanda.OverdueColumns(), delim)
	write("demandas_sem_pedido.csv", csv, err)

	csv, err = demanda.BuildCSV(demanda.GoalAttainment(all, now, demanda.DailyGoal), demanda.GoalColumns(), delim)
	write("metas_diarias.csv", csv, err)

	rec := demanda.Reconcile(all, snap.Book, none, period, vocab)
	csv, err = demanda.BuildCSV(append(rec.Rows, rec.Total), demanda.AccountColumns(), delim)
	write("financeiro.csv", csv, err)

	table := demanda.ProjectMonthlyAverages(all)
	csv, err = demanda.BuildCSV(table.Rows, demanda.MonthlyAverageColumns(table), delim)
	write("media_mensal.csv", csv, err)
}
