package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/demandaops/painel-manutencao/internal/demanda"
	"github.com/demandaops/painel-manutencao/internal/logger"
)

const recordsJSON = `[
	{"FILIAL": 85, "ENCARREGADO": "Maria", "FAMILIA": "REFRIGERAÇÃO CORRETIVA",
	 "VALOR DA DEMANDA": "R$ 1.000,00", "NUMERO  PEDIDO": "PED-1", "STATUS PEDIDO": "APROVADO"},
	{"FILIAL": 115, "ENCARREGADO": null, "VALOR DA DEMANDA": "R$ 50,00"},
	{"FILIAL": 85, "ENCARREGADO": "", "VALOR DA DEMANDA": 30}
]`

const planningJSON = `[
	{"Loja": 85, "Conta/linha": "22.02 - Refrigeração", "BANDEIRA": "FORT", "SUB": "NORTE",
	 "Nov": "R$ 500,00", "Dez": "R$ 100,00"},
	{"Loja": 115, "Conta/linha": "22.02 - Refrigeração", "BANDEIRA": "FORT", "SUB": "VALE",
	 "Nov": "R$ 300,00", "Dez": "R$ 200,00"}
]`

const regionalJSON = `[
	{"Conta/linha": "22.02 - Refrigeração", "NORTE/FORT": "R$ 800,00",
	 "VALE/FORT": "R$ 600,00", "TOTAL GERAL": "R$ 1.500,00"}
]`

func testLogger() *logger.Logger {
	return logger.New(logger.LevelError)
}

func TestLoadBuildsSnapshot(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/dados.json":
			w.Write([]byte(recordsJSON))
		case "/planejamento.json":
			w.Write([]byte(planningJSON))
		case "/regional.json":
			w.Write([]byte(regionalJSON))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ld := New(Config{
		RecordsURL:    srv.URL + "/dados.json",
		PlanningURL:   srv.URL + "/planejamento.json",
		RegionalURL:   srv.URL + "/regional.json",
		KeepOwnerless: true,
	}, testLogger())

	snap, err := ld.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if gotUA == "" {
		t.Error("requests should carry a User-Agent")
	}
	if len(snap.Demands) != 1 {
		t.Fatalf("Demands = %d, want 1", len(snap.Demands))
	}
	if snap.Demands[0].Owner != "Maria" || snap.Demands[0].MonetaryValue != 1000 {
		t.Errorf("demand = %+v", snap.Demands[0])
	}
	// Null and empty owners both land in the side queue.
	if len(snap.Ownerless) != 2 {
		t.Errorf("Ownerless = %d, want 2", len(snap.Ownerless))
	}
	if snap.Book == nil {
		t.Fatal("plan book missing")
	}
	if got := snap.Book.PlannedFor("22.02 - Refrigeração", demanda.Criteria{}, "Nov"); got != 1500 {
		t.Errorf("planned grand total = %v, want 1500", got)
	}
	info, ok := snap.Book.StoreInfo(85)
	if !ok || info.Subregion != demanda.SubregionNorth || info.Brand != "FORT" {
		t.Errorf("store info = %+v ok=%v", info, ok)
	}
	if snap.LoadedAt.IsZero() {
		t.Error("LoadedAt not stamped")
	}
}

func TestLoadDropsOwnerlessByDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(recordsJSON))
	}))
	defer srv.Close()

	ld := New(Config{RecordsURL: srv.URL}, testLogger())
	snap, err := ld.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Ownerless) != 0 {
		t.Errorf("Ownerless = %d, want 0", len(snap.Ownerless))
	}
	if snap.Book != nil {
		t.Error("no planning URLs, book should be nil")
	}
}

func TestLoadNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	ld := New(Config{RecordsURL: srv.URL}, testLogger())
	_, err := ld.Load(context.Background())
	if !errors.Is(err, ErrLoadFailed) {
		t.Errorf("err = %v, want ErrLoadFailed", err)
	}
}

func TestLoadAbortsWhenAnyDatasetFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/planejamento.json" {
			http.Error(w, "nope", http.StatusBadGateway)
			return
		}
		w.Write([]byte(recordsJSON))
	}))
	defer srv.Close()

	ld := New(Config{
		RecordsURL:  srv.URL + "/dados.json",
		PlanningURL: srv.URL + "/planejamento.json",
	}, testLogger())
	_, err := ld.Load(context.Background())
	if !errors.Is(err, ErrLoadFailed) {
		t.Errorf("err = %v, want ErrLoadFailed", err)
	}
}

func TestParsePlanning(t *testing.T) {
	entries, err := ParsePlanning(strings.NewReader(planningJSON))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	e := entries[0]
	if e.StoreID != 85 || e.AccountLine != "22.02 - Refrigeração" || e.Brand != "FORT" {
		t.Errorf("entry = %+v", e)
	}
	if e.Subregion != demanda.SubregionNorth {
		t.Errorf("Subregion = %v", e.Subregion)
	}
	if e.Monthly["Nov"] != 500 || e.Monthly["Dez"] != 100 {
		t.Errorf("Monthly = %v", e.Monthly)
	}
}

func TestParsePlanningSubregionFromStoreSets(t *testing.T) {
	// Store 305 belongs to the north set no matter what the sheet says;
	// store 700 is in neither set, so the sheet column decides.
	drifted := `[
		{"Loja": 305, "Conta/linha": "22.02 - Refrigeração", "BANDEIRA": "FORT", "SUB": "VALE",
		 "Nov": "R$ 500,00"},
		{"Loja": 700, "Conta/linha": "22.02 - Refrigeração", "BANDEIRA": "BATE FORTE", "SUB": "VALE",
		 "Nov": "R$ 200,00"}
	]`
	entries, err := ParsePlanning(strings.NewReader(drifted))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Subregion != demanda.SubregionNorth {
		t.Errorf("store 305 subregion = %v, want SubregionNorth", entries[0].Subregion)
	}
	if entries[1].Subregion != demanda.SubregionVale {
		t.Errorf("store 700 subregion = %v, want SubregionVale", entries[1].Subregion)
	}

	book := demanda.NewPlanBook(entries, nil)
	north := demanda.SubregionNorth
	if got := book.RelevantStoreCount(demanda.Criteria{Subregion: &north}); got != 1 {
		t.Errorf("RelevantStoreCount(north) = %d, want 1", got)
	}
}

func TestParseRegionalPlan(t *testing.T) {
	entries, err := ParseRegionalPlan(strings.NewReader(regionalJSON))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.North != 800 || e.Vale != 600 || e.GrandTotal != 1500 {
		t.Errorf("entry = %+v", e)
	}
}
