package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/demandaops/painel-manutencao/internal/demanda"
	"github.com/demandaops/painel-manutencao/internal/logger"
)

const component = "loader"

// ErrLoadFailed wraps any failure while fetching or decoding a dataset,
// so callers can keep serving the previous snapshot.
var ErrLoadFailed = errors.New("falha ao carregar os dados")

const defaultUserAgent = "painel-manutencao/1.0 (+https://github.com/demandaops/painel-manutencao)"

// Config points the loader at the three datasets: the record export, the
// per-store planning sheet and the regional rollup.
type Config struct {
	RecordsURL  string
	PlanningURL string
	RegionalURL string
	UserAgent   string
	Timeout     time.Duration

	// Mapping selects the record variant being loaded; zero value means
	// the procurement-demand sheet.
	Mapping demanda.Mapping

	// KeepOwnerless routes ownerless records to the snapshot's side
	// queue instead of discarding them with the main set.
	KeepOwnerless bool
}

// Loader fetches the datasets and assembles immutable snapshots.
type Loader struct {
	cfg    Config
	client *http.Client
	log    *logger.Logger
	vocab  demanda.Vocabulary
}

func New(cfg Config, log *logger.Logger) *Loader {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if isZeroMapping(cfg.Mapping) {
		cfg.Mapping = demanda.DemandMapping()
	}
	return &Loader{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log,
		vocab:  demanda.DefaultVocabulary(),
	}
}

func isZeroMapping(m demanda.Mapping) bool {
	return m == demanda.Mapping{}
}

// Load fetches the three datasets concurrently and builds a snapshot.
// Planning URLs are optional; without them the snapshot has no plan book
// and the financial view degrades to zero planned values.
func (l *Loader) Load(ctx context.Context) (*demanda.Snapshot, error) {
	var (
		raw      []demanda.RawRecord
		planning []demanda.PlanningEntry
		regional []demanda.RegionalPlanEntry
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return l.fetchJSON(ctx, l.cfg.RecordsURL, &raw)
	})
	if l.cfg.PlanningURL != "" {
		g.Go(func() error {
			body, err := l.fetch(ctx, l.cfg.PlanningURL)
			if err != nil {
				return err
			}
			defer body.Close()
			planning, err = ParsePlanning(body)
			return err
		})
	}
	if l.cfg.RegionalURL != "" {
		g.Go(func() error {
			body, err := l.fetch(ctx, l.cfg.RegionalURL)
			if err != nil {
				return err
			}
			defer body.Close()
			regional, err = ParseRegionalPlan(body)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		l.log.Error(component, "carga abortada: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	snap := l.build(raw, planning, regional)
	l.log.Info(component, "carga concluída: %d registros, %d sem dono, %d linhas de planejamento",
		len(snap.Demands), len(snap.Ownerless), len(planning))
	return snap, nil
}

// LoadFiles builds a snapshot from local JSON files, the offline path the
// report CLI uses. Planning paths may be empty.
func (l *Loader) LoadFiles(recordsPath, planningPath, regionalPath string) (*demanda.Snapshot, error) {
	var raw []demanda.RawRecord
	if err := decodeFile(recordsPath, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	var planning []demanda.PlanningEntry
	if planningPath != "" {
		f, err := os.Open(planningPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
		}
		planning, err = ParsePlanning(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
		}
	}

	var regional []demanda.RegionalPlanEntry
	if regionalPath != "" {
		f, err := os.Open(regionalPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
		}
		regional, err = ParseRegionalPlan(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
		}
	}

	return l.build(raw, planning, regional), nil
}

func decodeFile(path string, into any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(into)
}

func (l *Loader) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", l.cfg.UserAgent)

	l.log.Debug(component, "GET %s", url)
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("status inesperado %d de %s", resp.StatusCode, url)
	}
	return resp.Body, nil
}

func (l *Loader) fetchJSON(ctx context.Context, url string, into any) error {
	body, err := l.fetch(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()
	return json.NewDecoder(body).Decode(into)
}

// build normalizes the raw records and splits ownerless ones off. The
// main set only carries records with an owner, matching the dashboards.
func (l *Loader) build(raw []demanda.RawRecord, planning []demanda.PlanningEntry, regional []demanda.RegionalPlanEntry) *demanda.Snapshot {
	all := demanda.NormalizeAll(raw, l.cfg.Mapping, l.vocab)

	snap := &demanda.Snapshot{LoadedAt: time.Now()}
	for _, d := range all {
		if d.HasOwner() {
			snap.Demands = append(snap.Demands, d)
		} else if l.cfg.KeepOwnerless {
			snap.Ownerless = append(snap.Ownerless, d)
		}
	}
	if len(planning) > 0 || len(regional) > 0 {
		snap.Book = demanda.NewPlanBook(planning, regional)
	}
	return snap
}
