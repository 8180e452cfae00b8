package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/demandaops/painel-manutencao/internal/demanda"
)

// parseCriteria maps query parameters to a record filter. Every parameter
// is optional; the zero criteria matches everything.
func (app *application) parseCriteria(r *http.Request) (demanda.Criteria, error) {
	q := r.URL.Query()
	var c demanda.Criteria

	if v := q.Get("filial"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return c, errors.New("parâmetro filial inválido")
		}
		c.Branch = &n
	}
	c.Owner = q.Get("encarregado")
	c.Kind = q.Get("tipo")
	if v := q.Get("status"); v != "" {
		s := app.vocab.MapStatus(v)
		c.Status = &s
	}
	if v := q.Get("planejada"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c, errors.New("parâmetro planejada inválido")
		}
		c.Planned = &b
	}
	if v := q.Get("sub"); v != "" {
		sub := demanda.ParseSubregion(v)
		if sub == demanda.SubregionOther && !strings.EqualFold(strings.TrimSpace(v), "OUTROS") {
			return c, errors.New("parâmetro sub inválido")
		}
		c.Subregion = &sub
	}
	c.Brand = q.Get("bandeira")
	return c, nil
}

func parseLimit(r *http.Request, fallback int) int {
	v := r.URL.Query().Get("limite")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// period resolves the planning month column, defaulting to the current
// month.
func (app *application) period(r *http.Request) string {
	if v := strings.TrimSpace(r.URL.Query().Get("periodo")); v != "" {
		return v
	}
	return demanda.ShortMonthName(app.now().Month())
}
