package demanda

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Value normalizers. All of them are total: unparseable input yields the
// documented fallback (0, "" or the zero time), never an error.

// ParseBRLNumber parses Brazilian-formatted monetary strings such as
// "R$ 1.234,56". When the input carries a currency prefix or a comma, "."
// is treated as the thousands separator and "," as the decimal separator;
// otherwise the string is parsed as a plain number. Unparseable input
// yields 0.
func ParseBRLNumber(valStr string) float64 {
	valStr = strings.TrimSpace(valStr)
	if valStr == "" {
		return 0
	}
	if strings.Contains(valStr, "R$") || strings.Contains(valStr, ",") {
		clean := strings.ReplaceAll(valStr, "R$", "")
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
		val, err := strconv.ParseFloat(strings.TrimSpace(clean), 64)
		if err != nil {
			return 0
		}
		return val
	}
	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		return 0
	}
	return val
}

// ParseBRDate parses "dd/mm/yyyy", optionally followed by a time component
// which is ignored for date identity. Invalid calendar dates such as
// 31/02/2024 are rejected. A plain "yyyy-mm-dd" is accepted as a fallback.
// Invalid or absent input yields the zero time.
func ParseBRDate(dateStr string) time.Time {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}
	}
	// Drop a trailing "hh:mm:ss" component.
	if idx := strings.IndexByte(dateStr, ' '); idx > 0 {
		dateStr = dateStr[:idx]
	}
	t, err := time.Parse("02/01/2006", dateStr)
	if err == nil {
		return t
	}
	t, err = time.Parse("2006-01-02", dateStr)
	if err == nil {
		return t
	}
	return time.Time{}
}

// FormatBRDate renders a date as "dd/mm/yyyy"; the zero time renders empty.
func FormatBRDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// ExtractOwnerName pulls the owner out of a composite "branch - store -
// owner" field: the last " - "-delimited segment when at least three
// segments exist, otherwise the trimmed whole string.
func ExtractOwnerName(composite string) string {
	parts := strings.Split(composite, " - ")
	if len(parts) >= 3 {
		return strings.TrimSpace(parts[len(parts)-1])
	}
	return strings.TrimSpace(composite)
}

// CountBusinessDays counts the days from start through end inclusive,
// skipping Saturdays and Sundays. A reversed range counts as 0.
func CountBusinessDays(start, end time.Time) int {
	start = truncateDay(start)
	end = truncateDay(end)
	if start.After(end) {
		return 0
	}
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// Percent computes value/total*100 rounded to one decimal place. A zero
// total yields 0, never NaN.
func Percent(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(value/total*1000) / 10
}

// FormatDecimalBR renders a number with the given decimal places using the
// Brazilian decimal separator, e.g. FormatDecimalBR(5, 2) == "5,00".
func FormatDecimalBR(value float64, decimals int) string {
	return strings.Replace(strconv.FormatFloat(value, 'f', decimals, 64), ".", ",", 1)
}

// FormatBRL renders a monetary value as "R$ 1.234,56".
func FormatBRL(value float64) string {
	neg := value < 0
	s := strconv.FormatFloat(math.Abs(value), 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := "R$ " + b.String() + "," + fracPart
	if neg {
		out = "R$ -" + b.String() + "," + fracPart
	}
	return out
}

// Mapping names the raw fields one dataset variant uses for each engine
// concept. Empty entries mean the variant does not carry that concept.
type Mapping struct {
	Branch        string
	Owner         string
	Kind          string
	Status        string
	Planned       string
	OpenedAt      string
	ClosedAt      string
	Value         string
	OrderRef      string
	OrderStatus   string
	Nimbi         string
	Family        string
	Tag           string
	ServiceCode   string
	RequestCode   string
	Description   string
	Employee      string
	LastRCSent    string
	OrderForecast string

	// OwnerComposite marks owner fields of the "SC - Loja X - Nome" form.
	OwnerComposite bool
}

// WorkOrderMapping matches the maintenance work-order export.
func WorkOrderMapping() Mapping {
	return Mapping{
		Branch:         "CodFil",
		Owner:          "DESCMOBILE",
		Kind:           "Tipo",
		Status:         "StatOrd",
		Planned:        "Plano",
		OpenedAt:       "datpro",
		ClosedAt:       "datfec",
		Tag:            "Tag",
		Employee:       "Func",
		OwnerComposite: true,
	}
}

// DemandMapping matches the procurement-demand spreadsheet. The doubled
// space in "NUMERO  PEDIDO" is present in the source sheet.
func DemandMapping() Mapping {
	return Mapping{
		Branch:        "FILIAL",
		Owner:         "ENCARREGADO",
		Kind:          "FAMILIA",
		Family:        "FAMILIA",
		Value:         "VALOR DA DEMANDA",
		OrderRef:      "NUMERO  PEDIDO",
		OrderStatus:   "STATUS PEDIDO",
		Nimbi:         "NIMBI",
		ServiceCode:   "SS",
		RequestCode:   "RC",
		Description:   "DESCRIÇÃO DEMANDA",
		LastRCSent:    "ÚLTIMO ENVIO RC",
		OrderForecast: "PREVISÃO PEDIDO",
	}
}

// TaskMapping matches the daily-task tracker.
func TaskMapping() Mapping {
	return Mapping{
		Branch:   "LOJA",
		Status:   "STATUS",
		OpenedAt: "DATA_SOLICITACAO",
	}
}

// field reads a raw value as a string. Absent and null both report ok=false.
func (r RawRecord) field(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	val, present := r[key]
	if !present || val == nil {
		return "", false
	}
	switch v := val.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		if v {
			return "true", true
		}
		return "false", true
	default:
		return "", false
	}
}

func (r RawRecord) stringField(key string) string {
	s, _ := r.field(key)
	return s
}

// branchNumber truncates a possibly decimal branch code toward zero,
// falling back to 0 for anything unparseable or negative.
func (r RawRecord) branchNumber(key string) int {
	val, present := r[key]
	if !present || val == nil {
		return 0
	}
	var f float64
	switch v := val.(type) {
	case float64:
		f = v
	case string:
		f = ParseBRLNumber(v)
	default:
		return 0
	}
	n := int(math.Trunc(f))
	if n < 0 {
		return 0
	}
	return n
}

// Normalize builds a Demand from a raw record using a field mapping and a
// vocabulary. It never fails: malformed fields degrade to their fallbacks.
func Normalize(raw RawRecord, m Mapping, v Vocabulary) Demand {
	d := Demand{
		BranchID:      raw.branchNumber(m.Branch),
		Kind:          strings.TrimSpace(raw.stringField(m.Kind)),
		Status:        v.MapStatus(raw.stringField(m.Status)),
		OpenedAt:      ParseBRDate(raw.stringField(m.OpenedAt)),
		ClosedAt:      ParseBRDate(raw.stringField(m.ClosedAt)),
		OrderRef:      strings.TrimSpace(raw.stringField(m.OrderRef)),
		OrderStatus:   strings.TrimSpace(raw.stringField(m.OrderStatus)),
		NimbiStatus:   strings.TrimSpace(raw.stringField(m.Nimbi)),
		AccountFamily: raw.stringField(m.Family),
		Tag:           strings.TrimSpace(raw.stringField(m.Tag)),
		ServiceCode:   strings.TrimSpace(raw.stringField(m.ServiceCode)),
		RequestCode:   strings.TrimSpace(raw.stringField(m.RequestCode)),
		Description:   strings.TrimSpace(raw.stringField(m.Description)),
		Employee:      strings.TrimSpace(raw.stringField(m.Employee)),
		LastRCSent:    ParseBRDate(raw.stringField(m.LastRCSent)),
		OrderForecast: strings.TrimSpace(raw.stringField(m.OrderForecast)),
	}

	if owner, ok := raw.field(m.Owner); ok {
		if m.OwnerComposite {
			d.Owner = ExtractOwnerName(owner)
		} else {
			d.Owner = strings.TrimSpace(owner)
		}
	} else {
		d.Ownerless = true
	}

	if plan := strings.TrimSpace(raw.stringField(m.Planned)); plan != "" && plan != "-" {
		d.IsPlanned = true
	}

	if val, present := raw[m.Value]; present && val != nil {
		switch v := val.(type) {
		case float64:
			d.MonetaryValue = v
		case string:
			d.MonetaryValue = ParseBRLNumber(v)
		}
	}

	return d
}

// NormalizeAll normalizes a full raw collection, preserving input order.
func NormalizeAll(raw []RawRecord, m Mapping, v Vocabulary) []Demand {
	out := make([]Demand, 0, len(raw))
	for _, r := range raw {
		out = append(out, Normalize(r, m, v))
	}
	return out
}
