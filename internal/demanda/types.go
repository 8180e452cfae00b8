package demanda

import "time"

// RawRecord is one row as it arrives from the spreadsheet endpoint or an
// uploaded JSON file. There is no upstream schema: fields may be missing,
// null, or carry numbers where strings are expected.
type RawRecord map[string]any

// Status is the normalized lifecycle state of a demand. Every record maps
// to exactly one status; unknown codes land in StatusOther.
type Status int

const (
	StatusOpen Status = iota
	StatusClosed
	StatusCancelled
	StatusOther
)

var statusLabels = map[Status]string{
	StatusOpen:      "Aberta",
	StatusClosed:    "Fechada",
	StatusCancelled: "Cancelada",
	StatusOther:     "Não informado",
}

func (s Status) Label() string {
	return statusLabels[s]
}

// Subregion groups stores into the two managed subregions; stores outside
// both membership sets are SubregionOther.
type Subregion int

const (
	SubregionOther Subregion = iota
	SubregionNorth
	SubregionVale
)

var subregionLabels = map[Subregion]string{
	SubregionNorth: "NORTE",
	SubregionVale:  "VALE",
	SubregionOther: "OUTROS",
}

func (s Subregion) Label() string {
	return subregionLabels[s]
}

// Demand is a normalized record, immutable once built. Optional string
// fields use "" for absent values; optional dates use the zero time. The
// Ownerless flag distinguishes a null raw owner field from an empty one,
// since ownerless orders feed their own view.
type Demand struct {
	BranchID      int
	Owner         string
	Ownerless     bool
	Kind          string
	Status        Status
	IsPlanned     bool
	OpenedAt      time.Time
	ClosedAt      time.Time
	MonetaryValue float64
	OrderRef      string
	OrderStatus   string
	NimbiStatus   string
	AccountFamily string

	// Passthrough fields consumed by the overdue and detail views.
	Tag           string
	ServiceCode   string
	RequestCode   string
	Description   string
	Employee      string
	LastRCSent    time.Time
	OrderForecast string
}

// HasOwner reports whether the record carries a usable owner name.
func (d Demand) HasOwner() bool {
	return !d.Ownerless && d.Owner != ""
}

// PlanningEntry is one per-store planning row: planned values per month
// column for one account line, enriched at load time with the store's
// subregion.
type PlanningEntry struct {
	StoreID     int
	AccountLine string
	Brand       string
	Subregion   Subregion
	Monthly     map[string]float64
}

// RegionalPlanEntry is one regional-rollup planning row keyed by account
// line text.
type RegionalPlanEntry struct {
	AccountLine string
	North       float64
	Vale        float64
	GrandTotal  float64
}

// AccountEntry is one line of the fixed chart of accounts. Family is empty
// for administrative/contract accounts that have no demand-side data.
type AccountEntry struct {
	Line   string
	Number string
	Family string
}

// Snapshot is the immutable result of one load. Filters never mutate it;
// every derived view is recomputed from it.
type Snapshot struct {
	Demands   []Demand
	Ownerless []Demand
	Book      *PlanBook
	LoadedAt  time.Time
}
