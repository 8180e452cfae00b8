package demanda

import "strings"

// Vocabulary holds the label sets that drifted between the original
// dashboard variants (status letters vs. words, order-status exclusion
// lists with inconsistent casing). Matching is always on the trimmed,
// upper-cased form so "Sem Pedido" and "SEM PEDIDO" are the same thing.
type Vocabulary struct {
	// StatusCodes maps a canonical raw code to a Status.
	StatusCodes map[string]Status

	// NoOrderStatuses are order statuses that mean "no real order yet"
	// even when an order reference is present.
	NoOrderStatuses map[string]struct{}

	// NoOrderRefs are order-reference values that are placeholders, not
	// actual references.
	NoOrderRefs map[string]struct{}

	// OverdueStatuses are the order statuses that put a demand on the
	// "sem pedido" follow-up list.
	OverdueStatuses map[string]struct{}

	// AcceptedOrderStatus is the order status meaning the supplier
	// accepted the purchase order.
	AcceptedOrderStatus string

	// RCSentStatus is the Nimbi status meaning the purchase requisition
	// was actually sent.
	RCSentStatus string

	// NotInformed is the label used for absent values in groupings.
	NotInformed string
}

func canonical(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func setOf(values ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[canonical(v)] = struct{}{}
	}
	return m
}

// DefaultVocabulary covers the union of the label sets observed across the
// work-order, demand and task dashboards.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		StatusCodes: map[string]Status{
			"A":         StatusOpen,
			"F":         StatusClosed,
			"C":         StatusCancelled,
			"PENDENTE":  StatusOpen,
			"CONCLUIDA": StatusClosed,
			"CANCELADA": StatusCancelled,
		},
		NoOrderStatuses:     setOf("COMPOSIÇÃO", "SEM PEDIDO"),
		NoOrderRefs:         setOf("COMPOSIÇÃO", "SEM PEDIDO"),
		OverdueStatuses:     setOf("SEM PEDIDO", "DEVOLVIDO", "COMPOSIÇÃO"),
		AcceptedOrderStatus: "PEDIDO ACEITO",
		RCSentStatus:        "SIM",
		NotInformed:         "Não informado",
	}
}

// MapStatus resolves a raw status code to a Status.
func (v Vocabulary) MapStatus(raw string) Status {
	if s, ok := v.StatusCodes[canonical(raw)]; ok {
		return s
	}
	return StatusOther
}

// HasOrder reports whether a demand has a real associated purchase order:
// a non-placeholder reference with a status outside the excluded set.
func (v Vocabulary) HasOrder(d Demand) bool {
	ref := canonical(d.OrderRef)
	if ref == "" {
		return false
	}
	if _, excluded := v.NoOrderRefs[ref]; excluded {
		return false
	}
	if _, excluded := v.NoOrderStatuses[canonical(d.OrderStatus)]; excluded {
		return false
	}
	return true
}

// IsOrderAccepted reports whether the demand's purchase order was accepted
// by the supplier.
func (v Vocabulary) IsOrderAccepted(d Demand) bool {
	return canonical(d.OrderStatus) == canonical(v.AcceptedOrderStatus)
}

// IsOverdueCandidate reports whether a demand belongs on the "sem pedido"
// follow-up list: an overdue order status with the requisition already
// sent.
func (v Vocabulary) IsOverdueCandidate(d Demand) bool {
	if _, ok := v.OverdueStatuses[canonical(d.OrderStatus)]; !ok {
		return false
	}
	if canonical(d.NimbiStatus) != canonical(v.RCSentStatus) {
		return false
	}
	return !d.LastRCSent.IsZero()
}

// LabelOrNotInformed substitutes the not-informed label for empty values.
func (v Vocabulary) LabelOrNotInformed(s string) string {
	if strings.TrimSpace(s) == "" {
		return v.NotInformed
	}
	return s
}
