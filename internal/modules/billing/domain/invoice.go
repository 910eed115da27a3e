package domain

import (
	"math"

	"theknifeweb/internal/shared/normalization"
)

// Invoice is a finalized billing record for a past reservation. It is created
// by the restaurant and ratable exactly once by the client.
type Invoice struct {
	ID             string
	ReservationID  string
	ClientID       string
	RestaurantID   string
	RestaurantName string
	RestaurantCity string
	Date           string
	VisitType      string
	Price          float64
	// Rating is nil until the client reviews the linked restaurant. The
	// nil/zero distinction drives the rate-action render rule.
	Rating          *float64
	RatingVisitType string
}

// Rated reports whether a review has been linked to this invoice.
func (i Invoice) Rated() bool { return i.Rating != nil }

// RatingStars returns the linked rating rounded to whole stars, 0 when unrated.
func (i Invoice) RatingStars() int {
	if i.Rating == nil {
		return 0
	}
	return int(math.Round(*i.Rating))
}

// NormalizeInvoice constructs an Invoice from a loosely typed map.
func NormalizeInvoice(raw map[string]any) (Invoice, bool) {
	id := normalization.AsString(raw["id_factura"])
	if id == "" {
		id = normalization.AsString(raw["id"])
	}
	if id == "" {
		return Invoice{}, false
	}
	return Invoice{
		ID:              id,
		ReservationID:   normalization.AsString(raw["id_reserva"]),
		ClientID:        normalization.AsString(raw["id_cliente"]),
		RestaurantID:    normalization.AsString(raw["id_restaurante"]),
		RestaurantName:  normalization.AsString(raw["restaurante_nombre"]),
		RestaurantCity:  normalization.AsString(raw["restaurante_ciudad"]),
		Date:            normalization.AsString(raw["fecha"]),
		VisitType:       normalization.AsString(raw["tipo_visita"]),
		Price:           normalization.AsFloat64(raw["precio"]),
		Rating:          normalization.AsFloatPtr(raw["valoracion"]),
		RatingVisitType: normalization.AsString(raw["tipo_visita_valoracion"]),
	}, true
}

// BuildInvoiceList projects the {"facturas": [...]} envelope into records.
func BuildInvoiceList(payload any) ([]Invoice, bool) {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return nil, false
	}
	rawItems := normalization.AsInterfaceSlice(container["facturas"])
	if rawItems == nil {
		rawItems = normalization.AsInterfaceSlice(container["items"])
	}
	if rawItems == nil {
		return nil, false
	}
	result := make([]Invoice, 0, len(rawItems))
	for _, item := range rawItems {
		if rawMap, ok := item.(map[string]any); ok {
			if invoice, ok := NormalizeInvoice(rawMap); ok {
				result = append(result, invoice)
			}
		}
	}
	return result, true
}

// InvoicesByReservation indexes invoices by their reservation id, for the
// personal-area render that decides which reservations show an invoice and
// which still offer the request-invoice action.
func InvoicesByReservation(invoices []Invoice) map[string]Invoice {
	index := make(map[string]Invoice, len(invoices))
	for _, invoice := range invoices {
		if invoice.ReservationID != "" {
			index[invoice.ReservationID] = invoice
		}
	}
	return index
}

// TotalSpent sums invoice prices, the personal-area headline stat.
func TotalSpent(invoices []Invoice) float64 {
	var total float64
	for _, invoice := range invoices {
		total += invoice.Price
	}
	return total
}
