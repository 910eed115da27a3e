package domain

import (
	"errors"
	"strings"
)

var ErrEmptyDraft = errors.New("invoice draft has no line items")

// DraftLine is one dish entry on a restaurant invoice being assembled.
type DraftLine struct {
	Dish     string
	Category string
	Price    float64
	Quantity int
}

// Subtotal is the line's contribution to the invoice total.
func (l DraftLine) Subtotal() float64 { return l.Price * float64(l.Quantity) }

// InvoiceDraft accumulates dish lines before submission. Lines keep insertion
// order; adding a dish already on the draft merges into the existing line.
type InvoiceDraft struct {
	ReservationID string
	ClientID      string
	RestaurantID  string
	Lines         []DraftLine
}

// Add appends a line, merging with an existing line for the same dish by
// summing quantities.
func (d *InvoiceDraft) Add(dish, category string, price float64, quantity int) {
	dish = strings.TrimSpace(dish)
	if dish == "" || quantity <= 0 {
		return
	}
	for i := range d.Lines {
		if d.Lines[i].Dish == dish {
			d.Lines[i].Quantity += quantity
			return
		}
	}
	d.Lines = append(d.Lines, DraftLine{Dish: dish, Category: category, Price: price, Quantity: quantity})
}

// Total is the sum of line subtotals. Computed for display and sent verbatim.
func (d *InvoiceDraft) Total() float64 {
	var total float64
	for _, line := range d.Lines {
		total += line.Subtotal()
	}
	return total
}

// Validate rejects an empty draft before any network call.
func (d *InvoiceDraft) Validate() error {
	if len(d.Lines) == 0 {
		return ErrEmptyDraft
	}
	if strings.TrimSpace(d.ReservationID) == "" || strings.TrimSpace(d.ClientID) == "" || strings.TrimSpace(d.RestaurantID) == "" {
		return errors.New("invoice draft requires reservation, client and restaurant ids")
	}
	return nil
}

// Payload is the create-invoice request body for the core API.
func (d *InvoiceDraft) Payload() map[string]any {
	dishes := make([]map[string]any, 0, len(d.Lines))
	for _, line := range d.Lines {
		dishes = append(dishes, map[string]any{
			"nombre":   line.Dish,
			"tipo":     line.Category,
			"precio":   line.Price,
			"cantidad": line.Quantity,
		})
	}
	return map[string]any{
		"id_reserva":     d.ReservationID,
		"id_cliente":     d.ClientID,
		"id_restaurante": d.RestaurantID,
		"precio":         d.Total(),
		"platos":         dishes,
	}
}
