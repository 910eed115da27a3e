package transport

import (
	"fmt"
	"html"
	"strings"
	"time"

	billingdomain "theknifeweb/internal/modules/billing/domain"
	bookingdomain "theknifeweb/internal/modules/booking/domain"
	"theknifeweb/internal/modules/restaurantarea/application/usecase"
	"theknifeweb/internal/session"
)

// invoiceFormLines is how many dish rows the create-invoice form offers.
// Blank rows are dropped on submit.
const invoiceFormLines = 5

// RenderRestaurantLogin renders the self-service identification form.
func RenderRestaurantLogin(prefill string, notFound bool) string {
	var b strings.Builder
	b.WriteString(`<h2 class="section-title">Área Restaurante</h2>`)
	if notFound {
		b.WriteString(`<div class="alert alert-warning">No existe ningún restaurante con ese identificador.</div>`)
	}
	b.WriteString(`<form method="post" action="/restaurant-area/login" class="card p-3">`)
	fmt.Fprintf(&b, `<label for="restaurantId">Identificador de restaurante</label><input type="text" id="restaurantId" name="id" value="%s" required>`,
		html.EscapeString(prefill))
	b.WriteString(`<button type="submit" class="btn btn-primary mt-2">Acceder</button></form>`)
	return b.String()
}

// RenderRestaurantStats renders the self-service headline counters.
func RenderRestaurantStats(area *usecase.Area) string {
	return fmt.Sprintf(
		`<div class="stats-row"><div class="stat"><span class="stat-value">%d</span> reservas</div><div class="stat"><span class="stat-value">%d</span> facturas</div><div class="stat"><span class="stat-value">%.2f€</span> facturado</div></div>`,
		area.ReservationCount, area.InvoiceCount, area.TotalRevenue)
}

// RenderRestaurantReservations renders the reservations table. Only past,
// uninvoiced, non-cancelled reservations offer the create-invoice action.
func RenderRestaurantReservations(reservations []bookingdomain.Reservation, invoiceByReservation map[string]billingdomain.Invoice, now time.Time) string {
	if len(reservations) == 0 {
		return `<div class="alert alert-info">Este restaurante no tiene reservas.</div>`
	}
	var b strings.Builder
	b.WriteString(`<table class="table"><thead><tr><th>Cliente</th><th>Fecha</th><th>Hora</th><th>Personas</th><th>Estado</th><th></th></tr></thead><tbody>`)
	for _, reservation := range reservations {
		past := reservation.IsPast(now)
		_, invoiced := invoiceByReservation[reservation.ID]

		fmt.Fprintf(&b, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%d</td><td><span class="badge estado-%s">%s</span></td><td>`,
			html.EscapeString(reservation.ClientID),
			html.EscapeString(reservation.Date),
			html.EscapeString(reservation.Time),
			reservation.PartySize,
			strings.ToLower(string(reservation.Status)),
			reservation.Status)
		switch {
		case invoiced:
			b.WriteString(`<span class="badge bg-success">Facturada</span>`)
		case past && reservation.Status != bookingdomain.StatusCancelled:
			b.WriteString(renderInvoiceForm(reservation))
		}
		b.WriteString(`</td></tr>`)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

func renderInvoiceForm(reservation bookingdomain.Reservation) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<details><summary class="btn btn-sm btn-outline-primary">Crear factura</summary><form method="post" action="/restaurant-area/invoices" class="invoice-form"><input type="hidden" name="id_reserva" value="%s"><input type="hidden" name="id_cliente" value="%s">`,
		html.EscapeString(reservation.ID), html.EscapeString(reservation.ClientID))
	b.WriteString(`<table class="invoice-lines"><thead><tr><th>Plato</th><th>Tipo</th><th>Precio</th><th>Cantidad</th></tr></thead><tbody>`)
	for i := 0; i < invoiceFormLines; i++ {
		b.WriteString(`<tr><td><input type="text" name="plato_nombre"></td><td><select name="plato_tipo"><option value="ENTRANTE">Entrante</option><option value="PRINCIPAL">Principal</option><option value="POSTRE">Postre</option><option value="BEBIDA">Bebida</option></select></td><td><input type="number" name="plato_precio" step="0.01" min="0"></td><td><input type="number" name="plato_cantidad" min="0" value="0"></td></tr>`)
	}
	b.WriteString(`</tbody></table><button type="submit" class="btn btn-sm btn-primary">Emitir factura</button></form></details>`)
	return b.String()
}

// RenderRestaurantInvoices renders the issued invoices with their ratings.
func RenderRestaurantInvoices(invoices []billingdomain.Invoice) string {
	if len(invoices) == 0 {
		return `<div class="alert alert-info">Todavía no hay facturas emitidas.</div>`
	}
	var b strings.Builder
	b.WriteString(`<table class="table"><thead><tr><th>Factura</th><th>Reserva</th><th>Cliente</th><th>Importe</th><th>Valoración</th></tr></thead><tbody>`)
	for _, invoice := range invoices {
		fmt.Fprintf(&b, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%.2f€</td><td>`,
			html.EscapeString(invoice.ID),
			html.EscapeString(invoice.ReservationID),
			html.EscapeString(invoice.ClientID),
			invoice.Price)
		if invoice.Rated() {
			b.WriteString(strings.Repeat("⭐", invoice.RatingStars()))
		} else {
			b.WriteString(`<span class="text-muted-custom">Sin valorar</span>`)
		}
		b.WriteString(`</td></tr>`)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

// RenderRestaurantArea assembles the full self-service page body.
func RenderRestaurantArea(record *session.RestaurantRecord, area *usecase.Area, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div id="area-live" data-kind="restaurant" data-id="%s" hidden></div>`, html.EscapeString(record.ID))
	fmt.Fprintf(&b, `<h2 class="section-title">%s</h2><p class="text-muted-custom">%s, %s</p>`,
		html.EscapeString(record.Name), html.EscapeString(record.City), html.EscapeString(record.Region))
	b.WriteString(`<form method="post" action="/restaurant-area/logout" class="logout"><button type="submit" class="btn btn-sm btn-outline-secondary">Salir</button></form>`)
	b.WriteString(`<a class="btn btn-sm btn-outline-primary" href="/restaurant-area/analytics">Ver analíticas</a>`)
	b.WriteString(RenderRestaurantStats(area))
	b.WriteString(`<h3>Reservas</h3>`)
	b.WriteString(RenderRestaurantReservations(area.Reservations, area.InvoiceByReservation, now))
	b.WriteString(`<h3>Facturas</h3>`)
	b.WriteString(RenderRestaurantInvoices(area.Invoices))
	return b.String()
}
