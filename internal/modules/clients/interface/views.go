package transport

import (
	"fmt"
	"html"
	"strings"
	"time"

	billingdomain "theknifeweb/internal/modules/billing/domain"
	bookingdomain "theknifeweb/internal/modules/booking/domain"
	"theknifeweb/internal/modules/clients/application/usecase"
	"theknifeweb/internal/modules/clients/domain"
)

// RenderLoginForm renders the personal-area identification form. notFound
// distinguishes a confirmed zero-result lookup from the initial state.
func RenderLoginForm(prefill string, notFound bool) string {
	var b strings.Builder
	b.WriteString(`<h2 class="section-title">Área Cliente</h2>`)
	if notFound {
		b.WriteString(`<div class="alert alert-warning">No se encontró ningún cliente con ese identificador.</div>`)
	}
	b.WriteString(`<form method="post" action="/clients/login" class="card p-3">`)
	fmt.Fprintf(&b, `<label for="clientId">Identificador de cliente</label><input type="text" id="clientId" name="id" value="%s" required>`,
		html.EscapeString(prefill))
	b.WriteString(`<button type="submit" class="btn btn-primary mt-2">Acceder</button></form>`)
	return b.String()
}

// RenderAreaStats renders the personal-area headline counters.
func RenderAreaStats(area *usecase.Area) string {
	return fmt.Sprintf(
		`<div class="stats-row"><div class="stat"><span class="stat-value">%d</span> reservas</div><div class="stat"><span class="stat-value">%d</span> facturas</div><div class="stat"><span class="stat-value">%d</span> reseñas</div><div class="stat"><span class="stat-value">%.2f€</span> gastado</div></div>`,
		area.ReservationCount, area.InvoiceCount, area.ReviewCount, area.TotalSpent)
}

// RenderReservationsTable renders the client's reservations. Future
// reservations offer edit and cancel; past ones only an invoice request when
// no invoice exists yet.
func RenderReservationsTable(reservations []bookingdomain.Reservation, invoiceByReservation map[string]billingdomain.Invoice, now time.Time) string {
	if len(reservations) == 0 {
		return `<div class="alert alert-info">Todavía no tienes reservas.</div>`
	}
	var b strings.Builder
	b.WriteString(`<table class="table"><thead><tr><th>Restaurante</th><th>Fecha</th><th>Hora</th><th>Personas</th><th>Estado</th><th></th></tr></thead><tbody>`)
	for _, reservation := range reservations {
		fmt.Fprintf(&b, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%d</td><td><span class="badge estado-%s">%s</span></td><td>`,
			html.EscapeString(reservation.RestaurantName),
			html.EscapeString(reservation.Date),
			html.EscapeString(reservation.Time),
			reservation.PartySize,
			strings.ToLower(string(reservation.Status)),
			reservation.Status)
		b.WriteString(renderReservationActions(reservation, invoiceByReservation, now))
		b.WriteString(`</td></tr>`)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

func renderReservationActions(reservation bookingdomain.Reservation, invoiceByReservation map[string]billingdomain.Invoice, now time.Time) string {
	var b strings.Builder
	if reservation.EditableOn(now) {
		fmt.Fprintf(&b, `<details><summary class="btn btn-sm btn-outline-primary">Editar</summary><form method="post" action="/reservations/%s/update" class="inline-edit">`,
			html.EscapeString(reservation.ID))
		fmt.Fprintf(&b, `<input type="date" name="fecha" value="%s" required>`, html.EscapeString(reservation.Date))
		fmt.Fprintf(&b, `<input type="time" name="hora" value="%s" required>`, html.EscapeString(reservation.Time))
		fmt.Fprintf(&b, `<input type="number" name="num_personas" value="%d" min="1" required>`, reservation.PartySize)
		b.WriteString(`<button type="submit" class="btn btn-sm btn-primary">Guardar</button></form></details>`)
		fmt.Fprintf(&b, `<form method="post" action="/reservations/%s/cancel"><button type="submit" class="btn btn-sm btn-outline-danger">Cancelar</button></form>`,
			html.EscapeString(reservation.ID))
		return b.String()
	}

	if _, invoiced := invoiceByReservation[reservation.ID]; invoiced {
		b.WriteString(`<span class="badge bg-success">Facturada</span>`)
	} else if reservation.Status != bookingdomain.StatusCancelled {
		fmt.Fprintf(&b, `<form method="post" action="/reservations/%s/invoice"><button type="submit" class="btn btn-sm btn-outline-secondary">Solicitar factura</button></form>`,
			html.EscapeString(reservation.ID))
	}
	return b.String()
}

// RenderInvoicesTable renders the client's invoices. A rated invoice shows
// its stars; an unrated one shows the star-selector rate action instead.
func RenderInvoicesTable(invoices []billingdomain.Invoice) string {
	if len(invoices) == 0 {
		return `<div class="alert alert-info">Todavía no tienes facturas.</div>`
	}
	var b strings.Builder
	b.WriteString(`<table class="table"><thead><tr><th>Restaurante</th><th>Fecha</th><th>Importe</th><th>Valoración</th></tr></thead><tbody>`)
	for _, invoice := range invoices {
		fmt.Fprintf(&b, `<tr><td>%s</td><td>%s</td><td>%.2f€</td><td>`,
			html.EscapeString(invoice.RestaurantName),
			html.EscapeString(invoice.Date),
			invoice.Price)
		if invoice.Rated() {
			b.WriteString(strings.Repeat("⭐", invoice.RatingStars()))
		} else {
			b.WriteString(renderRateForm(invoice))
		}
		b.WriteString(`</td></tr>`)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

func renderRateForm(invoice billingdomain.Invoice) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<form method="post" action="/reviews" class="rate-form"><input type="hidden" name="id_restaurante" value="%s">`,
		html.EscapeString(invoice.RestaurantID))
	b.WriteString(`<select name="valoracion" required><option value="">Valorar</option>`)
	for stars := 1; stars <= 5; stars++ {
		fmt.Fprintf(&b, `<option value="%d">%s</option>`, stars, strings.Repeat("⭐", stars))
	}
	b.WriteString(`</select><select name="tipo_visita"><option value="familiar">Familiar</option><option value="pareja">Pareja</option><option value="negocios">Negocios</option><option value="amigos">Amigos</option></select>`)
	b.WriteString(`<button type="submit" class="btn btn-sm btn-primary">Enviar</button></form>`)
	return b.String()
}

// RenderProfileForm renders the editable profile with the stored values.
func RenderProfileForm(client domain.Client) string {
	var b strings.Builder
	b.WriteString(`<details class="profile-editor"><summary>Editar mis datos</summary><form method="post" action="/clients/update" class="card p-3">`)
	fmt.Fprintf(&b, `<label>Nombre<input type="text" name="nombre" value="%s" required></label>`, html.EscapeString(client.Name))
	fmt.Fprintf(&b, `<label>Teléfono<input type="tel" name="telefono" value="%s" required></label>`, html.EscapeString(client.Phone))
	fmt.Fprintf(&b, `<label>Email<input type="email" name="email" value="%s" required></label>`, html.EscapeString(client.Email))
	fmt.Fprintf(&b, `<label>Edad<input type="number" name="edad" value="%d" min="1" required></label>`, client.Age)
	fmt.Fprintf(&b, `<label>Estudios<input type="text" name="estudios" value="%s" required></label>`, html.EscapeString(client.Education))
	b.WriteString(`<button type="submit" class="btn btn-primary mt-2">Guardar cambios</button></form></details>`)
	return b.String()
}

// RenderDeleteForm renders the account-deletion form. The confirmation phrase
// must be typed back exactly for the controller to act.
func RenderDeleteForm() string {
	return `<details class="danger-zone"><summary>Eliminar mi cuenta</summary><form method="post" action="/clients/delete" class="card p-3"><p>Esta acción elimina tu cuenta y todas tus reservas, facturas y reseñas. Escribe <strong>ELIMINAR</strong> para confirmar.</p><input type="text" name="confirmacion" placeholder="ELIMINAR" required><button type="submit" class="btn btn-danger mt-2">Eliminar cuenta</button></form></details>`
}

// RenderArea assembles the full personal-area page body.
func RenderArea(client domain.Client, area *usecase.Area, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div id="area-live" data-kind="client" data-id="%s" hidden></div>`, html.EscapeString(client.ID))
	fmt.Fprintf(&b, `<h2 class="section-title">Hola, %s</h2>`, html.EscapeString(client.Name))
	b.WriteString(`<form method="post" action="/clients/logout" class="logout"><button type="submit" class="btn btn-sm btn-outline-secondary">Salir</button></form>`)
	b.WriteString(RenderAreaStats(area))
	b.WriteString(`<h3>Mis reservas</h3>`)
	b.WriteString(RenderReservationsTable(area.Reservations, area.InvoiceByReservation, now))
	b.WriteString(`<h3>Mis facturas</h3>`)
	b.WriteString(RenderInvoicesTable(area.Invoices))
	b.WriteString(RenderProfileForm(client))
	b.WriteString(RenderDeleteForm())
	return b.String()
}
