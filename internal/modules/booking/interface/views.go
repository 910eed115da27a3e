package transport

import (
	"fmt"
	"html"
	"strings"

	"theknifeweb/internal/modules/booking/domain"
	catalogdomain "theknifeweb/internal/modules/catalog/domain"
	"theknifeweb/internal/session"
)

// stepIndicator renders the two-step progress header.
func stepIndicator(step domain.Step) string {
	first, second := "step active", "step"
	if step == domain.StepChooseSlot {
		first, second = "step done", "step active"
	}
	return fmt.Sprintf(`<ol class="wizard-steps"><li class="%s">1. Identifícate</li><li class="%s">2. Elige mesa</li></ol>`, first, second)
}

func handoffFields(handoff *session.Handoff) string {
	if handoff == nil {
		return ""
	}
	return fmt.Sprintf(`<input type="hidden" name="restaurante_id" value="%s"><input type="hidden" name="restaurante_nombre" value="%s">`,
		html.EscapeString(handoff.RestaurantID), html.EscapeString(handoff.RestaurantName))
}

// RenderIdentifyStep renders the wizard's first step. After a zero-result
// lookup the registration form appears inline, pre-filled with the attempted
// identifier.
func RenderIdentifyStep(attemptedID string, notFound bool, handoff *session.Handoff) string {
	var b strings.Builder
	b.WriteString(`<h2 class="section-title">Reservar mesa</h2>`)
	b.WriteString(stepIndicator(domain.StepIdentify))
	if handoff != nil {
		fmt.Fprintf(&b, `<div class="alert alert-info">Reservando en <strong>%s</strong></div>`, html.EscapeString(handoff.RestaurantName))
	}

	b.WriteString(`<form method="post" action="/book/identify" class="card p-3">`)
	b.WriteString(handoffFields(handoff))
	fmt.Fprintf(&b, `<label for="bookingClientId">Identificador de cliente</label><input type="text" id="bookingClientId" name="id" value="%s" required>`,
		html.EscapeString(attemptedID))
	b.WriteString(`<button type="submit" class="btn btn-primary mt-2">Continuar</button></form>`)

	if notFound {
		b.WriteString(`<div class="alert alert-warning mt-3">No encontramos ese cliente. Regístrate para continuar con tu reserva.</div>`)
		b.WriteString(renderRegisterForm(attemptedID, handoff))
	}
	return b.String()
}

func renderRegisterForm(attemptedID string, handoff *session.Handoff) string {
	var b strings.Builder
	b.WriteString(`<form method="post" action="/book/register" class="card p-3">`)
	b.WriteString(handoffFields(handoff))
	fmt.Fprintf(&b, `<label>Identificador<input type="text" name="id" value="%s" required></label>`, html.EscapeString(attemptedID))
	b.WriteString(`<label>Nombre<input type="text" name="nombre" required></label>`)
	b.WriteString(`<label>Teléfono<input type="tel" name="telefono" required></label>`)
	b.WriteString(`<label>Email<input type="email" name="email" required></label>`)
	b.WriteString(`<label>Edad<input type="number" name="edad" min="1" required></label>`)
	b.WriteString(`<label>Sexo<select name="sexo"><option value="">Prefiero no decirlo</option><option value="F">Mujer</option><option value="M">Hombre</option></select></label>`)
	b.WriteString(`<label>Estudios<input type="text" name="estudios" required></label>`)
	b.WriteString(`<button type="submit" class="btn btn-primary mt-2">Registrarme y continuar</button></form>`)
	return b.String()
}

// RenderChooseSlotStep renders the wizard's second step. With a handoff the
// restaurant is fixed; otherwise the catalog feeds a selector.
func RenderChooseSlotStep(clientName string, handoff *session.Handoff, catalog []catalogdomain.Restaurant, errorMessage string) string {
	var b strings.Builder
	b.WriteString(`<h2 class="section-title">Reservar mesa</h2>`)
	b.WriteString(stepIndicator(domain.StepChooseSlot))
	fmt.Fprintf(&b, `<p>Reservando como <strong>%s</strong></p>`, html.EscapeString(clientName))
	b.WriteString(`<form method="post" action="/book/change-client" class="inline"><button type="submit" class="btn btn-sm btn-outline-secondary">Cambiar de cliente</button></form>`)
	b.WriteString(`<form method="post" action="/book/back" class="inline"><button type="submit" class="btn btn-sm btn-link">Volver</button></form>`)

	if errorMessage != "" {
		fmt.Fprintf(&b, `<div class="alert alert-danger">%s</div>`, html.EscapeString(errorMessage))
	}

	b.WriteString(`<form method="post" action="/book" class="card p-3">`)
	if handoff != nil {
		b.WriteString(handoffFields(handoff))
		fmt.Fprintf(&b, `<p>Restaurante: <strong>%s</strong></p>`, html.EscapeString(handoff.RestaurantName))
	} else {
		b.WriteString(`<label for="bookingRestaurant">Restaurante</label><select id="bookingRestaurant" name="restaurante_id" required><option value="">Elige un restaurante</option>`)
		for _, restaurant := range catalog {
			fmt.Fprintf(&b, `<option value="%s">%s (%s)</option>`,
				html.EscapeString(restaurant.ID), html.EscapeString(restaurant.Name), html.EscapeString(restaurant.City))
		}
		b.WriteString(`</select>`)
	}
	b.WriteString(`<label>Personas<input type="number" name="num_personas" min="1" value="2" required></label>`)
	b.WriteString(`<label>Fecha<input type="date" name="fecha" required></label>`)
	b.WriteString(`<label>Hora<input type="time" name="hora" required></label>`)
	b.WriteString(`<button type="submit" class="btn btn-primary mt-2">Confirmar reserva</button></form>`)
	return b.String()
}

// RenderConfirmation renders the post-submit view with a QR code linking to
// the personal area.
func RenderConfirmation(reservationID, qrBase64 string) string {
	var b strings.Builder
	b.WriteString(`<h2 class="section-title">¡Reserva confirmada!</h2>`)
	fmt.Fprintf(&b, `<p>Tu número de reserva es <strong>%s</strong>.</p>`, html.EscapeString(reservationID))
	if qrBase64 != "" {
		fmt.Fprintf(&b, `<img class="qr" alt="Código QR de tu área personal" src="data:image/png;base64,%s">`, qrBase64)
		b.WriteString(`<p><small>Escanea el código para abrir tu área personal.</small></p>`)
	}
	b.WriteString(`<a class="btn btn-primary" href="/clients">Ir a mi área personal</a>`)
	return b.String()
}
