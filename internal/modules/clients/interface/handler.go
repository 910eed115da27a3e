package transport

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	billingport "theknifeweb/internal/modules/billing/application/port"
	billingdomain "theknifeweb/internal/modules/billing/domain"
	bookingport "theknifeweb/internal/modules/booking/application/port"
	bookingdomain "theknifeweb/internal/modules/booking/domain"
	clientsport "theknifeweb/internal/modules/clients/application/port"
	"theknifeweb/internal/modules/clients/application/usecase"
	"theknifeweb/internal/modules/clients/domain"
	"theknifeweb/internal/session"
	"theknifeweb/internal/shared/httputil"
	"theknifeweb/internal/shared/rest"
	"theknifeweb/internal/shared/webpage"
)

const deleteConfirmationPhrase = "ELIMINAR"

// Handler serves the client personal area and the reservation and review
// actions reachable from it.
type Handler struct {
	cookies      *session.CookieManager
	sessions     session.Repository
	directory    clientsport.ClientDirectory
	loader       *usecase.AreaLoader
	reservations bookingport.ReservationService
	reviews      billingport.ReviewSource
	errors       *httputil.ErrorMapper
	now          func() time.Time
}

func NewHandler(
	cookies *session.CookieManager,
	sessions session.Repository,
	directory clientsport.ClientDirectory,
	loader *usecase.AreaLoader,
	reservations bookingport.ReservationService,
	reviews billingport.ReviewSource,
) *Handler {
	mapper := httputil.NewErrorMapper().
		WithMapping(clientsport.ErrClientsUnavailable, http.StatusBadGateway, "No se pudo acceder al directorio de clientes.").
		WithMapping(bookingport.ErrBookingUnavailable, http.StatusBadGateway, "No se pudieron cargar tus reservas.").
		WithMapping(billingport.ErrBillingUnavailable, http.StatusBadGateway, "No se pudieron cargar tus facturas o reseñas.").
		WithMapping(usecase.ErrSuperseded, http.StatusConflict, "La vista se actualizó mientras se cargaba. Vuelve a intentarlo.")
	return &Handler{
		cookies:      cookies,
		sessions:     sessions,
		directory:    directory,
		loader:       loader,
		reservations: reservations,
		reviews:      reviews,
		errors:       mapper,
		now:          time.Now,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/clients", h.Area)
	e.POST("/clients/login", h.Login)
	e.POST("/clients/logout", h.Logout)
	e.POST("/clients/update", h.Update)
	e.POST("/clients/delete", h.Delete)
	e.POST("/reservations/:id/update", h.UpdateReservation)
	e.POST("/reservations/:id/cancel", h.CancelReservation)
	e.POST("/reservations/:id/invoice", h.RequestInvoice)
	e.POST("/reviews", h.SubmitReview)
}

// Area renders the personal area, or the login form when no client identity
// is in the session.
func (h *Handler) Area(c echo.Context) error {
	sid, err := h.cookies.SessionID(c)
	if err != nil {
		return err
	}
	record, err := h.sessions.Client(c.Request().Context(), sid)
	if errors.Is(err, session.ErrNotFound) {
		return c.HTML(http.StatusOK, webpage.Page("Área Cliente", flash(c)+RenderLoginForm("", false)))
	}
	if err != nil {
		return err
	}

	area, err := h.loader.Load(c.Request().Context(), record.ID)
	if err != nil {
		slog.Error("personal area load failed", slog.String("client", record.ID), slog.Any("error", err))
		info := h.errors.Map(err)
		return c.HTML(info.Status, webpage.Page("Área Cliente", webpage.ErrorBanner(info.Message)))
	}
	body := flash(c) + RenderArea(fromRecord(record), area, h.now())
	return c.HTML(http.StatusOK, webpage.Page("Área Cliente", body))
}

// Login looks the submitted id up. Zero results render the no-results state;
// only a transport failure renders the error banner.
func (h *Handler) Login(c echo.Context) error {
	sid, err := h.cookies.SessionID(c)
	if err != nil {
		return err
	}
	id := strings.TrimSpace(c.FormValue("id"))
	if id == "" {
		return c.HTML(http.StatusOK, webpage.Page("Área Cliente", RenderLoginForm("", false)))
	}

	client, err := h.directory.Search(c.Request().Context(), id)
	if err != nil {
		slog.Error("client login lookup failed", slog.String("id", id), slog.Any("error", err))
		info := h.errors.Map(err)
		return c.HTML(info.Status, webpage.Page("Área Cliente", webpage.ErrorBanner(info.Message)))
	}
	if client == nil {
		return c.HTML(http.StatusOK, webpage.Page("Área Cliente", RenderLoginForm(id, true)))
	}

	if err := h.sessions.SetClient(c.Request().Context(), sid, toRecord(*client)); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/clients")
}

func (h *Handler) Logout(c echo.Context) error {
	sid, err := h.cookies.SessionID(c)
	if err != nil {
		return err
	}
	if err := h.sessions.ClearClient(c.Request().Context(), sid); err != nil && !errors.Is(err, session.ErrNotFound) {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/clients")
}

// Update saves profile changes and refreshes the stored session identity.
func (h *Handler) Update(c echo.Context) error {
	sid, record, err := h.requireClient(c)
	if err != nil || record == nil {
		return err
	}

	age, _ := strconv.Atoi(strings.TrimSpace(c.FormValue("edad")))
	registration := domain.Registration{
		ID:        record.ID,
		Name:      c.FormValue("nombre"),
		Phone:     c.FormValue("telefono"),
		Email:     c.FormValue("email"),
		Age:       age,
		Sex:       c.FormValue("sexo"),
		Education: c.FormValue("estudios"),
	}
	if err := registration.Validate(); err != nil {
		return h.redirectWithError(c, "Completa todos los campos obligatorios.")
	}
	if err := h.directory.Update(c.Request().Context(), record.ID, registration); err != nil {
		return h.actionFailed(c, "client update", err)
	}

	record.Name = strings.TrimSpace(registration.Name)
	record.Phone = strings.TrimSpace(registration.Phone)
	record.Email = strings.TrimSpace(registration.Email)
	record.Age = registration.Age
	record.Education = strings.TrimSpace(registration.Education)
	if err := h.sessions.SetClient(c.Request().Context(), sid, record); err != nil {
		return err
	}
	return h.redirectWithNotice(c, "Datos actualizados.")
}

// Delete removes the account after the confirmation phrase is typed back.
func (h *Handler) Delete(c echo.Context) error {
	sid, record, err := h.requireClient(c)
	if err != nil || record == nil {
		return err
	}
	if strings.TrimSpace(c.FormValue("confirmacion")) != deleteConfirmationPhrase {
		return h.redirectWithError(c, "Escribe ELIMINAR para confirmar la baja.")
	}
	if err := h.directory.Delete(c.Request().Context(), record.ID); err != nil {
		return h.actionFailed(c, "client delete", err)
	}
	if err := h.sessions.ClearClient(c.Request().Context(), sid); err != nil && !errors.Is(err, session.ErrNotFound) {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// UpdateReservation edits a future reservation. Past or cancelled
// reservations are rejected before any network call.
func (h *Handler) UpdateReservation(c echo.Context) error {
	_, record, err := h.requireClient(c)
	if err != nil || record == nil {
		return err
	}
	reservation, err := h.ownedEditableReservation(c, record.ID)
	if err != nil {
		return h.actionFailed(c, "reservation lookup", err)
	}
	if reservation == nil {
		return h.redirectWithError(c, "Esa reserva ya no se puede modificar.")
	}

	partySize, _ := strconv.Atoi(strings.TrimSpace(c.FormValue("num_personas")))
	slot := bookingport.Slot{
		Date:      strings.TrimSpace(c.FormValue("fecha")),
		Time:      strings.TrimSpace(c.FormValue("hora")),
		PartySize: partySize,
	}
	if slot.Date == "" || slot.Time == "" || slot.PartySize <= 0 {
		return h.redirectWithError(c, "Fecha, hora y número de personas son obligatorios.")
	}
	if err := h.reservations.Update(c.Request().Context(), reservation.ID, slot); err != nil {
		return h.actionFailed(c, "reservation update", err)
	}
	return h.redirectWithNotice(c, "Reserva actualizada.")
}

// CancelReservation cancels a future reservation, same gate as editing.
func (h *Handler) CancelReservation(c echo.Context) error {
	_, record, err := h.requireClient(c)
	if err != nil || record == nil {
		return err
	}
	reservation, err := h.ownedEditableReservation(c, record.ID)
	if err != nil {
		return h.actionFailed(c, "reservation lookup", err)
	}
	if reservation == nil {
		return h.redirectWithError(c, "Esa reserva ya no se puede cancelar.")
	}
	if err := h.reservations.Cancel(c.Request().Context(), reservation.ID); err != nil {
		return h.actionFailed(c, "reservation cancel", err)
	}
	return h.redirectWithNotice(c, "Reserva cancelada.")
}

// RequestInvoice asks for an invoice on a past reservation.
func (h *Handler) RequestInvoice(c echo.Context) error {
	_, record, err := h.requireClient(c)
	if err != nil || record == nil {
		return err
	}
	reservation, err := h.ownedReservation(c, record.ID)
	if err != nil {
		return h.actionFailed(c, "reservation lookup", err)
	}
	if reservation == nil || !reservation.IsPast(h.now()) {
		return h.redirectWithError(c, "Solo se facturan reservas ya disfrutadas.")
	}
	if err := h.reservations.RequestInvoice(c.Request().Context(), reservation.ID); err != nil {
		return h.actionFailed(c, "invoice request", err)
	}
	return h.redirectWithNotice(c, "Factura solicitada.")
}

// SubmitReview posts a star rating. Zero stars never reaches the network.
func (h *Handler) SubmitReview(c echo.Context) error {
	_, record, err := h.requireClient(c)
	if err != nil || record == nil {
		return err
	}
	rating, _ := strconv.Atoi(strings.TrimSpace(c.FormValue("valoracion")))
	review := billingdomain.Review{
		ClientID:     record.ID,
		RestaurantID: strings.TrimSpace(c.FormValue("id_restaurante")),
		Rating:       rating,
		VisitType:    strings.TrimSpace(c.FormValue("tipo_visita")),
	}
	if err := review.Validate(); err != nil {
		return h.redirectWithError(c, "Selecciona entre 1 y 5 estrellas.")
	}
	if err := h.reviews.CreateReview(c.Request().Context(), review); err != nil {
		return h.actionFailed(c, "review submit", err)
	}
	return h.redirectWithNotice(c, "¡Gracias por tu valoración!")
}

func (h *Handler) requireClient(c echo.Context) (string, *session.ClientRecord, error) {
	sid, err := h.cookies.SessionID(c)
	if err != nil {
		return "", nil, err
	}
	record, err := h.sessions.Client(c.Request().Context(), sid)
	if errors.Is(err, session.ErrNotFound) {
		return sid, nil, c.Redirect(http.StatusSeeOther, "/clients")
	}
	if err != nil {
		return sid, nil, err
	}
	return sid, record, nil
}

func (h *Handler) ownedReservation(c echo.Context, clientID string) (*bookingdomain.Reservation, error) {
	id := c.Param("id")
	reservations, err := h.reservations.ListByClient(c.Request().Context(), clientID)
	if err != nil {
		return nil, err
	}
	for i := range reservations {
		if reservations[i].ID == id {
			return &reservations[i], nil
		}
	}
	return nil, nil
}

func (h *Handler) ownedEditableReservation(c echo.Context, clientID string) (*bookingdomain.Reservation, error) {
	reservation, err := h.ownedReservation(c, clientID)
	if err != nil {
		return nil, err
	}
	if reservation == nil || !reservation.EditableOn(h.now()) {
		return nil, nil
	}
	return reservation, nil
}

func (h *Handler) actionFailed(c echo.Context, action string, err error) error {
	if message, ok := rest.RejectionMessage(err); ok {
		return h.redirectWithError(c, message)
	}
	slog.Error(action+" failed", slog.Any("error", err))
	return h.redirectWithError(c, h.errors.Map(err).Message)
}

func (h *Handler) redirectWithError(c echo.Context, message string) error {
	return c.Redirect(http.StatusSeeOther, "/clients?error="+url.QueryEscape(message))
}

func (h *Handler) redirectWithNotice(c echo.Context, message string) error {
	return c.Redirect(http.StatusSeeOther, "/clients?aviso="+url.QueryEscape(message))
}

// flash renders the one-shot banners carried on the redirect query string.
func flash(c echo.Context) string {
	var b strings.Builder
	if message := strings.TrimSpace(c.QueryParam("error")); message != "" {
		b.WriteString(webpage.ErrorBanner(message))
	}
	if message := strings.TrimSpace(c.QueryParam("aviso")); message != "" {
		b.WriteString(webpage.InfoBanner(message))
	}
	return b.String()
}

func toRecord(client domain.Client) *session.ClientRecord {
	return &session.ClientRecord{
		ID:        client.ID,
		Name:      client.Name,
		Email:     client.Email,
		Phone:     client.Phone,
		Age:       client.Age,
		Education: client.Education,
	}
}

func fromRecord(record *session.ClientRecord) domain.Client {
	return domain.Client{
		ID:        record.ID,
		Name:      record.Name,
		Email:     record.Email,
		Phone:     record.Phone,
		Age:       record.Age,
		Education: record.Education,
	}
}
