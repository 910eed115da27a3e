package transport

import (
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	qrcode "github.com/skip2/go-qrcode"

	bookingport "theknifeweb/internal/modules/booking/application/port"
	"theknifeweb/internal/modules/booking/domain"
	catalogport "theknifeweb/internal/modules/catalog/application/port"
	catalogdomain "theknifeweb/internal/modules/catalog/domain"
	clientsport "theknifeweb/internal/modules/clients/application/port"
	clientsdomain "theknifeweb/internal/modules/clients/domain"
	"theknifeweb/internal/session"
	"theknifeweb/internal/shared/httputil"
	"theknifeweb/internal/shared/rest"
	"theknifeweb/internal/shared/webpage"
)

// Handler drives the two-step booking wizard. The wizard state is derived
// from the session: no client identity means the identify step, an identity
// means the choose-slot step.
type Handler struct {
	cookies      *session.CookieManager
	sessions     session.Repository
	directory    clientsport.ClientDirectory
	reservations bookingport.ReservationService
	catalog      catalogport.CatalogFetcher
	errors       *httputil.ErrorMapper
}

func NewHandler(
	cookies *session.CookieManager,
	sessions session.Repository,
	directory clientsport.ClientDirectory,
	reservations bookingport.ReservationService,
	catalog catalogport.CatalogFetcher,
) *Handler {
	mapper := httputil.NewErrorMapper().
		WithMapping(clientsport.ErrClientsUnavailable, http.StatusBadGateway, "No se pudo comprobar el cliente.").
		WithMapping(bookingport.ErrBookingUnavailable, http.StatusBadGateway, "No se pudo completar la reserva.").
		WithMapping(catalogport.ErrCatalogUnavailable, http.StatusBadGateway, "No se pudo cargar el catálogo de restaurantes.")
	return &Handler{
		cookies:      cookies,
		sessions:     sessions,
		directory:    directory,
		reservations: reservations,
		catalog:      catalog,
		errors:       mapper,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/book", h.Wizard)
	e.POST("/book", h.Submit)
	e.POST("/book/select", h.Select)
	e.POST("/book/identify", h.Identify)
	e.POST("/book/register", h.Register)
	e.POST("/book/back", h.Back)
	e.POST("/book/change-client", h.ChangeClient)
	e.GET("/book/confirmed", h.Confirmed)
}

// Wizard renders the step derived from the session. The restaurant handoff,
// if present, is consumed here and carried forward through the step forms.
func (h *Handler) Wizard(c echo.Context) error {
	sid, err := h.cookies.SessionID(c)
	if err != nil {
		return err
	}
	handoff := h.takeHandoff(c, sid)

	record, err := h.sessions.Client(c.Request().Context(), sid)
	if errors.Is(err, session.ErrNotFound) {
		return c.HTML(http.StatusOK, webpage.Page("Reservar", RenderIdentifyStep("", false, handoff)))
	}
	if err != nil {
		return err
	}
	return h.renderChooseSlot(c, record.Name, handoff, "")
}

// Select stores the restaurant chosen on a listing as the one-shot handoff.
func (h *Handler) Select(c echo.Context) error {
	sid, err := h.cookies.SessionID(c)
	if err != nil {
		return err
	}
	id := strings.TrimSpace(c.FormValue("id"))
	if id == "" {
		return c.Redirect(http.StatusSeeOther, "/restaurants")
	}
	handoff := &session.Handoff{RestaurantID: id, RestaurantName: strings.TrimSpace(c.FormValue("nombre"))}
	if err := h.sessions.SetHandoff(c.Request().Context(), sid, handoff); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/book")
}

// Identify looks the submitted id up. Found stores the identity and advances;
// a zero-result lookup renders the inline registration pre-filled with the
// attempted id.
func (h *Handler) Identify(c echo.Context) error {
	sid, err := h.cookies.SessionID(c)
	if err != nil {
		return err
	}
	handoff := h.formHandoff(c)
	id := strings.TrimSpace(c.FormValue("id"))
	if id == "" {
		return c.HTML(http.StatusOK, webpage.Page("Reservar", RenderIdentifyStep("", false, handoff)))
	}

	client, err := h.directory.Search(c.Request().Context(), id)
	if err != nil {
		slog.Error("wizard identify failed", slog.String("id", id), slog.Any("error", err))
		info := h.errors.Map(err)
		return c.HTML(info.Status, webpage.Page("Reservar", webpage.ErrorBanner(info.Message)))
	}
	if client == nil {
		return c.HTML(http.StatusOK, webpage.Page("Reservar", RenderIdentifyStep(id, true, handoff)))
	}

	return h.storeClientAndAdvance(c, sid, client, handoff)
}

// Register creates the client after a zero-result lookup and advances the
// wizard directly to the choose-slot step.
func (h *Handler) Register(c echo.Context) error {
	sid, err := h.cookies.SessionID(c)
	if err != nil {
		return err
	}
	handoff := h.formHandoff(c)

	age, _ := strconv.Atoi(strings.TrimSpace(c.FormValue("edad")))
	registration := clientsdomain.Registration{
		ID:        c.FormValue("id"),
		Name:      c.FormValue("nombre"),
		Phone:     c.FormValue("telefono"),
		Email:     c.FormValue("email"),
		Age:       age,
		Sex:       c.FormValue("sexo"),
		Education: c.FormValue("estudios"),
	}
	if err := registration.Validate(); err != nil {
		body := webpage.ErrorBanner("Completa todos los campos obligatorios.") +
			RenderIdentifyStep(strings.TrimSpace(registration.ID), true, handoff)
		return c.HTML(http.StatusOK, webpage.Page("Reservar", body))
	}

	client, err := h.directory.Register(c.Request().Context(), registration)
	if err != nil {
		message, ok := rest.RejectionMessage(err)
		if !ok {
			slog.Error("wizard registration failed", slog.Any("error", err))
			message = h.errors.Map(err).Message
		}
		body := webpage.ErrorBanner(message) + RenderIdentifyStep(strings.TrimSpace(registration.ID), true, handoff)
		return c.HTML(http.StatusOK, webpage.Page("Reservar", body))
	}

	return h.storeClientAndAdvance(c, sid, client, handoff)
}

// Back returns to the identify step for this render only; the stored identity
// survives and re-submitting the form confirms or replaces it.
func (h *Handler) Back(c echo.Context) error {
	sid, err := h.cookies.SessionID(c)
	if err != nil {
		return err
	}
	handoff := h.formHandoff(c)
	prefill := ""
	if record, err := h.sessions.Client(c.Request().Context(), sid); err == nil {
		prefill = record.ID
	}
	return c.HTML(http.StatusOK, webpage.Page("Reservar", RenderIdentifyStep(prefill, false, handoff)))
}

// ChangeClient clears the stored identity and restarts at identify.
func (h *Handler) ChangeClient(c echo.Context) error {
	sid, err := h.cookies.SessionID(c)
	if err != nil {
		return err
	}
	if err := h.sessions.ClearClient(c.Request().Context(), sid); err != nil && !errors.Is(err, session.ErrNotFound) {
		return err
	}
	h.carryHandoff(c, sid)
	return c.Redirect(http.StatusSeeOther, "/book")
}

// Submit validates the draft and creates the reservation. A missing client
// identity forces the wizard back to identify without issuing any request.
func (h *Handler) Submit(c echo.Context) error {
	sid, err := h.cookies.SessionID(c)
	if err != nil {
		return err
	}
	handoff := h.formHandoff(c)

	record, err := h.sessions.Client(c.Request().Context(), sid)
	if errors.Is(err, session.ErrNotFound) {
		body := webpage.ErrorBanner("Identifícate antes de reservar.") + RenderIdentifyStep("", false, handoff)
		return c.HTML(http.StatusOK, webpage.Page("Reservar", body))
	}
	if err != nil {
		return err
	}

	partySize, _ := strconv.Atoi(strings.TrimSpace(c.FormValue("num_personas")))
	draft := domain.Draft{
		ClientID:     record.ID,
		RestaurantID: strings.TrimSpace(c.FormValue("restaurante_id")),
		PartySize:    partySize,
		Date:         strings.TrimSpace(c.FormValue("fecha")),
		Time:         strings.TrimSpace(c.FormValue("hora")),
	}
	if err := draft.Validate(); err != nil {
		return h.renderChooseSlot(c, record.Name, handoff, validationMessage(err))
	}

	reservationID, err := h.reservations.Create(c.Request().Context(), draft)
	if err != nil {
		message, ok := rest.RejectionMessage(err)
		if !ok {
			slog.Error("reservation create failed", slog.Any("error", err))
			message = h.errors.Map(err).Message
		}
		return h.renderChooseSlot(c, record.Name, handoff, message)
	}

	slog.Info("reservation created",
		slog.String("reservation", reservationID),
		slog.String("client", record.ID),
		slog.String("restaurant", draft.RestaurantID))
	return c.Redirect(http.StatusSeeOther, "/book/confirmed?id="+url.QueryEscape(reservationID))
}

// Confirmed renders the confirmation with a QR code to the personal area.
func (h *Handler) Confirmed(c echo.Context) error {
	reservationID := strings.TrimSpace(c.QueryParam("id"))
	if reservationID == "" {
		return c.Redirect(http.StatusSeeOther, "/book")
	}

	areaURL := c.Scheme() + "://" + c.Request().Host + "/clients"
	encoded := ""
	if png, err := qrcode.Encode(areaURL, qrcode.Medium, 256); err == nil {
		encoded = base64.StdEncoding.EncodeToString(png)
	} else {
		slog.Warn("qr generation failed", slog.Any("error", err))
	}
	return c.HTML(http.StatusOK, webpage.Page("Reserva confirmada", RenderConfirmation(reservationID, encoded)))
}

func (h *Handler) renderChooseSlot(c echo.Context, clientName string, handoff *session.Handoff, errorMessage string) error {
	// The selector only needs the catalog when no restaurant was handed off.
	var catalog []catalogdomain.Restaurant
	if handoff == nil {
		var err error
		catalog, err = h.catalog.ListRestaurants(c.Request().Context(), "")
		if err != nil {
			slog.Error("wizard catalog fetch failed", slog.Any("error", err))
			info := h.errors.Map(err)
			return c.HTML(info.Status, webpage.Page("Reservar", webpage.ErrorBanner(info.Message)))
		}
	}
	body := RenderChooseSlotStep(clientName, handoff, catalog, errorMessage)
	return c.HTML(http.StatusOK, webpage.Page("Reservar", body))
}

func (h *Handler) takeHandoff(c echo.Context, sid string) *session.Handoff {
	handoff, err := h.sessions.TakeHandoff(c.Request().Context(), sid)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		slog.Warn("handoff read failed", slog.Any("error", err))
	}
	return handoff
}

// carryHandoff re-stores a form-carried handoff so it survives a redirect.
func (h *Handler) carryHandoff(c echo.Context, sid string) {
	if handoff := h.formHandoff(c); handoff != nil {
		if err := h.sessions.SetHandoff(c.Request().Context(), sid, handoff); err != nil {
			slog.Warn("handoff store failed", slog.Any("error", err))
		}
	}
}

func (h *Handler) formHandoff(c echo.Context) *session.Handoff {
	id := strings.TrimSpace(c.FormValue("restaurante_id"))
	if id == "" {
		return nil
	}
	return &session.Handoff{RestaurantID: id, RestaurantName: strings.TrimSpace(c.FormValue("restaurante_nombre"))}
}

func (h *Handler) storeClientAndAdvance(c echo.Context, sid string, client *clientsdomain.Client, handoff *session.Handoff) error {
	record := &session.ClientRecord{
		ID:        client.ID,
		Name:      client.Name,
		Email:     client.Email,
		Phone:     client.Phone,
		Age:       client.Age,
		Education: client.Education,
	}
	if err := h.sessions.SetClient(c.Request().Context(), sid, record); err != nil {
		return err
	}
	if handoff != nil {
		if err := h.sessions.SetHandoff(c.Request().Context(), sid, handoff); err != nil {
			slog.Warn("handoff store failed", slog.Any("error", err))
		}
	}
	return c.Redirect(http.StatusSeeOther, "/book")
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoRestaurant):
		return "Elige un restaurante."
	case errors.Is(err, domain.ErrNoPartySize):
		return "Indica cuántas personas sois."
	case errors.Is(err, domain.ErrNoSlot):
		return "Fecha y hora son obligatorias."
	default:
		return "Revisa los datos de la reserva."
	}
}
