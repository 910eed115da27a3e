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
	catalogport "theknifeweb/internal/modules/catalog/application/port"
	"theknifeweb/internal/modules/restaurantarea/application/usecase"
	"theknifeweb/internal/session"
	"theknifeweb/internal/shared/httputil"
	"theknifeweb/internal/shared/rest"
	"theknifeweb/internal/shared/webpage"
)

// Handler serves the restaurant self-service area: login by restaurant id,
// the reservations/invoices dashboard and invoice creation.
type Handler struct {
	cookies  *session.CookieManager
	sessions session.Repository
	catalog  catalogport.CatalogFetcher
	loader   *usecase.AreaLoader
	invoices billingport.InvoiceSource
	errors   *httputil.ErrorMapper
	now      func() time.Time
}

func NewHandler(
	cookies *session.CookieManager,
	sessions session.Repository,
	catalog catalogport.CatalogFetcher,
	loader *usecase.AreaLoader,
	invoices billingport.InvoiceSource,
) *Handler {
	mapper := httputil.NewErrorMapper().
		WithMapping(catalogport.ErrCatalogUnavailable, http.StatusBadGateway, "No se pudo comprobar el restaurante.").
		WithMapping(bookingport.ErrBookingUnavailable, http.StatusBadGateway, "No se pudieron cargar las reservas.").
		WithMapping(billingport.ErrBillingUnavailable, http.StatusBadGateway, "No se pudieron cargar las facturas.").
		WithMapping(usecase.ErrSuperseded, http.StatusConflict, "La vista se actualizó mientras se cargaba. Vuelve a intentarlo.")
	return &Handler{
		cookies:  cookies,
		sessions: sessions,
		catalog:  catalog,
		loader:   loader,
		invoices: invoices,
		errors:   mapper,
		now:      time.Now,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/restaurant-area", h.Area)
	e.POST("/restaurant-area/login", h.Login)
	e.POST("/restaurant-area/logout", h.Logout)
	e.POST("/restaurant-area/invoices", h.CreateInvoice)
}

// Area renders the dashboard, or the login form when no restaurant identity
// is in the session.
func (h *Handler) Area(c echo.Context) error {
	sid, err := h.cookies.SessionID(c)
	if err != nil {
		return err
	}
	record, err := h.sessions.Restaurant(c.Request().Context(), sid)
	if errors.Is(err, session.ErrNotFound) {
		return c.HTML(http.StatusOK, webpage.Page("Área Restaurante", flash(c)+RenderRestaurantLogin("", false)))
	}
	if err != nil {
		return err
	}

	area, err := h.loader.Load(c.Request().Context(), record.ID)
	if err != nil {
		slog.Error("restaurant area load failed", slog.String("restaurant", record.ID), slog.Any("error", err))
		info := h.errors.Map(err)
		return c.HTML(info.Status, webpage.Page("Área Restaurante", webpage.ErrorBanner(info.Message)))
	}
	body := flash(c) + RenderRestaurantArea(record, area, h.now())
	return c.HTML(http.StatusOK, webpage.Page("Área Restaurante", body))
}

// Login resolves the submitted id against the catalog. A confirmed 404
// renders the no-restaurant state, not an error banner.
func (h *Handler) Login(c echo.Context) error {
	sid, err := h.cookies.SessionID(c)
	if err != nil {
		return err
	}
	id := strings.TrimSpace(c.FormValue("id"))
	if id == "" {
		return c.HTML(http.StatusOK, webpage.Page("Área Restaurante", RenderRestaurantLogin("", false)))
	}

	restaurant, err := h.catalog.GetRestaurant(c.Request().Context(), id)
	if errors.Is(err, catalogport.ErrRestaurantNotFound) {
		return c.HTML(http.StatusOK, webpage.Page("Área Restaurante", RenderRestaurantLogin(id, true)))
	}
	if err != nil {
		slog.Error("restaurant login lookup failed", slog.String("id", id), slog.Any("error", err))
		info := h.errors.Map(err)
		return c.HTML(info.Status, webpage.Page("Área Restaurante", webpage.ErrorBanner(info.Message)))
	}

	record := &session.RestaurantRecord{
		ID:      restaurant.ID,
		Name:    restaurant.Name,
		City:    restaurant.City,
		Region:  restaurant.Region,
		Cuisine: restaurant.Cuisine,
		Stars:   restaurant.Stars,
		Budget:  restaurant.Budget,
	}
	if err := h.sessions.SetRestaurant(c.Request().Context(), sid, record); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/restaurant-area")
}

func (h *Handler) Logout(c echo.Context) error {
	sid, err := h.cookies.SessionID(c)
	if err != nil {
		return err
	}
	if err := h.sessions.ClearRestaurant(c.Request().Context(), sid); err != nil && !errors.Is(err, session.ErrNotFound) {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/restaurant-area")
}

// CreateInvoice folds the posted dish rows into a draft, merging duplicate
// dishes, and submits it. An empty draft never reaches the network.
func (h *Handler) CreateInvoice(c echo.Context) error {
	sid, err := h.cookies.SessionID(c)
	if err != nil {
		return err
	}
	record, err := h.sessions.Restaurant(c.Request().Context(), sid)
	if errors.Is(err, session.ErrNotFound) {
		return c.Redirect(http.StatusSeeOther, "/restaurant-area")
	}
	if err != nil {
		return err
	}

	form, err := c.FormParams()
	if err != nil {
		return err
	}
	draft := billingdomain.InvoiceDraft{
		ReservationID: strings.TrimSpace(c.FormValue("id_reserva")),
		ClientID:      strings.TrimSpace(c.FormValue("id_cliente")),
		RestaurantID:  record.ID,
	}
	names := form["plato_nombre"]
	categories := form["plato_tipo"]
	prices := form["plato_precio"]
	quantities := form["plato_cantidad"]
	for i, name := range names {
		price, _ := strconv.ParseFloat(strings.TrimSpace(valueAt(prices, i)), 64)
		quantity, _ := strconv.Atoi(strings.TrimSpace(valueAt(quantities, i)))
		draft.Add(name, valueAt(categories, i), price, quantity)
	}

	if err := draft.Validate(); err != nil {
		return h.redirectWithError(c, "Añade al menos un plato a la factura.")
	}
	if err := h.invoices.CreateRestaurantInvoice(c.Request().Context(), &draft); err != nil {
		if message, ok := rest.RejectionMessage(err); ok {
			return h.redirectWithError(c, message)
		}
		slog.Error("restaurant invoice create failed", slog.Any("error", err))
		return h.redirectWithError(c, h.errors.Map(err).Message)
	}
	return c.Redirect(http.StatusSeeOther, "/restaurant-area?aviso="+url.QueryEscape("Factura emitida."))
}

func (h *Handler) redirectWithError(c echo.Context, message string) error {
	return c.Redirect(http.StatusSeeOther, "/restaurant-area?error="+url.QueryEscape(message))
}

func valueAt(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
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
