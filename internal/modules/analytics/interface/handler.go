package transport

import (
	"errors"
	"html"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"theknifeweb/internal/modules/analytics/application/port"
	"theknifeweb/internal/session"
	"theknifeweb/internal/shared/webpage"
)

const sectionUnavailable = `<div class="alert alert-danger">No se pudo cargar esta sección.</div>`

// Handler serves the analytics dashboard of the restaurant self-service area.
// Each report section fails independently; one broken endpoint does not blank
// the whole page.
type Handler struct {
	cookies   *session.CookieManager
	sessions  session.Repository
	analytics port.AnalyticsSource
}

func NewHandler(cookies *session.CookieManager, sessions session.Repository, analytics port.AnalyticsSource) *Handler {
	return &Handler{cookies: cookies, sessions: sessions, analytics: analytics}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/restaurant-area/analytics", h.Dashboard)
}

// Dashboard renders the five analytics reports for the logged-in restaurant.
func (h *Handler) Dashboard(c echo.Context) error {
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

	ctx := c.Request().Context()
	var b strings.Builder
	section := func(title, content string) {
		b.WriteString(`<section><h3>` + title + `</h3>` + content + `</section>`)
	}

	b.WriteString(`<h2 class="section-title">Analíticas · ` + html.EscapeString(record.Name) + `</h2>`)
	b.WriteString(`<a class="btn btn-sm btn-outline-secondary" href="/restaurant-area">Volver al área</a>`)

	if spend, err := h.analytics.AverageSpend(ctx, record.ID); err == nil {
		section("Ticket medio", RenderAverageSpend(spend))
	} else {
		h.logSection("gasto-medio", record.ID, err)
		section("Ticket medio", sectionUnavailable)
	}

	if clients, err := h.analytics.UnratedClients(ctx, record.ID); err == nil {
		section("Clientes sin valorar", RenderUnratedClients(record.Name, clients))
	} else {
		h.logSection("sin-valorar", record.ID, err)
		section("Clientes sin valorar", sectionUnavailable)
	}

	if chart, err := h.analytics.BusiestDayChart(ctx, record.ID); err == nil {
		section("Días con más reservas", RenderChart("Días con más reservas", chart))
	} else {
		h.logSection("grafico-dias", record.ID, err)
		section("Días con más reservas", sectionUnavailable)
	}

	if dishes, err := h.analytics.TopDishes(ctx, record.ID); err == nil {
		section("Platos más pedidos", RenderTopDishes(dishes))
	} else {
		h.logSection("top-platos", record.ID, err)
		section("Platos más pedidos", sectionUnavailable)
	}

	if comparison, err := h.analytics.PriceComparison(ctx, record.ID); err == nil {
		section("Posición de mercado", RenderPriceComparison(comparison))
	} else {
		h.logSection("grafico-precio-comparativo", record.ID, err)
		section("Posición de mercado", sectionUnavailable)
	}

	return c.HTML(http.StatusOK, webpage.Page("Analíticas", b.String()))
}

func (h *Handler) logSection(report, restaurantID string, err error) {
	slog.Error("analytics section failed",
		slog.String("report", report),
		slog.String("restaurant", restaurantID),
		slog.Any("error", err))
}
