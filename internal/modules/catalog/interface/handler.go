package transport

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"theknifeweb/internal/modules/catalog/application/port"
	"theknifeweb/internal/modules/catalog/domain"
	"theknifeweb/internal/shared/httputil"
	"theknifeweb/internal/shared/webpage"
)

// Handler serves the public catalog pages: home, the filterable restaurant
// listing and the per-restaurant menu.
type Handler struct {
	fetcher port.CatalogFetcher
	errors  *httputil.ErrorMapper
}

func NewHandler(fetcher port.CatalogFetcher) *Handler {
	mapper := httputil.NewErrorMapper().
		WithMapping(port.ErrCatalogUnavailable, http.StatusBadGateway, "No se pudo cargar el catálogo de restaurantes. Inténtalo de nuevo más tarde.").
		WithMapping(port.ErrRestaurantNotFound, http.StatusNotFound, "Restaurante no encontrado.")
	return &Handler{fetcher: fetcher, errors: mapper}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Home)
	e.GET("/restaurants", h.Restaurants)
	e.GET("/restaurants/:id/menu", h.Menu)
}

// Home renders the landing page with up to three featured restaurants.
func (h *Handler) Home(c echo.Context) error {
	catalog, err := h.fetcher.ListRestaurants(c.Request().Context(), "")
	if err != nil {
		slog.Error("home catalog fetch failed", slog.Any("error", err))
		info := h.errors.Map(err)
		return c.HTML(info.Status, webpage.Page("Inicio", webpage.ErrorBanner(info.Message)))
	}

	var b strings.Builder
	b.WriteString(`<section class="hero"><h1>Descubre los mejores restaurantes</h1><p>Reserva mesa en segundos con The Knife.</p><a class="btn btn-primary" href="/restaurants">Explorar restaurantes</a></section>`)
	b.WriteString(`<h2 class="section-title">Destacados</h2><div class="row row-cols-1 row-cols-md-3 g-4">`)
	b.WriteString(RenderRestaurantList(domain.Featured(catalog)))
	b.WriteString(`</div>`)
	return c.HTML(http.StatusOK, webpage.Page("Inicio", b.String()))
}

// Restaurants renders the catalog listing. The allergen filter delegates to
// the server; the remaining criteria filter the fetched catalog locally.
func (h *Handler) Restaurants(c echo.Context) error {
	allergen := strings.TrimSpace(c.QueryParam("alergia"))
	filter := domain.Filter{
		Search:  c.QueryParam("q"),
		Stars:   c.QueryParam("estrellas"),
		Budget:  c.QueryParam("presupuesto"),
		Cuisine: c.QueryParam("tipo"),
	}

	catalog, err := h.fetcher.ListRestaurants(c.Request().Context(), allergen)
	if err != nil {
		slog.Error("catalog fetch failed", slog.Any("error", err))
		info := h.errors.Map(err)
		return c.HTML(info.Status, webpage.Page("Restaurantes", webpage.ErrorBanner(info.Message)))
	}

	allergens, err := h.fetcher.ListAllergens(c.Request().Context())
	if err != nil {
		// The listing still works without the allergen dropdown options.
		slog.Warn("allergen list fetch failed", slog.Any("error", err))
		allergens = nil
	}

	visible := catalog
	if !filter.IsZero() {
		visible = filter.Apply(catalog)
	}

	var b strings.Builder
	b.WriteString(`<h2 class="section-title">Restaurantes</h2>`)
	b.WriteString(RenderFilterBar(filter, allergen, domain.CuisineOptions(catalog), allergens))
	b.WriteString(`<div id="restaurantsGrid" class="row row-cols-1 row-cols-md-3 g-4">`)
	b.WriteString(RenderRestaurantList(visible))
	b.WriteString(`</div>`)
	return c.HTML(http.StatusOK, webpage.Page("Restaurantes", b.String()))
}

// Menu renders one restaurant's dishes grouped by category.
func (h *Handler) Menu(c echo.Context) error {
	id := c.Param("id")
	allergen := strings.TrimSpace(c.QueryParam("alergia"))

	restaurant, err := h.fetcher.GetRestaurant(c.Request().Context(), id)
	if err != nil {
		info := h.errors.Map(err)
		if !errors.Is(err, port.ErrRestaurantNotFound) {
			slog.Error("restaurant fetch failed", slog.String("id", id), slog.Any("error", err))
		}
		return c.HTML(info.Status, webpage.Page("Menú", webpage.ErrorBanner(info.Message)))
	}

	dishes, err := h.fetcher.ListDishes(c.Request().Context(), id, allergen)
	if err != nil {
		slog.Error("dish fetch failed", slog.String("id", id), slog.Any("error", err))
		info := h.errors.Map(err)
		return c.HTML(info.Status, webpage.Page("Menú", webpage.ErrorBanner(info.Message)))
	}

	return c.HTML(http.StatusOK, webpage.Page("Menú", RenderMenu(dishes, restaurant.Name, allergen)))
}
