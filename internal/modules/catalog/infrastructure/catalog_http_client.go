package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"theknifeweb/internal/modules/catalog/application/port"
	"theknifeweb/internal/modules/catalog/domain"
	"theknifeweb/internal/shared/rest"
)

// CatalogHTTPClient implements CatalogFetcher against the core REST API.
type CatalogHTTPClient struct {
	rest    *rest.Client
	timeout time.Duration
}

func NewCatalogHTTPClient(baseURL string, timeout time.Duration, client *http.Client) *CatalogHTTPClient {
	return &CatalogHTTPClient{rest: rest.NewClient(baseURL, timeout, client), timeout: rest.TimeoutOrDefault(timeout)}
}

func (c *CatalogHTTPClient) ListRestaurants(ctx context.Context, allergen string) ([]domain.Restaurant, error) {
	endpoint := "/api/restaurantes"
	if trimmed := strings.TrimSpace(allergen); trimmed != "" {
		endpoint += "?alergia=" + url.QueryEscape(trimmed)
	}
	payload, err := c.fetch(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	restaurants, ok := domain.BuildRestaurantList(payload)
	if !ok {
		return nil, fmt.Errorf("%w: malformed restaurant list", port.ErrCatalogUnavailable)
	}
	return restaurants, nil
}

func (c *CatalogHTTPClient) GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return nil, port.ErrRestaurantNotFound
	}
	payload, err := c.fetch(ctx, "/api/restaurantes/"+url.PathEscape(trimmed))
	if err != nil {
		return nil, err
	}
	restaurant, ok := domain.BuildRestaurantDetail(payload)
	if !ok {
		return nil, port.ErrRestaurantNotFound
	}
	return restaurant, nil
}

func (c *CatalogHTTPClient) ListDishes(ctx context.Context, restaurantID, allergen string) ([]domain.Dish, error) {
	trimmed := strings.TrimSpace(restaurantID)
	if trimmed == "" {
		return nil, port.ErrRestaurantNotFound
	}
	endpoint := "/api/restaurantes/" + url.PathEscape(trimmed) + "/platos"
	if allergen = strings.TrimSpace(allergen); allergen != "" {
		endpoint += "?alergia=" + url.QueryEscape(allergen)
	}
	payload, err := c.fetch(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	dishes, ok := domain.BuildDishList(payload)
	if !ok {
		return nil, fmt.Errorf("%w: malformed dish list", port.ErrCatalogUnavailable)
	}
	return dishes, nil
}

func (c *CatalogHTTPClient) ListAllergens(ctx context.Context) ([]domain.Allergen, error) {
	payload, err := c.fetch(ctx, "/api/alergenos")
	if err != nil {
		return nil, err
	}
	allergens, ok := domain.BuildAllergenList(payload)
	if !ok {
		return nil, fmt.Errorf("%w: malformed allergen list", port.ErrCatalogUnavailable)
	}
	return allergens, nil
}

func (c *CatalogHTTPClient) fetch(ctx context.Context, endpoint string) (any, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := c.rest.NewRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		slog.Error("catalog request build failed", slog.String("endpoint", endpoint), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", port.ErrCatalogUnavailable, err)
	}

	slog.Debug("catalog request", slog.String("url", req.URL.String()))

	res, err := c.rest.Do(req)
	if err != nil {
		slog.Error("catalog request error", slog.String("endpoint", endpoint), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", port.ErrCatalogUnavailable, err)
	}
	defer res.Body.Close()

	slog.Debug("catalog response", slog.Int("status", res.StatusCode), slog.String("url", req.URL.String()))

	switch res.StatusCode {
	case http.StatusOK:
		var payload any
		if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("%w: decode: %v", port.ErrCatalogUnavailable, err)
		}
		return payload, nil
	case http.StatusNotFound:
		return nil, port.ErrRestaurantNotFound
	default:
		slog.Error("catalog fetch unexpected status", slog.Int("status", res.StatusCode), slog.String("url", req.URL.String()))
		return nil, fmt.Errorf("%w: unexpected status %d", port.ErrCatalogUnavailable, res.StatusCode)
	}
}

var _ port.CatalogFetcher = (*CatalogHTTPClient)(nil)
