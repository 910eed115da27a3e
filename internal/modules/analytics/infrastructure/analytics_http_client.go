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

	"theknifeweb/internal/modules/analytics/application/port"
	"theknifeweb/internal/modules/analytics/domain"
	"theknifeweb/internal/shared/normalization"
	"theknifeweb/internal/shared/rest"
)

// AnalyticsHTTPClient implements AnalyticsSource against the core REST API.
type AnalyticsHTTPClient struct {
	rest    *rest.Client
	timeout time.Duration
}

func NewAnalyticsHTTPClient(baseURL string, timeout time.Duration, client *http.Client) *AnalyticsHTTPClient {
	return &AnalyticsHTTPClient{rest: rest.NewClient(baseURL, timeout, client), timeout: rest.TimeoutOrDefault(timeout)}
}

func (c *AnalyticsHTTPClient) UnratedClients(ctx context.Context, restaurantID string) ([]domain.UnratedClient, error) {
	payload, err := c.fetch(ctx, restaurantID, "sin-valorar")
	if err != nil {
		return nil, err
	}
	clients, ok := domain.BuildUnratedClients(payload)
	if !ok {
		return nil, fmt.Errorf("%w: malformed unrated-clients response", port.ErrAnalyticsUnavailable)
	}
	return clients, nil
}

func (c *AnalyticsHTTPClient) AverageSpend(ctx context.Context, restaurantID string) (float64, error) {
	payload, err := c.fetch(ctx, restaurantID, "gasto-medio")
	if err != nil {
		return 0, err
	}
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return 0, fmt.Errorf("%w: malformed average-spend response", port.ErrAnalyticsUnavailable)
	}
	return normalization.AsFloat64(container["gasto_medio"]), nil
}

func (c *AnalyticsHTTPClient) BusiestDayChart(ctx context.Context, restaurantID string) (domain.Chart, error) {
	payload, err := c.fetch(ctx, restaurantID, "grafico-dias")
	if err != nil {
		return domain.Chart{}, err
	}
	chart, ok := domain.BuildChart(payload)
	if !ok {
		return domain.Chart{}, fmt.Errorf("%w: malformed chart response", port.ErrAnalyticsUnavailable)
	}
	return chart, nil
}

func (c *AnalyticsHTTPClient) TopDishes(ctx context.Context, restaurantID string) ([]domain.TopDish, error) {
	payload, err := c.fetch(ctx, restaurantID, "top-platos")
	if err != nil {
		return nil, err
	}
	dishes, ok := domain.BuildTopDishes(payload)
	if !ok {
		return nil, fmt.Errorf("%w: malformed top-dishes response", port.ErrAnalyticsUnavailable)
	}
	return dishes, nil
}

func (c *AnalyticsHTTPClient) PriceComparison(ctx context.Context, restaurantID string) (domain.PriceComparison, error) {
	payload, err := c.fetch(ctx, restaurantID, "grafico-precio-comparativo")
	if err != nil {
		return domain.PriceComparison{}, err
	}
	comparison, ok := domain.BuildPriceComparison(payload)
	if !ok {
		return domain.PriceComparison{}, fmt.Errorf("%w: malformed price-comparison response", port.ErrAnalyticsUnavailable)
	}
	return comparison, nil
}

func (c *AnalyticsHTTPClient) fetch(ctx context.Context, restaurantID, report string) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := "/api/restaurantes/" + url.PathEscape(strings.TrimSpace(restaurantID)) + "/analytics/" + report
	req, err := c.rest.NewRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrAnalyticsUnavailable, err)
	}
	res, err := c.rest.Do(req)
	if err != nil {
		slog.Error("analytics request error", slog.String("report", report), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", port.ErrAnalyticsUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		slog.Error("analytics fetch unexpected status", slog.Int("status", res.StatusCode), slog.String("report", report))
		return nil, fmt.Errorf("%w: unexpected status %d", port.ErrAnalyticsUnavailable, res.StatusCode)
	}
	var payload any
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", port.ErrAnalyticsUnavailable, err)
	}
	return payload, nil
}

var _ port.AnalyticsSource = (*AnalyticsHTTPClient)(nil)
