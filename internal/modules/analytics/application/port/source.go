package port

import (
	"context"
	"errors"

	"theknifeweb/internal/modules/analytics/domain"
)

// ErrAnalyticsUnavailable marks a transport or decode failure on the
// analytics surface.
var ErrAnalyticsUnavailable = errors.New("analytics unavailable")

// AnalyticsSource exposes the per-restaurant analytics endpoints, one method
// per endpoint.
type AnalyticsSource interface {
	UnratedClients(ctx context.Context, restaurantID string) ([]domain.UnratedClient, error)
	AverageSpend(ctx context.Context, restaurantID string) (float64, error)
	BusiestDayChart(ctx context.Context, restaurantID string) (domain.Chart, error)
	TopDishes(ctx context.Context, restaurantID string) ([]domain.TopDish, error)
	PriceComparison(ctx context.Context, restaurantID string) (domain.PriceComparison, error)
}
