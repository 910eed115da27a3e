package port

import (
	"context"
	"errors"

	"theknifeweb/internal/modules/catalog/domain"
)

var (
	// ErrCatalogUnavailable marks a transport or decode failure. Controllers
	// render the failure state, never the empty state, for this error.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrRestaurantNotFound marks a confirmed 404 for a restaurant id.
	ErrRestaurantNotFound = errors.New("restaurant not found")
)

// CatalogFetcher exposes the read-only catalog surface of the core API.
type CatalogFetcher interface {
	// ListRestaurants fetches the catalog. A non-empty allergen delegates
	// filtering to the server.
	ListRestaurants(ctx context.Context, allergen string) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error)
	ListDishes(ctx context.Context, restaurantID, allergen string) ([]domain.Dish, error)
	ListAllergens(ctx context.Context) ([]domain.Allergen, error)
}
