package domain

import (
	"sort"

	"theknifeweb/internal/shared/normalization"
)

// Restaurant is a catalog entry as served by the core API. Immutable from the
// frontend's perspective.
type Restaurant struct {
	ID      string
	Name    string
	City    string
	Region  string
	Cuisine string
	// Stars is the Michelin star count, 0 to 3.
	Stars int
	// Budget is the price tier, 1 to 4.
	Budget int
	Chain  string
}

// NormalizeRestaurant constructs a Restaurant from a loosely typed map.
func NormalizeRestaurant(raw map[string]any) (Restaurant, bool) {
	id := normalization.AsString(raw["id"])
	if id == "" {
		return Restaurant{}, false
	}
	return Restaurant{
		ID:      id,
		Name:    normalization.AsString(raw["nombre"]),
		City:    normalization.AsString(raw["ciudad"]),
		Region:  normalization.AsString(raw["ccaa"]),
		Cuisine: normalization.AsString(raw["tipo_comida"]),
		Stars:   normalization.AsInt(raw["estrellas"]),
		Budget:  normalization.AsInt(raw["presupuesto"]),
		Chain:   normalization.AsString(raw["cadena"]),
	}, true
}

// BuildRestaurantList projects the {"restaurantes": [...]} envelope into records.
func BuildRestaurantList(payload any) ([]Restaurant, bool) {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return nil, false
	}
	rawItems := normalization.AsInterfaceSlice(container["restaurantes"])
	if rawItems == nil {
		rawItems = normalization.AsInterfaceSlice(container["items"])
	}
	if rawItems == nil {
		return nil, false
	}
	result := make([]Restaurant, 0, len(rawItems))
	for _, item := range rawItems {
		if rawMap, ok := item.(map[string]any); ok {
			if restaurant, ok := NormalizeRestaurant(rawMap); ok {
				result = append(result, restaurant)
			}
		}
	}
	return result, true
}

// BuildRestaurantDetail extracts the {"restaurante": {...}} projection.
func BuildRestaurantDetail(payload any) (*Restaurant, bool) {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return nil, false
	}
	if nested, ok := container["restaurante"].(map[string]any); ok {
		container = nested
	}
	restaurant, ok := NormalizeRestaurant(container)
	if !ok {
		return nil, false
	}
	return &restaurant, true
}

// Featured returns up to three catalog entries with two or more stars, the
// home page highlight rule.
func Featured(catalog []Restaurant) []Restaurant {
	featured := make([]Restaurant, 0, 3)
	for _, restaurant := range catalog {
		if restaurant.Stars >= 2 {
			featured = append(featured, restaurant)
			if len(featured) == 3 {
				break
			}
		}
	}
	return featured
}

// CuisineOptions returns the distinct cuisine types present in the catalog,
// sorted, for the filter dropdown.
func CuisineOptions(catalog []Restaurant) []string {
	seen := make(map[string]struct{}, len(catalog))
	options := make([]string, 0, len(catalog))
	for _, restaurant := range catalog {
		if restaurant.Cuisine == "" {
			continue
		}
		if _, ok := seen[restaurant.Cuisine]; ok {
			continue
		}
		seen[restaurant.Cuisine] = struct{}{}
		options = append(options, restaurant.Cuisine)
	}
	sort.Strings(options)
	return options
}
