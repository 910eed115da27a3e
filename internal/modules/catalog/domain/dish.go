package domain

import (
	"strings"

	"theknifeweb/internal/shared/normalization"
)

// DishCategory is one of the four fixed menu sections.
type DishCategory string

const (
	CategoryStarter DishCategory = "ENTRANTE"
	CategoryMain    DishCategory = "PRINCIPAL"
	CategoryDessert DishCategory = "POSTRE"
	CategoryDrink   DishCategory = "BEBIDA"
)

// DisplayOrder fixes the order menu sections render in.
var DisplayOrder = []DishCategory{CategoryStarter, CategoryMain, CategoryDessert, CategoryDrink}

// NormalizeDishCategory uppercases and validates the category value.
func NormalizeDishCategory(value any) (DishCategory, bool) {
	s, ok := value.(string)
	if !ok {
		return "", false
	}
	category := DishCategory(strings.ToUpper(strings.TrimSpace(s)))
	switch category {
	case CategoryStarter, CategoryMain, CategoryDessert, CategoryDrink:
		return category, true
	}
	return "", false
}

// Dish is a menu entry. FreeOfAllergen reflects the allergen filter active
// when the menu was fetched; it has no meaning without one.
type Dish struct {
	Name           string
	Category       DishCategory
	Price          float64
	FreeOfAllergen bool
}

// NormalizeDish constructs a Dish from a loosely typed map.
func NormalizeDish(raw map[string]any) (Dish, bool) {
	name := normalization.AsString(raw["nombre"])
	if name == "" {
		return Dish{}, false
	}
	category, ok := NormalizeDishCategory(raw["tipo"])
	if !ok {
		return Dish{}, false
	}
	free, _ := raw["sin_alergeno"].(bool)
	return Dish{
		Name:           name,
		Category:       category,
		Price:          normalization.AsFloat64(raw["precio"]),
		FreeOfAllergen: free,
	}, true
}

// BuildDishList projects the {"platos": [...]} envelope into records.
func BuildDishList(payload any) ([]Dish, bool) {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return nil, false
	}
	rawItems := normalization.AsInterfaceSlice(container["platos"])
	if rawItems == nil {
		return nil, false
	}
	result := make([]Dish, 0, len(rawItems))
	for _, item := range rawItems {
		if rawMap, ok := item.(map[string]any); ok {
			if dish, ok := NormalizeDish(rawMap); ok {
				result = append(result, dish)
			}
		}
	}
	return result, true
}

// GroupDishes buckets dishes into the four fixed categories. Callers iterate
// with DisplayOrder for a stable rendering.
func GroupDishes(dishes []Dish) map[DishCategory][]Dish {
	grouped := make(map[DishCategory][]Dish, len(DisplayOrder))
	for _, dish := range dishes {
		grouped[dish.Category] = append(grouped[dish.Category], dish)
	}
	return grouped
}

// Allergen is a server-recognized exclusion criterion.
type Allergen struct {
	Name string
}

// BuildAllergenList projects the {"alergenos": [...]} envelope into records.
func BuildAllergenList(payload any) ([]Allergen, bool) {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return nil, false
	}
	rawItems := normalization.AsInterfaceSlice(container["alergenos"])
	if rawItems == nil {
		return nil, false
	}
	result := make([]Allergen, 0, len(rawItems))
	for _, item := range rawItems {
		if rawMap, ok := item.(map[string]any); ok {
			if name := normalization.AsString(rawMap["nombre"]); name != "" {
				result = append(result, Allergen{Name: name})
			}
		}
	}
	return result, true
}
