package domain

import (
	"strconv"
	"strings"
)

// Filter is the client-side catalog filter. Stars, Budget and Cuisine match
// exactly; Search matches case-insensitively against name, cuisine and city.
// The allergen filter is not here: it always delegates to the server and
// replaces the local catalog.
type Filter struct {
	Search  string
	Stars   string
	Budget  string
	Cuisine string
}

// IsZero reports whether no criterion is set.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Search) == "" &&
		strings.TrimSpace(f.Stars) == "" &&
		strings.TrimSpace(f.Budget) == "" &&
		strings.TrimSpace(f.Cuisine) == ""
}

// Apply returns the subset of catalog matching every set criterion.
func (f Filter) Apply(catalog []Restaurant) []Restaurant {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	stars := strings.TrimSpace(f.Stars)
	budget := strings.TrimSpace(f.Budget)
	cuisine := strings.TrimSpace(f.Cuisine)

	filtered := make([]Restaurant, 0, len(catalog))
	for _, restaurant := range catalog {
		if search != "" && !matchesSearch(restaurant, search) {
			continue
		}
		if stars != "" && strconv.Itoa(restaurant.Stars) != stars {
			continue
		}
		if budget != "" && strconv.Itoa(restaurant.Budget) != budget {
			continue
		}
		if cuisine != "" && restaurant.Cuisine != cuisine {
			continue
		}
		filtered = append(filtered, restaurant)
	}
	return filtered
}

func matchesSearch(restaurant Restaurant, search string) bool {
	return strings.Contains(strings.ToLower(restaurant.Name), search) ||
		strings.Contains(strings.ToLower(restaurant.Cuisine), search) ||
		strings.Contains(strings.ToLower(restaurant.City), search)
}
