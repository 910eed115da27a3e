package transport

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"theknifeweb/internal/modules/catalog/domain"
)

// View renderers for the catalog pages. Pure functions from records to HTML
// fragments; controllers pass in everything they need.

func starIcons(count int) string { return strings.Repeat("⭐", count) }
func priceIcons(level int) string { return strings.Repeat("€", level) }

// RenderRestaurantCard renders one catalog card with its menu and reserve actions.
func RenderRestaurantCard(restaurant domain.Restaurant) string {
	var b strings.Builder
	b.WriteString(`<div class="col"><div class="card card-restaurant h-100"><div class="card-body">`)
	fmt.Fprintf(&b, `<h5 class="restaurant-name">%s</h5>`, html.EscapeString(restaurant.Name))
	fmt.Fprintf(&b, `<p class="text-muted-custom mb-2"><small>%s, %s</small></p>`,
		html.EscapeString(restaurant.City), html.EscapeString(restaurant.Region))
	b.WriteString(`<p class="mb-2">`)
	fmt.Fprintf(&b, `<span class="badge bg-secondary">%s</span> `, html.EscapeString(restaurant.Cuisine))
	fmt.Fprintf(&b, `<span class="badge badge-presupuesto">%s</span>`, priceIcons(restaurant.Budget))
	if restaurant.Stars > 0 {
		fmt.Fprintf(&b, ` <span class="badge badge-michelin">%s Michelin</span>`, starIcons(restaurant.Stars))
	}
	b.WriteString(`</p>`)
	if restaurant.Chain != "" {
		fmt.Fprintf(&b, `<p class="text-muted-custom"><small>Cadena: %s</small></p>`, html.EscapeString(restaurant.Chain))
	}
	b.WriteString(`</div><div class="card-footer">`)
	fmt.Fprintf(&b, `<a class="btn btn-primary btn-sm w-100" href="/restaurants/%s/menu">Ver Menú</a>`, html.EscapeString(restaurant.ID))
	fmt.Fprintf(&b, `<form method="post" action="/book/select"><input type="hidden" name="id" value="%s"><input type="hidden" name="nombre" value="%s"><button class="btn btn-outline-primary btn-sm w-100 mt-2" type="submit">Reservar</button></form>`,
		html.EscapeString(restaurant.ID), html.EscapeString(restaurant.Name))
	b.WriteString(`</div></div></div>`)
	return b.String()
}

// RenderRestaurantList renders the catalog grid, or the empty-state message
// when the (confirmed) result set has no entries.
func RenderRestaurantList(restaurants []domain.Restaurant) string {
	if len(restaurants) == 0 {
		return `<div class="col-12"><div class="alert alert-info">No se encontraron restaurantes.</div></div>`
	}
	var b strings.Builder
	for _, restaurant := range restaurants {
		b.WriteString(RenderRestaurantCard(restaurant))
	}
	return b.String()
}

// RenderFilterBar renders the catalog filter form with the active selection.
func RenderFilterBar(filter domain.Filter, allergen string, cuisines []string, allergens []domain.Allergen) string {
	var b strings.Builder
	b.WriteString(`<form method="get" action="/restaurants" class="filter-bar">`)
	fmt.Fprintf(&b, `<input type="search" id="search" name="q" value="%s" placeholder="Buscar restaurante, cocina o ciudad">`, html.EscapeString(filter.Search))

	b.WriteString(`<select name="estrellas" id="filterEstrellas">`)
	b.WriteString(renderOption("", "Estrellas Michelin", filter.Stars))
	for _, value := range []string{"0", "1", "2", "3"} {
		b.WriteString(renderOption(value, value+" ⭐", filter.Stars))
	}
	b.WriteString(`</select>`)

	b.WriteString(`<select name="presupuesto" id="filterPresupuesto">`)
	b.WriteString(renderOption("", "Presupuesto", filter.Budget))
	for level := 1; level <= 4; level++ {
		value := strconv.Itoa(level)
		b.WriteString(renderOption(value, priceIcons(level), filter.Budget))
	}
	b.WriteString(`</select>`)

	b.WriteString(`<select name="tipo" id="filterTipoComida">`)
	b.WriteString(renderOption("", "Todos los tipos", filter.Cuisine))
	for _, cuisine := range cuisines {
		b.WriteString(renderOption(cuisine, cuisine, filter.Cuisine))
	}
	b.WriteString(`</select>`)

	b.WriteString(`<select name="alergia" id="filterAlergia">`)
	b.WriteString(renderOption("", "Sin filtro de alergia", allergen))
	for _, entry := range allergens {
		b.WriteString(renderOption(entry.Name, entry.Name, allergen))
	}
	b.WriteString(`</select>`)

	b.WriteString(`<button type="submit" class="btn btn-primary btn-sm">Filtrar</button></form>`)
	return b.String()
}

func renderOption(value, label, selected string) string {
	marker := ""
	if value == selected && value != "" || (value == "" && selected == "") {
		marker = ` selected`
	}
	return fmt.Sprintf(`<option value="%s"%s>%s</option>`, html.EscapeString(value), marker, html.EscapeString(label))
}

var categoryIcons = map[domain.DishCategory]string{
	domain.CategoryStarter: "🥗",
	domain.CategoryMain:    "🍽️",
	domain.CategoryDessert: "🍰",
	domain.CategoryDrink:   "🥤",
}

// RenderMenu renders a restaurant's dishes grouped into the four fixed
// categories. With an active allergen filter, dishes free of that allergen
// are visually flagged.
func RenderMenu(dishes []domain.Dish, restaurantName, allergen string) string {
	if len(dishes) == 0 {
		return `<p class="text-muted-custom">No hay platos disponibles</p>`
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<h5 class="menu-title">Menú - %s</h5>`, html.EscapeString(restaurantName))
	if allergen != "" {
		fmt.Fprintf(&b, `<div class="alert alert-info mb-3"><strong>🚫 Filtro de alergia activo:</strong> %s<br><small>Los platos marcados con ✅ NO contienen este alérgeno.</small></div>`,
			html.EscapeString(allergen))
	}

	grouped := domain.GroupDishes(dishes)
	for _, category := range domain.DisplayOrder {
		entries := grouped[category]
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(&b, `<div class="mb-4"><h6 class="fw-bold text-primary">%s %s</h6><div class="list-group">`,
			categoryIcons[category], category)
		for _, dish := range entries {
			class := "list-group-item"
			icon := ""
			if allergen != "" && dish.FreeOfAllergen {
				class += " allergen-free"
				icon = "✅ "
			}
			fmt.Fprintf(&b, `<div class="%s"><span>%s%s</span><span class="badge bg-primary rounded-pill">%.2f€</span></div>`,
				class, icon, html.EscapeString(dish.Name), dish.Price)
		}
		b.WriteString(`</div></div>`)
	}
	return b.String()
}
