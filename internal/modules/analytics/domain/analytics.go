package domain

import (
	"fmt"
	"strings"

	"theknifeweb/internal/shared/normalization"
)

// UnratedClient is a diner with at least one invoice at the restaurant and no
// review for it yet.
type UnratedClient struct {
	ID    string
	Name  string
	Email string
}

// BuildUnratedClients projects the sin-valorar envelope into records.
func BuildUnratedClients(payload any) ([]UnratedClient, bool) {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return nil, false
	}
	rawItems := normalization.AsInterfaceSlice(container["clientes"])
	if rawItems == nil {
		rawItems = normalization.AsInterfaceSlice(container["items"])
	}
	if rawItems == nil {
		return nil, false
	}
	result := make([]UnratedClient, 0, len(rawItems))
	for _, item := range rawItems {
		rawMap, ok := item.(map[string]any)
		if !ok {
			continue
		}
		id := normalization.AsString(rawMap["id_cliente"])
		if id == "" {
			id = normalization.AsString(rawMap["id"])
		}
		if id == "" {
			continue
		}
		result = append(result, UnratedClient{
			ID:    id,
			Name:  normalization.AsString(rawMap["nombre"]),
			Email: normalization.AsString(rawMap["email"]),
		})
	}
	return result, true
}

// Chart is a server-generated graphic, delivered as base64 PNG.
type Chart struct {
	Base64PNG string
}

// BuildChart extracts the image payload from a chart endpoint response.
func BuildChart(payload any) (Chart, bool) {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return Chart{}, false
	}
	for _, key := range []string{"grafico", "imagen", "chart"} {
		if encoded := normalization.AsString(container[key]); encoded != "" {
			return Chart{Base64PNG: strings.TrimPrefix(encoded, "data:image/png;base64,")}, true
		}
	}
	return Chart{}, false
}

// TopDish is one entry of the most-ordered dishes ranking.
type TopDish struct {
	Name  string
	Count int
}

// BuildTopDishes projects the top-platos envelope into records.
func BuildTopDishes(payload any) ([]TopDish, bool) {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return nil, false
	}
	rawItems := normalization.AsInterfaceSlice(container["platos"])
	if rawItems == nil {
		rawItems = normalization.AsInterfaceSlice(container["items"])
	}
	if rawItems == nil {
		return nil, false
	}
	result := make([]TopDish, 0, len(rawItems))
	for _, item := range rawItems {
		rawMap, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name := normalization.AsString(rawMap["nombre"])
		if name == "" {
			continue
		}
		count := normalization.AsInt(rawMap["cantidad"])
		if count == 0 {
			count = normalization.AsInt(rawMap["veces"])
		}
		result = append(result, TopDish{Name: name, Count: count})
	}
	return result, true
}

// PriceComparison is the market-position report: a chart plus the percentile
// stats that accompany it.
type PriceComparison struct {
	Chart            Chart
	Percentile       float64
	RestaurantSpend  float64
	MarketAverage    float64
	TotalRestaurants int
}

// BuildPriceComparison extracts the chart and the percentile stats.
func BuildPriceComparison(payload any) (PriceComparison, bool) {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return PriceComparison{}, false
	}
	chart, _ := BuildChart(container)
	return PriceComparison{
		Chart:            chart,
		Percentile:       normalization.AsFloat64(container["percentil"]),
		RestaurantSpend:  normalization.AsFloat64(container["gasto_restaurante"]),
		MarketAverage:    normalization.AsFloat64(container["media_mercado"]),
		TotalRestaurants: normalization.AsInt(container["total_restaurantes"]),
	}, true
}

// Band maps the percentile onto its interpretation band.
func (p PriceComparison) Band() string {
	switch {
	case p.Percentile < 25:
		return "económico"
	case p.Percentile < 50:
		return "medio-bajo"
	case p.Percentile < 75:
		return "medio-alto"
	default:
		return "premium"
	}
}

// ReminderEmail composes the rate-your-visit reminder for an unrated client.
// Sending is out of scope; the text is rendered for the restaurant to copy.
func ReminderEmail(restaurantName string, client UnratedClient) (subject, body string) {
	name := strings.TrimSpace(client.Name)
	if name == "" {
		name = "cliente"
	}
	subject = fmt.Sprintf("¿Qué tal tu visita a %s?", restaurantName)
	body = fmt.Sprintf(
		"Hola %s:\n\nGracias por visitarnos en %s. Nos encantaría conocer tu opinión: entra en tu área personal de The Knife y valora tu experiencia.\n\n¡Hasta pronto!",
		name, restaurantName)
	return subject, body
}
