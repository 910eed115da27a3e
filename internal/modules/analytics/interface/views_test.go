package transport

import (
	"strings"
	"testing"

	"theknifeweb/internal/modules/analytics/domain"
)

func TestRenderPriceComparisonBands(t *testing.T) {
	comparison := domain.PriceComparison{
		Chart:            domain.Chart{Base64PNG: "aW1n"},
		Percentile:       62,
		RestaurantSpend:  45.5,
		MarketAverage:    38.2,
		TotalRestaurants: 120,
	}
	html := RenderPriceComparison(comparison)
	if !strings.Contains(html, "medio-alto") {
		t.Fatalf("band missing: %s", html)
	}
	if !strings.Contains(html, "percentil <strong>62</strong>") {
		t.Fatalf("percentile missing: %s", html)
	}
	if !strings.Contains(html, "data:image/png;base64,aW1n") {
		t.Fatalf("chart missing: %s", html)
	}
}

func TestRenderUnratedClientsComposesReminder(t *testing.T) {
	html := RenderUnratedClients("Casa X", []domain.UnratedClient{
		{ID: "C1", Name: "Ana", Email: "ana@example.com"},
	})
	if !strings.Contains(html, "¿Qué tal tu visita a Casa X?") {
		t.Fatalf("reminder subject missing: %s", html)
	}
	if !strings.Contains(html, "Hola Ana") {
		t.Fatalf("reminder body missing: %s", html)
	}

	empty := RenderUnratedClients("Casa X", nil)
	if !strings.Contains(empty, "Todos tus clientes han valorado") {
		t.Fatalf("empty state missing: %s", empty)
	}
}

func TestRenderChartUnavailable(t *testing.T) {
	if html := RenderChart("Días", domain.Chart{}); !strings.Contains(html, "Gráfico no disponible") {
		t.Fatalf("missing chart placeholder: %s", html)
	}
}

func TestRenderTopDishes(t *testing.T) {
	html := RenderTopDishes([]domain.TopDish{{Name: "Gazpacho", Count: 12}})
	if !strings.Contains(html, "Gazpacho") || !strings.Contains(html, ">12<") {
		t.Fatalf("ranking missing: %s", html)
	}
}
