package transport

import (
	"fmt"
	"html"
	"strings"

	"theknifeweb/internal/modules/analytics/domain"
)

// RenderUnratedClients lists the diners with pending reviews, each with the
// composed reminder email ready to copy.
func RenderUnratedClients(restaurantName string, clients []domain.UnratedClient) string {
	if len(clients) == 0 {
		return `<div class="alert alert-info">Todos tus clientes han valorado su visita.</div>`
	}
	var b strings.Builder
	b.WriteString(`<ul class="list-group">`)
	for _, client := range clients {
		subject, body := domain.ReminderEmail(restaurantName, client)
		fmt.Fprintf(&b, `<li class="list-group-item"><strong>%s</strong> &lt;%s&gt;<details><summary>Recordatorio</summary><p><em>%s</em></p><pre>%s</pre></details></li>`,
			html.EscapeString(client.Name),
			html.EscapeString(client.Email),
			html.EscapeString(subject),
			html.EscapeString(body))
	}
	b.WriteString(`</ul>`)
	return b.String()
}

// RenderAverageSpend renders the headline average ticket figure.
func RenderAverageSpend(spend float64) string {
	return fmt.Sprintf(`<div class="stat"><span class="stat-value">%.2f€</span> ticket medio</div>`, spend)
}

// RenderChart embeds a server-generated base64 PNG.
func RenderChart(title string, chart domain.Chart) string {
	if chart.Base64PNG == "" {
		return `<div class="alert alert-info">Gráfico no disponible.</div>`
	}
	return fmt.Sprintf(`<figure><img alt="%s" src="data:image/png;base64,%s"><figcaption>%s</figcaption></figure>`,
		html.EscapeString(title), chart.Base64PNG, html.EscapeString(title))
}

// RenderTopDishes renders the most-ordered dishes ranking.
func RenderTopDishes(dishes []domain.TopDish) string {
	if len(dishes) == 0 {
		return `<div class="alert alert-info">Todavía no hay platos facturados.</div>`
	}
	var b strings.Builder
	b.WriteString(`<ol class="top-dishes">`)
	for _, dish := range dishes {
		fmt.Fprintf(&b, `<li>%s <span class="badge bg-primary rounded-pill">%d</span></li>`,
			html.EscapeString(dish.Name), dish.Count)
	}
	b.WriteString(`</ol>`)
	return b.String()
}

// RenderPriceComparison renders the market-position report with its
// interpretation band.
func RenderPriceComparison(comparison domain.PriceComparison) string {
	var b strings.Builder
	b.WriteString(RenderChart("Comparativa de precios", comparison.Chart))
	fmt.Fprintf(&b,
		`<p>Tu ticket medio es <strong>%.2f€</strong> frente a los <strong>%.2f€</strong> de media del mercado (%d restaurantes). Estás en el percentil <strong>%.0f</strong>: rango <span class="badge badge-%s">%s</span>.</p>`,
		comparison.RestaurantSpend,
		comparison.MarketAverage,
		comparison.TotalRestaurants,
		comparison.Percentile,
		comparison.Band(),
		comparison.Band())
	return b.String()
}
