package webpage

import (
	"html"
	"strings"
)

// Page wraps a rendered body fragment in the shared document chrome. The
// fragment renderers stay pure; only this function produces a full document.
func Page(title, body string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"es\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	b.WriteString("<title>" + html.EscapeString(title) + " · The Knife</title>\n")
	b.WriteString("<link rel=\"stylesheet\" href=\"/static/css/theme.css\">\n")
	b.WriteString("</head>\n<body>\n")
	b.WriteString(navigation)
	b.WriteString("<main class=\"container\">\n")
	b.WriteString(body)
	b.WriteString("\n</main>\n")
	b.WriteString("<script src=\"/static/js/refresh.js\"></script>\n")
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// ErrorBanner renders the failure state for a fetch that could not complete.
// Distinct from the empty state: the caller only uses this when the API call
// actually failed, never for a confirmed empty result.
func ErrorBanner(message string) string {
	return `<div class="alert alert-danger">` + html.EscapeString(message) + `</div>`
}

// InfoBanner renders an informational notice (e.g. a confirmed empty result).
func InfoBanner(message string) string {
	return `<div class="alert alert-info">` + html.EscapeString(message) + `</div>`
}

const navigation = `<nav class="navbar">
  <a class="navbar-brand" href="/">The Knife</a>
  <a href="/restaurants">Restaurantes</a>
  <a href="/book">Reservar</a>
  <a href="/clients">Área Cliente</a>
  <a href="/restaurant-area">Área Restaurante</a>
</nav>
`
