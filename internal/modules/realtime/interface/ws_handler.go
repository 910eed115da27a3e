package transport

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"theknifeweb/internal/modules/realtime/domain"
	"theknifeweb/internal/modules/realtime/infrastructure"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Same-host pages only; the frontend serves its own sockets.
		origin := r.Header.Get("Origin")
		return origin == "" || strings.Contains(origin, r.Host)
	},
}

// Handler upgrades area pages to a websocket subscription so they hear
// about backend changes without polling.
type Handler struct {
	hub *infrastructure.Hub
}

func NewHandler(hub *infrastructure.Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/area/:kind/:id", h.Subscribe)
}

// Subscribe attaches the connection to the area topic named in the URL.
func (h *Handler) Subscribe(c echo.Context) error {
	kind := strings.TrimSpace(c.Param("kind"))
	id := strings.TrimSpace(c.Param("id"))
	if (kind != domain.AreaKindClient && kind != domain.AreaKindRestaurant) || id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "área desconocida")
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", slog.Any("error", err))
		return nil
	}

	h.hub.Attach(infrastructure.NewClient(conn, domain.AreaTopic(kind, id)))
	return nil
}
