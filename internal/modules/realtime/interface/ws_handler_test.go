package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"theknifeweb/internal/modules/realtime/infrastructure"
)

func TestSubscribeRejectsUnknownAreaKind(t *testing.T) {
	e := echo.New()
	h := NewHandler(infrastructure.NewHub())
	h.RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodGet, "/ws/area/waiter/W1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/ws/area/:kind/:id")
	c.SetParamNames("kind", "id")
	c.SetParamValues("waiter", "W1")

	err := h.Subscribe(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown kind, got %v", err)
	}
}

func TestSubscribeRejectsBlankID(t *testing.T) {
	e := echo.New()
	h := NewHandler(infrastructure.NewHub())

	req := httptest.NewRequest(http.MethodGet, "/ws/area/client/%20", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("kind", "id")
	c.SetParamValues("client", " ")

	err := h.Subscribe(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank id, got %v", err)
	}
}
