package transport

import (
	"strings"
	"testing"
	"time"

	billingdomain "theknifeweb/internal/modules/billing/domain"
	bookingdomain "theknifeweb/internal/modules/booking/domain"
	"theknifeweb/internal/modules/restaurantarea/application/usecase"
)

func TestInvoiceActionOnlyForPastUninvoiced(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	reservations := []bookingdomain.Reservation{
		{ID: "RES1", ClientID: "C1", Date: "2025-06-01", Status: bookingdomain.StatusConfirmed},
		{ID: "RES2", ClientID: "C2", Date: "2025-06-20", Status: bookingdomain.StatusPending},
		{ID: "RES3", ClientID: "C3", Date: "2025-06-01", Status: bookingdomain.StatusConfirmed},
		{ID: "RES4", ClientID: "C4", Date: "2025-06-01", Status: bookingdomain.StatusCancelled},
	}
	invoices := map[string]billingdomain.Invoice{"RES3": {ID: "F1", ReservationID: "RES3"}}

	html := RenderRestaurantReservations(reservations, invoices, now)

	if !strings.Contains(html, `value="RES1"`) {
		t.Fatalf("past uninvoiced reservation should offer invoice creation: %s", html)
	}
	if strings.Contains(html, `value="RES2"`) {
		t.Fatalf("future reservation must not offer invoice creation: %s", html)
	}
	if strings.Contains(html, `value="RES4"`) {
		t.Fatalf("cancelled reservation must not offer invoice creation: %s", html)
	}
	if !strings.Contains(html, "Facturada") {
		t.Fatalf("invoiced reservation should show the badge: %s", html)
	}
}

func TestRestaurantInvoicesShowRatingState(t *testing.T) {
	rating := 5.0
	html := RenderRestaurantInvoices([]billingdomain.Invoice{
		{ID: "F1", ReservationID: "RES1", ClientID: "C1", Price: 45.5, Rating: &rating},
		{ID: "F2", ReservationID: "RES2", ClientID: "C2", Price: 30},
	})
	if !strings.Contains(html, "⭐⭐⭐⭐⭐") {
		t.Fatalf("rated invoice should show stars: %s", html)
	}
	if !strings.Contains(html, "Sin valorar") {
		t.Fatalf("unrated invoice should show the placeholder: %s", html)
	}
}

func TestRestaurantStats(t *testing.T) {
	html := RenderRestaurantStats(&usecase.Area{ReservationCount: 4, InvoiceCount: 2, TotalRevenue: 120})
	if !strings.Contains(html, "120.00€") {
		t.Fatalf("revenue missing: %s", html)
	}
}

func TestRestaurantLoginNotFound(t *testing.T) {
	html := RenderRestaurantLogin("R9", true)
	if !strings.Contains(html, "No existe ningún restaurante") {
		t.Fatalf("not-found notice missing: %s", html)
	}
	if !strings.Contains(html, `value="R9"`) {
		t.Fatalf("attempted id not prefilled: %s", html)
	}
}
