package usecase

import (
	"context"
	"errors"
	"log/slog"

	billingport "theknifeweb/internal/modules/billing/application/port"
	billingdomain "theknifeweb/internal/modules/billing/domain"
	bookingport "theknifeweb/internal/modules/booking/application/port"
	bookingdomain "theknifeweb/internal/modules/booking/domain"
)

// Area is the restaurant self-service view model: the restaurant's
// reservations and invoices plus derived lookups and revenue stats.
type Area struct {
	Reservations []bookingdomain.Reservation
	Invoices     []billingdomain.Invoice

	InvoiceByReservation map[string]billingdomain.Invoice

	ReservationCount int
	InvoiceCount     int
	TotalRevenue     float64
}

// GenerationGuard mirrors the per-view generation counter used to discard
// fetch results superseded by a broker-driven refresh.
type GenerationGuard interface {
	Current(key string) uint64
	Bump(key string) uint64
	Stale(key string, observed uint64) bool
}

var ErrSuperseded = errors.New("area load superseded")

// AreaLoader assembles the restaurant area from the reservation and invoice
// sources, reservations first so the invoice lookup is complete before use.
type AreaLoader struct {
	reservations bookingport.ReservationService
	invoices     billingport.InvoiceSource
	generations  GenerationGuard
	key          func(restaurantID string) string
}

func NewAreaLoader(
	reservations bookingport.ReservationService,
	invoices billingport.InvoiceSource,
	generations GenerationGuard,
	key func(restaurantID string) string,
) *AreaLoader {
	return &AreaLoader{reservations: reservations, invoices: invoices, generations: generations, key: key}
}

// Load fetches both collections, retrying once when the view's generation
// moved mid-load.
func (l *AreaLoader) Load(ctx context.Context, restaurantID string) (*Area, error) {
	for attempt := 0; attempt < 2; attempt++ {
		key := l.key(restaurantID)
		observed := l.generations.Current(key)

		area, err := l.fetch(ctx, restaurantID)
		if err != nil {
			return nil, err
		}
		if !l.generations.Stale(key, observed) {
			return area, nil
		}
		slog.Debug("discarding superseded restaurant area load", slog.String("restaurant", restaurantID))
	}
	return nil, ErrSuperseded
}

func (l *AreaLoader) fetch(ctx context.Context, restaurantID string) (*Area, error) {
	reservations, err := l.reservations.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	invoices, err := l.invoices.ListRestaurantInvoices(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return &Area{
		Reservations:         reservations,
		Invoices:             invoices,
		InvoiceByReservation: billingdomain.InvoicesByReservation(invoices),
		ReservationCount:     len(reservations),
		InvoiceCount:         len(invoices),
		TotalRevenue:         billingdomain.TotalSpent(invoices),
	}, nil
}
