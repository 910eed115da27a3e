package usecase

import (
	"context"
	"fmt"
	"log/slog"

	billingport "theknifeweb/internal/modules/billing/application/port"
	billingdomain "theknifeweb/internal/modules/billing/domain"
	bookingport "theknifeweb/internal/modules/booking/application/port"
	bookingdomain "theknifeweb/internal/modules/booking/domain"
)

// Area is the assembled personal-area view model: the client's reservations,
// invoices and reviews plus the lookup maps and headline stats derived from
// them. The fetches run strictly in that order so the lookups are populated
// before any render consults them.
type Area struct {
	Reservations []bookingdomain.Reservation
	Invoices     []billingdomain.Invoice
	Reviews      []billingdomain.Review

	InvoiceByReservation map[string]billingdomain.Invoice
	ReviewByRestaurant   map[string]billingdomain.Review

	ReservationCount int
	InvoiceCount     int
	ReviewCount      int
	TotalSpent       float64
}

// GenerationGuard lets a loader detect that a newer load for the same view
// started while it was fetching, so the stale result is discarded.
type GenerationGuard interface {
	Current(key string) uint64
	Bump(key string) uint64
	Stale(key string, observed uint64) bool
}

// ErrSuperseded marks an area load whose result was discarded because a newer
// load for the same view started in the meantime.
var ErrSuperseded = fmt.Errorf("area load superseded")

// AreaLoader assembles the personal area from the reservation, invoice and
// review sources.
type AreaLoader struct {
	reservations bookingport.ReservationService
	invoices     billingport.InvoiceSource
	reviews      billingport.ReviewSource
	generations  GenerationGuard
	key          func(clientID string) string
}

func NewAreaLoader(
	reservations bookingport.ReservationService,
	invoices billingport.InvoiceSource,
	reviews billingport.ReviewSource,
	generations GenerationGuard,
	key func(clientID string) string,
) *AreaLoader {
	return &AreaLoader{
		reservations: reservations,
		invoices:     invoices,
		reviews:      reviews,
		generations:  generations,
		key:          key,
	}
}

// Load fetches the three collections sequentially and builds the view model.
// If the view's generation moved during the load, the result is retried once
// against the new generation; a second supersession reports ErrSuperseded.
func (l *AreaLoader) Load(ctx context.Context, clientID string) (*Area, error) {
	for attempt := 0; attempt < 2; attempt++ {
		key := l.key(clientID)
		observed := l.generations.Current(key)

		area, err := l.fetch(ctx, clientID)
		if err != nil {
			return nil, err
		}
		if !l.generations.Stale(key, observed) {
			return area, nil
		}
		slog.Debug("discarding superseded area load", slog.String("client", clientID))
	}
	return nil, ErrSuperseded
}

func (l *AreaLoader) fetch(ctx context.Context, clientID string) (*Area, error) {
	reservations, err := l.reservations.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	invoices, err := l.invoices.ListClientInvoices(ctx, clientID)
	if err != nil {
		return nil, err
	}
	reviews, err := l.reviews.ListClientReviews(ctx, clientID)
	if err != nil {
		return nil, err
	}

	return &Area{
		Reservations:         reservations,
		Invoices:             invoices,
		Reviews:              reviews,
		InvoiceByReservation: billingdomain.InvoicesByReservation(invoices),
		ReviewByRestaurant:   billingdomain.ReviewsByRestaurant(reviews),
		ReservationCount:     len(reservations),
		InvoiceCount:         len(invoices),
		ReviewCount:          len(reviews),
		TotalSpent:           billingdomain.TotalSpent(invoices),
	}, nil
}
