package port

import (
	"context"
	"errors"

	"theknifeweb/internal/modules/booking/domain"
)

// ErrBookingUnavailable marks a transport or decode failure on the
// reservation surface. Domain rejections with a server message arrive as
// *rest.RejectedError so controllers can surface them verbatim.
var ErrBookingUnavailable = errors.New("reservation service unavailable")

// Slot is the editable part of a reservation.
type Slot struct {
	Date      string
	Time      string
	PartySize int
}

// ReservationService exposes the reservation surface of the core API.
type ReservationService interface {
	ListByClient(ctx context.Context, clientID string) ([]domain.Reservation, error)
	// Create submits a validated draft and returns the new reservation id.
	Create(ctx context.Context, draft domain.Draft) (string, error)
	Update(ctx context.Context, reservationID string, slot Slot) error
	Cancel(ctx context.Context, reservationID string) error
	// RequestInvoice asks the restaurant side to invoice a past reservation.
	RequestInvoice(ctx context.Context, reservationID string) error
	// ListByRestaurant serves the restaurant self-service area.
	ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Reservation, error)
}
