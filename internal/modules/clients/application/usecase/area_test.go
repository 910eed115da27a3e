package usecase

import (
	"context"
	"errors"
	"testing"

	billingdomain "theknifeweb/internal/modules/billing/domain"
	bookingport "theknifeweb/internal/modules/booking/application/port"
	bookingdomain "theknifeweb/internal/modules/booking/domain"
	"theknifeweb/internal/shared/refresh"
)

type stubReservations struct {
	reservations []bookingdomain.Reservation
	err          error
	calls        int
	onList       func()
}

func (s *stubReservations) ListByClient(context.Context, string) ([]bookingdomain.Reservation, error) {
	s.calls++
	if s.onList != nil {
		s.onList()
	}
	return s.reservations, s.err
}
func (s *stubReservations) ListByRestaurant(context.Context, string) ([]bookingdomain.Reservation, error) {
	return nil, nil
}
func (s *stubReservations) Create(context.Context, bookingdomain.Draft) (string, error) {
	return "", nil
}
func (s *stubReservations) Update(context.Context, string, bookingport.Slot) error { return nil }
func (s *stubReservations) Cancel(context.Context, string) error                   { return nil }
func (s *stubReservations) RequestInvoice(context.Context, string) error           { return nil }

type stubInvoices struct {
	invoices []billingdomain.Invoice
	err      error
}

func (s *stubInvoices) ListClientInvoices(context.Context, string) ([]billingdomain.Invoice, error) {
	return s.invoices, s.err
}
func (s *stubInvoices) ListRestaurantInvoices(context.Context, string) ([]billingdomain.Invoice, error) {
	return nil, nil
}
func (s *stubInvoices) CreateRestaurantInvoice(context.Context, *billingdomain.InvoiceDraft) error {
	return nil
}

type stubReviews struct {
	reviews []billingdomain.Review
	err     error
}

func (s *stubReviews) ListClientReviews(context.Context, string) ([]billingdomain.Review, error) {
	return s.reviews, s.err
}
func (s *stubReviews) CreateReview(context.Context, billingdomain.Review) error { return nil }

func clientKey(id string) string { return refresh.AreaKey("client", id) }

func TestAreaLoaderBuildsLookups(t *testing.T) {
	rating := 4.0
	loader := NewAreaLoader(
		&stubReservations{reservations: []bookingdomain.Reservation{
			{ID: "RES1", RestaurantID: "R1", Date: "2025-06-01"},
			{ID: "RES2", RestaurantID: "R2", Date: "2025-07-01"},
		}},
		&stubInvoices{invoices: []billingdomain.Invoice{
			{ID: "F1", ReservationID: "RES1", RestaurantID: "R1", Price: 45.5, Rating: &rating},
		}},
		&stubReviews{reviews: []billingdomain.Review{
			{ClientID: "C1", RestaurantID: "R1", Rating: 4},
		}},
		refresh.NewGenerations(),
		clientKey,
	)

	area, err := loader.Load(context.Background(), "C1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if area.ReservationCount != 2 || area.InvoiceCount != 1 || area.ReviewCount != 1 {
		t.Fatalf("unexpected counts: %+v", area)
	}
	if area.TotalSpent != 45.5 {
		t.Fatalf("unexpected total: %v", area.TotalSpent)
	}
	if _, ok := area.InvoiceByReservation["RES1"]; !ok {
		t.Fatal("invoice lookup not populated")
	}
	if _, ok := area.ReviewByRestaurant["R1"]; !ok {
		t.Fatal("review lookup not populated")
	}
}

func TestAreaLoaderPropagatesFetchFailure(t *testing.T) {
	wantErr := errors.New("boom")
	loader := NewAreaLoader(
		&stubReservations{err: wantErr},
		&stubInvoices{}, &stubReviews{},
		refresh.NewGenerations(), clientKey,
	)
	if _, err := loader.Load(context.Background(), "C1"); !errors.Is(err, wantErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

func TestAreaLoaderRetriesOnceWhenSuperseded(t *testing.T) {
	generations := refresh.NewGenerations()
	reservations := &stubReservations{}
	bumped := false
	reservations.onList = func() {
		// A broker event lands mid-fetch the first time only.
		if !bumped {
			generations.Bump(clientKey("C1"))
			bumped = true
		}
	}

	loader := NewAreaLoader(reservations, &stubInvoices{}, &stubReviews{}, generations, clientKey)
	if _, err := loader.Load(context.Background(), "C1"); err != nil {
		t.Fatalf("superseded load should retry and succeed: %v", err)
	}
	if reservations.calls != 2 {
		t.Fatalf("expected 2 fetch attempts, got %d", reservations.calls)
	}
}

func TestAreaLoaderGivesUpAfterSecondSupersession(t *testing.T) {
	generations := refresh.NewGenerations()
	reservations := &stubReservations{}
	reservations.onList = func() { generations.Bump(clientKey("C1")) }

	loader := NewAreaLoader(reservations, &stubInvoices{}, &stubReviews{}, generations, clientKey)
	if _, err := loader.Load(context.Background(), "C1"); !errors.Is(err, ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded, got %v", err)
	}
}
