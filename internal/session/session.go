// Package session holds the per-tab state that survives page navigation: the
// authenticated client record, the authenticated restaurant record, and the
// one-shot restaurant handoff written by a "reserve" action on a listing.
// Only page controllers write here; renderers receive plain records.
package session

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("session entry not found")

// ClientRecord mirrors the client identity the personal area and booking
// wizard run on.
type ClientRecord struct {
	ID        string `json:"id"`
	Name      string `json:"nombre"`
	Email     string `json:"email"`
	Phone     string `json:"telefono"`
	Age       int    `json:"edad"`
	Education string `json:"estudios"`
}

// RestaurantRecord mirrors the restaurant identity driving the self-service area.
type RestaurantRecord struct {
	ID      string `json:"id"`
	Name    string `json:"nombre"`
	City    string `json:"ciudad"`
	Region  string `json:"ccaa"`
	Cuisine string `json:"tipo_comida"`
	Stars   int    `json:"estrellas"`
	Budget  int    `json:"presupuesto"`
}

// Handoff is the short-lived "selected restaurant for booking" value. It is
// consumed exactly once: the first read clears it.
type Handoff struct {
	RestaurantID   string `json:"id"`
	RestaurantName string `json:"nombre"`
}

// Repository persists session state keyed by session id. Implementations
// return ErrNotFound for absent entries and expire whole sessions after the
// configured TTL.
type Repository interface {
	Client(ctx context.Context, sid string) (*ClientRecord, error)
	SetClient(ctx context.Context, sid string, record *ClientRecord) error
	ClearClient(ctx context.Context, sid string) error

	Restaurant(ctx context.Context, sid string) (*RestaurantRecord, error)
	SetRestaurant(ctx context.Context, sid string, record *RestaurantRecord) error
	ClearRestaurant(ctx context.Context, sid string) error

	SetHandoff(ctx context.Context, sid string, handoff *Handoff) error
	// TakeHandoff returns the stored handoff and clears it in the same step.
	TakeHandoff(ctx context.Context, sid string) (*Handoff, error)
}

const (
	slotClient     = "client"
	slotRestaurant = "restaurant"
	slotHandoff    = "handoff"
)
