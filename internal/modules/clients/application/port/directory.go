package port

import (
	"context"
	"errors"

	"theknifeweb/internal/modules/clients/domain"
)

// ErrClientsUnavailable marks a transport or decode failure on the client
// surface. Zero search results are not an error.
var ErrClientsUnavailable = errors.New("client directory unavailable")

// ClientDirectory exposes the client surface of the core API.
type ClientDirectory interface {
	// Search looks a client up by id. Zero results yield (nil, nil).
	Search(ctx context.Context, id string) (*domain.Client, error)
	// Register creates a client and returns the stored record.
	Register(ctx context.Context, registration domain.Registration) (*domain.Client, error)
	Update(ctx context.Context, id string, registration domain.Registration) error
	// Delete removes a client; the server cascades reservations, invoices
	// and reviews.
	Delete(ctx context.Context, id string) error
}
