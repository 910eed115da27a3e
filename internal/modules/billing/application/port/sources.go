package port

import (
	"context"
	"errors"

	"theknifeweb/internal/modules/billing/domain"
)

// ErrBillingUnavailable marks a transport or decode failure on the billing
// surface. Rejections with a server message arrive as *rest.RejectedError.
var ErrBillingUnavailable = errors.New("billing unavailable")

// InvoiceSource exposes the invoice surface of the core API.
type InvoiceSource interface {
	ListClientInvoices(ctx context.Context, clientID string) ([]domain.Invoice, error)
	ListRestaurantInvoices(ctx context.Context, restaurantID string) ([]domain.Invoice, error)
	// CreateRestaurantInvoice submits an assembled draft. The caller validates
	// the draft first; an empty one never reaches here.
	CreateRestaurantInvoice(ctx context.Context, draft *domain.InvoiceDraft) error
}

// ReviewSource exposes the review surface of the core API.
type ReviewSource interface {
	ListClientReviews(ctx context.Context, clientID string) ([]domain.Review, error)
	CreateReview(ctx context.Context, review domain.Review) error
}
