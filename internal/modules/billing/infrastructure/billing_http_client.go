package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"theknifeweb/internal/modules/billing/application/port"
	"theknifeweb/internal/modules/billing/domain"
	"theknifeweb/internal/shared/rest"
)

// BillingHTTPClient implements the invoice and review sources against the
// core REST API.
type BillingHTTPClient struct {
	rest    *rest.Client
	timeout time.Duration
}

func NewBillingHTTPClient(baseURL string, timeout time.Duration, client *http.Client) *BillingHTTPClient {
	return &BillingHTTPClient{rest: rest.NewClient(baseURL, timeout, client), timeout: rest.TimeoutOrDefault(timeout)}
}

func (c *BillingHTTPClient) ListClientInvoices(ctx context.Context, clientID string) ([]domain.Invoice, error) {
	return c.listInvoices(ctx, "/api/facturas/"+url.PathEscape(strings.TrimSpace(clientID)))
}

func (c *BillingHTTPClient) ListRestaurantInvoices(ctx context.Context, restaurantID string) ([]domain.Invoice, error) {
	return c.listInvoices(ctx, "/api/restaurantes/"+url.PathEscape(strings.TrimSpace(restaurantID))+"/facturas")
}

func (c *BillingHTTPClient) listInvoices(ctx context.Context, endpoint string) ([]domain.Invoice, error) {
	payload, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	invoices, ok := domain.BuildInvoiceList(payload)
	if !ok {
		return nil, fmt.Errorf("%w: malformed invoice list", port.ErrBillingUnavailable)
	}
	return invoices, nil
}

func (c *BillingHTTPClient) ListClientReviews(ctx context.Context, clientID string) ([]domain.Review, error) {
	payload, err := c.get(ctx, "/api/resenas/"+url.PathEscape(strings.TrimSpace(clientID)))
	if err != nil {
		return nil, err
	}
	reviews, ok := domain.BuildReviewList(payload)
	if !ok {
		return nil, fmt.Errorf("%w: malformed review list", port.ErrBillingUnavailable)
	}
	return reviews, nil
}

func (c *BillingHTTPClient) CreateReview(ctx context.Context, review domain.Review) error {
	body := map[string]any{
		"id_cliente":     review.ClientID,
		"id_restaurante": review.RestaurantID,
		"valoracion":     review.Rating,
		"tipo_visita":    review.VisitType,
	}
	return c.post(ctx, "/api/resenas", body)
}

func (c *BillingHTTPClient) CreateRestaurantInvoice(ctx context.Context, draft *domain.InvoiceDraft) error {
	return c.post(ctx, "/api/restaurantes/factura/crear", draft.Payload())
}

func (c *BillingHTTPClient) get(ctx context.Context, endpoint string) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.rest.NewRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrBillingUnavailable, err)
	}
	res, err := c.rest.Do(req)
	if err != nil {
		slog.Error("billing request error", slog.String("endpoint", endpoint), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", port.ErrBillingUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		slog.Error("billing fetch unexpected status", slog.Int("status", res.StatusCode), slog.String("endpoint", endpoint))
		return nil, fmt.Errorf("%w: unexpected status %d", port.ErrBillingUnavailable, res.StatusCode)
	}
	var payload any
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", port.ErrBillingUnavailable, err)
	}
	return payload, nil
}

func (c *BillingHTTPClient) post(ctx context.Context, endpoint string, body any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.rest.NewJSONRequest(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return fmt.Errorf("%w: %v", port.ErrBillingUnavailable, err)
	}
	res, err := c.rest.Do(req)
	if err != nil {
		slog.Error("billing request error", slog.String("endpoint", endpoint), slog.Any("error", err))
		return fmt.Errorf("%w: %v", port.ErrBillingUnavailable, err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return nil
	default:
		return rest.Rejection(res.StatusCode, res.Body)
	}
}

var (
	_ port.InvoiceSource = (*BillingHTTPClient)(nil)
	_ port.ReviewSource  = (*BillingHTTPClient)(nil)
)
