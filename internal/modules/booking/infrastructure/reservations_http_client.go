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

	"theknifeweb/internal/modules/booking/application/port"
	"theknifeweb/internal/modules/booking/domain"
	"theknifeweb/internal/shared/normalization"
	"theknifeweb/internal/shared/rest"
)

// ReservationsHTTPClient implements ReservationService against the core REST API.
type ReservationsHTTPClient struct {
	rest    *rest.Client
	timeout time.Duration
}

func NewReservationsHTTPClient(baseURL string, timeout time.Duration, client *http.Client) *ReservationsHTTPClient {
	return &ReservationsHTTPClient{rest: rest.NewClient(baseURL, timeout, client), timeout: rest.TimeoutOrDefault(timeout)}
}

func (c *ReservationsHTTPClient) ListByClient(ctx context.Context, clientID string) ([]domain.Reservation, error) {
	return c.list(ctx, "/api/reservas/"+url.PathEscape(strings.TrimSpace(clientID)))
}

func (c *ReservationsHTTPClient) ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Reservation, error) {
	return c.list(ctx, "/api/restaurantes/"+url.PathEscape(strings.TrimSpace(restaurantID))+"/reservas")
}

func (c *ReservationsHTTPClient) list(ctx context.Context, endpoint string) ([]domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.rest.NewRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrBookingUnavailable, err)
	}
	res, err := c.rest.Do(req)
	if err != nil {
		slog.Error("reservation request error", slog.String("endpoint", endpoint), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", port.ErrBookingUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		slog.Error("reservation fetch unexpected status", slog.Int("status", res.StatusCode), slog.String("endpoint", endpoint))
		return nil, fmt.Errorf("%w: unexpected status %d", port.ErrBookingUnavailable, res.StatusCode)
	}
	var payload any
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", port.ErrBookingUnavailable, err)
	}
	reservations, ok := domain.BuildReservationList(payload)
	if !ok {
		return nil, fmt.Errorf("%w: malformed reservation list", port.ErrBookingUnavailable)
	}
	return reservations, nil
}

func (c *ReservationsHTTPClient) Create(ctx context.Context, draft domain.Draft) (string, error) {
	body := map[string]any{
		"id_cliente":     draft.ClientID,
		"id_restaurante": draft.RestaurantID,
		"num_personas":   draft.PartySize,
		"fecha":          draft.Date,
		"hora":           draft.Time,
	}
	payload, err := c.send(ctx, http.MethodPost, "/api/reservas", body)
	if err != nil {
		return "", err
	}
	container := normalization.MapFromPayload(payload)
	id := normalization.AsString(container["id_reserva"])
	if id == "" {
		id = normalization.AsString(container["id"])
	}
	if id == "" {
		return "", fmt.Errorf("%w: creation response carries no reservation id", port.ErrBookingUnavailable)
	}
	return id, nil
}

func (c *ReservationsHTTPClient) Update(ctx context.Context, reservationID string, slot port.Slot) error {
	body := map[string]any{
		"fecha":        slot.Date,
		"hora":         slot.Time,
		"num_personas": slot.PartySize,
	}
	_, err := c.send(ctx, http.MethodPut, "/api/reservas/update/"+url.PathEscape(reservationID), body)
	return err
}

func (c *ReservationsHTTPClient) Cancel(ctx context.Context, reservationID string) error {
	_, err := c.send(ctx, http.MethodDelete, "/api/reservas/cancel/"+url.PathEscape(reservationID), nil)
	return err
}

func (c *ReservationsHTTPClient) RequestInvoice(ctx context.Context, reservationID string) error {
	_, err := c.send(ctx, http.MethodPost, "/api/reservas/"+url.PathEscape(reservationID)+"/factura", nil)
	return err
}

func (c *ReservationsHTTPClient) send(ctx context.Context, method, endpoint string, body any) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var req *http.Request
	var err error
	if body != nil {
		req, err = c.rest.NewJSONRequest(ctx, method, endpoint, body)
	} else {
		req, err = c.rest.NewRequest(ctx, method, endpoint, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrBookingUnavailable, err)
	}

	res, err := c.rest.Do(req)
	if err != nil {
		slog.Error("reservation request error", slog.String("endpoint", endpoint), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", port.ErrBookingUnavailable, err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var payload any
		if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
			// Mutations without a JSON body still succeed.
			return nil, nil
		}
		return payload, nil
	default:
		return nil, rest.Rejection(res.StatusCode, res.Body)
	}
}

var _ port.ReservationService = (*ReservationsHTTPClient)(nil)
