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

	"theknifeweb/internal/modules/clients/application/port"
	"theknifeweb/internal/modules/clients/domain"
	"theknifeweb/internal/shared/normalization"
	"theknifeweb/internal/shared/rest"
)

// ClientsHTTPClient implements ClientDirectory against the core REST API.
type ClientsHTTPClient struct {
	rest    *rest.Client
	timeout time.Duration
}

func NewClientsHTTPClient(baseURL string, timeout time.Duration, client *http.Client) *ClientsHTTPClient {
	return &ClientsHTTPClient{rest: rest.NewClient(baseURL, timeout, client), timeout: rest.TimeoutOrDefault(timeout)}
}

func (c *ClientsHTTPClient) Search(ctx context.Context, id string) (*domain.Client, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.rest.NewRequest(ctx, http.MethodGet, "/api/clientes/buscar?id="+url.QueryEscape(trimmed), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrClientsUnavailable, err)
	}
	res, err := c.rest.Do(req)
	if err != nil {
		slog.Error("client search error", slog.String("id", trimmed), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", port.ErrClientsUnavailable, err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		// Some backends report zero results as 404 rather than an empty list.
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: unexpected status %d", port.ErrClientsUnavailable, res.StatusCode)
	}

	var payload any
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", port.ErrClientsUnavailable, err)
	}
	clients, ok := domain.BuildClientList(payload)
	if !ok {
		return nil, fmt.Errorf("%w: malformed client list", port.ErrClientsUnavailable)
	}
	if len(clients) == 0 {
		return nil, nil
	}
	return &clients[0], nil
}

func (c *ClientsHTTPClient) Register(ctx context.Context, registration domain.Registration) (*domain.Client, error) {
	payload, err := c.send(ctx, http.MethodPost, "/clientes", registration.Payload())
	if err != nil {
		return nil, err
	}
	if container := normalization.MapFromPayload(payload); len(container) > 0 {
		if nested, ok := container["cliente"].(map[string]any); ok {
			container = nested
		}
		if stored, ok := domain.NormalizeClient(container); ok {
			return &stored, nil
		}
	}
	// Registration responses without a body echo: fall back to the submitted data.
	return &domain.Client{
		ID:        strings.TrimSpace(registration.ID),
		Name:      strings.TrimSpace(registration.Name),
		Email:     strings.TrimSpace(registration.Email),
		Phone:     strings.TrimSpace(registration.Phone),
		Age:       registration.Age,
		Sex:       strings.TrimSpace(registration.Sex),
		Education: strings.TrimSpace(registration.Education),
	}, nil
}

func (c *ClientsHTTPClient) Update(ctx context.Context, id string, registration domain.Registration) error {
	_, err := c.send(ctx, http.MethodPut, "/api/clientes/"+url.PathEscape(strings.TrimSpace(id)), registration.UpdatePayload())
	return err
}

func (c *ClientsHTTPClient) Delete(ctx context.Context, id string) error {
	_, err := c.send(ctx, http.MethodDelete, "/api/clientes/"+url.PathEscape(strings.TrimSpace(id)), nil)
	return err
}

func (c *ClientsHTTPClient) send(ctx context.Context, method, endpoint string, body any) (any, error) {
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
		return nil, fmt.Errorf("%w: %v", port.ErrClientsUnavailable, err)
	}

	res, err := c.rest.Do(req)
	if err != nil {
		slog.Error("client request error", slog.String("endpoint", endpoint), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", port.ErrClientsUnavailable, err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		var payload any
		if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
			return nil, nil
		}
		return payload, nil
	default:
		return nil, rest.Rejection(res.StatusCode, res.Body)
	}
}

var _ port.ClientDirectory = (*ClientsHTTPClient)(nil)
