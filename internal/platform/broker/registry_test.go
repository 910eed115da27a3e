package broker

import (
	"context"
	"testing"

	"theknifeweb/internal/modules/realtime/domain"
)

type countingHandler struct {
	topic  string
	events int
}

func (h *countingHandler) Topic() string { return h.topic }

func (h *countingHandler) Handle(context.Context, *domain.Message) error {
	h.events++
	return nil
}

func TestDispatchRoutesByTopic(t *testing.T) {
	registry := NewHandlerRegistry()
	reservations := &countingHandler{topic: "reserva.events"}
	invoices := &countingHandler{topic: "factura.events"}
	registry.Register(reservations)
	registry.Register(invoices)

	if err := registry.Dispatch(context.Background(), &domain.Message{Topic: "reserva.events"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if reservations.events != 1 || invoices.events != 0 {
		t.Fatalf("wrong handler invoked: reservas=%d facturas=%d", reservations.events, invoices.events)
	}
}

func TestDispatchDropsUnknownTopics(t *testing.T) {
	registry := NewHandlerRegistry()
	registry.Register(&countingHandler{topic: "reserva.events"})

	if err := registry.Dispatch(context.Background(), &domain.Message{Topic: "resena.events"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if err := registry.Dispatch(context.Background(), nil); err != nil {
		t.Fatalf("dispatch nil: %v", err)
	}
}

func TestTopicsListsRegistrations(t *testing.T) {
	registry := NewHandlerRegistry()
	registry.Register(&countingHandler{topic: "reserva.events"})
	registry.Register(&countingHandler{topic: "factura.events"})
	if len(registry.Topics()) != 2 {
		t.Fatalf("unexpected topics: %v", registry.Topics())
	}
}
