package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"theknifeweb/internal/modules/realtime/domain"
)

// Hub fans broker events out to the browser tabs subscribed to each area
// topic. Connections register under the topic taken from the page URL; a
// broadcast walks the topic's subscriber set and drops connections whose
// send buffer is full.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{topics: make(map[string]map[*Client]struct{})}
}

// Attach registers a connection under its topic and starts its pumps.
func (h *Hub) Attach(client *Client) {
	if client == nil || client.topic == "" {
		return
	}
	h.mu.Lock()
	subscribers, ok := h.topics[client.topic]
	if !ok {
		subscribers = make(map[*Client]struct{})
		h.topics[client.topic] = subscribers
	}
	subscribers[client] = struct{}{}
	h.mu.Unlock()

	client.onClose(func() { h.detach(client) })
	go client.writePump()
	go client.readPump()

	slog.Debug("realtime client attached", slog.String("topic", client.topic))
}

func (h *Hub) detach(client *Client) {
	h.mu.Lock()
	if subscribers, ok := h.topics[client.topic]; ok {
		delete(subscribers, client)
		if len(subscribers) == 0 {
			delete(h.topics, client.topic)
		}
	}
	h.mu.Unlock()
	client.close()
}

// Subscribers reports how many connections listen on a topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Broadcast sends the message to every connection subscribed to its topic.
func (h *Hub) Broadcast(_ context.Context, msg *domain.Message) error {
	if msg == nil || msg.Topic == "" {
		return nil
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.topics[msg.Topic]))
	for client := range h.topics[msg.Topic] {
		targets = append(targets, client)
	}
	h.mu.RUnlock()

	for _, client := range targets {
		if !client.trySend(data) {
			go h.detach(client)
		}
	}
	return nil
}
