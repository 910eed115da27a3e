package infrastructure

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"theknifeweb/internal/modules/realtime/domain"
)

func dialArea(t *testing.T, hub *Hub, topic string) *websocket.Conn {
	t.Helper()
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Attach(NewClient(conn, topic))
	}))
	t.Cleanup(server.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for hub.Subscribers(topic) == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client never attached to %s", topic)
		}
		time.Sleep(5 * time.Millisecond)
	}
	return conn
}

func TestBroadcastReachesTopicSubscribers(t *testing.T) {
	hub := NewHub()
	conn := dialArea(t, hub, "area.client.C1")
	dialArea(t, hub, "area.restaurant.R1")

	err := hub.Broadcast(context.Background(), &domain.Message{
		Entity: "reserva",
		Action: domain.ActionRefresh,
		Topic:  "area.client.C1",
	})
	if err != nil {
		t.Fatalf("broadcast: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg domain.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Topic != "area.client.C1" || msg.Action != domain.ActionRefresh {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestBroadcastWithoutTopicIsNoop(t *testing.T) {
	hub := NewHub()
	if err := hub.Broadcast(context.Background(), &domain.Message{Entity: "reserva"}); err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if err := hub.Broadcast(context.Background(), nil); err != nil {
		t.Fatalf("broadcast nil: %v", err)
	}
}

func TestBroadcastToClosedClientDoesNotPanic(t *testing.T) {
	hub := NewHub()
	attached := make(chan *Client, 1)
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(conn, "area.client.C9")
		hub.Attach(client)
		attached <- client
	}))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	client := <-attached

	hub.detach(client)
	if client.trySend([]byte(`{}`)) {
		t.Fatal("send after close must report false")
	}
	err = hub.Broadcast(context.Background(), &domain.Message{
		Entity: "reserva",
		Action: domain.ActionRefresh,
		Topic:  "area.client.C9",
	})
	if err != nil {
		t.Fatalf("broadcast after detach: %v", err)
	}
}

func TestDetachOnDisconnect(t *testing.T) {
	hub := NewHub()
	conn := dialArea(t, hub, "area.client.C2")
	_ = conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Subscribers("area.client.C2") != 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never detached after close")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
