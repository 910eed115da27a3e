package infrastructure

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 1 << 16
)

// Client wraps one websocket connection subscribed to a single area topic.
type Client struct {
	conn  *websocket.Conn
	topic string
	send  chan []byte

	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
	closeHook func()
}

func NewClient(conn *websocket.Conn, topic string) *Client {
	return &Client{
		conn:  conn,
		topic: topic,
		send:  make(chan []byte, 16),
	}
}

func (c *Client) onClose(hook func()) {
	c.closeHook = hook
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		close(c.send)
		c.mu.Unlock()
		_ = c.conn.Close()
	})
}

// trySend queues data without blocking. False means the connection is closed
// or its buffer is full; either way the caller should detach the client. The
// mutex orders trySend against close so the channel is never written after
// it is closed.
func (c *Client) trySend(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// readPump drains and discards inbound frames. The refresh channel is
// one-way; reading keeps pong handling alive and detects closed peers.
func (c *Client) readPump() {
	defer func() {
		if c.closeHook != nil {
			c.closeHook()
		}
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("realtime read error", slog.String("topic", c.topic), slog.Any("error", err))
			}
			return
		}
	}
}
