// Package ws pushes leaderboard change events to connected viewers over
// WebSockets. Delivery is best effort: there is no acknowledgment and no
// replay, viewers that miss an event catch up on their next full fetch.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/shuckfest/leaderboard/metrics"
)

// Event names on the wire. They match what the viewer pages listen for.
const (
	EventLeaderboardUpdated  = "updateLeaderboard"
	EventDisplayRoundUpdated = "updateDisplayRound"
	EventTeamDeleted         = "teamDeleted"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second

	maxMessageSize = 512
	sendBuffer     = 16
)

// Envelope is the JSON frame sent to viewers.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub fans broadcast events out to every connected viewer. The run loop is
// the only goroutine touching the client set.
type Hub struct {
	logger  *zap.Logger
	metrics *metrics.Metrics

	upgrader websocket.Upgrader

	register   chan *client
	unregister chan *client
	broadcast  chan []byte

	// closed when Run returns; lets the pumps and ServeHTTP bail out
	// instead of blocking on a loop that is gone
	done chan struct{}

	clients map[*client]bool
	count   atomic.Int64
}

// NewHub creates a hub; call Run before serving connections.
func NewHub(logger *zap.Logger, m *metrics.Metrics) *Hub {
	return &Hub{
		logger:  logger,
		metrics: m,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Viewer pages are public; any origin may connect.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
		clients:    make(map[*client]bool),
	}
}

// Run processes registrations and broadcasts until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			h.logger.Info("broadcaster shut down")
			return

		case c := <-h.register:
			h.clients[c] = true
			h.count.Store(int64(len(h.clients)))
			h.metrics.ViewersConnected.Set(float64(len(h.clients)))
			h.logger.Info("viewer connected", zap.String("client", c.id), zap.Int("viewers", len(h.clients)))

		case c := <-h.unregister:
			if h.clients[c] {
				h.drop(c)
				h.logger.Info("viewer disconnected", zap.String("client", c.id), zap.Int("viewers", len(h.clients)))
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow consumer; drop it rather than block the fan-out.
					h.drop(c)
					h.logger.Warn("viewer dropped, send buffer full", zap.String("client", c.id))
				}
			}
		}
	}
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
	h.count.Store(int64(len(h.clients)))
	h.metrics.ViewersConnected.Set(float64(len(h.clients)))
}

// Broadcast publishes an event to every connected viewer. Fire and forget:
// it never blocks the caller and reports nothing about delivery.
func (h *Hub) Broadcast(event string, data any) {
	msg, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		h.logger.Error("marshal broadcast", zap.String("event", event), zap.Error(err))
		return
	}

	h.metrics.EventsBroadcast.WithLabelValues(event).Inc()

	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("broadcast queue full, event dropped", zap.String("event", event))
	}
}

// ClientCount returns the number of currently connected viewers.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// ServeHTTP upgrades a viewer connection and starts its read/write pumps.
// Once the hub has shut down, new viewers are turned away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	select {
	case <-h.done:
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	default:
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}

	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump(h)
}

// readPump discards inbound frames (viewers only listen) and keeps the pong
// deadline fresh until the peer goes away.
func (c *client) readPump(h *Hub) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
