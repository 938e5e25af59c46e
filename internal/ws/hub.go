package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"
)

// Frame is what subscribers receive on the wire.
type Frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Hub fans campus broadcasts out to every connected client. Delivery is
// best-effort: a slow client gets dropped, a full broadcast queue discards
// the frame, and publishing never blocks.
type Hub struct {
	clients map[*Client]bool

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	clientCount int64
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client, 256),
	}
}

// Publish implements notify.Publisher.
func (h *Hub) Publish(eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("ws publish %s: %v", eventType, err)
		return
	}
	frame, err := json.Marshal(Frame{Type: eventType, Data: data})
	if err != nil {
		log.Printf("ws publish %s: %v", eventType, err)
		return
	}
	select {
	case h.broadcast <- frame:
	default:
		// queue full; broadcast is at-most-once
	}
}

// Run owns the client set. All registration and fan-out goes through the
// hub channels, so no locking is needed.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			atomic.AddInt64(&h.clientCount, 1)

		case c := <-h.unregister:
			h.drop(c)

		case frame := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- frame:
				default:
					// client can't keep up
					h.drop(c)
				}
			}

		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return
		}
	}
}

func (h *Hub) drop(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	atomic.AddInt64(&h.clientCount, -1)
	close(c.send)
	c.conn.Close()
}

// ClientCount is safe to read from any goroutine.
func (h *Hub) ClientCount() int64 {
	return atomic.LoadInt64(&h.clientCount)
}
