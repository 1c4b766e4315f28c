package stream

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"Agora/internal/core/events"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Hub fans committed events out to websocket subscribers.
// It is registered as a platform observer. Notify never blocks: a subscriber
// whose buffer is full is disconnected.
type Hub struct {
	subscribers map[*subscriber]struct{}
	upgrader    websocket.Upgrader
	buffer      int
	mu          sync.Mutex
}

type subscriber struct {
	send chan events.Event
}

// NewHub creates a hub with a per-subscriber buffer of buffer events
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 1
	}
	return &Hub{
		subscribers: make(map[*subscriber]struct{}),
		buffer:      buffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Bearer-token API: no cookies ride on the upgrade, so any origin may subscribe
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Notify implements events.Observer
func (h *Hub) Notify(_ context.Context, e events.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for s := range h.subscribers {
		select {
		case s.send <- e:
		default:
			log.Printf("[STREAM] dropping slow subscriber at seq=%d", e.Seq)
			h.removeLocked(s)
		}
	}
}

// SubscriberCount returns the number of connected subscribers
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Close disconnects every subscriber
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subscribers {
		h.removeLocked(s)
	}
}

func (h *Hub) add() *subscriber {
	s := &subscriber{send: make(chan events.Event, h.buffer)}
	h.mu.Lock()
	h.subscribers[s] = struct{}{}
	h.mu.Unlock()
	return s
}

func (h *Hub) remove(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(s)
}

// removeLocked closes the send channel exactly once: only the caller that
// still finds s in the map closes it
func (h *Hub) removeLocked(s *subscriber) {
	if _, ok := h.subscribers[s]; !ok {
		return
	}
	delete(h.subscribers, s)
	close(s.send)
}

// HandleSubscribe handles GET /xrpc/social.agora.sync.subscribeEvents
// Upgrades to a websocket and streams every committed event as a JSON text frame.
func (h *Hub) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		log.Printf("[STREAM] upgrade failed: %v", err)
		return
	}

	s := h.add()
	log.Printf("[STREAM] subscriber connected remote=%s", r.RemoteAddr)

	go h.readPump(conn, s)
	h.writePump(conn, s)
}

// readPump discards client frames and detects disconnects
func (h *Hub) readPump(conn *websocket.Conn, s *subscriber) {
	defer h.remove(s)

	conn.SetReadLimit(512)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("[STREAM] failed to set read deadline: %v", err)
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[STREAM] read error: %v", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(conn *websocket.Conn, s *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.remove(s)
		if err := conn.Close(); err != nil {
			log.Printf("[STREAM] failed to close connection: %v", err)
		}
	}()

	for {
		select {
		case e, ok := <-s.send:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				// Dropped by the hub: too slow, disconnected, or shutting down
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "stream closed"))
				return
			}
			if err := conn.WriteJSON(e); err != nil {
				log.Printf("[STREAM] write failed: %v", err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
