package notify

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event is the JSON frame pushed to websocket subscribers.
type Event struct {
	Type    string `json:"type"` // "badge" or "toast"
	Count   int    `json:"count,omitempty"`
	Hidden  bool   `json:"hidden,omitempty"`
	Level   Level  `json:"level,omitempty"`
	Message string `json:"message,omitempty"`
}

// writeWait bounds a single frame write; slower subscribers are dropped.
const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub broadcasts badge and toast events to every connected websocket client.
// A newly connected client first receives the last badge state.
type Hub struct {
	logger    *zap.Logger
	writeWait time.Duration

	mu        sync.Mutex
	clients   map[*websocket.Conn]bool
	lastBadge *Event
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{logger: logger, writeWait: writeWait, clients: make(map[*websocket.Conn]bool)}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer h.drop(conn)

	h.mu.Lock()
	h.clients[conn] = true
	if h.lastBadge != nil {
		h.write(conn, *h.lastBadge)
	}
	h.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) Badge(count int) {
	ev := Event{Type: "badge", Count: count, Hidden: count == 0}
	h.mu.Lock()
	h.lastBadge = &ev
	h.mu.Unlock()
	h.broadcast(ev)
}

func (h *Hub) Toast(level Level, message string) {
	h.broadcast(Event{Type: "toast", Level: level, Message: message})
}

// Clients returns the number of connected subscribers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}

func (h *Hub) broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		h.write(conn, ev)
	}
}

// write must be called with h.mu held; gorilla allows one concurrent writer.
func (h *Hub) write(conn *websocket.Conn, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	err = conn.SetWriteDeadline(time.Now().Add(h.writeWait))
	if err == nil {
		err = conn.WriteMessage(websocket.TextMessage, data)
	}
	if err != nil {
		h.logger.Debug("🔌 dropping websocket subscriber", zap.Error(err))
		conn.Close()
		delete(h.clients, conn)
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conn.Close()
	delete(h.clients, conn)
}
